package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

// flexValue accepts a JSON string, number or null and keeps its text form.
// The backend is not consistent about quoting prices, ids and durations.
type flexValue string

func (f *flexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = flexValue(n.String())
	return nil
}

func (f flexValue) String() string {
	return string(f)
}

// Number reads the value as a plain number, falling back to its digits
func (f flexValue) Number() float64 {
	if n, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64); err == nil {
		return n
	}
	return utils.DigitsOnly(string(f))
}

var (
	hoursPattern   = regexp.MustCompile(`(\d+)\s*h`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*m`)
)

// Minutes reads a duration given as minutes, "9:30" or "1 h 5 min"
func (f flexValue) Minutes() (int, bool) {
	raw := strings.ToLower(strings.TrimSpace(string(f)))
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, n > 0
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(n), n > 0
	}
	if m, ok := utils.ParseClockDuration(raw); ok {
		return m, m > 0
	}
	total := 0
	if match := hoursPattern.FindStringSubmatch(raw); match != nil {
		h, _ := strconv.Atoi(match[1])
		total += h * 60
	}
	if match := minutesPattern.FindStringSubmatch(strings.Join(hoursPattern.Split(raw, -1), " ")); match != nil {
		m, _ := strconv.Atoi(match[1])
		total += m
	}
	return total, total > 0
}

// --- Hotels ---

type opinionDTO struct {
	ID          string    `json:"_id"`
	UserID      flexValue `json:"usuario_id"`
	Type        string    `json:"tipo_opinion"`
	ReferenceID string    `json:"referencia_mongo_id"`
	Rating      int       `json:"calificacion"`
	Comment     string    `json:"comentario"`
	PublishedAt string    `json:"fecha_publicacion"`
}

func (d opinionDTO) toEntity() entity.Opinion {
	published, _ := utils.ParseTimestamp(d.PublishedAt)
	return entity.Opinion{
		ID:          d.ID,
		UserID:      int64(d.UserID.Number()),
		Type:        entity.ProductType(d.Type),
		ReferenceID: d.ReferenceID,
		Rating:      d.Rating,
		Comment:     d.Comment,
		PublishedAt: published,
	}
}

type hotelDTO struct {
	ID          string          `json:"_id" validate:"required"`
	Name        string          `json:"nombre" validate:"required"`
	City        string          `json:"ciudad"`
	Description string          `json:"descripcion"`
	Price       float64         `json:"precio" validate:"gte=0"`
	Rating      float64         `json:"rating" validate:"gte=0,lte=5"`
	Location    string          `json:"ubicacion"`
	Images      []string        `json:"imagenes"`
	Opinions    json.RawMessage `json:"opiniones"`
}

func (d hotelDTO) toEntity() entity.Hotel {
	hotel := entity.Hotel{
		ID:          d.ID,
		Name:        d.Name,
		City:        d.City,
		Description: d.Description,
		Price:       d.Price,
		Rating:      d.Rating,
		Location:    d.Location,
		Images:      d.Images,
	}
	// Opinions are embedded documents on the detail endpoint and bare ids on
	// the listing; only the embedded form is kept.
	var opinions []opinionDTO
	if len(d.Opinions) > 0 && json.Unmarshal(d.Opinions, &opinions) == nil {
		for _, o := range opinions {
			hotel.Opinions = append(hotel.Opinions, o.toEntity())
		}
	}
	return hotel
}

// --- Buses ---

type busDTO struct {
	ID          string    `json:"_id" validate:"required"`
	Origin      string    `json:"origen" validate:"required"`
	Destination string    `json:"destino" validate:"required"`
	DepartureAt string    `json:"fecha_salida"`
	ArrivalAt   string    `json:"fecha_llegada"`
	Price       flexValue `json:"precio"`
	Company     string    `json:"compania"`
	Duration    flexValue `json:"duracion"`
	BusType     string    `json:"tipo_bus"`
	Opinions    []string  `json:"opiniones"`
}

func (d busDTO) toEntity() entity.Bus {
	departure, _ := utils.ParseTimestamp(d.DepartureAt)
	arrival, _ := utils.ParseTimestamp(d.ArrivalAt)
	minutes, _ := d.Duration.Minutes()

	bus := entity.Bus{
		ID:              d.ID,
		Origin:          d.Origin,
		Destination:     d.Destination,
		DepartureAt:     departure,
		ArrivalAt:       arrival,
		Price:           d.Price.Number(),
		Company:         d.Company,
		DurationMinutes: minutes,
		BusType:         d.BusType,
		OpinionIDs:      d.Opinions,
	}
	if bus.DurationMinutes == 0 && !departure.IsZero() && arrival.After(departure) {
		bus.DurationMinutes = int(arrival.Sub(departure).Minutes())
	}
	return bus
}

// --- Flights ---

type flightOfferDTO struct {
	Airline            string    `json:"airline" validate:"required"`
	DepartureTime      string    `json:"departure_time"`
	ArrivalTime        string    `json:"arrival_time"`
	Duration           flexValue `json:"duration"`
	Stops              flexValue `json:"stops"`
	Price              flexValue `json:"price"`
	CO2Emissions       flexValue `json:"co2_emissions"`
	EmissionsVariation flexValue `json:"emissions_variation"`
}

type flightSearchParamsDTO struct {
	Departure     string `json:"departure"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

type flightResultDTO struct {
	ID               string                `json:"_id" validate:"required"`
	Flights          []flightOfferDTO      `json:"flights" validate:"dive"`
	SearchParameters flightSearchParamsDTO `json:"search_parameters"`
}

type flightSearchDTO struct {
	Results    []flightResultDTO `json:"resultados" validate:"dive"`
	TotalPages int               `json:"totalPages" validate:"gte=0"`
}

func (d flightSearchDTO) toEntity() entity.FlightResults {
	results := entity.FlightResults{TotalPages: d.TotalPages}
	if results.TotalPages < 1 {
		results.TotalPages = 1
	}
	for _, doc := range d.Results {
		for i, offer := range doc.Flights {
			minutes, _ := offer.Duration.Minutes()
			results.Flights = append(results.Flights, entity.Flight{
				ID:                 fmt.Sprintf("%s-%d", doc.ID, i),
				Airline:            offer.Airline,
				DepartureTime:      offer.DepartureTime,
				ArrivalTime:        offer.ArrivalTime,
				DurationMinutes:    minutes,
				Stops:              int(offer.Stops.Number()),
				Price:              utils.DigitsOnly(offer.Price.String()),
				CO2Emissions:       utils.DigitsOnly(offer.CO2Emissions.String()),
				EmissionsVariation: offer.EmissionsVariation.String(),
				Origin:             doc.SearchParameters.Departure,
				Destination:        doc.SearchParameters.Destination,
				DepartureDate:      doc.SearchParameters.DepartureDate,
			})
		}
	}
	return results
}

// --- Accounts ---

type loginDTO struct {
	Token string `json:"token" validate:"required"`
}

type userDTO struct {
	ID    flexValue `json:"id" validate:"required"`
	Name  string    `json:"nombre"`
	Email string    `json:"email" validate:"omitempty,email"`
	Role  string    `json:"rol"`
}

func (d userDTO) toEntity() entity.User {
	return entity.User{
		ID:    int64(d.ID.Number()),
		Name:  d.Name,
		Email: d.Email,
		Role:  d.Role,
	}
}

// --- Cart, favorites, reservations ---

type cartItemDTO struct {
	ID          flexValue `json:"id"`
	MongoID     string    `json:"_id"`
	UserID      flexValue `json:"usuario_id"`
	ProductID   string    `json:"producto_id" validate:"required"`
	ProductType string    `json:"tipo_producto" validate:"required,oneof=hotel flight bus"`
	Quantity    int       `json:"cantidad" validate:"gte=1"`
	TotalPrice  float64   `json:"precio_total" validate:"gte=0"`
}

func (d cartItemDTO) toEntity() entity.CartItem {
	item := entity.CartItem{
		ID:          firstNonEmpty(d.ID.String(), d.MongoID),
		UserID:      int64(d.UserID.Number()),
		ProductID:   d.ProductID,
		ProductType: entity.ProductType(d.ProductType),
		Quantity:    d.Quantity,
		TotalPrice:  d.TotalPrice,
	}
	if d.Quantity > 0 {
		item.UnitPrice = d.TotalPrice / float64(d.Quantity)
	}
	return item
}

type favoriteDTO struct {
	ID          flexValue `json:"id"`
	MongoID     string    `json:"_id"`
	UserID      flexValue `json:"usuario_id"`
	ProductType string    `json:"tipo_producto" validate:"required,oneof=hotel flight bus"`
	ProductID   string    `json:"producto_id" validate:"required"`
}

func (d favoriteDTO) toEntity() entity.Favorite {
	return entity.Favorite{
		ID:          firstNonEmpty(d.ID.String(), d.MongoID),
		UserID:      int64(d.UserID.Number()),
		ProductType: entity.ProductType(d.ProductType),
		ProductID:   d.ProductID,
	}
}

type reservationDTO struct {
	ID          flexValue `json:"id"`
	MongoID     string    `json:"_id"`
	UserID      flexValue `json:"usuario_id"`
	ProductType string    `json:"tipo_producto"`
	ProductID   string    `json:"producto_id"`
	CheckIn     string    `json:"fecha_inicio"`
	CheckOut    string    `json:"fecha_fin"`
	Total       flexValue `json:"total"`
	Status      string    `json:"estado"`
	CreatedAt   string    `json:"fecha_creacion"`
}

func (d reservationDTO) toEntity() entity.Reservation {
	r := entity.Reservation{
		ID:          firstNonEmpty(d.ID.String(), d.MongoID),
		UserID:      int64(d.UserID.Number()),
		ProductType: entity.ProductType(d.ProductType),
		ProductID:   d.ProductID,
		Total:       d.Total.Number(),
		Status:      d.Status,
	}
	if t, ok := utils.ParseTimestamp(d.CheckIn); ok {
		r.CheckIn = &t
	}
	if t, ok := utils.ParseTimestamp(d.CheckOut); ok {
		r.CheckOut = &t
	}
	if t, ok := utils.ParseTimestamp(d.CreatedAt); ok {
		r.CreatedAt = t
	}
	return r
}

// --- Request bodies ---

type credentialsBody struct {
	Name     string `json:"nombre,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type cartItemBody struct {
	UserID      int64   `json:"usuario_id"`
	ProductID   string  `json:"producto_id"`
	ProductType string  `json:"tipo_producto"`
	Quantity    int     `json:"cantidad"`
	TotalPrice  float64 `json:"precio_total"`
}

type quantityBody struct {
	Quantity   int     `json:"cantidad"`
	TotalPrice float64 `json:"precio_total"`
}

type favoriteBody struct {
	UserID      int64  `json:"usuario_id"`
	ProductType string `json:"tipo_producto"`
	ProductID   string `json:"producto_id"`
}

type opinionBody struct {
	UserID      int64  `json:"usuario_id"`
	Type        string `json:"tipo_opinion"`
	ReferenceID string `json:"referencia_mongo_id"`
	Rating      int    `json:"calificacion"`
	Comment     string `json:"comentario"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
