package usecase

import (
	"context"
	"time"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/listing"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

// PageSizes are the per-listing page sizes
type PageSizes struct {
	Hotels       int
	Buses        int
	Flights      int
	Reservations int
	AdminHotels  int
}

// DefaultPageSizes match the storefront pages
var DefaultPageSizes = PageSizes{
	Hotels:       6,
	Buses:        6,
	Flights:      9,
	Reservations: 6,
	AdminHotels:  8,
}

// Listing is one page of a filtered collection plus the fingerprint of the
// criteria that produced it
type Listing[T any] struct {
	listing.Page[T]
	FilterKey string `json:"filterKey"`
}

func newListing[T any](items []T, criteria listing.Criteria, page int, previousKey string, size int) Listing[T] {
	page = listing.ResetPage(page, previousKey, criteria)
	return Listing[T]{
		Page:      listing.Paginate(items, page, size),
		FilterKey: criteria.Fingerprint(),
	}
}

// HotelQuery is the hotel listing request
type HotelQuery struct {
	Query     string
	MinPrice  *float64
	MaxPrice  *float64
	Page      int
	FilterKey string
}

// BusQuery is the bus listing request
type BusQuery struct {
	MinPrice    *float64
	MaxPrice    *float64
	Bands       []listing.Band
	Origin      string
	Destination string
	Date        *time.Time
	Type        string
	Page        int
	FilterKey   string
}

// FlightQuery is the flight listing request. Origin, destination and date go
// to the backend search; price and bands are applied here.
type FlightQuery struct {
	TripType    entity.TripType
	Origin      string
	Destination string
	Date        string
	Bands       []listing.Band
	MinPrice    *float64
	MaxPrice    *float64
	Page        int
	FilterKey   string
}

const (
	flightFetchLimit    = 100
	flightFetchMaxPages = 10
)

var (
	hotelAccessors = listing.Accessors[entity.Hotel]{
		Price: func(h entity.Hotel) float64 { return h.Price },
		Text:  func(h entity.Hotel) []string { return []string{h.Name, h.City, h.Location} },
	}
	adminHotelAccessors = listing.Accessors[entity.Hotel]{
		Text: func(h entity.Hotel) []string { return []string{h.City, h.Location} },
	}
	busAccessors = listing.Accessors[entity.Bus]{
		Price:       func(b entity.Bus) float64 { return b.Price },
		Hour:        func(b entity.Bus) int { return b.DepartureAt.Hour() },
		Origin:      func(b entity.Bus) string { return b.Origin },
		Destination: func(b entity.Bus) string { return b.Destination },
		Date:        func(b entity.Bus) (time.Time, bool) { return b.DepartureAt, !b.DepartureAt.IsZero() },
	}
	flightAccessors = listing.Accessors[entity.Flight]{
		Price: func(f entity.Flight) float64 { return f.Price },
		Hour:  func(f entity.Flight) int { return listing.HourOf(f.DepartureTime) },
	}
)

// CatalogUsecase serves the hotel, bus and flight listings
type CatalogUsecase struct {
	catalog   repository.CatalogRepository
	estimator *Estimator
	sizes     PageSizes
	logger    logger.Logger
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(catalog repository.CatalogRepository, estimator *Estimator, sizes PageSizes, logger logger.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		catalog:   catalog,
		estimator: estimator,
		sizes:     sizes,
		logger:    logger,
	}
}

// Hotels lists hotels matching a text query over name, city and location and a price range
func (c *CatalogUsecase) Hotels(ctx context.Context, q HotelQuery) (Listing[entity.Hotel], error) {
	hotels, err := c.catalog.ListHotels(ctx)
	if err != nil {
		return Listing[entity.Hotel]{}, err
	}
	criteria := listing.Criteria{Query: q.Query, MinPrice: q.MinPrice, MaxPrice: q.MaxPrice}
	filtered := listing.Filter(hotels, criteria, hotelAccessors)
	return newListing(filtered, criteria, q.Page, q.FilterKey, c.sizes.Hotels), nil
}

// Hotel returns one hotel with its opinions
func (c *CatalogUsecase) Hotel(ctx context.Context, id string) (*entity.Hotel, error) {
	return c.catalog.GetHotel(ctx, id)
}

// StayQuote prices a stay at a hotel
func (c *CatalogUsecase) StayQuote(ctx context.Context, id string, checkIn, checkOut time.Time) (*entity.StayQuote, error) {
	if utils.NightsBetween(checkIn, checkOut) <= 0 {
		return nil, apperror.Validation("hotels.quote", "check-out must be after check-in")
	}
	hotel, err := c.catalog.GetHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	nights, total := hotel.StayTotal(checkIn, checkOut)
	return &entity.StayQuote{
		HotelID:      hotel.ID,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Nights:       nights,
		NightlyPrice: hotel.Price,
		Total:        total,
		Display:      utils.FormatCOP(total),
	}, nil
}

// AdminHotels is the back-office hotel search over city or region
func (c *CatalogUsecase) AdminHotels(ctx context.Context, query string, page int) (Listing[entity.Hotel], error) {
	hotels, err := c.catalog.ListHotels(ctx)
	if err != nil {
		return Listing[entity.Hotel]{}, err
	}
	criteria := listing.Criteria{Query: query}
	filtered := listing.Filter(hotels, criteria, adminHotelAccessors)
	return newListing(filtered, criteria, page, "", c.sizes.AdminHotels), nil
}

// Buses lists bus departures with estimates filled in
func (c *CatalogUsecase) Buses(ctx context.Context, q BusQuery) (Listing[entity.Bus], error) {
	var (
		buses []entity.Bus
		err   error
	)
	if q.Type != "" {
		buses, err = c.catalog.BusesByType(ctx, q.Type)
	} else {
		buses, err = c.catalog.ListBuses(ctx)
	}
	if err != nil {
		return Listing[entity.Bus]{}, err
	}

	for i := range buses {
		c.estimator.BackfillBus(ctx, &buses[i])
	}

	criteria := listing.Criteria{
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
		Bands:       q.Bands,
		Origin:      q.Origin,
		Destination: q.Destination,
		Date:        q.Date,
		Scope:       map[string]string{"type": q.Type},
	}
	filtered := listing.Filter(buses, criteria, busAccessors)
	return newListing(filtered, criteria, q.Page, q.FilterKey, c.sizes.Buses), nil
}

// Bus returns one departure with estimates filled in
func (c *CatalogUsecase) Bus(ctx context.Context, id string) (*entity.Bus, error) {
	bus, err := c.catalog.GetBus(ctx, id)
	if err != nil {
		return nil, err
	}
	c.estimator.BackfillBus(ctx, bus)
	return bus, nil
}

// Flights runs the backend search, then filters and pages the offers here
func (c *CatalogUsecase) Flights(ctx context.Context, q FlightQuery) (Listing[entity.Flight], error) {
	search := entity.FlightSearch{
		TripType:      q.TripType,
		Origin:        q.Origin,
		Destination:   q.Destination,
		DepartureDate: q.Date,
		Limit:         flightFetchLimit,
	}

	var flights []entity.Flight
	for page := 1; page <= flightFetchMaxPages; page++ {
		search.Page = page
		results, err := c.catalog.SearchFlights(ctx, search)
		if err != nil {
			return Listing[entity.Flight]{}, err
		}
		flights = append(flights, results.Flights...)
		if page >= results.TotalPages {
			break
		}
	}

	for i := range flights {
		c.estimator.BackfillFlight(ctx, &flights[i])
	}

	criteria := listing.Criteria{
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Bands:    q.Bands,
		Scope: map[string]string{
			"trip":        string(q.TripType),
			"origin":      q.Origin,
			"destination": q.Destination,
			"date":        q.Date,
		},
	}
	filtered := listing.Filter(flights, criteria, flightAccessors)
	return newListing(filtered, criteria, q.Page, q.FilterKey, c.sizes.Flights), nil
}
