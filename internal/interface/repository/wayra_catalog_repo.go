package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
)

// WayraCatalogRepository reads hotels, buses and flights from the Wayra API
type WayraCatalogRepository struct {
	api *WayraAPI
}

// NewWayraCatalogRepository creates a new catalog repository
func NewWayraCatalogRepository(api *WayraAPI) repository.CatalogRepository {
	return &WayraCatalogRepository{api: api}
}

// ListHotels fetches every hotel
func (r *WayraCatalogRepository) ListHotels(ctx context.Context) ([]entity.Hotel, error) {
	var raw json.RawMessage
	call := apiCall{op: "hotels.list", resource: "hotels", method: http.MethodGet, path: "/hotels"}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeList(r.api, call.op, raw, hotelDTO.toEntity, "hotels", "data")
}

// GetHotel fetches one hotel with its embedded opinions
func (r *WayraCatalogRepository) GetHotel(ctx context.Context, id string) (*entity.Hotel, error) {
	var raw json.RawMessage
	call := apiCall{op: "hotels.get", resource: "hotels", method: http.MethodGet, path: "/hotels/" + url.PathEscape(id)}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeOne(r.api, call.op, raw, hotelDTO.toEntity, "hotel", "data")
}

// ListBuses fetches every bus departure
func (r *WayraCatalogRepository) ListBuses(ctx context.Context) ([]entity.Bus, error) {
	return r.buses(ctx, "buses.list", "/buses")
}

// GetBus fetches one bus departure
func (r *WayraCatalogRepository) GetBus(ctx context.Context, id string) (*entity.Bus, error) {
	var raw json.RawMessage
	call := apiCall{op: "buses.get", resource: "buses", method: http.MethodGet, path: "/buses/" + url.PathEscape(id)}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeOne(r.api, call.op, raw, busDTO.toEntity, "bus", "data")
}

// BusesByOrigin lets the backend narrow buses by origin
func (r *WayraCatalogRepository) BusesByOrigin(ctx context.Context, origin string) ([]entity.Bus, error) {
	return r.buses(ctx, "buses.by_origin", "/buses/origin/"+url.PathEscape(origin))
}

// BusesByDestination lets the backend narrow buses by destination
func (r *WayraCatalogRepository) BusesByDestination(ctx context.Context, destination string) ([]entity.Bus, error) {
	return r.buses(ctx, "buses.by_destination", "/buses/destination/"+url.PathEscape(destination))
}

// BusesByPriceRange lets the backend narrow buses by price
func (r *WayraCatalogRepository) BusesByPriceRange(ctx context.Context, min, max float64) ([]entity.Bus, error) {
	return r.buses(ctx, "buses.by_price", "/buses/price/"+formatPrice(min)+"/"+formatPrice(max))
}

// BusesByDepartureDate lets the backend narrow buses by departure day (YYYY-MM-DD)
func (r *WayraCatalogRepository) BusesByDepartureDate(ctx context.Context, date string) ([]entity.Bus, error) {
	return r.buses(ctx, "buses.by_date", "/buses/departure-time/"+url.PathEscape(date))
}

// BusesByType lets the backend narrow buses by bus type
func (r *WayraCatalogRepository) BusesByType(ctx context.Context, busType string) ([]entity.Bus, error) {
	return r.buses(ctx, "buses.by_type", "/buses/type/"+url.PathEscape(busType))
}

func (r *WayraCatalogRepository) buses(ctx context.Context, op, path string) ([]entity.Bus, error) {
	var raw json.RawMessage
	call := apiCall{op: op, resource: "buses", method: http.MethodGet, path: path}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeList(r.api, op, raw, busDTO.toEntity, "buses", "data")
}

// SearchFlights runs the backend's filtered flight search
func (r *WayraCatalogRepository) SearchFlights(ctx context.Context, search entity.FlightSearch) (*entity.FlightResults, error) {
	tripType := search.TripType
	if tripType == "" {
		tripType = entity.TripOneWay
	}
	query := url.Values{}
	query.Set("tipoVuelo", string(tripType))
	query.Set("origen", search.Origin)
	query.Set("destino", search.Destination)
	query.Set("salida", search.DepartureDate)
	query.Set("page", strconv.Itoa(max(search.Page, 1)))
	query.Set("limit", strconv.Itoa(max(search.Limit, 1)))

	var raw json.RawMessage
	call := apiCall{op: "flights.search", resource: "flights", method: http.MethodGet, path: "/flights/filtrados", query: query}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeOne(r.api, call.op, raw, flightSearchDTO.toEntity)
}
