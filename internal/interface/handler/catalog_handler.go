package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/usecase"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/listing"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

// GetHotels handles GET /api/hotels
func (h *Handler) GetHotels(w http.ResponseWriter, r *http.Request) {
	min, max, err := priceRange(r, "hotels.list")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	q := r.URL.Query()
	result, err := h.catalog.Hotels(r.Context(), usecase.HotelQuery{
		Query:     q.Get("q"),
		MinPrice:  min,
		MaxPrice:  max,
		Page:      queryPage(r),
		FilterKey: q.Get("filterKey"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetHotel handles GET /api/hotels/{id}
func (h *Handler) GetHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.catalog.Hotel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, hotel)
}

// GetStayQuote handles GET /api/hotels/{id}/quote
func (h *Handler) GetStayQuote(w http.ResponseWriter, r *http.Request) {
	checkIn, err := queryDate(r, "hotels.quote", "checkIn", true)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	checkOut, err := queryDate(r, "hotels.quote", "checkOut", true)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	quote, err := h.catalog.StayQuote(r.Context(), mux.Vars(r)["id"], *checkIn, *checkOut)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// GetAdminHotels handles GET /api/admin/hotels
func (h *Handler) GetAdminHotels(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.AdminHotels(r.Context(), r.URL.Query().Get("q"), queryPage(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetBuses handles GET /api/buses
func (h *Handler) GetBuses(w http.ResponseWriter, r *http.Request) {
	min, max, err := priceRange(r, "buses.list")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	date, err := queryDate(r, "buses.list", "date", false)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	q := r.URL.Query()
	result, err := h.catalog.Buses(r.Context(), usecase.BusQuery{
		MinPrice:    min,
		MaxPrice:    max,
		Bands:       listing.ParseBands(utils.SplitList(q.Get("bands"))),
		Origin:      q.Get("origin"),
		Destination: q.Get("destination"),
		Date:        date,
		Type:        strings.TrimSpace(q.Get("type")),
		Page:        queryPage(r),
		FilterKey:   q.Get("filterKey"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetBus handles GET /api/buses/{id}
func (h *Handler) GetBus(w http.ResponseWriter, r *http.Request) {
	bus, err := h.catalog.Bus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, bus)
}

// GetFlights handles GET /api/flights
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	min, max, err := priceRange(r, "flights.search")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	date, err := queryDate(r, "flights.search", "date", false)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	departure := ""
	if date != nil {
		departure = date.Format(utils.DATE_LAYOUT)
	}

	q := r.URL.Query()
	tripType := entity.TripType(q.Get("tripType"))
	if tripType != "" && tripType != entity.TripOneWay && tripType != entity.TripRound {
		h.respondError(w, r, apperror.Validation("flights.search", "tripType must be ida or ida_vuelta"))
		return
	}
	result, err := h.catalog.Flights(r.Context(), usecase.FlightQuery{
		TripType:    tripType,
		Origin:      q.Get("origin"),
		Destination: q.Get("destination"),
		Date:        departure,
		Bands:       listing.ParseBands(utils.SplitList(q.Get("bands"))),
		MinPrice:    min,
		MaxPrice:    max,
		Page:        queryPage(r),
		FilterKey:   q.Get("filterKey"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
