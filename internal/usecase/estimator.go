package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/metrics"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

// Bounds of the placeholder values handed out for unknown routes and unpriced buses
const (
	MinEstimatedMinutes = 60
	MaxEstimatedMinutes = 600
	MinBusPrice         = 80000
	MaxBusPrice         = 120000
)

// Estimate sources, also used as metric labels
const (
	SourceTable  = "table"
	SourceRandom = "random"
)

// Estimator fills in durations and prices the backend does not provide
type Estimator struct {
	routes   repository.RouteDurationRepository
	airports repository.AirportRepository
	rand     utils.Randomizer
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewEstimator creates a new estimator
func NewEstimator(
	routes repository.RouteDurationRepository,
	airports repository.AirportRepository,
	rand utils.Randomizer,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *Estimator {
	return &Estimator{
		routes:   routes,
		airports: airports,
		rand:     rand,
		metrics:  metrics,
		logger:   logger,
	}
}

// ResolveCity maps an airport or terminal code (or name) to its city.
// Unknown codes come back unchanged.
func (e *Estimator) ResolveCity(ctx context.Context, code string) string {
	code = strings.TrimSpace(code)
	if code == "" || e.airports == nil {
		return code
	}
	airport, err := e.airports.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			e.logger.Warn("Airport lookup failed", "code", code, "error", err)
		}
		return code
	}
	if airport.CityName == "" {
		return code
	}
	return airport.CityName
}

// EstimateDuration returns the travel time in minutes for a pair of places and
// where it came from. The route table is tried with the names as given, then
// with their cities, each pair in both directions; a pseudo-random duration
// covers pairs it does not know.
func (e *Estimator) EstimateDuration(ctx context.Context, origin, destination string) (int, string) {
	if e.routes != nil {
		from := e.ResolveCity(ctx, origin)
		to := e.ResolveCity(ctx, destination)
		candidates := [][2]string{{origin, destination}, {destination, origin}}
		if from != origin || to != destination {
			candidates = append(candidates, [2]string{from, to}, [2]string{to, from})
		}

		for _, pair := range candidates {
			route, err := e.routes.Find(ctx, pair[0], pair[1])
			if err == nil && route.Minutes > 0 {
				return route.Minutes, SourceTable
			}
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				e.logger.Warn("Route lookup failed", "origin", pair[0], "destination", pair[1], "error", err)
			}
		}
	}

	return utils.IntBetween(e.rand, MinEstimatedMinutes, MaxEstimatedMinutes), SourceRandom
}

// EstimateBusPrice returns a placeholder fare in COP, rounded to the thousand
func (e *Estimator) EstimateBusPrice() float64 {
	return float64(utils.IntBetween(e.rand, MinBusPrice/1000, MaxBusPrice/1000) * 1000)
}

// BackfillBus completes a bus with estimated duration and price when the
// backend left them out. Provided values are never touched.
func (e *Estimator) BackfillBus(ctx context.Context, bus *entity.Bus) {
	if bus.DurationMinutes <= 0 {
		minutes, source := e.EstimateDuration(ctx, bus.Origin, bus.Destination)
		bus.DurationMinutes = minutes
		bus.DurationEstimated = true
		e.count("bus_duration", source)
	}
	if bus.Price <= 0 {
		bus.Price = e.EstimateBusPrice()
		bus.PriceEstimated = true
		e.count("bus_price", SourceRandom)
	}
}

// BackfillFlight resolves city names and estimates a missing duration
func (e *Estimator) BackfillFlight(ctx context.Context, flight *entity.Flight) {
	flight.OriginCity = e.ResolveCity(ctx, flight.Origin)
	flight.DestinationCity = e.ResolveCity(ctx, flight.Destination)
	if flight.DurationMinutes <= 0 {
		minutes, source := e.EstimateDuration(ctx, flight.Origin, flight.Destination)
		flight.DurationMinutes = minutes
		flight.DurationEstimated = true
		e.count("flight_duration", source)
	}
}

func (e *Estimator) count(field, source string) {
	if e.metrics != nil {
		e.metrics.EstimatedFields.WithLabelValues(field, source).Inc()
	}
}
