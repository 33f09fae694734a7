package repository

import (
	"context"
	"strings"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
)

// DefaultAirports are the airports and bus terminals the storefront sells routes for
var DefaultAirports = []entity.Airport{
	{Code: "BAQ", Name: "Aeropuerto Ernesto Cortissoz", CityCode: "BAQ", CityName: "Barranquilla"},
	{Code: "BGA", Name: "Aeropuerto Palonegro", CityCode: "BGA", CityName: "Bucaramanga"},
	{Code: "CLO", Name: "Aeropuerto Alfonso Bonilla Aragón", CityCode: "CLO", CityName: "Cali"},
	{Code: "MDE", Name: "Aeropuerto José María Córdova", CityCode: "MDE", CityName: "Medellin"},
	{Code: "CTG", Name: "Aeropuerto Rafael Núñez", CityCode: "CTG", CityName: "Cartagena"},
	{Code: "BOG", Name: "Aeropuerto El Dorado", CityCode: "BOG", CityName: "Bogota"},
	{Code: "PEI", Name: "Aeropuerto Matecaña", CityCode: "PEI", CityName: "Pereira"},
	{Code: "TBGA", Name: "Terminal de Bucaramanga", CityCode: "BGA", CityName: "Bucaramanga"},
	{Code: "TSAL", Name: "Terminal del Salitre", CityCode: "BOG", CityName: "Bogota"},
}

// DefaultRouteDurations are known travel times in minutes. Flights are keyed by
// city name, buses by terminal name.
var DefaultRouteDurations = []entity.RouteDuration{
	{Origin: "Bogota", Destination: "Medellin", Minutes: 60},
	{Origin: "Bogota", Destination: "Cartagena", Minutes: 90},
	{Origin: "Bogota", Destination: "Cali", Minutes: 65},
	{Origin: "Bogota", Destination: "Barranquilla", Minutes: 95},
	{Origin: "Bogota", Destination: "Bucaramanga", Minutes: 60},
	{Origin: "Bogota", Destination: "Pereira", Minutes: 55},
	{Origin: "Medellin", Destination: "Cartagena", Minutes: 75},
	{Origin: "Medellin", Destination: "Cali", Minutes: 60},
	{Origin: "Medellin", Destination: "Barranquilla", Minutes: 80},
	{Origin: "Cali", Destination: "Cartagena", Minutes: 95},
	{Origin: "Cali", Destination: "Barranquilla", Minutes: 100},
	{Origin: "Pereira", Destination: "Cartagena", Minutes: 85},
	{Origin: "Terminal de Bucaramanga", Destination: "Terminal del Salitre", Minutes: 540},
}

// StaticAirportRepository serves airports from memory
type StaticAirportRepository struct {
	byKey map[string]entity.Airport
}

// NewStaticAirportRepository indexes airports by code and by name
func NewStaticAirportRepository(airports []entity.Airport) repository.AirportRepository {
	byKey := make(map[string]entity.Airport, len(airports)*2)
	for _, a := range airports {
		byKey[strings.ToLower(a.Code)] = a
		if a.Name != "" {
			byKey[strings.ToLower(a.Name)] = a
		}
	}
	return &StaticAirportRepository{byKey: byKey}
}

// GetByCode finds an airport by code or name, case-insensitively
func (r *StaticAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	a, ok := r.byKey[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

// StaticRouteDurationRepository serves route durations from memory
type StaticRouteDurationRepository struct {
	routes map[[2]string]entity.RouteDuration
}

// NewStaticRouteDurationRepository indexes routes by their directed pair
func NewStaticRouteDurationRepository(routes []entity.RouteDuration) repository.RouteDurationRepository {
	index := make(map[[2]string]entity.RouteDuration, len(routes))
	for _, rd := range routes {
		index[routeKey(rd.Origin, rd.Destination)] = rd
	}
	return &StaticRouteDurationRepository{routes: index}
}

// Find looks up the directed pair origin → destination
func (r *StaticRouteDurationRepository) Find(ctx context.Context, origin, destination string) (*entity.RouteDuration, error) {
	rd, ok := r.routes[routeKey(origin, destination)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rd, nil
}

func routeKey(origin, destination string) [2]string {
	return [2]string{
		strings.ToLower(strings.TrimSpace(origin)),
		strings.ToLower(strings.TrimSpace(destination)),
	}
}
