package entity

import "time"

// Bus is an intercity bus departure
type Bus struct {
	ID                string    `json:"id"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	DepartureAt       time.Time `json:"departureAt"`
	ArrivalAt         time.Time `json:"arrivalAt"`
	Price             float64   `json:"price"`
	Company           string    `json:"company"`
	DurationMinutes   int       `json:"durationMinutes"`
	BusType           string    `json:"busType"`
	OpinionIDs        []string  `json:"opinionIds,omitempty"`
	DurationEstimated bool      `json:"durationEstimated"`
	PriceEstimated    bool      `json:"priceEstimated"`
}

// BusLookup narrows a bus listing on the backend side. At most one field is used.
type BusLookup struct {
	Origin        string
	Destination   string
	Type          string
	DepartureDate string
	MinPrice      *float64
	MaxPrice      *float64
}
