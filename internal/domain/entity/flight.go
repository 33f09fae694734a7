package entity

// TripType is one way or round trip
type TripType string

const (
	TripOneWay TripType = "ida"
	TripRound  TripType = "ida_vuelta"
)

// Flight is one offer flattened out of a filtered flight search result
type Flight struct {
	ID                 string  `json:"id"`
	Airline            string  `json:"airline"`
	DepartureTime      string  `json:"departureTime"`
	ArrivalTime        string  `json:"arrivalTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	Stops              int     `json:"stops"`
	Price              float64 `json:"price"`
	CO2Emissions       float64 `json:"co2Emissions"`
	EmissionsVariation string  `json:"emissionsVariation,omitempty"`
	Origin             string  `json:"origin"`
	Destination        string  `json:"destination"`
	OriginCity         string  `json:"originCity"`
	DestinationCity    string  `json:"destinationCity"`
	DepartureDate      string  `json:"departureDate"`
	DurationEstimated  bool    `json:"durationEstimated"`
}

// FlightSearch is the backend-side flight search
type FlightSearch struct {
	TripType      TripType
	Origin        string
	Destination   string
	DepartureDate string
	Page          int
	Limit         int
}

// FlightResults is what the backend returns for one search page
type FlightResults struct {
	Flights    []Flight
	TotalPages int
}
