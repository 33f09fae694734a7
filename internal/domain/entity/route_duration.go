package entity

// RouteDuration is the known travel time between two places
type RouteDuration struct {
	ID          uint
	Origin      string
	Destination string
	Minutes     int
}
