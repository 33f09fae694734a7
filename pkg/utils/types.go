package utils

// Layouts accepted for timestamps coming from the Wayra API and from query strings
const (
	DATE_LAYOUT       = "2006-01-02"
	DATETIME_LAYOUT   = "2006-01-02 15:04"
	LOCAL_ISO_LAYOUT  = "2006-01-02T15:04"
	LOCAL_ISO_SECONDS = "2006-01-02T15:04:05"
	CLOCK_LAYOUT      = "15:04"
)

// Randomizer is the source of pseudo-random values used by estimators
type Randomizer interface {
	Intn(n int) int
	Float64() float64
}
