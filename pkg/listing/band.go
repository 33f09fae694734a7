package listing

import (
	"strings"

	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

// Band is a named bucket of departure hours
type Band string

const (
	BandEarly     Band = "early"
	BandMorning   Band = "morning"
	BandAfternoon Band = "afternoon"
	BandNight     Band = "night"
)

var bandAliases = map[string]Band{
	"early":     BandEarly,
	"temprano":  BandEarly,
	"morning":   BandMorning,
	"mañana":    BandMorning,
	"manana":    BandMorning,
	"afternoon": BandAfternoon,
	"tarde":     BandAfternoon,
	"night":     BandNight,
	"noche":     BandNight,
}

// ClassifyHour buckets an hour of day: Early [0,6), Morning [6,12),
// Afternoon [12,18), Night [18,24). Out of range hours count as Early.
func ClassifyHour(hour int) Band {
	switch {
	case hour >= 6 && hour < 12:
		return BandMorning
	case hour >= 12 && hour < 18:
		return BandAfternoon
	case hour >= 18 && hour < 24:
		return BandNight
	default:
		return BandEarly
	}
}

// HourOf extracts the hour from a timestamp; malformed input yields 0
func HourOf(timestamp string) int {
	return utils.ParseHour(timestamp)
}

// ParseBands maps English or Spanish band names to bands, ignoring unknown names
// and duplicates
func ParseBands(names []string) []Band {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[Band]struct{}, len(names))
	bands := make([]Band, 0, len(names))
	for _, name := range names {
		band, ok := bandAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, dup := seen[band]; dup {
			continue
		}
		seen[band] = struct{}{}
		bands = append(bands, band)
	}
	return bands
}

func bandSet(bands []Band) map[Band]struct{} {
	if len(bands) == 0 {
		return nil
	}
	set := make(map[Band]struct{}, len(bands))
	for _, b := range bands {
		set[b] = struct{}{}
	}
	return set
}
