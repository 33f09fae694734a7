package utils

import (
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	LOCAL_ISO_SECONDS,
	LOCAL_ISO_LAYOUT,
	DATETIME_LAYOUT,
	"2006-01-02 15:04:05",
	DATE_LAYOUT,
}

// ParseTimestamp accepts the timestamp shapes the Wayra API and the pages send.
// Timestamps without a zone are read as UTC.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseHour extracts the hour of day from a full timestamp or a bare "15:04" clock.
// Anything unparseable yields hour 0.
func ParseHour(value string) int {
	if t, ok := ParseTimestamp(value); ok {
		return t.Hour()
	}
	if t, err := time.Parse(CLOCK_LAYOUT, strings.TrimSpace(value)); err == nil {
		return t.Hour()
	}
	return 0
}

// ParseDate reads a YYYY-MM-DD calendar day
func ParseDate(value string) (time.Time, bool) {
	t, err := time.Parse(DATE_LAYOUT, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SplitList splits a comma separated query value, dropping blanks
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
