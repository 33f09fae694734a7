// Package listing holds the filter and paginator shared by every listing page.
package listing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

// Criteria is the set of active filters for one listing request.
// Zero values disable a dimension.
type Criteria struct {
	MinPrice    *float64
	MaxPrice    *float64
	Bands       []Band
	Query       string
	Origin      string
	Destination string
	Date        *time.Time
	// Scope holds upstream search parameters. They never filter locally but
	// still belong to the fingerprint.
	Scope map[string]string
}

// Accessors tells the filter how to read a record. A nil accessor turns the
// matching dimension off for that collection.
type Accessors[T any] struct {
	Price       func(T) float64
	Hour        func(T) int
	Text        func(T) []string
	Origin      func(T) string
	Destination func(T) string
	Date        func(T) (time.Time, bool)
}

// IsEmpty reports whether no dimension is active
func (c Criteria) IsEmpty() bool {
	return c.MinPrice == nil && c.MaxPrice == nil && len(c.Bands) == 0 &&
		strings.TrimSpace(c.Query) == "" && strings.TrimSpace(c.Origin) == "" &&
		strings.TrimSpace(c.Destination) == "" && c.Date == nil && scopeKey(c.Scope) == ""
}

// Fingerprint is a stable key for the active criteria. Two requests with the
// same fingerprint are looking at the same filtered collection.
func (c Criteria) Fingerprint() string {
	bands := make([]string, 0, len(c.Bands))
	for b := range bandSet(c.Bands) {
		bands = append(bands, string(b))
	}
	sort.Strings(bands)

	date := ""
	if c.Date != nil {
		date = c.Date.Format(utils.DATE_LAYOUT)
	}

	key := fmt.Sprintf("p=%s-%s|b=%s|q=%s|from=%s|to=%s|on=%s",
		formatBound(c.MinPrice),
		formatBound(c.MaxPrice),
		strings.Join(bands, ","),
		normalize(c.Query),
		normalize(c.Origin),
		normalize(c.Destination),
		date,
	)
	if scope := scopeKey(c.Scope); scope != "" {
		key += "|" + scope
	}
	return key
}

// scopeKey renders the non-blank scope entries in key order
func scopeKey(scope map[string]string) string {
	parts := make([]string, 0, len(scope))
	for k, v := range scope {
		if v = normalize(v); v != "" {
			parts = append(parts, normalize(k)+"="+v)
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Filter returns the records matching every active dimension, keeping input order
func Filter[T any](items []T, c Criteria, acc Accessors[T]) []T {
	filtered := make([]T, 0, len(items))
	bands := bandSet(c.Bands)
	query := normalize(c.Query)
	origin := normalize(c.Origin)
	destination := normalize(c.Destination)

	for _, item := range items {
		if !matchPrice(item, c, acc) {
			continue
		}
		if !matchBands(item, bands, acc) {
			continue
		}
		if !matchText(item, query, acc) {
			continue
		}
		if !matchSubstring(item, origin, acc.Origin) {
			continue
		}
		if !matchSubstring(item, destination, acc.Destination) {
			continue
		}
		if !matchDate(item, c.Date, acc) {
			continue
		}
		filtered = append(filtered, item)
	}

	return filtered
}

func matchPrice[T any](item T, c Criteria, acc Accessors[T]) bool {
	if acc.Price == nil {
		return true
	}
	price := acc.Price(item)
	if c.MinPrice != nil && price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && price > *c.MaxPrice {
		return false
	}
	return true
}

func matchBands[T any](item T, bands map[Band]struct{}, acc Accessors[T]) bool {
	if len(bands) == 0 || acc.Hour == nil {
		return true
	}
	_, ok := bands[ClassifyHour(acc.Hour(item))]
	return ok
}

func matchText[T any](item T, query string, acc Accessors[T]) bool {
	if query == "" || acc.Text == nil {
		return true
	}
	for _, field := range acc.Text(item) {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func matchSubstring[T any](item T, query string, get func(T) string) bool {
	if query == "" || get == nil {
		return true
	}
	return strings.Contains(strings.ToLower(get(item)), query)
}

func matchDate[T any](item T, date *time.Time, acc Accessors[T]) bool {
	if date == nil || acc.Date == nil {
		return true
	}
	value, ok := acc.Date(item)
	if !ok {
		return false
	}
	return utils.SameDay(value, *date)
}
