package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trip struct {
	ID          int
	Price       float64
	Departure   string
	Origin      string
	Destination string
	City        string
	Location    string
}

var tripAccessors = Accessors[trip]{
	Price:       func(t trip) float64 { return t.Price },
	Hour:        func(t trip) int { return HourOf(t.Departure) },
	Text:        func(t trip) []string { return []string{t.City, t.Location} },
	Origin:      func(t trip) string { return t.Origin },
	Destination: func(t trip) string { return t.Destination },
	Date: func(t trip) (time.Time, bool) {
		d, err := time.Parse(time.RFC3339, t.Departure)
		return d, err == nil
	},
}

func sampleTrips() []trip {
	return []trip{
		{ID: 1, Price: 91000, Departure: "2025-06-01T20:30:00Z", Origin: "Terminal de Bucaramanga", Destination: "Terminal del Salitre", City: "Bogota", Location: "Cundinamarca"},
		{ID: 2, Price: 89000, Departure: "2025-06-01T06:00:00Z", Origin: "Terminal de Bucaramanga", Destination: "Terminal del Salitre", City: "Bogota", Location: "Cundinamarca"},
		{ID: 3, Price: 95000, Departure: "2025-06-02T13:30:00Z", Origin: "Terminal de Bucaramanga", Destination: "Terminal del Norte", City: "Medellin", Location: "Antioquia"},
		{ID: 4, Price: 88000, Departure: "2025-06-02T10:30:00Z", Origin: "Terminal de Cali", Destination: "Terminal del Salitre", City: "Cartagena", Location: "Bolivar"},
		{ID: 5, Price: 70000, Departure: "garbage", Origin: "Terminal de Cali", Destination: "Terminal del Norte", City: "Sopo", Location: "Cundinamarca"},
	}
}

func ptr(v float64) *float64 { return &v }

func ids(items []trip) []int {
	out := make([]int, 0, len(items))
	for _, t := range items {
		out = append(out, t.ID)
	}
	return out
}

func TestClassifyHour(t *testing.T) {
	tests := []struct {
		hour int
		want Band
	}{
		{0, BandEarly},
		{5, BandEarly},
		{6, BandMorning},
		{11, BandMorning},
		{12, BandAfternoon},
		{17, BandAfternoon},
		{18, BandNight},
		{23, BandNight},
		{-1, BandEarly},
		{24, BandEarly},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyHour(tt.hour), "hour %d", tt.hour)
	}
}

func TestParseBands(t *testing.T) {
	bands := ParseBands([]string{"Temprano", "mañana", "night", "NOCHE", "brunch"})
	assert.Equal(t, []Band{BandEarly, BandMorning, BandNight}, bands)
	assert.Nil(t, ParseBands(nil))
}

func TestFilter_PriceRangeInclusive(t *testing.T) {
	items := []trip{{ID: 1, Price: 85000}, {ID: 2, Price: 89000}, {ID: 3, Price: 95000}}

	got := Filter(items, Criteria{MinPrice: ptr(85000), MaxPrice: ptr(90000)}, Accessors[trip]{
		Price: func(t trip) float64 { return t.Price },
	})

	assert.Equal(t, []int{1, 2}, ids(got))
}

func TestFilter_Dimensions(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		criteria Criteria
		want     []int
	}{
		{name: "empty criteria keeps everything in order", criteria: Criteria{}, want: []int{1, 2, 3, 4, 5}},
		{name: "bands are OR within the set", criteria: Criteria{Bands: []Band{BandMorning, BandNight}}, want: []int{1, 2, 4}},
		{name: "malformed timestamp defaults into early", criteria: Criteria{Bands: []Band{BandEarly}}, want: []int{5}},
		{name: "query matches any text field case-insensitively", criteria: Criteria{Query: "cundi"}, want: []int{1, 2, 5}},
		{name: "origin substring", criteria: Criteria{Origin: "CALI"}, want: []int{4, 5}},
		{name: "destination substring", criteria: Criteria{Destination: "norte"}, want: []int{3, 5}},
		{name: "calendar day ignores time of day", criteria: Criteria{Date: &day}, want: []int{3, 4}},
		{name: "dimensions combine with AND", criteria: Criteria{MaxPrice: ptr(90000), Bands: []Band{BandMorning}, Destination: "salitre"}, want: []int{2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sampleTrips(), tt.criteria, tripAccessors)))
		})
	}
}

func TestFilter_NilAccessorDisablesDimension(t *testing.T) {
	got := Filter(sampleTrips(), Criteria{Query: "nothing matches this"}, Accessors[trip]{})
	assert.Len(t, got, 5)
}

func TestFilter_Idempotent(t *testing.T) {
	c := Criteria{MinPrice: ptr(85000), Bands: []Band{BandMorning, BandAfternoon}, Origin: "bucaramanga"}

	once := Filter(sampleTrips(), c, tripAccessors)
	twice := Filter(once, c, tripAccessors)

	assert.Equal(t, once, twice)
}

func TestFilter_Monotonic(t *testing.T) {
	steps := []Criteria{
		{},
		{MaxPrice: ptr(95000)},
		{MaxPrice: ptr(95000), Bands: []Band{BandMorning, BandAfternoon, BandNight}},
		{MaxPrice: ptr(95000), Bands: []Band{BandMorning, BandAfternoon, BandNight}, Origin: "bucaramanga"},
		{MaxPrice: ptr(95000), Bands: []Band{BandMorning, BandAfternoon, BandNight}, Origin: "bucaramanga", Query: "bogota"},
	}

	prev := len(sampleTrips())
	for i, c := range steps {
		n := len(Filter(sampleTrips(), c, tripAccessors))
		assert.LessOrEqual(t, n, prev, "step %d grew the result", i)
		prev = n
	}
}

func TestFingerprint(t *testing.T) {
	a := Criteria{Bands: []Band{BandNight, BandEarly}, Query: " Bogota "}
	b := Criteria{Bands: []Band{BandEarly, BandNight}, Query: "bogota"}
	c := Criteria{Bands: []Band{BandEarly}, Query: "bogota"}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.True(t, Criteria{}.IsEmpty())
	assert.False(t, c.IsEmpty())
}

func TestFingerprint_Scope(t *testing.T) {
	a := Criteria{Scope: map[string]string{"origin": "BOG", "destination": "MDE"}}
	b := Criteria{Scope: map[string]string{"destination": " mde ", "origin": "bog", "date": ""}}
	c := Criteria{Scope: map[string]string{"origin": "CLO", "destination": "CTG"}}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Equal(t, Criteria{}.Fingerprint(), Criteria{Scope: map[string]string{"type": ""}}.Fingerprint())
	assert.False(t, a.IsEmpty())
	assert.True(t, Criteria{Scope: map[string]string{"type": " "}}.IsEmpty())
	assert.Equal(t, 1, ResetPage(3, a.Fingerprint(), c))
}

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate_Scenario(t *testing.T) {
	page := Paginate(numbers(10), 2, 6)

	assert.Equal(t, []int{7, 8, 9, 10}, page.Items)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.TotalItems)
}

func TestPaginate_Coverage(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6, 7, 10, 23} {
		for size := 1; size <= 8; size++ {
			items := numbers(n)
			total := TotalPages(n, size)

			var union []int
			for p := 1; p <= total; p++ {
				union = append(union, Paginate(items, p, size).Items...)
			}
			if n == 0 {
				assert.Empty(t, union)
				continue
			}
			require.Equal(t, items, union, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginate_Clamping(t *testing.T) {
	items := numbers(10)

	first := Paginate(items, 1, 6)
	last := Paginate(items, 2, 6)

	assert.Equal(t, first.Items, Paginate(items, 0, 6).Items)
	assert.Equal(t, first.Items, Paginate(items, -3, 6).Items)
	assert.Equal(t, last.Items, Paginate(items, 99, 6).Items)
	assert.Equal(t, 2, Paginate(items, 99, 6).Page)
}

func TestPaginate_EmptyCollection(t *testing.T) {
	page := Paginate([]int{}, 3, 6)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, []int{1}, page.Window)
}

func TestPaginate_InvalidSizeFallsBack(t *testing.T) {
	page := Paginate(numbers(10), 1, 0)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, DefaultPageSize)
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{name: "fits entirely", current: 2, total: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "clamped at start", current: 2, total: 20, want: []int{1, 2, 3, 4, 5, 6, 7}},
		{name: "centered", current: 10, total: 20, want: []int{7, 8, 9, 10, 11, 12, 13}},
		{name: "clamped at end", current: 19, total: 20, want: []int{14, 15, 16, 17, 18, 19, 20}},
		{name: "current out of range", current: 40, total: 20, want: []int{14, 15, 16, 17, 18, 19, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.total, VisibleWindow))
		})
	}
}

func TestResetPage(t *testing.T) {
	c := Criteria{Query: "cali"}

	assert.Equal(t, 4, ResetPage(4, "", c))
	assert.Equal(t, 4, ResetPage(4, c.Fingerprint(), c))
	assert.Equal(t, 1, ResetPage(4, Criteria{Query: "bogota"}.Fingerprint(), c))
}
