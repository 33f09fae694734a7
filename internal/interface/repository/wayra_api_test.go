package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/metrics"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) (*WayraAPI, *metrics.Metrics) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	m := metrics.NewMetrics("wayra_test", prometheus.NewRegistry())
	return NewWayraAPI(server.URL+"/api/", 2*time.Second, logger.NewNop(), m), m
}

func sessionToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  7,
		"exp": time.Now().Add(ttl).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return raw
}

func TestWayraCatalog_ListHotels(t *testing.T) {
	api, m := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/hotels", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[
			{"_id":"h1","nombre":"Hotel Caribe","ciudad":"Cartagena","precio":250000,"rating":4.5,"imagenes":["a.jpg"],"opiniones":["o1"]},
			{"_id":"h2","nombre":"Casa Medina","ciudad":"Bogota","precio":180000,"rating":4}
		]`))
	})

	hotels, err := NewWayraCatalogRepository(api).ListHotels(context.Background())
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Hotel Caribe", hotels[0].Name)
	assert.Equal(t, 250000.0, hotels[0].Price)
	assert.Empty(t, hotels[0].Opinions)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("hotels", "200")))
}

func TestWayraCatalog_GetHotelWithOpinions(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/hotels/h1", r.URL.Path)
		w.Write([]byte(`{"hotel":{"_id":"h1","nombre":"Hotel Caribe","precio":250000,"rating":5,
			"opiniones":[{"_id":"o1","usuario_id":"3","tipo_opinion":"hotel","referencia_mongo_id":"h1","calificacion":5,"comentario":"Excelente"}]}}`))
	})

	hotel, err := NewWayraCatalogRepository(api).GetHotel(context.Background(), "h1")
	require.NoError(t, err)
	require.Len(t, hotel.Opinions, 1)
	assert.Equal(t, int64(3), hotel.Opinions[0].UserID)
	assert.Equal(t, "Excelente", hotel.Opinions[0].Comment)
}

func TestWayraCatalog_BusLookups(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.EscapedPath())
		mu.Unlock()
		w.Write([]byte(`{"buses":[{"_id":"b1","origen":"Terminal de Bucaramanga","destino":"Terminal del Salitre",
			"fecha_salida":"2025-06-01T08:00:00Z","fecha_llegada":"2025-06-01T17:30:00Z","precio":"95000","compania":"Copetran"}]}`))
	})
	repo := NewWayraCatalogRepository(api)
	ctx := context.Background()

	buses, err := repo.BusesByOrigin(ctx, "Terminal de Bucaramanga")
	require.NoError(t, err)
	require.Len(t, buses, 1)
	assert.Equal(t, 95000.0, buses[0].Price)
	assert.Equal(t, 570, buses[0].DurationMinutes)

	_, err = repo.BusesByPriceRange(ctx, 80000, 100000)
	require.NoError(t, err)
	_, err = repo.BusesByDepartureDate(ctx, "2025-06-01")
	require.NoError(t, err)
	_, err = repo.BusesByType(ctx, "Premium")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"/api/buses/origin/Terminal%20de%20Bucaramanga",
		"/api/buses/price/80000/100000",
		"/api/buses/departure-time/2025-06-01",
		"/api/buses/type/Premium",
	}, paths)
}

func TestWayraCatalog_SearchFlightsFlattensOffers(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/flights/filtrados", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "ida", q.Get("tipoVuelo"))
		assert.Equal(t, "BOG", q.Get("origen"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "9", q.Get("limit"))
		w.Write([]byte(`{"resultados":[{"_id":"doc1","flights":[
			{"airline":"Avianca","departure_time":"2025-06-01 06:10","arrival_time":"2025-06-01 07:15","duration":65,"stops":0,"price":"$ 350.900","co2_emissions":"52 kg"},
			{"airline":"LATAM","departure_time":"2025-06-01 19:00","arrival_time":"2025-06-01 20:10","duration":"70","stops":"1","price":"410000"}
		],"search_parameters":{"departure":"BOG","destination":"MDE","departure_date":"2025-06-01"}}],"totalPages":4}`))
	})

	results, err := NewWayraCatalogRepository(api).SearchFlights(context.Background(), entity.FlightSearch{
		Origin: "BOG", Destination: "MDE", DepartureDate: "2025-06-01", Page: 2, Limit: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, results.TotalPages)
	require.Len(t, results.Flights, 2)
	assert.Equal(t, "doc1-0", results.Flights[0].ID)
	assert.Equal(t, 350900.0, results.Flights[0].Price)
	assert.Equal(t, 52.0, results.Flights[0].CO2Emissions)
	assert.Equal(t, 1, results.Flights[1].Stops)
	assert.Equal(t, "MDE", results.Flights[1].Destination)
}

func TestWayraAPI_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apperror.Kind
		wantMsg  string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"msg":"Token inválido"}`, wantKind: apperror.KindAuth, wantMsg: "Token inválido"},
		{name: "not found", status: http.StatusNotFound, body: ``, wantKind: apperror.KindNotFound, wantMsg: "hotels not found"},
		{name: "server error", status: http.StatusInternalServerError, body: `{"message":"boom"}`, wantKind: apperror.KindUpstream, wantMsg: "boom"},
		{name: "malformed body", status: http.StatusOK, body: `{"_id":`, wantKind: apperror.KindDecode},
		{name: "missing required field", status: http.StatusOK, body: `{"_id":"h1","precio":10}`, wantKind: apperror.KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := NewWayraCatalogRepository(api).GetHotel(context.Background(), "h1")
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, apperror.MessageOf(err))
			}
		})
	}
}

func TestWayraAPI_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	api := NewWayraAPI(server.URL, time.Second, logger.NewNop(), nil)

	_, err := NewWayraCatalogRepository(api).ListBuses(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNetwork)
}

func TestWayraAccount_Login(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@wayra.co", body["email"])
		_, hasName := body["nombre"]
		assert.False(t, hasName)
		w.Write([]byte(`{"token":"abc.def.ghi"}`))
	})

	token, err := NewWayraAccountRepository(api).Login(context.Background(), "ana@wayra.co", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestWayraAccount_LoginWithoutToken(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := NewWayraAccountRepository(api).Login(context.Background(), "ana@wayra.co", "secret")
	assert.ErrorIs(t, err, apperror.ErrDecode)
}

func TestWayraShopping_SendsBearerToken(t *testing.T) {
	token := sessionToken(t, time.Hour)
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/cart/7":
			w.Write([]byte(`[{"id":11,"usuario_id":7,"producto_id":"h1","tipo_producto":"hotel","cantidad":2,"precio_total":500000}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/cart":
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"usuario_id":7,"producto_id":"b1","tipo_producto":"bus","cantidad":1,"precio_total":95000}`, string(body))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":12,"usuario_id":7,"producto_id":"b1","tipo_producto":"bus","cantidad":1,"precio_total":95000}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/cart/11":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	repo := NewWayraShoppingRepository(api)
	ctx := context.Background()

	items, err := repo.GetCart(ctx, token, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "11", items[0].ID)
	assert.Equal(t, 250000.0, items[0].UnitPrice)

	added, err := repo.AddItem(ctx, token, entity.CartItem{UserID: 7, ProductID: "b1", ProductType: entity.ProductBus, Quantity: 1, TotalPrice: 95000})
	require.NoError(t, err)
	assert.Equal(t, "12", added.ID)

	require.NoError(t, repo.RemoveItem(ctx, token, "11"))
}

func TestWayraShopping_ExpiredTokenFailsFast(t *testing.T) {
	called := false
	api, m := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := NewWayraShoppingRepository(api).ListReservations(context.Background(), sessionToken(t, -time.Minute), 7)
	assert.ErrorIs(t, err, apperror.ErrAuth)
	assert.False(t, called)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("reservations", "expired")))
}

func TestWayraShopping_InvalidCartLineRejected(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"producto_id":"x","tipo_producto":"boat","cantidad":1,"precio_total":10}]`))
	})

	_, err := NewWayraShoppingRepository(api).GetCart(context.Background(), sessionToken(t, time.Hour), 7)
	assert.ErrorIs(t, err, apperror.ErrDecode)
}

func TestWayraShopping_CreateOpinionEchoesSubmission(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"msg":"Opinión creada"}`))
	})

	opinion := entity.Opinion{UserID: 7, Type: entity.ProductHotel, ReferenceID: "h1", Rating: 4, Comment: "Muy bien"}
	got, err := NewWayraShoppingRepository(api).CreateOpinion(context.Background(), sessionToken(t, time.Hour), opinion)
	require.NoError(t, err)
	assert.Equal(t, "Muy bien", got.Comment)
}

func TestFlexValue_Minutes(t *testing.T) {
	tests := map[string]int{
		"90":        90,
		"9:30":      570,
		"1 h 5 min": 65,
		"2h":        120,
		"45 min":    45,
	}
	for raw, want := range tests {
		got, ok := flexValue(raw).Minutes()
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := flexValue("").Minutes()
	assert.False(t, ok)
}
