package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository/mocks"
	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/oauth"
	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/websocket"
	"github.com/shesho2101/ProyectoIntegrador2/internal/interface/handler"
	"github.com/shesho2101/ProyectoIntegrador2/internal/interface/repository"
	"github.com/shesho2101/ProyectoIntegrador2/internal/usecase"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/metrics"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

const (
	clientA = "6f1c2a9e-3b7d-4c51-9a0e-2d8f4b6c1e70"
	clientB = "0b4e8d21-9c3f-4a6e-8f17-5d2c9e0a7b34"
)

type testServer struct {
	handler  http.Handler
	catalog  *mocks.MockCatalogRepository
	accounts *mocks.MockAccountRepository
	shop     *mocks.MockShoppingRepository
	states   *mocks.MemoryClientStateRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("wayra_test", reg)
	log := logger.NewNop()

	s := &testServer{
		catalog:  mocks.NewMockCatalogRepository(t),
		accounts: mocks.NewMockAccountRepository(t),
		shop:     mocks.NewMockShoppingRepository(t),
		states:   mocks.NewMemoryClientStateRepository(),
	}

	hub := websocket.NewHub(websocket.AllowOrigins([]string{"*"}), m, log)
	watcher := usecase.NewSessionWatcher(s.states, oauth.DecodeClaims, hub, usecase.NewRealClock(), m, log)
	t.Cleanup(watcher.Stop)

	estimator := usecase.NewEstimator(
		repository.NewStaticRouteDurationRepository(repository.DefaultRouteDurations),
		repository.NewStaticAirportRepository(repository.DefaultAirports),
		utils.NewSafeRand(), m, log)
	prefs := usecase.NewPreferences(s.states, usecase.Defaults{Theme: entity.ThemeLight}, log)
	auth := usecase.NewAuthUsecase(s.accounts, s.states, prefs, watcher, oauth.DecodeClaims, log)

	h := handler.NewHandler(handler.Usecases{
		Catalog:      usecase.NewCatalogUsecase(s.catalog, estimator, usecase.DefaultPageSizes, log),
		Auth:         auth,
		Preferences:  prefs,
		Cart:         usecase.NewCartUsecase(s.shop, auth, log),
		Favorites:    usecase.NewFavoriteUsecase(s.shop, auth, log),
		Opinions:     usecase.NewOpinionUsecase(s.shop, auth, log),
		Reservations: usecase.NewReservationUsecase(s.shop, auth, usecase.DefaultPageSizes.Reservations, log),
	}, m, log)

	s.handler = SetupRouter(h, hub, Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		ClientCookie:   "wayra_client",
		Gatherer:       reg,
		Metrics:        m,
		Logger:         log,
	})
	return s
}

func (s *testServer) do(t *testing.T, method, target, clientID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if clientID != "" {
		req.Header.Set(handler.ClientIDHeader, clientID)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, clientID string, userID int64) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test"))
	require.NoError(t, err)

	s.accounts.On("Login", mock.Anything, "ana@wayra.co", "secret").Return(token, nil).Once()
	rec := s.do(t, http.MethodPost, "/api/auth/login", clientID, `{"email":"ana@wayra.co","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return token
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRouter_HotelsIssuesClientCookie(t *testing.T) {
	s := newTestServer(t)
	s.catalog.On("ListHotels", mock.Anything).Return([]entity.Hotel{
		{ID: "h1", Name: "Hotel Caribe", City: "Cartagena", Price: 250000},
		{ID: "h2", Name: "Casa Dann", City: "Bogota", Price: 180000},
	}, nil)

	rec := s.do(t, http.MethodGet, "/api/hotels?q=caribe", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[struct {
		Items      []entity.Hotel `json:"items"`
		Page       int            `json:"page"`
		TotalPages int            `json:"totalPages"`
		FilterKey  string         `json:"filterKey"`
	}](t, rec)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "h1", body.Items[0].ID)
	assert.Equal(t, 1, body.TotalPages)
	assert.NotEmpty(t, body.FilterKey)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "wayra_client", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestRouter_ErrorKinds(t *testing.T) {
	s := newTestServer(t)
	s.catalog.On("GetHotel", mock.Anything, "missing").Return(nil, apperror.NotFound("hotels.get", "hotel not found"))
	s.catalog.On("ListBuses", mock.Anything).Return(nil, apperror.Upstream("buses.list", 500, "boom"))

	tests := []struct {
		name   string
		target string
		status int
		kind   apperror.Kind
	}{
		{name: "bad price", target: "/api/hotels?minPrice=abc", status: http.StatusBadRequest, kind: apperror.KindValidation},
		{name: "bad date", target: "/api/buses?date=13/05/2025", status: http.StatusBadRequest, kind: apperror.KindValidation},
		{name: "bad trip type", target: "/api/flights?tripType=multi", status: http.StatusBadRequest, kind: apperror.KindValidation},
		{name: "quote without dates", target: "/api/hotels/h1/quote", status: http.StatusBadRequest, kind: apperror.KindValidation},
		{name: "not found", target: "/api/hotels/missing", status: http.StatusNotFound, kind: apperror.KindNotFound},
		{name: "upstream", target: "/api/buses", status: http.StatusBadGateway, kind: apperror.KindUpstream},
		{name: "no session", target: "/api/cart", status: http.StatusUnauthorized, kind: apperror.KindAuth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.target, clientA, "")
			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody[handler.ErrorResponse](t, rec)
			assert.Equal(t, tt.kind, body.Kind)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRouter_LoginThenCart(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, clientA, 7)

	s.shop.On("GetCart", mock.Anything, token, int64(7)).Return([]entity.CartItem{
		{ID: "1", ProductType: entity.ProductBus, Quantity: 2, UnitPrice: 90000, TotalPrice: 180000},
	}, nil)

	rec := s.do(t, http.MethodGet, "/api/cart", clientA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeBody[entity.Cart](t, rec)
	assert.Equal(t, 180000.0, cart.Subtotal)
	assert.Equal(t, "$ 180.000", cart.Display)

	rec = s.do(t, http.MethodGet, "/api/cart", clientB, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/cart/1", clientA, `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	s.shop.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_SessionAndLogout(t *testing.T) {
	s := newTestServer(t)
	s.login(t, clientA, 7)

	rec := s.do(t, http.MethodGet, "/api/session", clientA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeBody[usecase.SessionView](t, rec)
	assert.True(t, view.Authenticated)
	assert.Equal(t, int64(7), view.UserID)
	require.NotNil(t, view.ExpiresAt)

	rec = s.do(t, http.MethodPost, "/api/auth/logout", clientA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeBody[usecase.SessionView](t, rec)
	assert.False(t, view.Authenticated)
	assert.Equal(t, usecase.SessionUnauthenticated, view.Status)
}

func TestRouter_LoginValidation(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/auth/login", clientA, `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", clientA, `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	s.accounts.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_Theme(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/preferences/theme", clientA, "")
	assert.JSONEq(t, `{"theme":"light"}`, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/preferences/theme", clientA, `{"theme":"dark"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/preferences/theme", clientA, "")
	assert.JSONEq(t, `{"theme":"dark"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/preferences/theme/toggle", clientA, "")
	assert.JSONEq(t, `{"theme":"light"}`, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/preferences/theme", clientA, `{"theme":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_FavoriteToggle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, clientA, 7)

	s.shop.On("ListFavorites", mock.Anything, token, int64(7)).Return([]entity.Favorite{}, nil)
	s.shop.On("AddFavorite", mock.Anything, token, entity.Favorite{UserID: 7, ProductType: entity.ProductHotel, ProductID: "h1"}).
		Return(&entity.Favorite{ID: "f1"}, nil)

	rec := s.do(t, http.MethodPost, "/api/favorites/toggle", clientA, `{"productType":"hotel","productId":"h1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"favorite":true}`, rec.Body.String())
}

func TestRouter_ExportReservations(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, clientA, 7)
	s.shop.On("ListReservations", mock.Anything, token, int64(7)).Return([]entity.Reservation{
		{ID: "r1", ProductType: entity.ProductBus, ProductID: "b1", Total: 90000, Status: "confirmada", CreatedAt: time.Now()},
	}, nil)

	rec := s.do(t, http.MethodGet, "/api/reservations/export", clientA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/hotels", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/health", "", "")

	rec := s.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `wayra_test_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
