package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/websocket"
	"github.com/shesho2101/ProyectoIntegrador2/internal/interface/handler"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/metrics"
)

// Options configures the HTTP surface
type Options struct {
	AllowedOrigins []string
	ClientCookie   string
	SecureCookie   bool
	Gatherer       prometheus.Gatherer
	Metrics        *metrics.Metrics
	Logger         logger.Logger
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handler.Handler, hub *websocket.Hub, opts Options) http.Handler {
	r := mux.NewRouter()
	if opts.Metrics != nil {
		r.Use(handler.RequestMetrics(opts.Metrics))
	}

	identity := handler.ClientIdentity(opts.ClientCookie, opts.SecureCookie)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(identity)

	// Catalog
	api.HandleFunc("/hotels", h.GetHotels).Methods(http.MethodGet)
	api.HandleFunc("/hotels/{id}", h.GetHotel).Methods(http.MethodGet)
	api.HandleFunc("/hotels/{id}/quote", h.GetStayQuote).Methods(http.MethodGet)
	api.HandleFunc("/admin/hotels", h.GetAdminHotels).Methods(http.MethodGet)
	api.HandleFunc("/buses", h.GetBuses).Methods(http.MethodGet)
	api.HandleFunc("/buses/{id}", h.GetBus).Methods(http.MethodGet)
	api.HandleFunc("/flights", h.GetFlights).Methods(http.MethodGet)

	// Session
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	api.HandleFunc("/session", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/profile", h.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/preferences/theme", h.GetTheme).Methods(http.MethodGet)
	api.HandleFunc("/preferences/theme", h.SetTheme).Methods(http.MethodPut)
	api.HandleFunc("/preferences/theme/toggle", h.ToggleTheme).Methods(http.MethodPost)

	// Shopping
	api.HandleFunc("/cart", h.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", h.AddToCart).Methods(http.MethodPost)
	api.HandleFunc("/cart/{itemId}", h.UpdateCartItem).Methods(http.MethodPut)
	api.HandleFunc("/cart/{itemId}", h.RemoveCartItem).Methods(http.MethodDelete)
	api.HandleFunc("/favorites", h.GetFavorites).Methods(http.MethodGet)
	api.HandleFunc("/favorites/toggle", h.ToggleFavorite).Methods(http.MethodPost)
	api.HandleFunc("/opinions", h.SubmitOpinion).Methods(http.MethodPost)
	api.HandleFunc("/reservations", h.GetReservations).Methods(http.MethodGet)
	api.HandleFunc("/reservations/export", h.ExportReservations).Methods(http.MethodGet)

	// WebSocket for session notices
	r.Handle("/ws", identity(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hub.ServeWS(w, req, handler.ClientID(req.Context()))
	}))).Methods(http.MethodGet)

	// Health check and metrics
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization", handler.ClientIDHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	if opts.Logger != nil {
		opts.Logger.Info("HTTP routes registered", "origins", opts.AllowedOrigins)
	}
	return corsHandler.Handler(r)
}
