package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shesho2101/ProyectoIntegrador2/internal/usecase"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/metrics"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

const maxBodyBytes = 1 << 20

// Usecases groups the storefront operations served over HTTP
type Usecases struct {
	Catalog      *usecase.CatalogUsecase
	Auth         *usecase.AuthUsecase
	Preferences  *usecase.Preferences
	Cart         *usecase.CartUsecase
	Favorites    *usecase.FavoriteUsecase
	Opinions     *usecase.OpinionUsecase
	Reservations *usecase.ReservationUsecase
}

// Handler contains HTTP handlers for the storefront API
type Handler struct {
	catalog      *usecase.CatalogUsecase
	auth         *usecase.AuthUsecase
	prefs        *usecase.Preferences
	cart         *usecase.CartUsecase
	favorites    *usecase.FavoriteUsecase
	opinions     *usecase.OpinionUsecase
	reservations *usecase.ReservationUsecase
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(uc Usecases, m *metrics.Metrics, logger logger.Logger) *Handler {
	return &Handler{
		catalog:      uc.Catalog,
		auth:         uc.Auth,
		prefs:        uc.Preferences,
		cart:         uc.Cart,
		favorites:    uc.Favorites,
		opinions:     uc.Opinions,
		reservations: uc.Reservations,
		metrics:      m,
		logger:       logger,
	}
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string        `json:"error"`
	Kind  apperror.Kind `json:"kind"`
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)

	op := "unknown"
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Op != "" {
		op = appErr.Op
	}
	if h.metrics != nil {
		h.metrics.ErrorsCount.WithLabelValues(op, string(kind)).Inc()
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", r.URL.Path, "kind", kind, "error", err)
	} else {
		h.logger.Debug("Request rejected", "path", r.URL.Path, "kind", kind, "error", err)
	}

	respondJSON(w, status, ErrorResponse{Error: apperror.MessageOf(err), Kind: kind})
}

// decodeJSON reads a JSON request body into dst
func decodeJSON(r *http.Request, op string, dst interface{}) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return apperror.Validation(op, "invalid request body")
	}
	return nil
}

func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// queryPrice reads an optional price bound; an absent value means unbounded
func queryPrice(r *http.Request, op, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, apperror.Validation(op, key+" must be a non negative number")
	}
	return &v, nil
}

func queryDate(r *http.Request, op, key string, required bool) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		if required {
			return nil, apperror.Validation(op, key+" is required")
		}
		return nil, nil
	}
	t, ok := utils.ParseDate(raw)
	if !ok {
		return nil, apperror.Validation(op, key+" must be a YYYY-MM-DD date")
	}
	return &t, nil
}

func priceRange(r *http.Request, op string) (min, max *float64, err error) {
	if min, err = queryPrice(r, op, "minPrice"); err != nil {
		return nil, nil, err
	}
	if max, err = queryPrice(r, op, "maxPrice"); err != nil {
		return nil, nil, err
	}
	return min, max, nil
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
