package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shesho2101/ProyectoIntegrador2/internal/infrastructure/oauth"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/metrics"
)

// WayraAPI is the HTTP plumbing shared by every Wayra API adapter
type WayraAPI struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewWayraAPI creates a client for the Wayra REST API rooted at baseURL
func NewWayraAPI(baseURL string, timeout time.Duration, logger logger.Logger, m *metrics.Metrics) *WayraAPI {
	return &WayraAPI{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		validate:   validator.New(),
		logger:     logger,
		metrics:    m,
	}
}

// apiCall describes one request to the Wayra API
type apiCall struct {
	op       string
	resource string
	method   string
	path     string
	query    url.Values
	token    string
	body     interface{}
}

// do sends the call and decodes a 2xx JSON answer into out (when out is not nil)
func (c *WayraAPI) do(ctx context.Context, call apiCall, out interface{}) error {
	start := time.Now()
	status := "error"
	defer func() {
		if c.metrics != nil {
			c.metrics.UpstreamRequests.WithLabelValues(call.resource, status).Inc()
			c.metrics.UpstreamDuration.WithLabelValues(call.resource).Observe(time.Since(start).Seconds())
		}
	}()

	endpoint := c.baseURL + call.path
	if len(call.query) > 0 {
		endpoint += "?" + call.query.Encode()
	}

	var body io.Reader
	if call.body != nil {
		jsonData, err := json.Marshal(call.body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", call.op, err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, call.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", call.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if call.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if call.token != "" {
		token := oauth.BearerToken(call.token)
		if !token.Valid() {
			status = "expired"
			return apperror.Auth(call.op, "session expired, please log in again")
		}
		token.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Wayra API request failed", "op", call.op, "method", call.method, "path", call.path, "error", err)
		return apperror.Network(call.op, err)
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Network(call.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(call, resp.StatusCode, payload)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperror.Decode(call.op, err)
	}
	return nil
}

func (c *WayraAPI) statusError(call apiCall, code int, payload []byte) error {
	message := remoteMessage(payload)
	c.logger.Warn("Wayra API returned an error status",
		"op", call.op,
		"status", code,
		"message", message)

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		if message == "" {
			message = "session expired, please log in again"
		}
		return apperror.Auth(call.op, message)
	case http.StatusNotFound:
		if message == "" {
			message = call.resource + " not found"
		}
		return apperror.NotFound(call.op, message)
	default:
		return apperror.Upstream(call.op, code, message)
	}
}

// remoteMessage pulls the human message out of an error body; the backend uses
// both "message" and "msg"
func remoteMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	switch {
	case body.Message != "":
		return body.Message
	case body.Msg != "":
		return body.Msg
	default:
		return body.Error
	}
}

// check validates a decoded DTO and turns failures into decode errors
func (c *WayraAPI) check(op string, dto interface{}) error {
	if err := c.validate.Struct(dto); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			return apperror.Decode(op, fmt.Errorf("invalid %s payload: %v", op, invalid))
		}
		return apperror.Decode(op, err)
	}
	return nil
}

// collection accepts either a bare JSON array or an object wrapping the array
// under one of keys
func collection(op string, raw json.RawMessage, keys ...string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("[]"), nil
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, apperror.Decode(op, err)
	}
	for _, key := range keys {
		if inner, ok := wrapper[key]; ok {
			return inner, nil
		}
	}
	return nil, apperror.Decode(op, fmt.Errorf("expected an array or one of %v", keys))
}

// decodeList decodes a collection of DTOs, validates each and converts it
func decodeList[D any, E any](c *WayraAPI, op string, raw json.RawMessage, convert func(D) E, keys ...string) ([]E, error) {
	inner, err := collection(op, raw, keys...)
	if err != nil {
		return nil, err
	}
	var dtos []D
	if err := json.Unmarshal(inner, &dtos); err != nil {
		return nil, apperror.Decode(op, err)
	}
	out := make([]E, 0, len(dtos))
	for i := range dtos {
		if err := c.check(op, &dtos[i]); err != nil {
			return nil, err
		}
		out = append(out, convert(dtos[i]))
	}
	return out, nil
}

// decodeOne decodes a single DTO, optionally wrapped under one of keys
func decodeOne[D any, E any](c *WayraAPI, op string, raw json.RawMessage, convert func(D) E, keys ...string) (*E, error) {
	inner := bytes.TrimSpace(raw)
	if len(keys) > 0 && len(inner) > 0 && inner[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(inner, &wrapper); err == nil {
			for _, key := range keys {
				if nested, ok := wrapper[key]; ok && len(bytes.TrimSpace(nested)) > 0 && bytes.TrimSpace(nested)[0] == '{' {
					inner = nested
					break
				}
			}
		}
	}

	var dto D
	if err := json.Unmarshal(inner, &dto); err != nil {
		return nil, apperror.Decode(op, err)
	}
	if err := c.check(op, &dto); err != nil {
		return nil, err
	}
	entity := convert(dto)
	return &entity, nil
}
