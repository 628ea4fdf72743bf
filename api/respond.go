package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rs/zerolog"
)

const maxResponseSize = 10 * 1024 * 1024 // 10MB

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus marshals data before touching the header so a marshal
// failure can still become a 500.
func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")

		jsonData, err = json.Marshal(map[string]interface{}{
			"error":        "Response too large",
			"message":      "The requested data exceeds the maximum response size",
			"maxSizeMB":    maxResponseSize / (1024 * 1024),
			"actualSizeMB": len(jsonData) / (1024 * 1024),
		})
		if err != nil {
			r.logger.Error().Err(err).Msg("error marshaling truncated response")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		status = http.StatusRequestEntityTooLarge
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps err to a JSON error body. ApiErr and GatewayError keep
// their status and operator message; anything else is a 500.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	var gwErr *errs.GatewayError

	switch {
	case errors.As(err, &apiErr):
		response := ErrorResponse{
			Error:   apiErr.Error(),
			Message: apiErr.Message(),
			Status:  "error",
			Field:   apiErr.Field,
			Details: apiErr.Details,
		}
		if apiErr.Cause != nil {
			response.Cause = apiErr.GetFullError()
		}
		if apiErr.StatusCode >= http.StatusInternalServerError {
			r.logger.Error().Err(err).Msg("request failed")
		}
		r.WriteJSONStatus(w, apiErr.StatusCode, response)

	case errors.As(err, &gwErr):
		r.logger.Warn().Err(err).Msg("backend rejected request")
		r.WriteJSONStatus(w, http.StatusBadGateway, ErrorResponse{
			Error:   gwErr.Error(),
			Message: gwErr.Message,
			Status:  "error",
		})

	default:
		r.logger.Error().Msg(err.Error())
		r.WriteJSONStatus(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal Server Error",
			Message: "An unexpected error occurred",
			Status:  "error",
			Details: err.Error(),
		})
	}
}

// statusOf is the HTTP status WriteError would use for err.
func statusOf(err error) int {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var gwErr *errs.GatewayError
	if errors.As(err, &gwErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// WriteTimeoutError writes a standardized timeout error response
func (r Responder) WriteTimeoutError(w http.ResponseWriter, timeout time.Duration, endpoint string) {
	r.WriteJSONStatus(w, http.StatusRequestTimeout, map[string]interface{}{
		"error":           "Request timeout",
		"message":         "The request took too long to process",
		"timeout_seconds": int(timeout.Seconds()),
		"status":          "timeout",
		"endpoint":        endpoint,
	})
}

// CheckContextTimeout reports (and answers) a request whose context is
// already done.
func (r Responder) CheckContextTimeout(w http.ResponseWriter, req *http.Request, timeout time.Duration) bool {
	select {
	case <-req.Context().Done():
		r.WriteTimeoutError(w, timeout, req.URL.Path)
		return true
	default:
		return false
	}
}
