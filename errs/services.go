package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Remote service errors, one per failure class a gateway call can end in.
var (
	ErrServiceUnreachable = errors.New("service unreachable")
	ErrUpstreamStatus     = errors.New("upstream returned an error status")
	ErrExternalRejected   = errors.New("external system rejected the request")
	ErrJSONMarshal        = errors.New("JSON marshal error")
	ErrJSONUnmarshal      = errors.New("JSON unmarshal error")
	ErrConfigMissing      = errors.New("configuration missing")
)

// DefaultGatewayMessage is used when an error body carries no message.
const DefaultGatewayMessage = "Request failed"

// GatewayError is a non-2xx answer from the backend or the external source.
// FromBody reports whether Message was read from the response body.
type GatewayError struct {
	StatusCode int
	Message    string
	FromBody   bool
	Method     string
	Path       string
}

func NewGatewayError(method, path string, statusCode int, message string) *GatewayError {
	fromBody := message != ""
	if !fromBody {
		message = DefaultGatewayMessage
	}
	return &GatewayError{
		StatusCode: statusCode,
		Message:    message,
		FromBody:   fromBody,
		Method:     method,
		Path:       path,
	}
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s %s (status %d): %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return ErrUpstreamStatus
}

func NewServiceUnreachableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrServiceUnreachable,
		Details:    fmt.Sprintf("Service %s is unreachable", service),
		Cause:      cause,
		Field:      "service",
	}
}

// NewExternalRejectedError covers a 2xx answer whose own success flag is
// false, and an external fetch that could not be completed.
func NewExternalRejectedError(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrExternalRejected,
		Details:    message,
		Cause:      cause,
	}
}

func NewJSONMarshalError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrJSONMarshal,
		Details:    fmt.Sprintf("Failed to marshal JSON during %s", operation),
		Cause:      cause,
		Field:      "json",
	}
}

func NewJSONUnmarshalError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrJSONUnmarshal,
		Details:    fmt.Sprintf("Failed to parse JSON during %s", operation),
		Cause:      cause,
		Field:      "json",
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

// MessageOr reduces err to the most specific operator-facing message.
// A message supplied by the remote body or raised locally wins; transport
// failures, unreadable bodies and body-less status errors fall back to the
// given phrase.
func MessageOr(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		if gwErr.FromBody {
			return gwErr.Message
		}
		return fallback
	}
	if errors.Is(err, ErrServiceUnreachable) || errors.Is(err, ErrJSONUnmarshal) {
		return fallback
	}
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
	}
	return fallback
}

func IsServiceUnreachableError(err error) bool {
	return errors.Is(err, ErrServiceUnreachable)
}

func IsUpstreamStatusError(err error) bool {
	return errors.Is(err, ErrUpstreamStatus)
}

func IsJSONUnmarshalError(err error) bool {
	return errors.Is(err, ErrJSONUnmarshal)
}

func IsExternalRejectedError(err error) bool {
	return errors.Is(err, ErrExternalRejected)
}
