package models

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds returned in the "error" field of the envelope.
const (
	// Input validation: always 4xx, detected before any network call.
	ErrKindURLRequired        = "url_required"
	ErrKindInvalidURLType     = "invalid_url_type"
	ErrKindInvalidURLProtocol = "invalid_url_protocol"
	ErrKindInvalidRequest     = "invalid_request"

	// Fetch failures: always 5xx, never retried.
	ErrKindFetchFailed = "fetch_failed"

	// Access control, emitted by middleware only.
	ErrKindUnauthorized = "unauthorized"
	ErrKindRateLimited  = "rate_limited"

	// Anything that escaped the typed tiers above.
	ErrKindInternal = "internal_error"
)

// FetchKind narrows a fetch_failed error down to its transport cause.
type FetchKind string

const (
	FetchKindTimeout    FetchKind = "timeout"
	FetchKindHTTPStatus FetchKind = "http_status"
	FetchKindNetwork    FetchKind = "network"
)

// ExtractionError is the pipeline's error type. It is created at the first
// failing stage and terminates the request.
type ExtractionError struct {
	Kind string

	// Details is the client-facing detail: a message for validation
	// failures, "HTTP_<code>" for status failures, the transport message
	// otherwise.
	Details string

	// FetchKind and StatusCode are set only for fetch_failed.
	FetchKind  FetchKind
	StatusCode int

	Err error // wrapped original error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Details)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewValidationError creates an input validation error of the given kind.
func NewValidationError(kind, details string) *ExtractionError {
	return &ExtractionError{Kind: kind, Details: details}
}

// NewStatusError creates a fetch_failed error for a non-acceptable
// terminal HTTP status.
func NewStatusError(code int) *ExtractionError {
	return &ExtractionError{
		Kind:       ErrKindFetchFailed,
		Details:    fmt.Sprintf("HTTP_%d", code),
		FetchKind:  FetchKindHTTPStatus,
		StatusCode: code,
	}
}

// NewTransportError creates a fetch_failed error for a timeout or a
// transport-level failure.
func NewTransportError(kind FetchKind, err error) *ExtractionError {
	details := "unknown"
	if err != nil {
		details = err.Error()
	}
	return &ExtractionError{
		Kind:      ErrKindFetchFailed,
		Details:   details,
		FetchKind: kind,
		Err:       err,
	}
}

// HTTPStatus maps the error to the status code of the response carrying
// its envelope.
func (e *ExtractionError) HTTPStatus() int {
	switch e.Kind {
	case ErrKindURLRequired, ErrKindInvalidURLType, ErrKindInvalidURLProtocol, ErrKindInvalidRequest:
		return http.StatusBadRequest // 400
	case ErrKindUnauthorized:
		return http.StatusUnauthorized // 401
	case ErrKindRateLimited:
		return http.StatusTooManyRequests // 429
	case ErrKindFetchFailed:
		if e.FetchKind == FetchKindTimeout {
			return http.StatusGatewayTimeout // 504
		}
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}

// AsExtractionError returns err as an *ExtractionError, wrapping foreign
// errors as internal_error.
func AsExtractionError(err error) *ExtractionError {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee
	}
	return &ExtractionError{Kind: ErrKindInternal, Details: "internal error", Err: err}
}

// IsValidation reports whether the error belongs to the input validation tier.
func (e *ExtractionError) IsValidation() bool {
	return e.HTTPStatus() < http.StatusInternalServerError
}

// ToEnvelope converts the error to its API-facing envelope. Diagnostic
// detail is attached only when debug is true.
func (e *ExtractionError) ToEnvelope(debug bool) *ErrorEnvelope {
	env := &ErrorEnvelope{Error: e.Kind, Details: e.Details}
	if debug {
		env.Debug = e.Error()
	}
	return env
}
