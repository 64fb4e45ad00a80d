package engine

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Engine is the page fetch capability the pipeline depends on.
type Engine interface {
	// Name returns the engine identifier (e.g. "http").
	Name() string

	// Fetch performs a GET for the given request, following redirects up to
	// the engine's hop bound.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL     string
	Headers map[string]string
	Timeout time.Duration

	// Accept decides whether the terminal status code is a success. A nil
	// Accept means 2xx only.
	Accept func(status int) bool
}

// FetchResult is the output of a fetch whose status was accepted.
type FetchResult struct {
	Body       string
	StatusCode int
	Header     http.Header

	// FinalURL is the effective URL after redirects. Empty when the
	// engine could not determine it.
	FinalURL   string
	EngineName string
}

// StatusError is returned when the terminal status was not accepted.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("engine: HTTP %d for %s", e.StatusCode, e.URL)
}

// AcceptSuccess accepts 2xx statuses.
func AcceptSuccess(status int) bool {
	return status >= 200 && status < 300
}

// AcceptRedirects accepts any status in [200,400): a short link that stops
// at a 3xx still names its target in the Location chain.
func AcceptRedirects(status int) bool {
	return status >= 200 && status < 400
}
