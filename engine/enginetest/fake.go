// Package enginetest provides an in-memory engine.Engine for tests.
package enginetest

import (
	"context"
	"net/http"
	"sync"

	"github.com/use-agent/aliadapter/engine"
)

// Response is a canned answer for one URL.
type Response struct {
	Status   int
	Body     string
	FinalURL string
	Err      error
}

// Fake serves canned responses keyed by URL and records every call.
// Unknown URLs answer 404.
type Fake struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []engine.FetchRequest
}

// New creates an empty Fake.
func New() *Fake {
	return &Fake{responses: make(map[string]Response)}
}

// Handle registers the response for url and returns f for chaining.
func (f *Fake) Handle(url string, r Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[url] = r
	return f
}

func (f *Fake) Name() string { return "fake" }

// Fetch applies req.Accept the way a real engine would.
func (f *Fake) Fetch(ctx context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, *req)
	r, ok := f.responses[req.URL]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		r = Response{Status: http.StatusNotFound}
	}
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Status == 0 {
		r.Status = http.StatusOK
	}

	accept := req.Accept
	if accept == nil {
		accept = engine.AcceptSuccess
	}
	if !accept(r.Status) {
		return nil, &engine.StatusError{StatusCode: r.Status, URL: req.URL}
	}

	final := r.FinalURL
	if final == "" {
		final = req.URL
	}
	return &engine.FetchResult{
		Body:       r.Body,
		StatusCode: r.Status,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		FinalURL:   final,
		EngineName: f.Name(),
	}, nil
}

// Calls returns a copy of the recorded requests in call order.
func (f *Fake) Calls() []engine.FetchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]engine.FetchRequest, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns the number of Fetch calls.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
