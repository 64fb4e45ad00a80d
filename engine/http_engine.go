package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// browserHeaders make a request look like an ordinary desktop Chrome
// navigation. Accept-Encoding is left to the transport so that gzip is
// decoded transparently.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Cache-Control":             "no-cache",
	"Pragma":                    "no-cache",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
	"Sec-Ch-Ua":                 `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`,
	"Sec-Ch-Ua-Mobile":          "?0",
	"Sec-Ch-Ua-Platform":        `"Windows"`,
}

// defaultTimeout applies when FetchRequest.Timeout is unset.
const defaultTimeout = 20 * time.Second

// HTTPOptions configures an HTTPEngine.
type HTTPOptions struct {
	// MaxRedirects is the redirect hop bound.
	MaxRedirects int

	// ChromeTLS presents a Chrome TLS fingerprint on https connections.
	ChromeTLS bool

	// Proxy is an optional http(s) proxy URL.
	Proxy string

	// MaxBodyBytes caps the bytes read from a response body.
	MaxBodyBytes int64
}

// HTTPEngine fetches pages over plain HTTP with browser-like headers.
// It does not render JavaScript.
type HTTPEngine struct {
	client       *resty.Client
	maxBodyBytes int64
}

// NewHTTPEngine creates an HTTPEngine.
func NewHTTPEngine(opts HTTPOptions) *HTTPEngine {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 10 << 20
	}

	client := resty.New()
	client.SetTransport(newTransport(opts.ChromeTLS, opts.Proxy))
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.MaxRedirects))
	client.SetHeaders(browserHeaders)
	client.SetLogger(slogAdapter{})

	return &HTTPEngine{
		client:       client,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

func (e *HTTPEngine) Name() string { return "http" }

// Fetch performs the GET. Statuses rejected by req.Accept are returned as
// *StatusError; transport failures are returned wrapped.
func (e *HTTPEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeaders(req.Headers).
		SetDoNotParseResponse(true).
		Get(req.URL)
	if err != nil {
		return nil, fmt.Errorf("http_engine: do request: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	accept := req.Accept
	if accept == nil {
		accept = AcceptSuccess
	}
	if !accept(resp.StatusCode()) {
		return nil, &StatusError{StatusCode: resp.StatusCode(), URL: req.URL}
	}

	data, err := io.ReadAll(io.LimitReader(body, e.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("http_engine: read body: %w", err)
	}

	var finalURL string
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		finalURL = raw.Request.URL.String()
	}

	return &FetchResult{
		Body:       string(data),
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		FinalURL:   finalURL,
		EngineName: e.Name(),
	}, nil
}

// slogAdapter routes resty's internal log lines through slog.
type slogAdapter struct{}

func (slogAdapter) Errorf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (slogAdapter) Warnf(format string, v ...any) {
	slog.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (slogAdapter) Debugf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
