package scraper

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/use-agent/aliadapter/engine"
	"github.com/use-agent/aliadapter/metrics"
	"github.com/use-agent/aliadapter/models"
)

// FetchedPage is a retrieved product page. It lives for one request.
type FetchedPage struct {
	// URL is the address the page was requested from.
	URL        string
	HTML       string
	StatusCode int
}

// FetchPage retrieves the product page. Only 2xx responses succeed; every
// failure is returned as a fetch_failed *models.ExtractionError.
func (s *Scraper) FetchPage(ctx context.Context, pageURL string) (*FetchedPage, error) {
	start := time.Now()
	res, err := s.engine.Fetch(ctx, &engine.FetchRequest{
		URL:     pageURL,
		Timeout: s.fetchCfg.Timeout,
		Accept:  engine.AcceptSuccess,
	})
	metrics.ObserveFetch("page", time.Since(start))
	if err != nil {
		xerr := classify(err)
		logger(ctx).Warn("page fetch failed",
			"url", pageURL,
			"kind", xerr.FetchKind,
			"error", xerr.Details,
		)
		return nil, xerr
	}

	logger(ctx).Debug("fetched",
		"url", pageURL,
		"final_url", res.FinalURL,
		"status", res.StatusCode,
		"bytes", len(res.Body),
		"engine", res.EngineName,
	)
	return &FetchedPage{
		URL:        pageURL,
		HTML:       res.Body,
		StatusCode: res.StatusCode,
	}, nil
}

// classify maps an engine error onto the fetch failure kinds.
func classify(err error) *models.ExtractionError {
	var statusErr *engine.StatusError
	if errors.As(err, &statusErr) {
		return models.NewStatusError(statusErr.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewTransportError(models.FetchKindTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.NewTransportError(models.FetchKindTimeout, err)
	}
	return models.NewTransportError(models.FetchKindNetwork, err)
}
