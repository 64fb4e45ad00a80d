package scraper

import (
	"context"
	"time"

	"github.com/use-agent/aliadapter/engine"
	"github.com/use-agent/aliadapter/metrics"
	"github.com/use-agent/aliadapter/normalizer"
)

// Resolve follows a short link to the product page it points at. URLs on
// any other host are returned unchanged without a network call.
func (s *Scraper) Resolve(ctx context.Context, candidate string) (string, error) {
	if !normalizer.IsShortLink(candidate) {
		return candidate, nil
	}

	start := time.Now()
	res, err := s.engine.Fetch(ctx, &engine.FetchRequest{
		URL:     candidate,
		Timeout: s.fetchCfg.Timeout,
		Accept:  engine.AcceptRedirects,
	})
	metrics.ObserveFetch("resolve", time.Since(start))
	if err != nil {
		xerr := classify(err)
		logger(ctx).Warn("short link resolution failed", "url", candidate, "error", xerr.Details)
		return "", xerr
	}

	resolved := res.FinalURL
	if resolved == "" {
		resolved = candidate
	}
	resolved = normalizer.DesktopHost(resolved)

	metrics.ObserveShortLink()
	logger(ctx).Debug("resolved short link", "from", candidate, "to", resolved, "status", res.StatusCode)
	return resolved, nil
}
