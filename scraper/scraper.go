// Package scraper runs the product pipeline: normalize, resolve short
// links, fetch, extract and assemble the response.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/use-agent/aliadapter/config"
	"github.com/use-agent/aliadapter/engine"
	"github.com/use-agent/aliadapter/extractor"
	"github.com/use-agent/aliadapter/metrics"
	"github.com/use-agent/aliadapter/models"
	"github.com/use-agent/aliadapter/normalizer"
)

// Scraper wires the fetch engine to the field extractor.
// It holds no per-request state and is safe for concurrent use.
type Scraper struct {
	engine    engine.Engine
	extractor *extractor.Extractor
	fetchCfg  config.FetchConfig
	startTime time.Time
}

// NewScraper creates a Scraper on top of the given engine.
func NewScraper(eng engine.Engine, fetchCfg config.FetchConfig, extractCfg config.ExtractConfig) *Scraper {
	return &Scraper{
		engine: eng,
		extractor: extractor.New(extractor.Options{
			ImageCap:            extractCfg.ImageCap,
			SpecsCandidates:     extractCfg.SpecsCandidates,
			SpecsMinChars:       extractCfg.SpecsMinChars,
			SpecsMaxChars:       extractCfg.SpecsMaxChars,
			DescriptionMaxChars: extractCfg.DescriptionMaxChars,
		}),
		fetchCfg:  fetchCfg,
		startTime: time.Now(),
	}
}

// Uptime returns how long the scraper has been running.
func (s *Scraper) Uptime() time.Duration {
	return time.Since(s.startTime)
}

// Scrape runs the whole pipeline for one raw request value. The returned
// error is always a *models.ExtractionError.
func (s *Scraper) Scrape(ctx context.Context, input any) (*models.ProductMetadata, error) {
	meta, err := s.scrape(ctx, input)
	if err != nil {
		var ee *models.ExtractionError
		if errors.As(err, &ee) {
			metrics.ObserveExtraction(ee.Kind)
		}
		return nil, err
	}
	metrics.ObserveExtraction("ok")
	return meta, nil
}

func (s *Scraper) scrape(ctx context.Context, input any) (*models.ProductMetadata, error) {
	log := logger(ctx)

	candidate, err := normalizer.Normalize(input)
	if err != nil {
		log.Debug("rejected input", "error", err)
		return nil, err
	}
	log.Debug("normalized", "url", candidate)

	resolved, err := s.Resolve(ctx, candidate)
	if err != nil {
		return nil, err
	}

	page, err := s.FetchPage(ctx, resolved)
	if err != nil {
		return nil, err
	}

	doc, err := extractor.Parse(page.HTML, page.URL)
	if err != nil {
		return nil, models.NewTransportError(models.FetchKindNetwork, err)
	}

	fields := s.extractor.Extract(doc)
	observeFields(fields)
	log.Debug("extracted",
		"url", page.URL,
		"title", fields.Title != "",
		"price", fields.Price != nil,
		"images", len(fields.Images),
	)
	return assemble(page.URL, fields), nil
}

// assemble maps extracted fields onto the response shape. Empty strings
// become nulls and the image list is never null.
func assemble(finalURL string, f extractor.Fields) *models.ProductMetadata {
	images := f.Images
	if images == nil {
		images = []string{}
	}
	currency := f.Currency
	if currency == "" {
		currency = extractor.DefaultCurrency
	}
	return &models.ProductMetadata{
		Title:         optional(f.Title),
		PriceOriginal: f.Price,
		Images:        images,
		Specs:         models.Specs{Summary: optional(f.SpecsSummary)},
		Currency:      currency,
		FinalURL:      finalURL,
		Description:   optional(f.Description),
		ProductID:     normalizer.ProductID(finalURL),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func observeFields(f extractor.Fields) {
	metrics.ObserveField("title", f.Title != "")
	metrics.ObserveField("price", f.Price != nil)
	metrics.ObserveField("images", len(f.Images) > 0)
	metrics.ObserveField("specs", f.SpecsSummary != "")
	metrics.ObserveField("description", f.Description != "")
}

// logger returns the default logger tagged with the request id, if any.
func logger(ctx context.Context) *slog.Logger {
	if id := models.RequestID(ctx); id != "" {
		return slog.Default().With("request_id", id)
	}
	return slog.Default()
}
