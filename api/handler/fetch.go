package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/aliadapter/models"
	"github.com/use-agent/aliadapter/scraper"
)

// Fetch returns a handler for POST /ali/fetch.
//
// Orchestration flow:
//  1. Bind the body; an empty body counts as a missing url.
//  2. Scraper.Scrape → normalize, resolve, fetch, extract.
//  3. 200 with the product metadata, or the error envelope.
//
// debug controls whether envelopes carry the internal error chain.
func Fetch(sc *scraper.Scraper, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.FetchRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, models.ErrorEnvelope{
					Error:   models.ErrKindInvalidRequest,
					Details: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
				})
				return
			}
			respondError(c, models.NewValidationError(models.ErrKindInvalidRequest, "request body must be a JSON object"), debug)
			return
		}

		input, ok := req.Value()
		if !ok {
			respondError(c, models.NewValidationError(models.ErrKindURLRequired, "url is required"), debug)
			return
		}

		// ── 2. Scrape ───────────────────────────────────────────────
		meta, err := sc.Scrape(c.Request.Context(), input)
		if err != nil {
			respondError(c, err, debug)
			return
		}

		slog.Debug("fetch served",
			"request_id", models.RequestID(c.Request.Context()),
			"final_url", meta.FinalURL,
			"duration", time.Since(start),
		)

		// ── 3. Respond ──────────────────────────────────────────────
		c.JSON(http.StatusOK, meta)
	}
}

// respondError maps an error to its HTTP status and writes the envelope.
func respondError(c *gin.Context, err error, debug bool) {
	ee := models.AsExtractionError(err)
	if ee.Kind == models.ErrKindInternal {
		slog.Error("fetch: unexpected error", "request_id", models.RequestID(c.Request.Context()), "error", err)
	}
	c.JSON(ee.HTTPStatus(), ee.ToEnvelope(debug))
}
