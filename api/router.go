package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/aliadapter/api/handler"
	"github.com/use-agent/aliadapter/api/middleware"
	"github.com/use-agent/aliadapter/config"
	"github.com/use-agent/aliadapter/metrics"
	"github.com/use-agent/aliadapter/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → RequestID → Logger → Metrics
//	/ali:    Auth (if enabled) → RateLimit → BodyLimit
//
// Health and metrics stay outside auth. ctx bounds the rate limiter's
// background sweep.
func NewRouter(ctx context.Context, sc *scraper.Scraper, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(middleware.Metrics())

	r.GET("/", handler.Health(sc))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	ali := r.Group("/ali")
	if cfg.Auth.Enabled {
		ali.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	ali.Use(middleware.RateLimit(ctx, cfg.RateLimit))
	ali.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	ali.POST("/fetch", handler.Fetch(sc, cfg.Server.Debug()))

	return r
}
