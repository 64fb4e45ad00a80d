package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/aliadapter/models"
	"github.com/use-agent/aliadapter/scraper"
)

// Version is reported by the health endpoint. Overridden at link time.
var Version = "0.1.0"

// Health returns a handler for GET /.
func Health(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			OK:      true,
			Uptime:  sc.Uptime().Round(time.Second).String(),
			Version: Version,
		})
	}
}
