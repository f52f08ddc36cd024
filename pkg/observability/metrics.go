package observability

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MetricsHandler adapts the Prometheus scrape handler for a Gin route.
// A nil handler reports telemetry as unavailable instead of panicking.
func MetricsHandler(handler http.Handler) gin.HandlerFunc {
	if handler == nil {
		return func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "telemetry is not initialized",
			})
		}
	}
	return gin.WrapH(handler)
}
