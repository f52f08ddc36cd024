package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports readiness of the backing stores.
type HealthChecker struct {
	infra Infrastructure
}

func NewHealthChecker(infra Infrastructure) *HealthChecker {
	return &HealthChecker{infra: infra}
}

type healthResult struct {
	name string
	err  error
}

// Handler pings PostgreSQL and Redis in parallel and reports each
// check by name. Any failure turns the whole response into a 503.
func (h *HealthChecker) Handler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	results := make(chan healthResult, 2)
	go func() { results <- healthResult{"postgres", h.infra.Postgres().Ping(ctx)} }()
	go func() { results <- healthResult{"redis", h.infra.Redis().Ping(ctx)} }()

	checks := gin.H{}
	healthy := true
	for i := 0; i < 2; i++ {
		r := <-results
		if r.err != nil {
			healthy = false
			checks[r.name] = r.err.Error()
		} else {
			checks[r.name] = "ok"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "fail", "checks": checks})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "pass", "checks": checks})
}
