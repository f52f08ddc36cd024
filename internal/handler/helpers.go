package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP resolves the caller address for rate-limit keys. Proxy
// headers win over the socket address; "unknown" keeps keys well
// formed when neither is available.
func clientIP(c *gin.Context) string {
	if v := c.GetHeader("X-Forwarded-For"); v != "" {
		if i := strings.Index(v, ","); i >= 0 {
			v = v[:i]
		}
		return strings.TrimSpace(v)
	}
	if v := c.GetHeader("X-Real-IP"); v != "" {
		return v
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// currentUserID returns the account id the auth middleware stored.
func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
