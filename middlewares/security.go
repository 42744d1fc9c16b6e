package middlewares

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets response headers for a JSON API consumed by a
// separate front end: nothing here is ever rendered, framed or cached.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		// Responses carry booking and token data; keep them out of shared caches.
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
