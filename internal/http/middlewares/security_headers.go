package middlewares

import (
	"github.com/gin-gonic/gin"
)

// The portal only ever answers with JSON documents and redirects.
const defaultCSP = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("X-XSS-Protection", "0")
		c.Header("Content-Security-Policy", defaultCSP)
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
