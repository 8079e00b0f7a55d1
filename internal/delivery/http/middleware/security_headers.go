package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds baseline security headers to all responses.
// The swagger UI needs inline scripts and styles, so it gets a looser CSP.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// HTTP Strict Transport Security (HSTS)
		c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains")

		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

		if strings.HasPrefix(c.Request.URL.Path, "/api/swagger/") {
			c.Header("Content-Security-Policy",
				"default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		} else {
			c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		}

		// Submission responses echo personal data.
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
