package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"

// SecurityHeaders sets the browser hardening headers on every response.
// HSTS is only sent outside development; the swagger UI keeps the default CSP.
func SecurityHeaders(development bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		h := ctx.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "0")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		h.Set("Cross-Origin-Resource-Policy", "same-origin")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("X-Permitted-Cross-Domain-Policies", "none")

		if !strings.HasPrefix(ctx.Request.URL.Path, "/swagger/") {
			h.Set("Content-Security-Policy", apiContentSecurityPolicy)
		}
		if !development {
			h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		}

		ctx.Next()
	}
}
