package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortipy/internal/handlers"
)

// RequestMeta is a middleware that adds client IP, user-agent, and referrer to the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
		}

		next(huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta)))
	}
}

// clientIP extracts the client IP from the request, considering proxies.
func clientIP(ctx huma.Context) string {
	// First entry of X-Forwarded-For is the original client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()
	if addr == "" {
		addr = ctx.Host()
	}

	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return ip
}
