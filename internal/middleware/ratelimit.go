package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortipy/internal/ratelimit"
	"go.uber.org/zap"
)

// PolicyRateLimiter returns a Huma middleware that applies policy-based rate limiting.
//
// Operations may carry a ratelimit.EndpointConfig under ratelimit.MetadataKey to
// disable limiting, pin a scope, or define their own limits.
func PolicyRateLimiter(
	api huma.API,
	limiter *ratelimit.PolicyLimiter,
	resolver ratelimit.ScopeResolver,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		path := operationPath(ctx)
		key := clientKey(ctx)
		cfg := ratelimit.GetEndpointConfig(ctx)

		var (
			allowed  bool
			exceeded *ratelimit.LimitExceeded
			err      error
		)

		switch {
		case cfg != nil && cfg.Disabled:
			next(ctx)

			return
		case cfg != nil && len(cfg.Limits) > 0:
			allowed, exceeded, err = limiter.AllowCustom(ctx.Context(), key, path, cfg.Limits)
		default:
			allowed, exceeded, err = limiter.Allow(ctx.Context(), key, resolver.Resolve(ctx))
		}

		if err != nil {
			logger.Error("rate limit check failed", zap.String("path", path), zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error")

			return
		}

		if !allowed {
			rejectRateLimited(api, ctx, exceeded, path, logger)

			return
		}

		next(ctx)
	}
}

func rejectRateLimited(
	api huma.API,
	ctx huma.Context,
	exceeded *ratelimit.LimitExceeded,
	path string,
	logger *zap.Logger,
) {
	msg := "rate limit exceeded"

	if exceeded != nil {
		msg = fmt.Sprintf("rate limit exceeded: %s, %d/%d requests in %s",
			exceeded.Scope, exceeded.Count, exceeded.Config.Max, exceeded.Config.Window)

		logger.Warn("rate limit exceeded",
			zap.String("path", path),
			zap.String("method", ctx.Method()),
			zap.String("scope", string(exceeded.Scope)),
			zap.Int64("count", exceeded.Count),
			zap.Int64("max", exceeded.Config.Max),
			zap.Duration("window", exceeded.Config.Window),
			zap.String("client_ip", clientIP(ctx)),
		)

		ctx.SetHeader("Retry-After", fmt.Sprintf("%.0f", exceeded.Config.Window.Seconds()))
	}

	_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, msg)
}

// clientKey identifies a client by IP and User-Agent.
func clientKey(ctx huma.Context) string {
	hash := sha256.Sum256([]byte(clientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(hash[:])
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}
