package middleware

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortipy/internal/auth"
	"go.uber.org/zap"
)

// Authorizer validates a raw bearer token and returns its subject.
type Authorizer interface {
	Authorize(token string) (string, error)
}

// Authenticate guards operations that list auth.SecurityScheme in their
// Security requirements. It runs before input validation, so an anonymous
// caller gets 401 even with a malformed body.
func Authenticate(
	api huma.API, authorizer Authorizer, logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresBearer(ctx.Operation()) {
			next(ctx)

			return
		}

		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			rejectUnauthorized(api, ctx, "missing bearer token")

			return
		}

		username, err := authorizer.Authorize(token)
		if err != nil {
			logger.Debug("bearer token rejected",
				zap.String("path", operationPath(ctx)),
				zap.String("client_ip", clientIP(ctx)),
				zap.Error(err),
			)
			rejectUnauthorized(api, ctx, "invalid or expired token")

			return
		}

		next(huma.WithContext(ctx, auth.ContextWithSubject(ctx.Context(), username)))
	}
}

func requiresBearer(op *huma.Operation) bool {
	if op == nil {
		return false
	}

	for _, requirement := range op.Security {
		if _, ok := requirement[auth.SecurityScheme]; ok {
			return true
		}
	}

	return false
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

func rejectUnauthorized(api huma.API, ctx huma.Context, msg string) {
	ctx.SetHeader("WWW-Authenticate", `Bearer realm="`+auth.Issuer+`"`)
	_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, msg)
}
