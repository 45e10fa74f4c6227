package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortipy/internal/metrics"
	"github.com/serroba/shortipy/internal/version"
	"go.uber.org/zap"
)

// Version rejects requests whose Accept-Version does not match the version the
// operation declares under version.MetadataKey. Operations without a declared
// version pass through.
func Version(api huma.API, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		supported, ok := supportedVersion(ctx.Operation())
		if !ok {
			next(ctx)

			return
		}

		declared := ctx.Header(version.Header)

		if err := version.Resolve(declared, supported); err != nil {
			path := operationPath(ctx)
			metrics.VersionRejectionsTotal.WithLabelValues(path).Inc()
			logger.Debug("unsupported api version",
				zap.String("path", path),
				zap.String("declared", declared),
				zap.String("supported", supported),
			)

			_ = huma.WriteErr(api, ctx, version.Status, "method version not found", err)

			return
		}

		next(ctx)
	}
}

func supportedVersion(op *huma.Operation) (string, bool) {
	if op == nil || op.Metadata == nil {
		return "", false
	}

	v, ok := op.Metadata[version.MetadataKey].(string)

	return v, ok && v != ""
}
