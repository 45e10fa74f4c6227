package auth

import "context"

type subjectKey struct{}

// ContextWithSubject stores the authenticated username in ctx.
func ContextWithSubject(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, subjectKey{}, username)
}

// SubjectFromContext returns the authenticated username, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(subjectKey{}).(string)

	return username, ok && username != ""
}

// SecurityScheme names the bearer scheme in the OpenAPI document. Operations
// listing it in their Security requirements are guarded by the auth middleware.
const SecurityScheme = "bearer"
