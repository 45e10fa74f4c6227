package ratelimit

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Scope names a bucket of limits in a Policy.
type Scope string

const (
	// ScopeGlobal is counted for every request.
	ScopeGlobal Scope = "global"
	// ScopeRead covers safe methods.
	ScopeRead Scope = "read"
	// ScopeWrite covers every other method.
	ScopeWrite Scope = "write"
	// ScopeAuth covers credential checks.
	ScopeAuth Scope = "auth"
)

// MetadataKey is the huma operation metadata key holding an EndpointConfig.
const MetadataKey = "rateLimit"

// EndpointConfig overrides the policy for one operation.
//
// Precedence: Disabled, then Limits (scope defaults are bypassed), then Scope
// (replaces method-based detection), then method-based detection.
type EndpointConfig struct {
	Scope    Scope
	Limits   []LimitConfig
	Disabled bool
}

// ScopeResolver determines which scopes apply to a given request.
type ScopeResolver interface {
	Resolve(ctx huma.Context) []Scope
}

// MethodScopeResolver classifies requests by HTTP method only.
type MethodScopeResolver struct{}

// NewMethodScopeResolver creates a new method-based scope resolver.
func NewMethodScopeResolver() *MethodScopeResolver {
	return &MethodScopeResolver{}
}

func (r *MethodScopeResolver) Resolve(ctx huma.Context) []Scope {
	return []Scope{ScopeGlobal, methodScope(ctx.Method())}
}

// OperationScopeResolver prefers the scope pinned in operation metadata and
// falls back to the request method.
type OperationScopeResolver struct{}

// NewOperationScopeResolver creates a new operation-aware scope resolver.
func NewOperationScopeResolver() *OperationScopeResolver {
	return &OperationScopeResolver{}
}

func (r *OperationScopeResolver) Resolve(ctx huma.Context) []Scope {
	if cfg := GetEndpointConfig(ctx); cfg != nil && cfg.Scope != "" {
		return []Scope{ScopeGlobal, cfg.Scope}
	}

	return []Scope{ScopeGlobal, methodScope(ctx.Method())}
}

func methodScope(method string) Scope {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ScopeRead
	default:
		return ScopeWrite
	}
}

// GetEndpointConfig returns the EndpointConfig of the current operation, or nil.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}
