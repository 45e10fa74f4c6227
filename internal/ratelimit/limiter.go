package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Store counts hits per bucket key over a sliding window. Record adds the
// current hit and returns how many hits the window now holds.
type Store interface {
	Record(ctx context.Context, key string, window time.Duration) (int64, error)
}

// LimitConfig allows at most Max requests per sliding Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps each scope to the limits enforced for it.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy returns the limits applied when an operation has no custom config.
func DefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeGlobal: {{Window: time.Minute, Max: 1200}},
			ScopeRead:   {{Window: time.Minute, Max: 600}},
			ScopeWrite:  {{Window: time.Minute, Max: 60}, {Window: time.Hour, Max: 1000}},
			ScopeAuth:   {{Window: time.Minute, Max: 10}, {Window: time.Hour, Max: 100}},
		},
	}
}

// LimitExceeded contains information about which limit was exceeded.
type LimitExceeded struct {
	Scope  Scope
	Config LimitConfig
	Count  int64
}

// PolicyLimiter enforces rate limits based on a policy and resolved scopes.
type PolicyLimiter struct {
	store  Store
	policy *Policy
}

// NewPolicyLimiter creates a new policy-based rate limiter.
func NewPolicyLimiter(store Store, policy *Policy) *PolicyLimiter {
	return &PolicyLimiter{
		store:  store,
		policy: policy,
	}
}

// Allow checks every limit of every scope for clientKey. The returned
// LimitExceeded names the first limit hit and is nil when the request is allowed.
func (l *PolicyLimiter) Allow(ctx context.Context, clientKey string, scopes []Scope) (bool, *LimitExceeded, error) {
	for _, scope := range scopes {
		limits, ok := l.policy.Limits[scope]
		if !ok {
			continue
		}

		for _, limit := range limits {
			count, err := l.store.Record(ctx, buildKey(clientKey, string(scope), limit), limit.Window)
			if err != nil {
				return false, nil, err
			}

			if count > limit.Max {
				return false, &LimitExceeded{
					Scope:  scope,
					Config: limit,
					Count:  count,
				}, nil
			}
		}
	}

	return true, nil, nil
}

// AllowCustom checks limits attached to a single route. Counters are keyed by
// the route template, so /api/urls/{key} shares one counter per client.
func (l *PolicyLimiter) AllowCustom(
	ctx context.Context, clientKey, route string, limits []LimitConfig,
) (bool, *LimitExceeded, error) {
	for _, limit := range limits {
		count, err := l.store.Record(ctx, buildKey(clientKey, "custom:"+route, limit), limit.Window)
		if err != nil {
			return false, nil, err
		}

		if count > limit.Max {
			return false, &LimitExceeded{Scope: Scope(route), Config: limit, Count: count}, nil
		}
	}

	return true, nil, nil
}

func buildKey(clientKey, bucket string, limit LimitConfig) string {
	return fmt.Sprintf("%s:%s:%d", clientKey, bucket, limit.Window.Milliseconds())
}
