package ratelimit

import "context"

// LimitExceeded contains information about which limit was exceeded.
type LimitExceeded struct {
	Scope  Scope
	Config LimitConfig
}

// PolicyLimiter enforces the limits of a policy for resolved scopes.
type PolicyLimiter struct {
	limiter Limiter
	policy  *Policy
}

// NewPolicyLimiter creates a new policy-based rate limiter.
func NewPolicyLimiter(limiter Limiter, policy *Policy) *PolicyLimiter {
	return &PolicyLimiter{
		limiter: limiter,
		policy:  policy,
	}
}

// Allow checks the identifier against the policy limit of every scope.
// Scopes without a configured limit are skipped; checking stops at the first denial.
func (l *PolicyLimiter) Allow(ctx context.Context, identifier string, scopes []Scope) (bool, *LimitExceeded, error) {
	for _, scope := range scopes {
		limit, ok := l.policy.Limits[scope]
		if !ok {
			continue
		}

		allowed, exceeded, err := l.AllowLimit(ctx, identifier, scope, limit)
		if err != nil || !allowed {
			return allowed, exceeded, err
		}
	}

	return true, nil, nil
}

// AllowLimit checks a single explicit limit for the identifier in scope.
func (l *PolicyLimiter) AllowLimit(
	ctx context.Context, identifier string, scope Scope, limit LimitConfig,
) (bool, *LimitExceeded, error) {
	allowed, err := l.limiter.Check(ctx, scope, identifier, limit.Max, limit.Window)
	if err != nil {
		return false, nil, err
	}

	if !allowed {
		return false, &LimitExceeded{Scope: scope, Config: limit}, nil
	}

	return true, nil, nil
}
