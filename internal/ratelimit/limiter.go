package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrRateLimited is returned to callers whose request was denied.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrUnavailable wraps store failures under the fail-closed policy.
	ErrUnavailable = errors.New("rate limiter unavailable")
)

// FailurePolicy decides the outcome of a check when the store cannot be reached.
type FailurePolicy int

const (
	// FailClosed denies requests while the store is unreachable.
	FailClosed FailurePolicy = iota
	// FailOpen allows requests while the store is unreachable.
	FailOpen
)

func (p FailurePolicy) String() string {
	if p == FailOpen {
		return "fail-open"
	}

	return "fail-closed"
}

// Limiter defines the interface for rate limiting.
type Limiter interface {
	// Check counts one request for identifier in scope and reports whether it is allowed.
	Check(ctx context.Context, scope Scope, identifier string, limit int64, window time.Duration) (bool, error)
}

// FixedWindowLimiter implements rate limiting with a fixed window counter.
// Bursts of up to twice the limit are possible across a window boundary.
type FixedWindowLimiter struct {
	store   Store
	policy  FailurePolicy
	timeout time.Duration
	logger  *zap.Logger
}

// NewFixedWindowLimiter creates a new fixed window rate limiter. Each store
// round trip is bounded by timeout; a non-positive timeout leaves it to ctx.
func NewFixedWindowLimiter(
	store Store, policy FailurePolicy, timeout time.Duration, logger *zap.Logger,
) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		store:   store,
		policy:  policy,
		timeout: timeout,
		logger:  logger,
	}
}

// Check increments the counter for "scope:identifier" exactly once.
// Store failures and timeouts resolve through the configured FailurePolicy:
// fail-open returns (true, nil), fail-closed returns (false, ErrUnavailable).
func (l *FixedWindowLimiter) Check(
	ctx context.Context, scope Scope, identifier string, limit int64, window time.Duration,
) (bool, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	count, err := l.store.Increment(ctx, Key(scope, identifier), window)
	if err != nil {
		l.logger.Warn("rate limit store unavailable",
			zap.String("scope", string(scope)),
			zap.String("policy", l.policy.String()),
			zap.Error(err),
		)

		if l.policy == FailOpen {
			return true, nil
		}

		return false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return count <= limit, nil
}

// Key returns the counter key for identifier in scope.
func Key(scope Scope, identifier string) string {
	return string(scope) + ":" + identifier
}
