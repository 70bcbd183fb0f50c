package ratelimit

import "time"

// LimitConfig is a single fixed-window limit.
type LimitConfig struct {
	Max    int64
	Window time.Duration
}

// IsZero reports whether no limit was configured.
func (c LimitConfig) IsZero() bool {
	return c.Max == 0 && c.Window == 0
}

// Policy maps scopes to the limits enforced for them.
type Policy struct {
	Limits map[Scope]LimitConfig
}

// DefaultPolicy returns the limits applied to operations without endpoint configuration.
func DefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope]LimitConfig{
			ScopeGlobal: {Max: 1000, Window: time.Minute},
			ScopeRead:   {Max: 600, Window: time.Minute},
			ScopeWrite:  {Max: 60, Window: time.Minute},
		},
	}
}
