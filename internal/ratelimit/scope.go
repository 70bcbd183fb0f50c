package ratelimit

import "github.com/danielgtaylor/huma/v2"

// Scope names an independent family of rate limit counters.
type Scope string

const (
	// ScopeGlobal applies to all requests regardless of type.
	ScopeGlobal Scope = "global"
	// ScopeRead applies to read operations (GET, HEAD, OPTIONS).
	ScopeRead Scope = "read"
	// ScopeWrite applies to write operations (POST, PUT, PATCH, DELETE).
	ScopeWrite Scope = "write"

	// ScopeShorten counts slug allocations.
	ScopeShorten Scope = "shorten"
	// ScopeUpdateSlug counts slug renames.
	ScopeUpdateSlug Scope = "update-slug"
	// ScopeRedirect counts slug resolutions.
	ScopeRedirect Scope = "slug-redirect"
)

// MetadataKey is the key used to store rate limit config in operation metadata.
const MetadataKey = "rateLimit"

// EndpointConfig defines per-endpoint rate limit configuration.
// It is attached to Huma operations via the Metadata field.
type EndpointConfig struct {
	// Scope names the counter family for this endpoint. When empty the
	// middleware falls back to method-based scope detection.
	Scope Scope

	// Limit is enforced for Scope. When zero, the policy limits for the
	// global scope and Scope are used instead.
	Limit LimitConfig

	// Disabled skips rate limiting entirely for this endpoint.
	Disabled bool
}

// ScopeResolver determines which scopes apply to a given request.
type ScopeResolver interface {
	Resolve(ctx huma.Context) []Scope
}

// MethodScopeResolver resolves scopes based on HTTP method.
// GET, HEAD, OPTIONS are classified as read operations.
// All other methods are classified as write operations.
type MethodScopeResolver struct{}

// NewMethodScopeResolver creates a new method-based scope resolver.
func NewMethodScopeResolver() *MethodScopeResolver {
	return &MethodScopeResolver{}
}

// Resolve returns the scopes that apply to the request based on its HTTP method.
func (r *MethodScopeResolver) Resolve(ctx huma.Context) []Scope {
	scopes := []Scope{ScopeGlobal}

	switch ctx.Method() {
	case "GET", "HEAD", "OPTIONS":
		scopes = append(scopes, ScopeRead)
	default:
		scopes = append(scopes, ScopeWrite)
	}

	return scopes
}

// OperationScopeResolver resolves scopes by checking operation metadata first,
// then falling back to method-based detection.
type OperationScopeResolver struct {
	fallback *MethodScopeResolver
}

// NewOperationScopeResolver creates a new operation-aware scope resolver.
func NewOperationScopeResolver() *OperationScopeResolver {
	return &OperationScopeResolver{
		fallback: NewMethodScopeResolver(),
	}
}

// Resolve returns the scopes for a request, checking operation metadata first.
func (r *OperationScopeResolver) Resolve(ctx huma.Context) []Scope {
	cfg := GetEndpointConfig(ctx)
	if cfg == nil || cfg.Scope == "" {
		return r.fallback.Resolve(ctx)
	}

	return []Scope{ScopeGlobal, cfg.Scope}
}

// GetEndpointConfig extracts the EndpointConfig from operation metadata, if present.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}
