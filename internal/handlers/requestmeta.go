package handlers

import "context"

type requestMetaKey struct{}

// RequestMeta holds per-request data gathered by the middleware chain.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
	RequestID string
	// Principal is the authenticated user id forwarded by the auth proxy.
	// Empty means anonymous.
	Principal string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}
