package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/messaging"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderPrincipal = "X-User-ID"

	maxRequestIDLength = 128
)

// RequestMeta is a middleware that collects client IP, user agent, referrer,
// request id and principal into the request context. The request id is taken
// from X-Request-ID when present, generated otherwise, echoed in the response
// and used as the correlation id of published events.
//
// X-Forwarded-For and X-User-ID are trusted: the service is expected to run
// behind a proxy that overwrites them.
func RequestMeta(_ huma.API, generateID func() string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		requestID := ctx.Header(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = generateID()
		}

		meta := handlers.RequestMeta{
			ClientIP:  ClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
			RequestID: requestID,
			Principal: strings.TrimSpace(ctx.Header(HeaderPrincipal)),
		}

		ctx.SetHeader(HeaderRequestID, requestID)

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		newCtx = messaging.WithCorrelationID(newCtx, requestID)

		next(huma.WithContext(ctx, newCtx))
	}
}

// ClientIP returns the first X-Forwarded-For address, falling back to the
// peer address of the connection.
func ClientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	addr := ctx.RemoteAddr()

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}
