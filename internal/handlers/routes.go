package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/ratelimit"
)

// Per-client limits, one fixed window each.
var (
	ShortenLimit    = ratelimit.LimitConfig{Max: 30, Window: time.Minute}
	RedirectLimit   = ratelimit.LimitConfig{Max: 60, Window: time.Minute}
	UpdateSlugLimit = ratelimit.LimitConfig{Max: 5, Window: time.Minute}
)

// RegisterRoutes registers the short link routes with their rate limit configuration.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "shorten",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short link",
		Description:   "Allocates the next counter slug, or the requested custom slug when it is free.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Scope: ratelimit.ScopeShorten,
				Limit: ShortenLimit,
			},
		},
	}, urlHandler.Shorten)

	huma.Register(api, huma.Operation{
		OperationID: "update-slug",
		Method:      http.MethodPost,
		Path:        "/update-slug",
		Summary:     "Rename a short link",
		Description: "Moves a record owned by the caller to a new slug. The old slug stops resolving.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Scope: ratelimit.ScopeUpdateSlug,
				Limit: UpdateSlugLimit,
			},
		},
	}, urlHandler.UpdateSlug)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{slug}",
		Summary:     "Redirect to original URL",
		Description: "Temporarily redirects to the original URL stored under the slug.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Scope: ratelimit.ScopeRedirect,
				Limit: RedirectLimit,
			},
		},
	}, urlHandler.Redirect)
}
