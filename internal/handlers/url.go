package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// Shortener is the service behind the URL handlers.
type Shortener interface {
	Allocate(ctx context.Context, req shortener.AllocateRequest) (*shortener.Record, error)
	Resolve(ctx context.Context, key shortener.Slug) (string, error)
	Rename(ctx context.Context, recordID, ownerID string, newSlug shortener.Slug) (shortener.Slug, error)
}

// URLHandler handles short link operations.
type URLHandler struct {
	service    Shortener
	baseURL    string
	publishers *analytics.Publishers
	logger     *zap.Logger
	now        func() time.Time
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service Shortener,
	baseURL string,
	publishers *analytics.Publishers,
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:    service,
		baseURL:    baseURL,
		publishers: publishers,
		logger:     logger,
		now:        time.Now,
	}
}

func (h *URLHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	meta := RequestMetaFromContext(ctx)

	allocate := shortener.AllocateRequest{Original: req.Body.Original}
	if req.Body.CustomSlug != "" {
		allocate.DesiredSlug = &req.Body.CustomSlug
	}

	if meta.Principal != "" {
		allocate.OwnerID = &meta.Principal
	}

	record, err := h.service.Allocate(ctx, allocate)
	if err != nil {
		return nil, h.statusError(err, "shorten", zap.String("request_id", meta.RequestID))
	}

	event := &analytics.SlugCreatedEvent{
		RecordID:  record.ID,
		Slug:      string(record.Slug),
		Original:  record.Original,
		Custom:    allocate.DesiredSlug != nil,
		OwnerID:   meta.Principal,
		CreatedAt: record.CreatedAt,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishers.Created(ctx, event); err != nil {
		h.logger.Error("failed to publish analytics event",
			zap.String("slug", event.Slug),
			zap.Error(err),
		)
	}

	shortURL := h.baseURL + "/" + string(record.Slug)

	resp := &ShortenResponse{}
	resp.Headers.Location = shortURL
	resp.Body.Slug = string(record.Slug)
	resp.Body.ShortURL = shortURL

	return resp, nil
}

func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	original, err := h.service.Resolve(ctx, shortener.Slug(req.Slug))
	if err != nil {
		return nil, h.statusError(err, "redirect", zap.String("slug", req.Slug))
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.SlugResolvedEvent{
		Slug:       req.Slug,
		ResolvedAt: h.now(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err := h.publishers.Resolved(ctx, event); err != nil {
		h.logger.Error("failed to publish access event",
			zap.String("slug", event.Slug),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{Status: http.StatusFound}
	resp.Headers.Location = original
	resp.Headers.CacheControl = "no-store"

	return resp, nil
}

func (h *URLHandler) UpdateSlug(ctx context.Context, req *UpdateSlugRequest) (*UpdateSlugResponse, error) {
	meta := RequestMetaFromContext(ctx)
	newSlug := shortener.Slug(req.Body.NewSlug)

	previous, err := h.service.Rename(ctx, req.Body.URLID, meta.Principal, newSlug)
	if err != nil {
		return nil, h.statusError(err, "update slug",
			zap.String("record_id", req.Body.URLID),
			zap.String("request_id", meta.RequestID),
		)
	}

	event := &analytics.SlugRenamedEvent{
		RecordID:  req.Body.URLID,
		OldSlug:   string(previous),
		NewSlug:   string(newSlug),
		OwnerID:   meta.Principal,
		RenamedAt: h.now(),
	}

	if err := h.publishers.Renamed(ctx, event); err != nil {
		h.logger.Error("failed to publish rename event",
			zap.String("slug", event.NewSlug),
			zap.Error(err),
		)
	}

	resp := &UpdateSlugResponse{}
	resp.Body.Success = true
	resp.Body.NewSlug = string(newSlug)

	return resp, nil
}
