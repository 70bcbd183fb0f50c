package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// statusError maps service errors onto HTTP problems. Infrastructure failures
// are logged here and reported without their cause.
func (h *URLHandler) statusError(err error, op string, fields ...zap.Field) error {
	switch {
	case errors.Is(err, shortener.ErrInvalidInput):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, shortener.ErrUnauthorized):
		return huma.Error401Unauthorized("authentication required")
	case errors.Is(err, shortener.ErrNotFound):
		return huma.Error404NotFound("short link not found")
	case errors.Is(err, shortener.ErrSlugTaken):
		return huma.Error409Conflict("slug already in use")
	}

	h.logger.Error(op+" failed", append(fields, zap.Error(err))...)

	return huma.Error503ServiceUnavailable("service temporarily unavailable")
}
