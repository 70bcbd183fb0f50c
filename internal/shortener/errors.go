package shortener

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for malformed URLs, slugs or missing fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSlugTaken is returned when a live record already holds the slug.
	ErrSlugTaken = errors.New("slug already exists")
	// ErrNotFound is returned when no live record matches.
	ErrNotFound = errors.New("url not found")
	// ErrUnauthorized is returned when no principal was supplied.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInfrastructure marks store, cache or counter failures. Callers may retry.
	ErrInfrastructure = errors.New("infrastructure failure")
	// ErrCacheMiss is returned by Cache implementations when the slug is not cached.
	ErrCacheMiss = errors.New("cache miss")
)

func infraErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInfrastructure, op, err)
}

func invalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
