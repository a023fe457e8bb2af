// Package service implements the application's use cases on top of the
// repositories: input validation, authorization and response shaping.
package service

import (
	"context"

	"zephyr/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Default and maximum window sizes.
const (
	DefaultListLimit   = 100
	DefaultFeedLimit   = 50
	DefaultSearchLimit = 20
	MaxWindowLimit     = 100
)

// ClampLimit bounds limit to [1, MaxWindowLimit].
func ClampLimit(limit int) int {
	switch {
	case limit < 1:
		return 1
	case limit > MaxWindowLimit:
		return MaxWindowLimit
	default:
		return limit
	}
}

func startSpan(ctx context.Context, name string, id uint) (context.Context, trace.Span) {
	if id == 0 {
		return observability.StartSpan(ctx, name)
	}
	return observability.StartSpan(ctx, name, attribute.Int64("zephyr.id", int64(id)))
}

// orEmpty keeps JSON list fields as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
