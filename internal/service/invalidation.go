package service

import (
	"context"
	"log/slog"
)

// RecommendationInvalidator drops cached recommendations after writes that
// change their inputs
type RecommendationInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
	InvalidateAll(ctx context.Context) error
}

func invalidateUser(ctx context.Context, inv RecommendationInvalidator, userID string) {
	if inv == nil {
		return
	}
	if err := inv.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("failed to invalidate user recommendations",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
	}
}

func invalidateAll(ctx context.Context, inv RecommendationInvalidator) {
	if inv == nil {
		return
	}
	if err := inv.InvalidateAll(ctx); err != nil {
		slog.Warn("failed to invalidate recommendations", slog.String("error", err.Error()))
	}
}
