package events

import (
	"context"

	"github.com/pulsepal/pulsepal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)

	// ListRecent returns up to limit events, newest first by insertion.
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.Event, error)

	// ListRecentByCreatedAt is the daily-report read: newest first by
	// creation timestamp, insertion order breaking ties.
	ListRecentByCreatedAt(ctx context.Context, userID int64, limit int) ([]models.Event, error)
}
