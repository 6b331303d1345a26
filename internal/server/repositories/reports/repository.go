package reports

import (
	"context"

	"github.com/pulsepal/pulsepal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error)

	// GetLatest returns the most recently inserted report,
	// common.ErrorNotFound when the user has none.
	GetLatest(ctx context.Context, userID int64) (*models.DailyReport, error)
}
