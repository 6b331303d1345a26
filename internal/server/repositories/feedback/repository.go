package feedback

import (
	"context"

	"github.com/pulsepal/pulsepal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
}
