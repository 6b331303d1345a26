package messages

import (
	"context"

	"github.com/pulsepal/pulsepal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, message *models.Message) (*models.Message, error)

	// ListRecent returns up to limit messages, newest first. Callers that
	// need conversation order reverse the slice.
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.Message, error)
}
