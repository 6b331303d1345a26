package tokens

import (
	"context"

	"github.com/pulsepal/pulsepal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.AuthToken) error
	GetUserID(ctx context.Context, token string) (int64, error)
}
