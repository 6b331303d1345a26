package memories

import (
	"context"
	"time"
)

type Repository interface {
	// Get returns the user's memory document, common.ErrorNotFound when
	// the user has none yet.
	Get(ctx context.Context, userID int64) (map[string]any, error)

	// Save upserts the whole document. Callers must only write documents
	// produced by the merge-patch operation (or the initial document).
	Save(ctx context.Context, userID int64, doc map[string]any, updatedAt time.Time) error
}
