package feedback

import (
	"context"
	"fmt"

	"github.com/pulsepal/pulsepal/internal/dbx"
	"github.com/pulsepal/pulsepal/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {

	query :=
		`INSERT INTO feedback (user_id, message_id, daily_report_id, helpful, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		fb.UserID, fb.MessageID, fb.DailyReportID, fb.Helpful, fb.Notes,
		models.FormatTime(fb.CreatedAt)).Scan(&fb.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return fb, nil
}
