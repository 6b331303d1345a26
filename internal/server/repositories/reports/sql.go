package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pulsepal/pulsepal/internal/common"
	"github.com/pulsepal/pulsepal/internal/dbx"
	"github.com/pulsepal/pulsepal/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error) {

	query :=
		`INSERT INTO daily_reports (user_id, date, report_json, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		report.UserID, report.Date, string(report.Report),
		models.FormatTime(report.CreatedAt)).Scan(&report.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return report, nil
}

func (r *SQLRepository) GetLatest(ctx context.Context, userID int64) (*models.DailyReport, error) {
	query :=
		`SELECT id, date, report_json, created_at FROM daily_reports
		 WHERE user_id = $1
		 ORDER BY id DESC
		 LIMIT 1
		 `

	report := &models.DailyReport{UserID: userID}
	var raw string
	var createdAt string

	err := r.db.QueryRowContext(ctx, query, userID).Scan(&report.ID, &report.Date, &raw, &createdAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	report.Report = []byte(raw)
	if report.CreatedAt, err = models.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at: %w", err)
	}

	return report, nil
}
