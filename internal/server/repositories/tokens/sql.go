package tokens

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

func (r *SQLRepository) Create(ctx context.Context, token *models.AuthToken) error {

	query :=
		`INSERT INTO auth_tokens (token, user_id, created_at)
		 VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query,
		token.Token, token.UserID, models.FormatTime(token.CreatedAt))

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLRepository) GetUserID(ctx context.Context, token string) (int64, error) {
	query :=
		`SELECT user_id FROM auth_tokens
		 WHERE token = $1
		 `

	var userID int64
	err := r.db.QueryRowContext(ctx, query, token).Scan(&userID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return userID, nil
}
