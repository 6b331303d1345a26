package memories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

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

func (r *SQLRepository) Get(ctx context.Context, userID int64) (map[string]any, error) {
	query :=
		`SELECT memory_json FROM user_memory
		 WHERE user_id = $1
		 `

	var raw string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&raw)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("bad memory_json: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	return doc, nil
}

func (r *SQLRepository) Save(ctx context.Context, userID int64, doc map[string]any, updatedAt time.Time) error {
	query :=
		`INSERT INTO user_memory (user_id, memory_json, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET memory_json = excluded.memory_json, updated_at = excluded.updated_at
		 `

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling memory: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, userID, string(raw), models.FormatTime(updatedAt))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
