package messages

import (
	"context"
	"database/sql"
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

func (r *SQLRepository) Create(ctx context.Context, message *models.Message) (*models.Message, error) {

	query :=
		`INSERT INTO messages (user_id, role, content, source, modulate_flags_json, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	var flags any
	if message.ModulateFlags != nil {
		flags = string(message.ModulateFlags)
	}

	err := r.db.QueryRowContext(ctx, query,
		message.UserID, message.Role, message.Content, message.Source,
		flags, models.FormatTime(message.CreatedAt)).Scan(&message.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return message, nil
}

func (r *SQLRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]models.Message, error) {
	query :=
		`SELECT id, role, content, source, modulate_flags_json, created_at FROM messages
		 WHERE user_id = $1
		 ORDER BY id DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		m := models.Message{UserID: userID}
		var flags sql.NullString
		var createdAt string

		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.Source, &flags, &createdAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if flags.Valid {
			m.ModulateFlags = []byte(flags.String)
		}
		if m.CreatedAt, err = models.ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("bad created_at: %w", err)
		}

		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
