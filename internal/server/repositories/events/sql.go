package events

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *SQLRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {

	query :=
		`INSERT INTO events (user_id, source_message_id, event_type, title, details, severity, time_ref, tags_json, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id
		 `

	tags := event.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshaling tags: %w", err)
	}

	err = r.db.QueryRowContext(ctx, query,
		event.UserID, event.SourceMessageID, event.EventType, event.Title,
		event.Details, event.Severity, event.TimeRef, string(tagsJSON),
		models.FormatTime(event.CreatedAt)).Scan(&event.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return event, nil
}

func (r *SQLRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]models.Event, error) {
	query :=
		`SELECT id, source_message_id, event_type, title, details, severity, time_ref, tags_json, created_at FROM events
		 WHERE user_id = $1
		 ORDER BY id DESC
		 LIMIT $2
		 `

	return r.list(ctx, query, userID, limit)
}

func (r *SQLRepository) ListRecentByCreatedAt(ctx context.Context, userID int64, limit int) ([]models.Event, error) {
	query :=
		`SELECT id, source_message_id, event_type, title, details, severity, time_ref, tags_json, created_at FROM events
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2
		 `

	return r.list(ctx, query, userID, limit)
}

func (r *SQLRepository) list(ctx context.Context, query string, userID int64, limit int) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		e := models.Event{UserID: userID}
		var sourceMessageID sql.NullInt64
		var tagsJSON string
		var createdAt string

		if err := rows.Scan(&e.ID, &sourceMessageID, &e.EventType, &e.Title,
			&e.Details, &e.Severity, &e.TimeRef, &tagsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if sourceMessageID.Valid {
			id := sourceMessageID.Int64
			e.SourceMessageID = &id
		}
		if tagsJSON == "" {
			tagsJSON = "[]"
		}
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return nil, fmt.Errorf("bad tags_json: %w", err)
		}
		if e.Tags == nil {
			e.Tags = []string{}
		}
		if e.CreatedAt, err = models.ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("bad created_at: %w", err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
