package services

import (
	"context"
	"errors"

	"github.com/pulsepal/pulsepal/internal/common"
	"github.com/pulsepal/pulsepal/internal/dbx"
	"github.com/pulsepal/pulsepal/internal/server/models"
	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
)

// Context window sizes. The chat pipeline sees a short window; the
// trusted tool surface gets a wider event window for report work.
const (
	ChatMessageLimit = 10
	ChatEventLimit   = 20
	ToolEventLimit   = 40

	reportEventLimit = 200
)

// ContextService assembles the per-user snapshot handed to the model
// capabilities.
type ContextService struct {
	repomanager repomanager.RepositoryManager
}

func NewContextService(m repomanager.RepositoryManager) *ContextService {
	return &ContextService{repomanager: m}
}

// Build reads the snapshot through db, which may be a transaction so the
// chat pipeline sees its own uncommitted writes.
func (s *ContextService) Build(ctx context.Context, db dbx.DBTX, userID int64, msgLimit, eventLimit int) (*models.ContextSnapshot, error) {
	memory, err := s.repomanager.Memories(db).Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		memory = map[string]any{}
	}

	recent, err := s.repomanager.Messages(db).ListRecent(ctx, userID, msgLimit)
	if err != nil {
		return nil, err
	}
	msgs := make([]models.ContextMessage, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		msgs = append(msgs, models.ContextMessage{
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: models.FormatTime(m.CreatedAt),
		})
	}

	events, err := s.repomanager.Events(db).ListRecent(ctx, userID, eventLimit)
	if err != nil {
		return nil, err
	}

	snapshot := &models.ContextSnapshot{
		Memory:   memory,
		Messages: msgs,
		Events:   contextEvents(events),
	}

	latest, err := s.repomanager.Reports(db).GetLatest(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if latest != nil {
		snapshot.LatestReport = latest.Report
	}

	return snapshot, nil
}

// contextEvents converts newest-first rows to the oldest-first wire shape.
func contextEvents(events []models.Event) []models.ContextEvent {
	out := make([]models.ContextEvent, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		out = append(out, models.ContextEvent{
			EventType: e.EventType,
			Title:     e.Title,
			Severity:  e.Severity,
			TimeRef:   e.TimeRef,
			Tags:      e.Tags,
			CreatedAt: models.FormatTime(e.CreatedAt),
		})
	}
	return out
}
