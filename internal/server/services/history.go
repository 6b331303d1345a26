package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pulsepal/pulsepal/internal/common"
	"github.com/pulsepal/pulsepal/internal/server/models"
	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
)

const (
	threadLimit      = 100
	timelineMaxLimit = 500
)

// HistoryService serves the read endpoints: conversation thread, latest
// insight and the event timeline.
type HistoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHistoryService(db *sql.DB, m repomanager.RepositoryManager) *HistoryService {
	return &HistoryService{db: db, repomanager: m}
}

// Thread returns the last messages in conversation order.
func (s *HistoryService) Thread(ctx context.Context, userID int64) ([]models.Message, error) {
	msgs, err := s.repomanager.Messages(s.db).ListRecent(ctx, userID, threadLimit)
	if err != nil {
		return nil, err
	}
	reverse(msgs)
	return msgs, nil
}

// LatestInsight returns the most recent daily report, or nil when the
// user has none yet.
func (s *HistoryService) LatestInsight(ctx context.Context, userID int64) (*models.DailyReport, error) {
	report, err := s.repomanager.Reports(s.db).GetLatest(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return report, nil
}

// Timeline returns recent events in chronological order. The window is
// ten events per requested day, clamped to [1, 500].
func (s *HistoryService) Timeline(ctx context.Context, userID int64, days int) ([]models.Event, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must not be negative", common.ErrorValidation)
	}
	limit := days * 10
	if limit < 1 {
		limit = 1
	}
	if limit > timelineMaxLimit {
		limit = timelineMaxLimit
	}

	events, err := s.repomanager.Events(s.db).ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	reverse(events)
	return events, nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
