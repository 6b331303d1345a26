package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/pulsepal/pulsepal/internal/server/models"
	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
)

// FeedbackService records helpfulness ratings.
type FeedbackService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFeedbackService(db *sql.DB, m repomanager.RepositoryManager) *FeedbackService {
	return &FeedbackService{db: db, repomanager: m}
}

// Add stores one rating, optionally tied to a message or a daily report.
func (s *FeedbackService) Add(ctx context.Context, userID int64, messageID, dailyReportID *int64, helpful bool, notes string) error {
	_, err := s.repomanager.Feedback(s.db).Create(ctx, &models.Feedback{
		UserID:        userID,
		MessageID:     messageID,
		DailyReportID: dailyReportID,
		Helpful:       helpful,
		Notes:         notes,
		CreatedAt:     time.Now(),
	})
	return err
}
