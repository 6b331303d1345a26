package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pulsepal/pulsepal/internal/common"
	"github.com/pulsepal/pulsepal/internal/dbx"
	"github.com/pulsepal/pulsepal/internal/memdoc"
	"github.com/pulsepal/pulsepal/internal/server/models"
	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
)

// ToolService exposes the raw primitives behind the pipelines to trusted
// agent tooling: context reads, direct message/event/report writes, memory
// merges and the demo seed. Both the internal HTTP surface and the MCP
// tools delegate here.
type ToolService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	contexts    *ContextService
}

func NewToolService(db *sql.DB, m repomanager.RepositoryManager, cs *ContextService) *ToolService {
	return &ToolService{db: db, repomanager: m, contexts: cs}
}

// UserContext returns the snapshot with the wider tool event window.
func (s *ToolService) UserContext(ctx context.Context, userID int64) (*models.ContextSnapshot, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.contexts.Build(ctx, s.db, userID, ChatMessageLimit, ToolEventLimit)
}

// SaveMessage writes one conversation turn verbatim.
func (s *ToolService) SaveMessage(ctx context.Context, userID int64, role, content, source string, flags json.RawMessage) (*models.Message, error) {
	if role != models.RoleUser && role != models.RoleAssistant {
		return nil, fmt.Errorf("%w: role must be %q or %q", common.ErrorValidation, models.RoleUser, models.RoleAssistant)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrorValidation)
	}
	if source == "" {
		source = "text"
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Messages(s.db).Create(ctx, &models.Message{
		UserID:        userID,
		Role:          role,
		Content:       content,
		Source:        source,
		ModulateFlags: flags,
		CreatedAt:     time.Now(),
	})
}

// SaveEvents persists a batch of extracted events, all or nothing.
func (s *ToolService) SaveEvents(ctx context.Context, userID int64, drafts []models.EventDraft, sourceMessageID *int64) (int, error) {
	if len(drafts) == 0 {
		return 0, fmt.Errorf("%w: events are required", common.ErrorValidation)
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return 0, err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Events(tx)
		for _, draft := range drafts {
			draft.Fill()
			_, err := repo.Create(ctx, &models.Event{
				UserID:          userID,
				SourceMessageID: sourceMessageID,
				EventType:       draft.EventType,
				Title:           draft.Title,
				Details:         draft.Details,
				Severity:        draft.Severity,
				TimeRef:         draft.TimeRef,
				Tags:            draft.Tags,
				CreatedAt:       time.Now(),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(drafts), nil
}

// MergeMemory applies patch to the user's memory document and returns
// the merged result. The read-merge-write runs in one transaction.
func (s *ToolService) MergeMemory(ctx context.Context, userID int64, patch map[string]any) (map[string]any, error) {
	if patch == nil {
		return nil, fmt.Errorf("%w: patch is required", common.ErrorValidation)
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	var merged map[string]any
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		memory, err := s.repomanager.Memories(tx).Get(ctx, userID)
		if err != nil {
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}
			memory = map[string]any{}
		}
		merged = memdoc.Merge(memory, patch)
		return s.repomanager.Memories(tx).Save(ctx, userID, merged, time.Now())
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// SaveDailyReport stores a report document produced externally. An empty
// date defaults to today (UTC).
func (s *ToolService) SaveDailyReport(ctx context.Context, userID int64, date string, report json.RawMessage) (*models.DailyReport, error) {
	if len(report) == 0 {
		return nil, fmt.Errorf("%w: report is required", common.ErrorValidation)
	}
	if !json.Valid(report) {
		return nil, fmt.Errorf("%w: report must be valid JSON", common.ErrorValidation)
	}
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Reports(s.db).Create(ctx, &models.DailyReport{
		UserID:    userID,
		Date:      date,
		Report:    report,
		CreatedAt: time.Now(),
	})
}

// SeedSummary reports what SeedDemo inserted.
type SeedSummary struct {
	Messages int `json:"messages"`
	Events   int `json:"events"`
}

// SeedDemo fills an account with a small fixed data set so agent demos
// have something to work with: two conversation turns, three events and
// a matching memory patch.
func (s *ToolService) SeedDemo(ctx context.Context, userID int64) (*SeedSummary, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	summary := &SeedSummary{}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		msgRepo := s.repomanager.Messages(tx)
		inbound, err := msgRepo.Create(ctx, &models.Message{
			UserID:    userID,
			Role:      models.RoleUser,
			Content:   "Feeling tired and a bit stressed after a rough week.",
			Source:    "text",
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		_, err = msgRepo.Create(ctx, &models.Message{
			UserID:    userID,
			Role:      models.RoleAssistant,
			Content:   "Thanks for checking in. Let's keep an eye on energy and stress this week.",
			Source:    "text",
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		summary.Messages = 2

		seedEvents := []models.Event{
			{EventType: "symptom", Title: "Low energy", Details: "User mentioned tiredness or fatigue.",
				Severity: "medium", TimeRef: "today", Tags: []string{"fatigue"}},
			{EventType: "stress", Title: "Stress spike", Details: "User mentioned stress or anxiety.",
				Severity: "medium", TimeRef: "today", Tags: []string{"stress"}},
			{EventType: "mood", Title: "Mood dip", Details: "Low mood noted during evening check-in.",
				Severity: "low", TimeRef: "this week", Tags: []string{"mood"}},
		}
		eventRepo := s.repomanager.Events(tx)
		for i := range seedEvents {
			e := seedEvents[i]
			e.UserID = userID
			e.SourceMessageID = &inbound.ID
			e.CreatedAt = time.Now()
			if _, err := eventRepo.Create(ctx, &e); err != nil {
				return err
			}
		}
		summary.Events = len(seedEvents)

		memory, err := s.repomanager.Memories(tx).Get(ctx, userID)
		if err != nil {
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}
			memory = map[string]any{}
		}
		merged := memdoc.Merge(memory, map[string]any{
			"recurring_patterns": map[string]any{"top_tags": []any{"fatigue", "stress"}},
		})
		return s.repomanager.Memories(tx).Save(ctx, userID, merged, time.Now())
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// checkUser rejects writes and reads for user ids that do not exist.
func (s *ToolService) checkUser(ctx context.Context, userID int64) error {
	_, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: unknown user %d", common.ErrorNotFound, userID)
		}
		return err
	}
	return nil
}
