package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/pulsepal/pulsepal/internal/common"
	"github.com/pulsepal/pulsepal/internal/dbx"
	"github.com/pulsepal/pulsepal/internal/logging"
	"github.com/pulsepal/pulsepal/internal/memdoc"
	"github.com/pulsepal/pulsepal/internal/server/llm"
	"github.com/pulsepal/pulsepal/internal/server/models"
	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
)

// DailyRunResult is the daily-run response: the report document
// flattened, plus which provider produced it and the stored row id.
type DailyRunResult struct {
	*models.ReportDocument
	Provider string `json:"provider"`
	ReportID int64  `json:"report_id"`
}

// ReportService produces and stores daily reports.
type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gateway     *llm.Gateway
	logger      logging.Logger
}

func NewReportService(db *sql.DB, m repomanager.RepositoryManager, gw *llm.Gateway, logger logging.Logger) *ReportService {
	return &ReportService{db: db, repomanager: m, gateway: gw, logger: logger}
}

// RunDaily generates today's report for userID, applies the report's
// memory patch, stores the report row and drops a check-in message into
// the conversation. One transaction end to end.
func (s *ReportService) RunDaily(ctx context.Context, userID int64) (*DailyRunResult, error) {
	var result *DailyRunResult
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		events, err := s.repomanager.Events(tx).ListRecentByCreatedAt(ctx, userID, reportEventLimit)
		if err != nil {
			return err
		}

		memory, err := s.repomanager.Memories(tx).Get(ctx, userID)
		if err != nil {
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}
			memory = map[string]any{}
		}

		payloadEvents := events
		if len(payloadEvents) > ToolEventLimit {
			payloadEvents = payloadEvents[:ToolEventLimit]
		}
		report, provider := s.gateway.GenerateReport(ctx, &llm.ReportPayload{
			UserMemory:   memory,
			RecentEvents: contextEvents(payloadEvents),
		}, events)

		if report.MemoryPatch != nil {
			memory = memdoc.Merge(memory, report.MemoryPatch)
		}
		if err := s.repomanager.Memories(tx).Save(ctx, userID, memory, time.Now()); err != nil {
			return err
		}

		doc, err := json.Marshal(report)
		if err != nil {
			return err
		}
		row, err := s.repomanager.Reports(tx).Create(ctx, &models.DailyReport{
			UserID:    userID,
			Date:      time.Now().UTC().Format("2006-01-02"),
			Report:    doc,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}

		if report.CheckInMessage != "" {
			_, err = s.repomanager.Messages(tx).Create(ctx, &models.Message{
				UserID:    userID,
				Role:      models.RoleAssistant,
				Content:   report.CheckInMessage,
				Source:    "text",
				CreatedAt: time.Now(),
			})
			if err != nil {
				return err
			}
		}

		result = &DailyRunResult{ReportDocument: report, Provider: provider, ReportID: row.ID}

		s.logger.Info(ctx, "daily report generated",
			"user_id", userID,
			"events", len(events),
			"provider", provider,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
