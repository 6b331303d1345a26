package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pulsepal/pulsepal/internal/common"
	"github.com/pulsepal/pulsepal/internal/dbx"
	"github.com/pulsepal/pulsepal/internal/logging"
	"github.com/pulsepal/pulsepal/internal/memdoc"
	"github.com/pulsepal/pulsepal/internal/server/llm"
	"github.com/pulsepal/pulsepal/internal/server/models"
	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
)

// DefaultReply is used when a capability response carries no reply text.
const DefaultReply = "I am here for you. Want to do a short check-in?"

// Pipeline names which provider served each half of a chat turn.
type Pipeline struct {
	ExtractorProvider string `json:"extractor_provider"`
	ResponderProvider string `json:"responder_provider"`
}

// ChatTurnResult is the chat-send response: the response document
// flattened, plus pipeline metadata and the raw extraction.
type ChatTurnResult struct {
	*models.ResponseResult
	Pipeline  Pipeline                 `json:"pipeline"`
	Extracted *models.ExtractionResult `json:"extracted"`
}

// ChatService runs the chat turn pipeline.
type ChatService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gateway     *llm.Gateway
	contexts    *ContextService
	logger      logging.Logger
}

func NewChatService(db *sql.DB, m repomanager.RepositoryManager, gw *llm.Gateway,
	cs *ContextService, logger logging.Logger) *ChatService {
	return &ChatService{db: db, repomanager: m, gateway: gw, contexts: cs, logger: logger}
}

// HandleMessage runs one full turn: persist the inbound message, snapshot
// context, extract events and a memory patch, merge memory, generate the
// reply and persist it. The whole sequence is one transaction, so a
// failed turn leaves no partial rows.
func (s *ChatService) HandleMessage(ctx context.Context, userID int64, content, source string) (*ChatTurnResult, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrorValidation)
	}
	if source == "" {
		source = "text"
	}

	var result *ChatTurnResult
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inbound, err := s.repomanager.Messages(tx).Create(ctx, &models.Message{
			UserID:    userID,
			Role:      models.RoleUser,
			Content:   content,
			Source:    source,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}

		snapshot, err := s.contexts.Build(ctx, tx, userID, ChatMessageLimit, ChatEventLimit)
		if err != nil {
			return err
		}

		extracted, extractorProvider := s.gateway.Extract(ctx, &llm.ExtractPayload{
			UserMessage:    content,
			UserMemory:     snapshot.Memory,
			RecentEvents:   snapshot.Events,
			RecentMessages: snapshot.Messages,
		})

		eventRepo := s.repomanager.Events(tx)
		for _, draft := range extracted.Events {
			draft.Fill()
			_, err := eventRepo.Create(ctx, &models.Event{
				UserID:          userID,
				SourceMessageID: &inbound.ID,
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

		merged := snapshot.Memory
		if extracted.MemoryPatch != nil {
			merged = memdoc.Merge(snapshot.Memory, extracted.MemoryPatch)
		}
		if err := s.repomanager.Memories(tx).Save(ctx, userID, merged, time.Now()); err != nil {
			return err
		}

		response, responderProvider := s.gateway.Respond(ctx, &llm.RespondPayload{
			UserMessage:    content,
			Extracted:      extracted,
			UserMemory:     snapshot.Memory,
			RecentMessages: snapshot.Messages,
			DailyReport:    snapshot.LatestReport,
		})
		if response.Reply == "" {
			response.Reply = DefaultReply
		}

		flags, err := json.Marshal(extracted.RiskFlags)
		if err != nil {
			return err
		}
		_, err = s.repomanager.Messages(tx).Create(ctx, &models.Message{
			UserID:        userID,
			Role:          models.RoleAssistant,
			Content:       response.Reply,
			Source:        "text",
			ModulateFlags: flags,
			CreatedAt:     time.Now(),
		})
		if err != nil {
			return err
		}

		result = &ChatTurnResult{
			ResponseResult: response,
			Pipeline: Pipeline{
				ExtractorProvider: extractorProvider,
				ResponderProvider: responderProvider,
			},
			Extracted: extracted,
		}

		s.logger.Info(ctx, "chat turn handled",
			"user_id", userID,
			"events", len(extracted.Events),
			"extractor", extractorProvider,
			"responder", responderProvider,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
