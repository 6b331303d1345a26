package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsepal/pulsepal/internal/common"
	"github.com/pulsepal/pulsepal/internal/server/models"
)

func TestHandleMessage_FallbackTurn(t *testing.T) {
	db, m := newTestDB(t)
	ctx := context.Background()

	users := NewUserService(db, m)
	signed, err := users.SignUp(ctx, "alice@example.com", "secret-pass", "")
	require.NoError(t, err)

	chat := NewChatService(db, m, fallbackGateway(), NewContextService(m), testLogger())

	result, err := chat.HandleMessage(ctx, signed.UserID, "I feel dizzy and tired after poor sleep", "")
	require.NoError(t, err)

	assert.Equal(t, "fallback", result.Pipeline.ExtractorProvider)
	assert.Equal(t, "fallback", result.Pipeline.ResponderProvider)
	assert.Contains(t, result.Reply, "I can't diagnose")
	assert.Equal(t, "low", result.RiskLevel)
	require.Len(t, result.Extracted.Events, 2)

	// both events persisted and tied to the inbound message
	events, err := m.Events(db).ListRecent(ctx, signed.UserID, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Dizziness", events[0].Title)
	assert.Equal(t, "Low energy", events[1].Title)
	require.NotNil(t, events[0].SourceMessageID)
	assert.Equal(t, *events[0].SourceMessageID, *events[1].SourceMessageID)

	// the turn is two stored messages: user then assistant
	msgs, err := m.Messages(db).ListRecent(ctx, signed.UserID, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleAssistant, msgs[0].Role)
	assert.Equal(t, result.Reply, msgs[0].Content)
	assert.Equal(t, models.RoleUser, msgs[1].Role)

	// memory patch merged
	doc, err := m.Memories(db).Get(ctx, signed.UserID)
	require.NoError(t, err)
	patterns := doc["recurring_patterns"].(map[string]any)
	assert.Equal(t, []any{"fatigue", "dizziness"}, patterns["top_tags"])
}

func TestHandleMessage_RiskFlags(t *testing.T) {
	db, m := newTestDB(t)
	ctx := context.Background()

	users := NewUserService(db, m)
	signed, err := users.SignUp(ctx, "bob@example.com", "secret-pass", "")
	require.NoError(t, err)

	chat := NewChatService(db, m, fallbackGateway(), NewContextService(m), testLogger())

	result, err := chat.HandleMessage(ctx, signed.UserID, "I have chest pain right now", "text")
	require.NoError(t, err)

	assert.Equal(t, "high", result.RiskLevel)
	assert.NotEmpty(t, result.SafetyFooter)
	require.Len(t, result.Extracted.RiskFlags, 1)

	// the assistant message carries the risk flags
	msgs, err := m.Messages(db).ListRecent(ctx, signed.UserID, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	var flags []models.RiskFlag
	require.NoError(t, json.Unmarshal(msgs[0].ModulateFlags, &flags))
	require.Len(t, flags, 1)
	assert.Equal(t, "chest_pain", flags[0].Flag)
}

func TestHandleMessage_MemoryAccumulatesAcrossTurns(t *testing.T) {
	db, m := newTestDB(t)
	ctx := context.Background()

	users := NewUserService(db, m)
	signed, err := users.SignUp(ctx, "carol@example.com", "secret-pass", "")
	require.NoError(t, err)

	chat := NewChatService(db, m, fallbackGateway(), NewContextService(m), testLogger())

	_, err = chat.HandleMessage(ctx, signed.UserID, "so tired today", "text")
	require.NoError(t, err)
	_, err = chat.HandleMessage(ctx, signed.UserID, "feeling dizzy and tired again", "text")
	require.NoError(t, err)

	doc, err := m.Memories(db).Get(ctx, signed.UserID)
	require.NoError(t, err)
	patterns := doc["recurring_patterns"].(map[string]any)
	// list union keeps one copy of fatigue, first occurrence first
	assert.Equal(t, []any{"fatigue", "dizziness"}, patterns["top_tags"])
}

func TestHandleMessage_EmptyContent(t *testing.T) {
	db, m := newTestDB(t)
	chat := NewChatService(db, m, fallbackGateway(), NewContextService(m), testLogger())

	_, err := chat.HandleMessage(context.Background(), 1, "", "text")
	assert.ErrorIs(t, err, common.ErrorValidation)
}
