package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsepal/pulsepal/internal/common"
	"github.com/pulsepal/pulsepal/internal/server/models"
)

func TestThread_ChronologicalOrder(t *testing.T) {
	db, m := newTestDB(t)
	ctx := context.Background()

	users := NewUserService(db, m)
	signed, err := users.SignUp(ctx, "alice@example.com", "secret-pass", "")
	require.NoError(t, err)

	repo := m.Messages(db)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &models.Message{
			UserID:    signed.UserID,
			Role:      models.RoleUser,
			Content:   fmt.Sprintf("message %d", i),
			Source:    "text",
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	history := NewHistoryService(db, m)
	msgs, err := history.Thread(ctx, signed.UserID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "message 0", msgs[0].Content)
	assert.Equal(t, "message 2", msgs[2].Content)
}

func TestLatestInsight_NoneYet(t *testing.T) {
	db, m := newTestDB(t)
	history := NewHistoryService(db, m)

	report, err := history.LatestInsight(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestTimeline_ClampsWindow(t *testing.T) {
	db, m := newTestDB(t)
	ctx := context.Background()

	users := NewUserService(db, m)
	signed, err := users.SignUp(ctx, "bob@example.com", "secret-pass", "")
	require.NoError(t, err)

	repo := m.Events(db)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &models.Event{
			UserID: signed.UserID, EventType: "symptom", Title: fmt.Sprintf("event %d", i),
			Severity: "low", TimeRef: "today", Tags: []string{}, CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	history := NewHistoryService(db, m)

	// days=0 clamps the window to a single event, the newest one
	events, err := history.Timeline(ctx, signed.UserID, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "event 2", events[0].Title)

	// a normal window returns chronological order
	events, err = history.Timeline(ctx, signed.UserID, 30)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "event 0", events[0].Title)

	_, err = history.Timeline(ctx, signed.UserID, -1)
	assert.ErrorIs(t, err, common.ErrorValidation)
}
