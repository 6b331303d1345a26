package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsepal/pulsepal/internal/server/models"
)

func TestRunDaily_Aggregate(t *testing.T) {
	db, m := newTestDB(t)
	ctx := context.Background()

	users := NewUserService(db, m)
	signed, err := users.SignUp(ctx, "alice@example.com", "secret-pass", "")
	require.NoError(t, err)

	repo := m.Events(db)
	for _, e := range []models.Event{
		{EventType: "symptom", Title: "Low energy", Tags: []string{"fatigue"}},
		{EventType: "symptom", Title: "Low energy", Tags: []string{"fatigue"}},
		{EventType: "stress", Title: "Stress spike", Tags: []string{"stress"}},
	} {
		e.UserID = signed.UserID
		e.Severity = "medium"
		e.TimeRef = "today"
		e.CreatedAt = time.Now()
		_, err := repo.Create(ctx, &e)
		require.NoError(t, err)
	}

	reports := NewReportService(db, m, fallbackGateway(), testLogger())
	result, err := reports.RunDaily(ctx, signed.UserID)
	require.NoError(t, err)

	assert.Equal(t, "fallback", result.Provider)
	assert.Equal(t, []string{
		"fatigue showed up 2 times recently",
		"stress showed up 1 times recently",
	}, result.PatternSummary)
	assert.Equal(t, map[string]int{"symptom": 2, "stress": 1}, result.Stats.EventTypes)

	// report row persisted with today's date and a parseable document
	row, err := m.Reports(db).GetLatest(ctx, signed.UserID)
	require.NoError(t, err)
	assert.Equal(t, result.ReportID, row.ID)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), row.Date)
	var stored models.ReportDocument
	require.NoError(t, json.Unmarshal(row.Report, &stored))
	assert.Equal(t, result.PatternSummary, stored.PatternSummary)

	// the check-in message landed in the conversation
	msgs, err := m.Messages(db).ListRecent(ctx, signed.UserID, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleAssistant, msgs[0].Role)
	assert.Equal(t, stored.CheckInMessage, msgs[0].Content)

	// memory patched with the daily top tags
	doc, err := m.Memories(db).Get(ctx, signed.UserID)
	require.NoError(t, err)
	patterns := doc["recurring_patterns"].(map[string]any)
	assert.Equal(t, []any{"fatigue", "stress"}, patterns["daily_top_tags"])
}

func TestRunDaily_NoEvents(t *testing.T) {
	db, m := newTestDB(t)
	ctx := context.Background()

	users := NewUserService(db, m)
	signed, err := users.SignUp(ctx, "bob@example.com", "secret-pass", "")
	require.NoError(t, err)

	reports := NewReportService(db, m, fallbackGateway(), testLogger())
	result, err := reports.RunDaily(ctx, signed.UserID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Not enough data yet."}, result.PatternSummary)
	assert.Equal(t, []string{"Still collecting baseline data over your first week."}, result.WhatChanged)
}
