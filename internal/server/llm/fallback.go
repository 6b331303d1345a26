package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pulsepal/pulsepal/internal/server/models"
)

// Deterministic local computations used when no external capability is
// configured or an external call fails. Their output wording is part of
// the external behavior and must stay stable.

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// FallbackExtract scans the message for a fixed set of trigger phrases.
// Note that the stress trigger produces an event but does not contribute
// to the top_tags memory patch.
func FallbackExtract(message string) *models.ExtractionResult {
	lower := strings.ToLower(message)

	events := []models.EventDraft{}
	riskFlags := []models.RiskFlag{}
	tags := []any{}

	if containsAny(lower, "tired", "fatigue", "exhausted") {
		tags = append(tags, "fatigue")
		events = append(events, models.EventDraft{
			EventType: "symptom",
			Title:     "Low energy",
			Details:   "User mentioned tiredness or fatigue.",
			Severity:  "medium",
			TimeRef:   "today",
			Tags:      []string{"fatigue"},
		})
	}
	if containsAny(lower, "dizzy", "dizziness") {
		tags = append(tags, "dizziness")
		events = append(events, models.EventDraft{
			EventType: "symptom",
			Title:     "Dizziness",
			Details:   "User reported dizziness.",
			Severity:  "medium",
			TimeRef:   "today",
			Tags:      []string{"dizziness"},
		})
	}
	if containsAny(lower, "anxious", "stress", "stressed") {
		events = append(events, models.EventDraft{
			EventType: "stress",
			Title:     "Stress spike",
			Details:   "User mentioned stress or anxiety.",
			Severity:  "medium",
			TimeRef:   "today",
			Tags:      []string{"stress"},
		})
	}
	if strings.Contains(lower, "chest pain") || strings.Contains(lower, "can't breathe") {
		riskFlags = append(riskFlags, models.RiskFlag{
			Flag:       "chest_pain",
			Confidence: "high",
			Note:       "Potentially urgent symptom phrase detected.",
		})
	}

	return &models.ExtractionResult{
		Events:    events,
		RiskFlags: riskFlags,
		MemoryPatch: map[string]any{
			"recurring_patterns": map[string]any{"top_tags": tags},
			"preferences":        map[string]any{},
			"known_triggers":     []any{},
			"helpful_actions":    []any{},
		},
		NeedsClarification: []string{},
	}
}

// FallbackRespond produces the fixed supportive reply. The risk level is
// high exactly when extraction raised any risk flag.
func FallbackRespond(extracted *models.ExtractionResult) *models.ResponseResult {
	riskLevel := "low"
	safetyFooter := ""
	if extracted != nil && len(extracted.RiskFlags) > 0 {
		riskLevel = "high"
		safetyFooter = "If symptoms become severe, sudden, or scary, seek urgent in-person care right away."
	}

	return &models.ResponseResult{
		Reply: "Thanks for sharing this. I can't diagnose, but I can help you track likely patterns and choose a practical next step. " +
			"Want to rate your energy, stress, and sleep from 1-10 today?",
		FollowUpQuestions: []string{
			"When did this start today?",
			"Anything different with sleep, hydration, or stress this week?",
		},
		SuggestedActions: []string{
			"Drink water and have a light snack if you have not eaten recently.",
			"Do a 2-minute breathing reset and note if symptoms shift.",
		},
		RiskLevel:    riskLevel,
		SafetyFooter: safetyFooter,
	}
}

// FallbackReport aggregates events (newest first) into the deterministic
// daily report: top-3 tags and event types by frequency, ties broken by
// first appearance in the input order.
func FallbackReport(events []models.Event) *models.ReportDocument {
	tagCount := map[string]int{}
	typeCount := map[string]int{}
	var tagOrder, typeOrder []string

	for _, e := range events {
		if _, seen := typeCount[e.EventType]; !seen {
			typeOrder = append(typeOrder, e.EventType)
		}
		typeCount[e.EventType]++
		for _, tag := range e.Tags {
			if _, seen := tagCount[tag]; !seen {
				tagOrder = append(tagOrder, tag)
			}
			tagCount[tag]++
		}
	}

	topTags := topCounts(tagOrder, tagCount, 3)
	topTypes := topCounts(typeOrder, typeCount, 3)

	patternSummary := make([]string, 0, len(topTags))
	dailyTopTags := make([]any, 0, len(topTags))
	for _, tag := range topTags {
		patternSummary = append(patternSummary, fmt.Sprintf("%s showed up %d times recently", tag, tagCount[tag]))
		dailyTopTags = append(dailyTopTags, tag)
	}
	if len(patternSummary) == 0 {
		patternSummary = []string{"Not enough data yet."}
	}

	var whatChanged []string
	if len(topTypes) > 0 {
		parts := make([]string, 0, len(topTypes))
		for _, t := range topTypes {
			parts = append(parts, fmt.Sprintf("%s (%d)", t, typeCount[t]))
		}
		whatChanged = []string{"Most frequent event types: " + strings.Join(parts, ", ")}
	} else {
		whatChanged = []string{"Still collecting baseline data over your first week."}
	}

	return &models.ReportDocument{
		PatternSummary:       patternSummary,
		WhatChanged:          whatChanged,
		PossibleExplanations: []string{"Sleep, hydration, and stress swings often move together."},
		SuggestedNextSteps: []string{
			"Keep daily check-ins brief but consistent.",
			"Track one behavior change tomorrow.",
		},
		CheckInMessage:    "Quick check-in: what felt better or worse today vs yesterday?",
		TomorrowQuestions: []string{"How was your sleep quality?", "What was your stress peak today?"},
		RiskLevel:         "low",
		MemoryPatch: map[string]any{
			"recurring_patterns": map[string]any{"daily_top_tags": dailyTopTags},
		},
		Stats: models.ReportStats{EventTypes: typeCount, TagFrequency: tagCount},
	}
}

// topCounts returns up to n keys ordered by descending count; the stable
// sort keeps first-seen order among equal counts.
func topCounts(order []string, counts map[string]int, n int) []string {
	keys := make([]string, len(order))
	copy(keys, order)
	sort.SliceStable(keys, func(i, j int) bool {
		return counts[keys[i]] > counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
