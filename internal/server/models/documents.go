package models

// Wire documents exchanged with the model capabilities. Field names are
// part of the external contract and must not change.

// EventDraft is an event as proposed by extraction, before persistence.
type EventDraft struct {
	EventType string   `json:"event_type"`
	Title     string   `json:"title"`
	Details   string   `json:"details"`
	Severity  string   `json:"severity"`
	TimeRef   string   `json:"time_ref"`
	Tags      []string `json:"tags"`
}

// RiskFlag marks a potentially urgent symptom phrase.
type RiskFlag struct {
	Flag       string `json:"flag"`
	Confidence string `json:"confidence"`
	Note       string `json:"note"`
}

// ExtractionResult is what the extraction capability returns for one
// inbound message.
type ExtractionResult struct {
	Events             []EventDraft   `json:"events"`
	RiskFlags          []RiskFlag     `json:"risk_flags"`
	MemoryPatch        map[string]any `json:"memory_patch"`
	NeedsClarification []string       `json:"needs_clarification"`
}

// ResponseResult is the supportive reply produced for one inbound message.
type ResponseResult struct {
	Reply             string   `json:"reply"`
	FollowUpQuestions []string `json:"follow_up_questions"`
	SuggestedActions  []string `json:"suggested_actions"`
	RiskLevel         string   `json:"risk_level"`
	SafetyFooter      string   `json:"safety_footer"`
}

// ReportStats carries the raw frequency counts behind a daily report.
type ReportStats struct {
	EventTypes   map[string]int `json:"event_types"`
	TagFrequency map[string]int `json:"tag_frequency"`
}

// ReportDocument is the daily report document schema.
type ReportDocument struct {
	PatternSummary       []string       `json:"pattern_summary"`
	WhatChanged          []string       `json:"what_changed"`
	PossibleExplanations []string       `json:"possible_explanations_non_diagnostic"`
	SuggestedNextSteps   []string       `json:"suggested_next_steps"`
	CheckInMessage       string         `json:"check_in_message"`
	TomorrowQuestions    []string       `json:"tomorrow_questions"`
	RiskLevel            string         `json:"risk_level"`
	MemoryPatch          map[string]any `json:"memory_patch"`
	Stats                ReportStats    `json:"stats"`
}

// Fill applies the storage defaults for fields extraction may omit.
func (d *EventDraft) Fill() {
	if d.EventType == "" {
		d.EventType = "incident"
	}
	if d.Title == "" {
		d.Title = "Event"
	}
	if d.Severity == "" {
		d.Severity = "low"
	}
	if d.TimeRef == "" {
		d.TimeRef = "unknown"
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
}
