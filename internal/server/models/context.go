package models

import "encoding/json"

// ContextMessage is a conversation turn as presented to the model
// capabilities.
type ContextMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ContextEvent is an extracted event as presented to the model
// capabilities.
type ContextEvent struct {
	EventType string   `json:"event_type"`
	Title     string   `json:"title"`
	Severity  string   `json:"severity"`
	TimeRef   string   `json:"time_ref"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
}

// ContextSnapshot is everything the model capabilities get to see about a
// user: the memory document, recent conversation and events oldest-first,
// and the latest daily report if one exists.
type ContextSnapshot struct {
	Memory       map[string]any   `json:"memory"`
	Messages     []ContextMessage `json:"messages"`
	Events       []ContextEvent   `json:"events"`
	LatestReport json.RawMessage  `json:"latest_report"`
}
