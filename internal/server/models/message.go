package models

import (
	"encoding/json"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation turn. Ordering by ID defines conversation
// order. ModulateFlags carries the extraction risk flags alongside
// assistant replies, as raw JSON.
type Message struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"-"`
	Role          string          `json:"role"`
	Content       string          `json:"content"`
	Source        string          `json:"source"`
	ModulateFlags json.RawMessage `json:"modulate_flags,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
