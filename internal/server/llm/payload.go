// Package llm is the model gateway. It exposes three capability-shaped
// operations (Extract, Respond, GenerateReport) and routes each one
// through the first configured backend: an agent endpoint, then a
// structured-generation API, then a deterministic local fallback. No
// integration failure ever reaches the caller; the provider tag on each
// result says which backend actually produced it.
package llm

import (
	"encoding/json"

	"github.com/pulsepal/pulsepal/internal/server/models"
)

// Provider tags returned alongside every gateway result.
const (
	ProviderAgent      = "agent"
	ProviderGenerative = "generative"
	ProviderFallback   = "fallback"
)

// ExtractPayload is the input for the extraction operation. Field names
// are part of the external contract.
type ExtractPayload struct {
	UserMessage    string                  `json:"user_message"`
	UserMemory     map[string]any          `json:"user_memory_json"`
	RecentEvents   []models.ContextEvent   `json:"recent_events"`
	RecentMessages []models.ContextMessage `json:"recent_messages"`
}

// RespondPayload is the input for the response operation.
type RespondPayload struct {
	UserMessage    string                   `json:"user_message"`
	Extracted      *models.ExtractionResult `json:"extracted"`
	UserMemory     map[string]any           `json:"user_memory_json"`
	RecentMessages []models.ContextMessage  `json:"recent_messages"`
	DailyReport    json.RawMessage          `json:"daily_report"`
}

// ReportPayload is the input for the daily-report operation.
type ReportPayload struct {
	UserMemory   map[string]any        `json:"user_memory_json"`
	RecentEvents []models.ContextEvent `json:"recent_events"`
}

// withMode re-encodes payload as a generic object with a "mode" field
// added, the shape the agent endpoint expects for chat-time operations.
func withMode(payload any, mode string) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["mode"] = mode
	return m, nil
}
