package models

import "time"

// Event is a discrete extracted occurrence (symptom, stress episode, mood
// note) optionally tied to the message it came from.
type Event struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"-"`
	SourceMessageID *int64    `json:"source_message_id,omitempty"`
	EventType       string    `json:"event_type"`
	Title           string    `json:"title"`
	Details         string    `json:"details"`
	Severity        string    `json:"severity"`
	TimeRef         string    `json:"time_ref"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
}
