package models

import "time"

// Feedback is a helpfulness rating for a message or a daily report.
// Write-only from the pipelines' perspective.
type Feedback struct {
	ID            int64
	UserID        int64
	MessageID     *int64
	DailyReportID *int64
	Helpful       bool
	Notes         string
	CreatedAt     time.Time
}
