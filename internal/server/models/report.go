package models

import (
	"encoding/json"
	"time"
)

// DailyReport is a dated report row. The document is kept as raw JSON so
// rows written by external tools round-trip byte-for-byte.
type DailyReport struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"-"`
	Date      string          `json:"date"`
	Report    json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}
