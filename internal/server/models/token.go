package models

import "time"

// AuthToken maps an opaque random token string to a user. Tokens do not
// expire; they stay valid until the row is removed. Known limitation,
// kept for parity with the existing clients.
type AuthToken struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
}
