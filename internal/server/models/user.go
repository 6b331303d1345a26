// Package models holds the persisted entities and the JSON document shapes
// exchanged with the model capabilities and API clients.
package models

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Timezone     string
	CreatedAt    time.Time
}
