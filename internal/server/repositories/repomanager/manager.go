// Package repomanager selects and wires the repository set for the
// configured database engine, and runs its embedded migration set.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/pulsepal/pulsepal/internal/dbx"
	"github.com/pulsepal/pulsepal/internal/server/repositories/events"
	"github.com/pulsepal/pulsepal/internal/server/repositories/feedback"
	"github.com/pulsepal/pulsepal/internal/server/repositories/memories"
	"github.com/pulsepal/pulsepal/internal/server/repositories/messages"
	"github.com/pulsepal/pulsepal/internal/server/repositories/reports"
	"github.com/pulsepal/pulsepal/internal/server/repositories/tokens"
	"github.com/pulsepal/pulsepal/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DB handle. Passing a
// *sql.Tx instead of the *sql.DB scopes a repository to that transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Messages(db dbx.DBTX) messages.Repository
	Events(db dbx.DBTX) events.Repository
	Memories(db dbx.DBTX) memories.Repository
	Reports(db dbx.DBTX) reports.Repository
	Feedback(db dbx.DBTX) feedback.Repository
}
