package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/pulsepal/pulsepal/internal/dbx"
	"github.com/pulsepal/pulsepal/internal/server/migrations"
	"github.com/pulsepal/pulsepal/internal/server/repositories/events"
	"github.com/pulsepal/pulsepal/internal/server/repositories/feedback"
	"github.com/pulsepal/pulsepal/internal/server/repositories/memories"
	"github.com/pulsepal/pulsepal/internal/server/repositories/messages"
	"github.com/pulsepal/pulsepal/internal/server/repositories/reports"
	"github.com/pulsepal/pulsepal/internal/server/repositories/tokens"
	"github.com/pulsepal/pulsepal/internal/server/repositories/users"
)

// SQLRepositoryManager serves both supported engines; only the migration
// set differs per dialect. The repositories themselves share one SQL
// flavor ($N placeholders, RETURNING) accepted by pgx and modernc sqlite.
type SQLRepositoryManager struct {
	dialect string
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Tokens(db dbx.DBTX) tokens.Repository {
	return tokens.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Messages(db dbx.DBTX) messages.Repository {
	return messages.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Memories(db dbx.DBTX) memories.Repository {
	return memories.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Reports(db dbx.DBTX) reports.Repository {
	return reports.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Feedback(db dbx.DBTX) feedback.Repository {
	return feedback.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	switch m.dialect {
	case "pgx":
		goose.SetBaseFS(migrations.Postgres)
		if err := goose.SetDialect("pgx"); err != nil {
			return err
		}
		return goose.UpContext(ctx, db, "postgres")
	default:
		goose.SetBaseFS(migrations.SQLite)
		if err := goose.SetDialect("sqlite3"); err != nil {
			return err
		}
		return goose.UpContext(ctx, db, "sqlite")
	}
}

// IsPostgresDSN reports whether dsn targets postgres; anything else is
// treated as a SQLite path or URI.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the database named by dsn, picks the matching manager
// and applies migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {

	driver, dialect := "sqlite", "sqlite3"
	if IsPostgresDSN(dsn) {
		driver, dialect = "pgx", "pgx"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if driver == "sqlite" {
		// SQLite handles concurrent writers poorly; serialize on one
		// connection like the rest of the pack's sqlite-backed stores do.
		db.SetMaxOpenConns(1)
	}

	m := &SQLRepositoryManager{dialect: dialect}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, m, nil
}
