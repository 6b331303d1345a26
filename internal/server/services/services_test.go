package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pulsepal/pulsepal/internal/logging"
	"github.com/pulsepal/pulsepal/internal/server/llm"
	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
)

// newTestDB opens a fresh in-memory SQLite database with migrations
// applied. cache=shared keeps the database alive across pool connections.
func newTestDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, m, err := repomanager.Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, m
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fallbackGateway has no backends configured, so every operation takes
// the deterministic local path.
func fallbackGateway() *llm.Gateway {
	return llm.NewGatewayWithBackends(nil, nil, "", "", time.Second, testLogger())
}
