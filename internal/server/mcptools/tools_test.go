package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
	"github.com/pulsepal/pulsepal/internal/server/services"
)

func newToolService(t *testing.T) (*services.ToolService, int64) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, m, err := repomanager.Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := services.NewUserService(db, m)
	signed, err := users.SignUp(context.Background(), "mcp@example.com", "secret-pass", "")
	require.NoError(t, err)

	return services.NewToolService(db, m, services.NewContextService(m)), signed.UserID
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestMemoryMergeTool(t *testing.T) {
	ts, userID := newToolService(t)
	tool := NewMemoryMergeTool(ts)

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"user_id": float64(userID),
		"patch":   `{"known_triggers":["caffeine"]}`,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var body struct {
		Memory map[string]any `json:"memory"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &body))
	assert.Equal(t, []any{"caffeine"}, body.Memory["known_triggers"])
}

func TestMemoryMergeTool_BadPatch(t *testing.T) {
	ts, userID := newToolService(t)
	tool := NewMemoryMergeTool(ts)

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"user_id": float64(userID),
		"patch":   "not json",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestEventsSaveAndContextTools(t *testing.T) {
	ts, userID := newToolService(t)

	save := NewEventsSaveTool(ts)
	res, err := save.Handle(context.Background(), callRequest(map[string]any{
		"user_id": float64(userID),
		"events":  `[{"event_type":"symptom","title":"Low energy","tags":["fatigue"]}]`,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, textOf(t, res))

	read := NewContextTool(ts)
	res, err = read.Handle(context.Background(), callRequest(map[string]any{
		"user_id": float64(userID),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var snapshot struct {
		Events []map[string]any `json:"events"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &snapshot))
	require.Len(t, snapshot.Events, 1)
	assert.Equal(t, "Low energy", snapshot.Events[0]["title"])
}

func TestTools_MissingUserID(t *testing.T) {
	ts, _ := newToolService(t)

	res, err := NewContextTool(ts).Handle(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = NewDemoSeedTool(ts).Handle(context.Background(), callRequest(map[string]any{
		"user_id": float64(0),
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
