// Package mcptools exposes the trusted tool operations as MCP tools over
// stdio, so agent frameworks can read and write PulsePal state without
// going through the HTTP surface.
//
// Each tool follows the same pattern:
//   - a struct holding the ToolService, injected via constructor
//   - Definition() returning the mcp.Tool schema
//   - Handle() processing the request
//
// Complex payloads (events, patches, report documents) travel as JSON
// strings, since tool arguments are flat.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pulsepal/pulsepal/internal/server/services"
)

// jsonResult renders v as an MCP text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}

// userIDArg extracts the mandatory user_id argument (JSON numbers are
// float64).
func userIDArg(req mcp.CallToolRequest) (int64, bool) {
	v, ok := req.GetArguments()["user_id"].(float64)
	if !ok || v <= 0 {
		return 0, false
	}
	return int64(v), true
}

// ContextTool serves pulse_user_context.
type ContextTool struct {
	tools *services.ToolService
}

func NewContextTool(ts *services.ToolService) *ContextTool {
	return &ContextTool{tools: ts}
}

func (t *ContextTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_user_context",
		mcp.WithDescription(
			"Read a user's full context snapshot: memory document, recent messages "+
				"and events (oldest first), and the latest daily report if any.",
		),
		mcp.WithNumber("user_id",
			mcp.Required(),
			mcp.Description("Numeric id of the user"),
		),
	)
}

func (t *ContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userIDArg(req)
	if !ok {
		return mcp.NewToolResultError("'user_id' is required"), nil
	}

	snapshot, err := t.tools.UserContext(ctx, userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading context failed: %v", err)), nil
	}
	return jsonResult(snapshot)
}

// DemoSeedTool serves pulse_demo_seed.
type DemoSeedTool struct {
	tools *services.ToolService
}

func NewDemoSeedTool(ts *services.ToolService) *DemoSeedTool {
	return &DemoSeedTool{tools: ts}
}

func (t *DemoSeedTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_demo_seed",
		mcp.WithDescription(
			"Seed a user with a small fixed demo data set: two conversation turns, "+
				"three events and a matching memory patch.",
		),
		mcp.WithNumber("user_id",
			mcp.Required(),
			mcp.Description("Numeric id of the user to seed"),
		),
	)
}

func (t *DemoSeedTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userIDArg(req)
	if !ok {
		return mcp.NewToolResultError("'user_id' is required"), nil
	}

	summary, err := t.tools.SeedDemo(ctx, userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("seeding failed: %v", err)), nil
	}
	return jsonResult(summary)
}
