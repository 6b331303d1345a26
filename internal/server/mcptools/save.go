package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pulsepal/pulsepal/internal/server/models"
	"github.com/pulsepal/pulsepal/internal/server/services"
)

// MessageSaveTool serves pulse_message_save.
type MessageSaveTool struct {
	tools *services.ToolService
}

func NewMessageSaveTool(ts *services.ToolService) *MessageSaveTool {
	return &MessageSaveTool{tools: ts}
}

func (t *MessageSaveTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_message_save",
		mcp.WithDescription("Store one conversation turn on a user's behalf."),
		mcp.WithNumber("user_id",
			mcp.Required(),
			mcp.Description("Numeric id of the user"),
		),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("Either 'user' or 'assistant'"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Message text"),
		),
		mcp.WithString("source",
			mcp.Description("Input channel, defaults to 'text'"),
		),
		mcp.WithString("modulate_flags",
			mcp.Description("Optional risk flags as a JSON array string"),
		),
	)
}

func (t *MessageSaveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userIDArg(req)
	if !ok {
		return mcp.NewToolResultError("'user_id' is required"), nil
	}

	var flags json.RawMessage
	if raw := req.GetString("modulate_flags", ""); raw != "" {
		if !json.Valid([]byte(raw)) {
			return mcp.NewToolResultError("'modulate_flags' must be valid JSON"), nil
		}
		flags = json.RawMessage(raw)
	}

	msg, err := t.tools.SaveMessage(ctx, userID,
		req.GetString("role", ""),
		req.GetString("content", ""),
		req.GetString("source", ""),
		flags,
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saving message failed: %v", err)), nil
	}
	return jsonResult(map[string]any{"message_id": msg.ID})
}

// EventsSaveTool serves pulse_events_save.
type EventsSaveTool struct {
	tools *services.ToolService
}

func NewEventsSaveTool(ts *services.ToolService) *EventsSaveTool {
	return &EventsSaveTool{tools: ts}
}

func (t *EventsSaveTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_events_save",
		mcp.WithDescription(
			"Store a batch of extracted wellness events for a user. Events is a JSON "+
				"array string of objects with event_type, title, details, severity, "+
				"time_ref and tags.",
		),
		mcp.WithNumber("user_id",
			mcp.Required(),
			mcp.Description("Numeric id of the user"),
		),
		mcp.WithString("events",
			mcp.Required(),
			mcp.Description("JSON array of event objects"),
		),
		mcp.WithNumber("source_message_id",
			mcp.Description("Optional id of the message these events came from"),
		),
	)
}

func (t *EventsSaveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userIDArg(req)
	if !ok {
		return mcp.NewToolResultError("'user_id' is required"), nil
	}

	var drafts []models.EventDraft
	if err := json.Unmarshal([]byte(req.GetString("events", "")), &drafts); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'events' must be a JSON array of events: %v", err)), nil
	}

	var sourceID *int64
	if v, ok := req.GetArguments()["source_message_id"].(float64); ok && v > 0 {
		id := int64(v)
		sourceID = &id
	}

	n, err := t.tools.SaveEvents(ctx, userID, drafts, sourceID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saving events failed: %v", err)), nil
	}
	return jsonResult(map[string]any{"saved": n})
}

// MemoryMergeTool serves pulse_memory_merge.
type MemoryMergeTool struct {
	tools *services.ToolService
}

func NewMemoryMergeTool(ts *services.ToolService) *MemoryMergeTool {
	return &MemoryMergeTool{tools: ts}
}

func (t *MemoryMergeTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_memory_merge",
		mcp.WithDescription(
			"Merge a patch into a user's memory document. Maps merge recursively, "+
				"lists union keeping first occurrences, scalars replace. Returns the "+
				"merged document.",
		),
		mcp.WithNumber("user_id",
			mcp.Required(),
			mcp.Description("Numeric id of the user"),
		),
		mcp.WithString("patch",
			mcp.Required(),
			mcp.Description("JSON object to merge into the memory document"),
		),
	)
}

func (t *MemoryMergeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userIDArg(req)
	if !ok {
		return mcp.NewToolResultError("'user_id' is required"), nil
	}

	var patch map[string]any
	if err := json.Unmarshal([]byte(req.GetString("patch", "")), &patch); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'patch' must be a JSON object: %v", err)), nil
	}

	merged, err := t.tools.MergeMemory(ctx, userID, patch)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("merging memory failed: %v", err)), nil
	}
	return jsonResult(map[string]any{"memory": merged})
}

// DailySaveTool serves pulse_daily_save.
type DailySaveTool struct {
	tools *services.ToolService
}

func NewDailySaveTool(ts *services.ToolService) *DailySaveTool {
	return &DailySaveTool{tools: ts}
}

func (t *DailySaveTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_daily_save",
		mcp.WithDescription("Store an externally produced daily report document for a user."),
		mcp.WithNumber("user_id",
			mcp.Required(),
			mcp.Description("Numeric id of the user"),
		),
		mcp.WithString("report",
			mcp.Required(),
			mcp.Description("Report document as a JSON object string"),
		),
		mcp.WithString("date",
			mcp.Description("Report date YYYY-MM-DD, defaults to today (UTC)"),
		),
	)
}

func (t *DailySaveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := userIDArg(req)
	if !ok {
		return mcp.NewToolResultError("'user_id' is required"), nil
	}

	row, err := t.tools.SaveDailyReport(ctx, userID,
		req.GetString("date", ""),
		json.RawMessage(req.GetString("report", "")),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saving report failed: %v", err)), nil
	}
	return jsonResult(map[string]any{"report_id": row.ID, "date": row.Date})
}
