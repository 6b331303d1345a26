package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/pulsepal/pulsepal/internal/server/services"
)

// Version of the MCP tool surface.
const Version = "0.2.0"

// New assembles the MCP server with all six tools registered.
func New(ts *services.ToolService) *server.MCPServer {
	s := server.NewMCPServer(
		"pulsepal",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(
			"PulsePal agent tools. Read a user's context before writing: events, "+
				"memory patches and reports should be consistent with what the user "+
				"already has. Never diagnose in stored content.",
		),
	)

	contextTool := NewContextTool(ts)
	s.AddTool(contextTool.Definition(), contextTool.Handle)

	messageTool := NewMessageSaveTool(ts)
	s.AddTool(messageTool.Definition(), messageTool.Handle)

	eventsTool := NewEventsSaveTool(ts)
	s.AddTool(eventsTool.Definition(), eventsTool.Handle)

	memoryTool := NewMemoryMergeTool(ts)
	s.AddTool(memoryTool.Definition(), memoryTool.Handle)

	dailyTool := NewDailySaveTool(ts)
	s.AddTool(dailyTool.Definition(), dailyTool.Handle)

	seedTool := NewDemoSeedTool(ts)
	s.AddTool(seedTool.Definition(), seedTool.Handle)

	return s
}
