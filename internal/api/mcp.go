package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/irvinng98/New2Canada/internal/chat"
	"github.com/irvinng98/New2Canada/internal/profile"
	"github.com/irvinng98/New2Canada/internal/routing"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Orch     *chat.Orchestrator
	Registry routing.Registry
}

// NewMCPServer exposes the assistant to MCP clients. MCP callers have no
// cookie session, so the profile fields travel with each ask call instead
// of being loaded from storage.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"new2canada",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("New2Canada — personalized resource guidance for newcomers to Canada."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask",
			mcp.WithDescription("Ask the newcomer assistant a question within a resource category, personalized by the supplied profile."),
			mcp.WithString("category", mcp.Description("Resource category (e.g. housing, employment)"), mcp.Required()),
			mcp.WithString("message", mcp.Description("The question to ask"), mcp.Required()),
			mcp.WithString("location", mcp.Description("Where the user lives (required for personalization)"), mcp.Required()),
			mcp.WithString("status", mcp.Description("Immigration status")),
			mcp.WithString("gender", mcp.Description("Gender")),
			mcp.WithString("age", mcp.Description("Age")),
		),
		mcpAsk(deps),
	)

	s.AddTool(
		mcp.NewTool("list_categories",
			mcp.WithDescription("List the resource categories the assistant knows about."),
		),
		mcpListCategories(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"n2c://categories",
			"Assistance Categories",
			mcp.WithResourceDescription("Known resource categories as a JSON array"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceCategories(deps),
	)

	return s
}

func mcpAsk(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := req.RequireString("category")
		if err != nil {
			return mcpError("category is required"), nil
		}
		message, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}
		location, err := req.RequireString("location")
		if err != nil {
			return mcpError("location is required"), nil
		}

		p := profile.Profile{
			Location: location,
			Status:   req.GetString("status", ""),
			Gender:   req.GetString("gender", ""),
			Age:      req.GetString("age", ""),
		}

		text, err := deps.Orch.Respond(ctx, chat.Turn{
			Category: category,
			Message:  message,
			Profile:  p,
		})
		if err != nil {
			return mcpError(err.Error()), nil
		}
		return mcpText(text), nil
	}
}

func mcpListCategories(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := json.Marshal(deps.Registry.Categories())
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal categories: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceCategories(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(deps.Registry.Categories())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal categories: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
