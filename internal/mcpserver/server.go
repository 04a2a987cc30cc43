// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the path-translation engine as tools over stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ehwaz/internal/engine"
	"github.com/starford/ehwaz/internal/profile"
)

// Server wraps the MCP server with Ehwaz tools.
type Server struct {
	mcp *server.MCPServer
	eng *engine.Engine
}

// New creates a new MCP server with all tools registered.
func New(eng *engine.Engine) *Server {
	s := &Server{eng: eng}

	s.mcp = server.NewMCPServer(
		"Ehwaz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("translate_path",
		mcp.WithDescription("Classify an absolute asset path by the computer profile that produced it and rewrite it into this computer's convention."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute path to classify and translate")),
	), s.translatePath)

	s.mcp.AddTool(mcp.NewTool("list_computers",
		mcp.WithDescription("List the registered computer profiles in classification order."),
	), s.listComputers)

	s.mcp.AddTool(mcp.NewTool("register_computer",
		mcp.WithDescription("Register a computer profile. Read the embed format contract first via the ehwaz://embed-format resource."),
		mcp.WithString("display_name", mcp.Required(), mcp.Description("Human-readable name for the computer")),
		mcp.WithString("platform", mcp.Required(), mcp.Description("Platform: macos or windows")),
		mcp.WithString("username", mcp.Required(), mcp.Description("OS account name on that computer")),
		mcp.WithString("sub_path", mcp.Description("Optional path segment between the home directory and the vault root")),
	), s.registerComputer)

	s.mcp.AddTool(mcp.NewTool("convert_document",
		mcp.WithDescription("Run the content-mode conversion pass over a vault document, rewriting foreign asset paths in place."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative document path (e.g. notes/topic.md)")),
	), s.convertDocument)

	s.mcp.AddTool(mcp.NewTool("find_references",
		mcp.WithDescription("Find every embed across the vault that resolves to a given local asset."),
		mcp.WithString("asset", mcp.Required(), mcp.Description("Vault-relative asset path (e.g. attachments/cat.png)")),
	), s.findReferences)

	// Resource: embed format contract.
	s.mcp.AddResource(
		mcp.NewResource("ehwaz://embed-format", "Embed Format Contract",
			mcp.WithResourceDescription("Location identifier and embed format the engine reads and writes."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) translatePath(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	translated := s.eng.Translate(path)
	out := map[string]any{
		"path":       path,
		"translated": translated,
		"changed":    translated != path,
	}
	if src := s.eng.Classify(path); src != nil {
		out["profile_id"] = src.ID
	}
	payload, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) listComputers(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.eng.Registry().List(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) registerComputer(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	displayName, err := req.RequireString("display_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	platform, err := req.RequireString("platform")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	username, err := req.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	subPath := req.GetString("sub_path", "")

	p := profile.Profile{
		DisplayName: displayName,
		Platform:    profile.Platform(platform),
		Username:    username,
		SubPath:     subPath,
	}
	if !p.Platform.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown platform: %s", platform)), nil
	}
	added, err := s.eng.Registry().Add(p)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(added, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) convertDocument(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	converted, err := s.eng.ConvertDocument(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("convert %s: %v", path, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(`{"converted": %d}`, converted)), nil
}

func (s *Server) findReferences(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asset, err := req.RequireString("asset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits, err := s.eng.FindReferences(asset)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(hits, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readContractResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     EmbedFormatContract,
		},
	}, nil
}
