// ABOUTME: MCP server initialization and configuration for community.
// ABOUTME: Exposes the board controller's session, post, and comment operations as tools.
package mcp

import (
	"context"
	"fmt"
	"sync"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/community/internal/app"
)

// Server wraps the MCP server around one board controller, so a session
// lasts as long as the process.
type Server struct {
	mcp      *gomcp.Server
	ctrl     *app.Controller
	version  string
	handlers map[string]gomcp.ToolHandler

	// mu serializes tool calls so each call sees only the notice it produced.
	mu sync.Mutex
}

// ServerOption configures optional Server settings.
type ServerOption func(*Server)

// WithVersion sets the version reported to MCP clients.
func WithVersion(v string) ServerOption {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer creates an MCP server driving ctrl. Delete tools gate on an
// explicit confirm argument, so ctrl should be built with app.AcceptAll.
func NewServer(ctrl *app.Controller, opts ...ServerOption) (*Server, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("board controller is required")
	}

	s := &Server{
		ctrl:     ctrl,
		version:  "dev",
		handlers: make(map[string]gomcp.ToolHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "community",
			Version: s.version,
		},
		nil,
	)

	s.registerSessionTools()
	s.registerPostTools()
	s.registerCommentTools()

	return s, nil
}

func (s *Server) addTool(tool *gomcp.Tool, h gomcp.ToolHandler) {
	s.handlers[tool.Name] = h
	s.mcp.AddTool(tool, h)
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
