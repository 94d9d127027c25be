// ABOUTME: Shared helpers for MCP tool handlers.
// ABOUTME: Argument decoding, result builders, and notice-to-result mapping.
package mcp

import (
	"encoding/json"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/community/internal/app"
)

func decodeArgs(req *gomcp.CallToolRequest, v any) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func toolError(format string, args ...any) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolText(format string, args ...any) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

// perform runs op with tool calls serialized and returns the notice it
// raised, if any. The notice may already have left the display slot.
func (s *Server) perform(op func()) (app.Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.ctrl.LastNotice().ID
	op()
	after := s.ctrl.LastNotice()
	if after.ID == before {
		return app.Notice{}, false
	}
	return after, true
}

// failed converts an error notice into a tool error result.
func failed(n app.Notice, raised bool) (*gomcp.CallToolResult, bool) {
	if raised && n.Kind == app.NoticeError {
		return toolError("%s", n.Message), true
	}
	return nil, false
}

// okText prefers the controller's success notice over fallback.
func okText(n app.Notice, raised bool, fallback string) string {
	if raised && n.Kind == app.NoticeOK {
		return n.Message
	}
	return fallback
}
