// ABOUTME: MCP tool implementations for board sessions.
// ABOUTME: Registers login, logout, whoami, and register tools.
package mcp

import (
	"context"
	"encoding/json"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/community/internal/app"
	"github.com/2389-research/community/internal/models"
)

func (s *Server) registerSessionTools() {
	s.addTool(&gomcp.Tool{
		Name:        "login",
		Description: "Log in to the community board. The session cookie is kept for the rest of this server's lifetime.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"username": {"type": "string", "description": "Account username.", "minLength": 1},
				"password": {"type": "string", "description": "Account password.", "minLength": 1}
			},
			"required": ["username", "password"]
		}`),
	}, s.handleLogin)

	s.addTool(&gomcp.Tool{
		Name:        "logout",
		Description: "End the current board session.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleLogout)

	s.addTool(&gomcp.Tool{
		Name:        "whoami",
		Description: "Show which account, if any, the board session belongs to.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleWhoAmI)

	s.addTool(&gomcp.Tool{
		Name:        "register",
		Description: "Create a new board account. Log in afterwards to use it.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"username": {"type": "string", "minLength": 1},
				"password": {"type": "string", "minLength": 1},
				"nickname": {"type": "string", "description": "Name shown next to comments.", "minLength": 1},
				"email": {"type": "string", "description": "Optional contact address."}
			},
			"required": ["username", "password", "nickname"]
		}`),
	}, s.handleRegister)
}

func (s *Server) handleLogin(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	n, raised := s.perform(func() { s.ctrl.Login(ctx, args.Username, args.Password) })
	if res, bad := failed(n, raised); bad {
		return res, nil
	}
	return toolText("Logged in as %s", describeUser(s.ctrl.Snapshot().Me)), nil
}

func (s *Server) handleLogout(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	n, raised := s.perform(func() { s.ctrl.Logout(ctx) })
	return toolText("%s", okText(n, raised, "Logged out")), nil
}

func (s *Server) handleWhoAmI(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s.perform(func() { s.ctrl.WhoAmI(ctx) })
	me := s.ctrl.Snapshot().Me
	if me == nil {
		return toolText("Not logged in. Use the login tool first."), nil
	}
	return toolText("Logged in as %s", describeUser(me)), nil
}

func (s *Server) handleRegister(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Nickname string `json:"nickname"`
		Email    string `json:"email"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	form := app.RegisterForm{
		Username: args.Username,
		Password: args.Password,
		Nickname: args.Nickname,
		Email:    args.Email,
	}
	n, raised := s.perform(func() { s.ctrl.Register(ctx, form) })
	if res, bad := failed(n, raised); bad {
		return res, nil
	}
	return toolText("%s", okText(n, raised, "Account created")), nil
}

func describeUser(u *models.User) string {
	if u == nil {
		return "(unknown)"
	}
	if name := u.Name(); name != u.Username {
		return name + " (@" + u.Username + ")"
	}
	return "@" + u.Username
}
