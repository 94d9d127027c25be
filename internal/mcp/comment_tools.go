// ABOUTME: MCP tool implementations for comments.
// ABOUTME: Registers create_comment and delete_comment.
package mcp

import (
	"context"
	"encoding/json"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerCommentTools() {
	s.addTool(&gomcp.Tool{
		Name:        "create_comment",
		Description: "Comment on a post. Requires login.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"post_id": {"type": "integer"},
				"content": {"type": "string", "minLength": 1}
			},
			"required": ["post_id", "content"]
		}`),
	}, s.handleCreateComment)

	s.addTool(&gomcp.Tool{
		Name:        "delete_comment",
		Description: "Delete a comment. Destructive: confirm must be true.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"comment_id": {"type": "integer"},
				"confirm": {"type": "boolean", "description": "Must be true to delete."}
			},
			"required": ["comment_id", "confirm"]
		}`),
	}, s.handleDeleteComment)
}

func (s *Server) handleCreateComment(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PostID  int64  `json:"post_id"`
		Content string `json:"content"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	n, raised := s.perform(func() { s.ctrl.CreateComment(ctx, args.PostID, args.Content) })
	if res, bad := failed(n, raised); bad {
		return res, nil
	}
	return toolText("Comment added to post #%d", args.PostID), nil
}

func (s *Server) handleDeleteComment(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		CommentID int64 `json:"comment_id"`
		Confirm   bool  `json:"confirm"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.CommentID <= 0 {
		return toolError("comment_id is required"), nil
	}
	if !args.Confirm {
		return toolError("refusing to delete comment %d without confirm=true", args.CommentID), nil
	}

	n, raised := s.perform(func() { s.ctrl.DeleteComment(ctx, args.CommentID) })
	if res, bad := failed(n, raised); bad {
		return res, nil
	}
	return toolText("%s", okText(n, raised, "Comment deleted")), nil
}
