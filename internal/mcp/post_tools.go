// ABOUTME: MCP tool implementations for board posts.
// ABOUTME: Registers list_posts, read_post, create_post, update_post, and delete_post.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/community/internal/app"
)

func (s *Server) registerPostTools() {
	s.addTool(&gomcp.Tool{
		Name:        "list_posts",
		Description: "List one page of board posts, newest first as the server orders them.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"page": {"type": "integer", "description": "1-based page number (default 1)"}
			}
		}`),
	}, s.handleListPosts)

	s.addTool(&gomcp.Tool{
		Name:        "read_post",
		Description: "Read a post with its comments.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"post_id": {"type": "integer", "description": "ID of the post"}
			},
			"required": ["post_id"]
		}`),
	}, s.handleReadPost)

	s.addTool(&gomcp.Tool{
		Name:        "create_post",
		Description: "Publish a new post. Requires login. Titles are limited to 25 characters.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "minLength": 1},
				"content": {"type": "string", "minLength": 1}
			},
			"required": ["title", "content"]
		}`),
	}, s.handleCreatePost)

	s.addTool(&gomcp.Tool{
		Name:        "update_post",
		Description: "Edit a post. Omitted fields keep their current value.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"post_id": {"type": "integer"},
				"title": {"type": "string"},
				"content": {"type": "string"}
			},
			"required": ["post_id"]
		}`),
	}, s.handleUpdatePost)

	s.addTool(&gomcp.Tool{
		Name:        "delete_post",
		Description: "Delete a post. Destructive: confirm must be true.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"post_id": {"type": "integer"},
				"confirm": {"type": "boolean", "description": "Must be true to delete."}
			},
			"required": ["post_id", "confirm"]
		}`),
	}, s.handleDeletePost)
}

func (s *Server) handleListPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Page int `json:"page"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	n, raised := s.perform(func() { s.ctrl.SetPage(ctx, args.Page) })
	if res, bad := failed(n, raised); bad {
		return res, nil
	}

	snap := s.ctrl.Snapshot()
	if len(snap.Posts) == 0 {
		return toolText("No posts found on page %d.", snap.Page), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page %d\n", snap.Page))
	for _, p := range snap.Posts {
		sb.WriteString(fmt.Sprintf("---\n#%d %s [%s] comments:%d views:%d\n",
			p.ID, p.Title, p.CreatedAt.Display(), p.CommentsCnt, p.ViewCount))
	}
	return toolText("%s", sb.String()), nil
}

// openPost loads id into the controller's detail view. The returned result
// is non-nil when loading failed.
func (s *Server) openPost(ctx context.Context, id int64) *gomcp.CallToolResult {
	if id <= 0 {
		return toolError("post_id is required")
	}
	n, raised := s.perform(func() { s.ctrl.OpenPost(ctx, id) })
	if res, bad := failed(n, raised); bad {
		return res
	}
	if s.ctrl.Snapshot().Selected == nil {
		return toolError("post %d could not be loaded", id)
	}
	return nil
}

func (s *Server) handleReadPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PostID int64 `json:"post_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if res := s.openPost(ctx, args.PostID); res != nil {
		return res, nil
	}
	return toolText("%s", formatDetail(s.ctrl.Snapshot())), nil
}

func formatDetail(snap app.State) string {
	p := snap.Selected
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("#%d %s\n", p.ID, p.Title))
	sb.WriteString(fmt.Sprintf("created %s, updated %s, views %d\n\n", p.CreatedAt.Display(), p.UpdatedAt.Display(), p.ViewCount))
	sb.WriteString(p.Content)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Comments (%d)\n", len(snap.Comments)))
	for _, c := range snap.Comments {
		sb.WriteString(fmt.Sprintf("- [%d] %s: %s (%s)\n", c.ID, c.Author(), c.Content, c.CreatedAt.Display()))
	}
	return sb.String()
}

func (s *Server) handleCreatePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	n, raised := s.perform(func() { s.ctrl.CreatePost(ctx, args.Title, args.Content) })
	if res, bad := failed(n, raised); bad {
		return res, nil
	}
	return toolText("%s", okText(n, raised, "Post created")), nil
}

func (s *Server) handleUpdatePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PostID  int64   `json:"post_id"`
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Title == nil && args.Content == nil {
		return toolError("nothing to update: pass title and/or content"), nil
	}
	if res := s.openPost(ctx, args.PostID); res != nil {
		return res, nil
	}

	current := s.ctrl.Snapshot().Selected
	title, content := current.Title, current.Content
	if args.Title != nil {
		title = *args.Title
	}
	if args.Content != nil {
		content = *args.Content
	}

	n, raised := s.perform(func() { s.ctrl.UpdatePost(ctx, title, content) })
	if res, bad := failed(n, raised); bad {
		return res, nil
	}
	return toolText("%s", okText(n, raised, "Post updated")), nil
}

func (s *Server) handleDeletePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PostID  int64 `json:"post_id"`
		Confirm bool  `json:"confirm"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if !args.Confirm {
		return toolError("refusing to delete post %d without confirm=true", args.PostID), nil
	}
	if res := s.openPost(ctx, args.PostID); res != nil {
		return res, nil
	}

	n, raised := s.perform(func() { s.ctrl.DeletePost(ctx) })
	if res, bad := failed(n, raised); bad {
		return res, nil
	}
	if s.ctrl.Snapshot().Selected != nil {
		return toolError("post %d was not deleted", args.PostID), nil
	}
	return toolText("%s", okText(n, raised, "Post deleted")), nil
}
