// ABOUTME: Comment operations for the open post.
// ABOUTME: Writes re-open the post and re-fetch the post list for fresh counters.
package app

import (
	"context"

	"github.com/2389-research/community/internal/models"
)

// ListComments replaces the comment list for postID. limit <= 0 uses the
// configured default. On failure the list is emptied rather than left stale.
func (c *Controller) ListComments(ctx context.Context, postID int64, limit int) {
	if limit <= 0 {
		limit = c.commentLimit
	}
	comments, err := c.api.ListComments(ctx, postID, limit)
	if err != nil {
		c.update(func(s *State) { s.Comments = []models.Comment{} })
		c.fail("list comments", err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.update(func(s *State) { s.Comments = comments })
}

// CreateComment posts a comment on postID, then refreshes the post, its
// comments, and the post list.
func (c *Controller) CreateComment(ctx context.Context, postID int64, content string) {
	if postID <= 0 {
		c.notifyError(MsgNoSelection)
		return
	}
	if !read(c, func(s *State) bool { return s.Me != nil }) {
		c.notifyError(MsgLoginRequired)
		return
	}
	if content == "" {
		c.notifyError(MsgCommentRequired)
		return
	}

	c.update(func(s *State) { s.Loading.CreateComment = true })
	defer c.update(func(s *State) { s.Loading.CreateComment = false })

	if err := c.api.CreateComment(ctx, postID, content); err != nil {
		c.fail("create comment", err)
		return
	}
	c.update(func(s *State) { s.CommentDraft = "" })
	c.OpenPost(ctx, postID)
	c.ListPosts(ctx)
}

// DeleteComment removes a comment after confirmation, then refreshes the open
// post and the post list.
func (c *Controller) DeleteComment(ctx context.Context, commentID int64) {
	if !c.confirm.Confirm(ctx, PromptDeleteComment) {
		return
	}
	if err := c.api.DeleteComment(ctx, commentID); err != nil {
		c.fail("delete comment", err)
		return
	}
	c.notifyOK(MsgCommentDeleted)
	if id, ok := c.selectedID(); ok {
		c.OpenPost(ctx, id)
	}
	c.ListPosts(ctx)
}

// SetCommentDraft replaces the comment input buffer.
func (c *Controller) SetCommentDraft(content string) {
	c.update(func(s *State) { s.CommentDraft = content })
}
