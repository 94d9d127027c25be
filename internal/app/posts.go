// ABOUTME: Post list, detail view, and pagination operations.
// ABOUTME: Every write re-fetches the list; nothing is patched locally.
package app

import (
	"context"

	"github.com/2389-research/community/internal/models"
)

// ListPosts replaces the post list with the current page.
func (c *Controller) ListPosts(ctx context.Context) {
	c.update(func(s *State) { s.Loading.Posts = true })
	defer c.update(func(s *State) { s.Loading.Posts = false })

	page, limit := c.pageAndLimit()
	posts, err := c.api.ListPosts(ctx, page, limit)
	if err != nil {
		c.fail("list posts", err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.update(func(s *State) { s.Posts = posts })
}

func (c *Controller) pageAndLimit() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Page, c.state.Limit
}

// CreatePost publishes a post. It needs a session, a title and content, and a
// title no longer than models.MaxTitleLength.
func (c *Controller) CreatePost(ctx context.Context, title, content string) {
	if !read(c, func(s *State) bool { return s.Me != nil }) {
		c.notifyError(MsgLoginRequired)
		return
	}
	if title == "" || content == "" {
		c.notifyError(MsgPostFieldsNeeded)
		return
	}
	if models.TitleTooLong(title) {
		c.notifyError(MsgTitleTooLong)
		return
	}

	c.update(func(s *State) { s.Loading.CreatePost = true })
	defer c.update(func(s *State) { s.Loading.CreatePost = false })

	if err := c.api.CreatePost(ctx, models.PostInput{Title: title, Content: content}); err != nil {
		c.fail("create post", err)
		return
	}
	c.notifyOK(MsgPostCreated)
	c.update(func(s *State) {
		s.CreateForm = PostForm{}
		s.ShowCreate = false
	})
	c.ListPosts(ctx)
}

// OpenPost loads a post into the detail view and fetches its comments. A
// response without a post leaves nothing selected.
func (c *Controller) OpenPost(ctx context.Context, id int64) {
	post, err := c.api.GetPost(ctx, id)
	if err != nil {
		c.fail("open post", err)
		return
	}
	c.update(func(s *State) {
		s.Selected = post
		s.Editing = false
		if post == nil {
			s.Comments = []models.Comment{}
		}
	})
	if post == nil {
		return
	}
	c.ListComments(ctx, post.ID, 0)
}

// ClosePost clears the detail view.
func (c *Controller) ClosePost() {
	c.update(func(s *State) {
		s.Selected = nil
		s.Comments = []models.Comment{}
		s.CommentDraft = ""
		s.Editing = false
	})
}

// StartEdit copies the selected post into the edit buffer. It does nothing
// when no post is open.
func (c *Controller) StartEdit() {
	c.update(func(s *State) {
		if s.Selected == nil {
			return
		}
		s.EditForm = PostForm{Title: s.Selected.Title, Content: s.Selected.Content}
		s.Editing = true
	})
}

// CancelEdit leaves edit mode without saving.
func (c *Controller) CancelEdit() {
	c.update(func(s *State) { s.Editing = false })
}

// UpdatePost saves the open post with a new title and content. The detail
// view shows the server's copy, so a response without a post deselects.
func (c *Controller) UpdatePost(ctx context.Context, title, content string) {
	id, ok := c.selectedID()
	if !ok {
		c.notifyError(MsgNoSelection)
		return
	}
	if models.TitleTooLong(title) {
		c.notifyError(MsgTitleTooLong)
		return
	}

	c.update(func(s *State) { s.Loading.UpdatePost = true })
	defer c.update(func(s *State) { s.Loading.UpdatePost = false })

	post, err := c.api.UpdatePost(ctx, id, models.PostInput{Title: title, Content: content})
	if err != nil {
		c.fail("update post", err)
		return
	}
	c.update(func(s *State) {
		s.Selected = post
		s.Editing = false
	})
	c.notifyOK(MsgPostUpdated)
	c.ListPosts(ctx)
}

// DeletePost removes the open post after confirmation.
func (c *Controller) DeletePost(ctx context.Context) {
	id, ok := c.selectedID()
	if !ok {
		c.notifyError(MsgNoSelection)
		return
	}
	if !c.confirm.Confirm(ctx, PromptDeletePost) {
		return
	}

	c.update(func(s *State) { s.Loading.DeletePost = true })
	defer c.update(func(s *State) { s.Loading.DeletePost = false })

	if err := c.api.DeletePost(ctx, id); err != nil {
		c.fail("delete post", err)
		return
	}
	c.notifyOK(MsgPostDeleted)
	c.ClosePost()
	c.ListPosts(ctx)
}

func (c *Controller) selectedID() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Selected == nil {
		return 0, false
	}
	return c.state.Selected.ID, true
}

// PrevPage moves back one page. At page 1 it does nothing.
func (c *Controller) PrevPage(ctx context.Context) {
	moved := false
	c.update(func(s *State) {
		if s.Page <= 1 {
			return
		}
		s.Page--
		moved = true
	})
	if moved {
		c.ListPosts(ctx)
	}
}

// NextPage moves forward one page. There is no client-side upper bound.
func (c *Controller) NextPage(ctx context.Context) {
	c.update(func(s *State) { s.Page++ })
	c.ListPosts(ctx)
}

// SetPage jumps to page and lists it. Pages below 1 are treated as 1.
func (c *Controller) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	c.update(func(s *State) { s.Page = page })
	c.ListPosts(ctx)
}

// SetCreateForm replaces the new-post buffer.
func (c *Controller) SetCreateForm(f PostForm) {
	c.update(func(s *State) { s.CreateForm = f })
}

// SetEditForm replaces the edit buffer.
func (c *Controller) SetEditForm(f PostForm) {
	c.update(func(s *State) { s.EditForm = f })
}

// ToggleCreate shows or hides the new-post panel.
func (c *Controller) ToggleCreate() {
	c.update(func(s *State) { s.ShowCreate = !s.ShowCreate })
}
