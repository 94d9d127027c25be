// ABOUTME: Typed wrappers for each board endpoint.
// ABOUTME: Sessions, users, posts, and comments, all routed through Client.Do.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/2389-research/community/internal/models"
)

// ErrNoSession is returned by Me when the server answers without a user.
var ErrNoSession = errors.New("no active session")

// Me returns the user bound to the current session cookie.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	env, err := c.Do(ctx, http.MethodGet, "/api/me", nil)
	if err != nil {
		return nil, err
	}
	if !hasData(env) {
		return nil, ErrNoSession
	}
	var u models.User
	if err := decodeData(env, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a session cookie.
func (c *Client) Login(ctx context.Context, creds models.Credentials) error {
	_, err := c.Do(ctx, http.MethodPost, "/api/login", creds)
	return err
}

// Logout ends the current session.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Do(ctx, http.MethodPost, "/api/logout", nil)
	return err
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	_, err := c.Do(ctx, http.MethodPost, "/api/users", reg)
	return err
}

// ListPosts returns one page of posts.
func (c *Client) ListPosts(ctx context.Context, page, limit int) ([]models.Post, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	env, err := c.Do(ctx, http.MethodGet, "/api/posts?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Post](env), nil
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, in models.PostInput) error {
	_, err := c.Do(ctx, http.MethodPost, "/api/posts", in)
	return err
}

// GetPost fetches a single post. It returns nil without error when the
// response carries no post.
func (c *Client) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	env, err := c.Do(ctx, http.MethodGet, postPath(id), nil)
	if err != nil || !hasData(env) {
		return nil, err
	}
	var p models.Post
	if err := decodeData(env, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost replaces a post's title and content and returns the server's
// copy, or nil when the response carries no post.
func (c *Client) UpdatePost(ctx context.Context, id int64, in models.PostInput) (*models.Post, error) {
	env, err := c.Do(ctx, http.MethodPut, postPath(id), in)
	if err != nil || !hasData(env) {
		return nil, err
	}
	var p models.Post
	if err := decodeData(env, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	_, err := c.Do(ctx, http.MethodDelete, postPath(id), nil)
	return err
}

// ListComments returns up to limit comments on a post.
func (c *Client) ListComments(ctx context.Context, postID int64, limit int) ([]models.Comment, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	env, err := c.Do(ctx, http.MethodGet, postPath(postID)+"/comments?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Comment](env), nil
}

// CreateComment adds a comment to a post.
func (c *Client) CreateComment(ctx context.Context, postID int64, content string) error {
	_, err := c.Do(ctx, http.MethodPost, postPath(postID)+"/comments", models.CommentInput{Content: content})
	return err
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	_, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/%d", id), nil)
	return err
}

// Validate checks that baseURL answers the post listing, used by setup.
func (c *Client) Validate(ctx context.Context) error {
	if _, err := c.ListPosts(ctx, 1, 1); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}
	return nil
}

func postPath(id int64) string {
	return fmt.Sprintf("/api/posts/%d", id)
}
