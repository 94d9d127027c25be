// ABOUTME: Core data models for users, posts, comments, and the API envelope.
// ABOUTME: Mirrors the JSON shapes returned by the community board backend.
package models

import (
	"encoding/json"
	"strconv"
	"unicode/utf16"
)

// MaxTitleLength is the longest post title accepted, counted in UTF-16 code units.
const MaxTitleLength = 25

// User is the authenticated account returned by /api/me.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	Nickname    string    `json:"nickname,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
}

// Name returns the best human-facing name for the user.
func (u *User) Name() string {
	if u == nil {
		return ""
	}
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Nickname != "":
		return u.Nickname
	}
	return u.Username
}

// Post is a board post.
type Post struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ViewCount   int       `json:"viewCount"`
	CommentsCnt int       `json:"commentsCnt"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username,omitempty"`
	Nickname  string    `json:"nickname,omitempty"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Author returns the comment author's nickname, username, or "#<userId>".
func (c Comment) Author() string {
	switch {
	case c.Nickname != "":
		return c.Nickname
	case c.Username != "":
		return c.Username
	}
	return "#" + strconv.FormatInt(c.UserID, 10)
}

// Envelope is the uniform {success, message, data} wrapper around every response.
type Envelope struct {
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Failed reports whether the envelope explicitly signals failure.
// A missing success field is not a failure.
func (e *Envelope) Failed() bool {
	return e != nil && e.Success != nil && !*e.Success
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the user-creation request body.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// PostInput is the body for post create and update.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CommentInput is the body for comment create.
type CommentInput struct {
	Content string `json:"content"`
}

// TitleLength counts s in UTF-16 code units, the unit the title limit is defined in.
func TitleLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// TitleTooLong reports whether title exceeds MaxTitleLength.
func TitleTooLong(title string) bool {
	return TitleLength(title) > MaxTitleLength
}

// TruncateTitle shortens a title to MaxTitleLength code units, adding "…" if truncated.
func TruncateTitle(title string) string {
	if !TitleTooLong(title) {
		return title
	}
	n := 0
	for i, r := range title {
		w := utf16.RuneLen(r)
		if n+w > MaxTitleLength {
			return title[:i] + "…"
		}
		n += w
	}
	return title
}
