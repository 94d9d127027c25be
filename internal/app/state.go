// ABOUTME: Plain UI state owned by the board controller.
// ABOUTME: Session, post list, detail view, form buffers, loading flags, and the notice slot.
package app

import (
	"slices"
	"time"

	"github.com/2389-research/community/internal/models"
)

// NoticeKind distinguishes success notices from errors.
type NoticeKind string

const (
	NoticeOK    NoticeKind = "ok"
	NoticeError NoticeKind = "error"
)

// Notice is the single transient message slot.
type Notice struct {
	ID      uint64
	Message string
	Kind    NoticeKind
	Expires time.Time
}

// Visible reports whether a message is currently shown.
func (n Notice) Visible() bool {
	return n.Message != ""
}

// Loading holds one advisory flag per operation kind.
type Loading struct {
	Login         bool
	Register      bool
	Posts         bool
	CreatePost    bool
	UpdatePost    bool
	DeletePost    bool
	CreateComment bool
}

// Any reports whether any operation is in flight.
func (l Loading) Any() bool {
	return l.Login || l.Register || l.Posts || l.CreatePost ||
		l.UpdatePost || l.DeletePost || l.CreateComment
}

// LoginForm buffers the login panel.
type LoginForm struct {
	Username string
	Password string
}

// RegisterForm buffers the registration panel.
type RegisterForm struct {
	Username string
	Password string
	Nickname string
	Email    string
}

// PostForm buffers post create and edit panels.
type PostForm struct {
	Title   string
	Content string
}

// State is everything a renderer needs. Values handed out by the controller
// are deep copies and safe to keep.
type State struct {
	Me       *models.User
	Posts    []models.Post
	Comments []models.Comment
	Selected *models.Post

	Page  int
	Limit int

	ShowCreate   bool
	Editing      bool
	ShowRegister bool

	LoginForm    LoginForm
	RegisterForm RegisterForm
	CreateForm   PostForm
	EditForm     PostForm
	CommentDraft string

	Loading Loading
	Notice  Notice
}

// LoggedIn reports whether a session is present.
func (s State) LoggedIn() bool {
	return s.Me != nil
}

func (s State) clone() State {
	out := s
	if s.Me != nil {
		me := *s.Me
		out.Me = &me
	}
	if s.Selected != nil {
		sel := *s.Selected
		out.Selected = &sel
	}
	out.Posts = slices.Clone(s.Posts)
	out.Comments = slices.Clone(s.Comments)
	return out
}
