// ABOUTME: View-model controller for the community board.
// ABOUTME: Owns UI state, publishes snapshots to subscribers, and manages the notice timer.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/2389-research/community/internal/models"
)

const (
	// DefaultNoticeDuration is how long a notice stays visible.
	DefaultNoticeDuration = 2500 * time.Millisecond
	// DefaultPageSize is the number of posts per page.
	DefaultPageSize = 10
	// DefaultCommentLimit caps how many comments are fetched for a post.
	DefaultCommentLimit = 50
)

// Backend is the set of API calls the controller issues. *api.Client
// satisfies it.
type Backend interface {
	Me(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) error
	Logout(ctx context.Context) error
	Register(ctx context.Context, reg models.Registration) error
	ListPosts(ctx context.Context, page, limit int) ([]models.Post, error)
	CreatePost(ctx context.Context, in models.PostInput) error
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, in models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	ListComments(ctx context.Context, postID int64, limit int) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID int64, content string) error
	DeleteComment(ctx context.Context, id int64) error
}

// stopper is the part of *time.Timer the notice slot needs.
type stopper interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) stopper

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Controller holds the board state and turns user actions into API calls.
// Operations never return errors; failures surface as error notices.
type Controller struct {
	api     Backend
	confirm Confirmer
	logger  *slog.Logger

	noticeTTL    time.Duration
	commentLimit int
	afterFunc    afterFunc
	now          func() time.Time

	mu          sync.Mutex
	state       State
	subs        map[int]func(State)
	nextSub     int
	noticeTimer stopper
	noticeSeq   uint64
	lastNotice  Notice
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfirmer sets the gate consulted before destructive actions.
func WithConfirmer(c Confirmer) Option {
	return func(ctl *Controller) {
		if c != nil {
			ctl.confirm = c
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(ctl *Controller) {
		if l != nil {
			ctl.logger = l
		}
	}
}

// WithNoticeDuration sets how long notices stay visible.
func WithNoticeDuration(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.noticeTTL = d
		}
	}
}

// WithPageSize sets the post page size.
func WithPageSize(n int) Option {
	return func(ctl *Controller) {
		if n > 0 {
			ctl.state.Limit = n
		}
	}
}

// WithCommentLimit sets how many comments are fetched per post.
func WithCommentLimit(n int) Option {
	return func(ctl *Controller) {
		if n > 0 {
			ctl.commentLimit = n
		}
	}
}

// New creates a controller backed by api.
func New(api Backend, opts ...Option) *Controller {
	c := &Controller{
		api:          api,
		confirm:      DeclineAll,
		logger:       slog.New(slog.DiscardHandler),
		noticeTTL:    DefaultNoticeDuration,
		commentLimit: DefaultCommentLimit,
		afterFunc:    realAfterFunc,
		now:          time.Now,
		state:        State{Page: 1, Limit: DefaultPageSize},
		subs:         make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change and must not block.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// update applies fn under the lock, then publishes the result.
func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	snap, subs := c.publishLocked()
	c.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (c *Controller) publishLocked() (State, []func(State)) {
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return c.state.clone(), subs
}

// read returns a value computed from state under the lock.
func read[T any](c *Controller, fn func(s *State) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&c.state)
}

// LastNotice returns the most recently raised notice, even after it has
// expired from the notice slot.
func (c *Controller) LastNotice() Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastNotice
}

// Notify shows msg in the notice slot, replacing any current notice and
// restarting the expiry timer.
func (c *Controller) Notify(msg string, kind NoticeKind) {
	c.mu.Lock()
	if c.noticeTimer != nil {
		c.noticeTimer.Stop()
	}
	c.noticeSeq++
	seq := c.noticeSeq
	c.state.Notice = Notice{ID: seq, Message: msg, Kind: kind, Expires: c.now().Add(c.noticeTTL)}
	c.lastNotice = c.state.Notice
	c.noticeTimer = c.afterFunc(c.noticeTTL, func() { c.expireNotice(seq) })
	snap, subs := c.publishLocked()
	c.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

// expireNotice clears the notice only if it is still the one seq started.
func (c *Controller) expireNotice(seq uint64) {
	c.mu.Lock()
	if seq != c.noticeSeq {
		c.mu.Unlock()
		return
	}
	c.state.Notice = Notice{}
	c.noticeTimer = nil
	snap, subs := c.publishLocked()
	c.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (c *Controller) notifyOK(msg string) {
	c.Notify(msg, NoticeOK)
}

func (c *Controller) notifyError(msg string) {
	c.Notify(msg, NoticeError)
}

// fail reports err from op as an error notice.
func (c *Controller) fail(op string, err error) {
	c.logger.Warn("board operation failed", "op", op, "error", err)
	c.notifyError(err.Error())
}

// Init loads the session and the first page, as on application start.
func (c *Controller) Init(ctx context.Context) {
	c.WhoAmI(ctx)
	c.ListPosts(ctx)
}
