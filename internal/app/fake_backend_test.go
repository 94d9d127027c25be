// ABOUTME: Test helpers: an httptest fake backend and a manual notice timer.
// ABOUTME: The fake records every request so tests can count network calls.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/2389-research/community/internal/api"
)

type request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

func (r request) key() string {
	return r.Method + " " + r.Path
}

// fakeBoard is a scripted backend. Routes map "METHOD /path" to a status and
// body; unrouted requests get 404.
type fakeBoard struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]route
	calls  []request
	server *httptest.Server
}

type route struct {
	status int
	body   string
}

func newFakeBoard(t *testing.T) *fakeBoard {
	t.Helper()
	fb := &fakeBoard{t: t, routes: make(map[string]route)}
	fb.server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBoard) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	req := request{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)}

	fb.mu.Lock()
	fb.calls = append(fb.calls, req)
	rt, ok := fb.routes[req.key()]
	fb.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"not found"}`))
		return
	}
	w.WriteHeader(rt.status)
	_, _ = w.Write([]byte(rt.body))
}

// on scripts a 200 response with data wrapped in a success envelope.
func (fb *fakeBoard) on(method, path, data string) {
	fb.onStatus(method, path, http.StatusOK, fmt.Sprintf(`{"success":true,"data":%s}`, data))
}

func (fb *fakeBoard) onStatus(method, path string, status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[method+" "+path] = route{status: status, body: body}
}

func (fb *fakeBoard) count(method, path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, c := range fb.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (fb *fakeBoard) total() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.calls)
}

func (fb *fakeBoard) last(method, path string) request {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := len(fb.calls) - 1; i >= 0; i-- {
		if fb.calls[i].Method == method && fb.calls[i].Path == path {
			return fb.calls[i]
		}
	}
	fb.t.Fatalf("no %s %s request recorded", method, path)
	return request{}
}

func (fb *fakeBoard) reset() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.calls = nil
}

// loggedIn scripts a session for user kim.
func (fb *fakeBoard) loggedIn() {
	fb.on("POST", "/api/login", `null`)
	fb.on("GET", "/api/me", `{"id":1,"username":"kim","nickname":"킴"}`)
}

// withPost scripts post id with two comments and a one-post list.
func (fb *fakeBoard) withPost(id int64) {
	fb.on("GET", fmt.Sprintf("/api/posts/%d", id), fmt.Sprintf(`{"id":%d,"title":"원래 제목","content":"원래 내용"}`, id))
	fb.on("GET", fmt.Sprintf("/api/posts/%d/comments", id), `[{"id":1,"content":"a"},{"id":2,"content":"b"}]`)
	fb.on("GET", "/api/posts", fmt.Sprintf(`[{"id":%d,"title":"원래 제목"}]`, id))
}

// manualTimer records scheduled expiries so tests can fire them by hand.
type manualTimer struct {
	mu      sync.Mutex
	timers  []*manualEntry
	lastDur time.Duration
}

type manualEntry struct {
	fn      func()
	stopped bool
}

func (e *manualEntry) Stop() bool {
	was := !e.stopped
	e.stopped = true
	return was
}

func (m *manualTimer) afterFunc(d time.Duration, f func()) stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := &manualEntry{fn: f}
	m.timers = append(m.timers, e)
	m.lastDur = d
	return e
}

// fire runs the i-th scheduled expiry, as a late-firing timer would.
func (m *manualTimer) fire(i int) {
	m.mu.Lock()
	e := m.timers[i]
	m.mu.Unlock()
	e.fn()
}

func (m *manualTimer) entry(i int) *manualEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timers[i]
}

func newController(t *testing.T, fb *fakeBoard, opts ...Option) (*Controller, *manualTimer) {
	t.Helper()
	client, err := api.NewClient(fb.server.URL)
	require.NoError(t, err)
	c := New(client, opts...)
	mt := &manualTimer{}
	c.afterFunc = mt.afterFunc
	return c, mt
}

func login(t *testing.T, fb *fakeBoard, c *Controller) {
	t.Helper()
	fb.loggedIn()
	c.Login(t.Context(), "kim", "pw")
	require.NotNil(t, c.Snapshot().Me, "login setup failed: %s", c.Snapshot().Notice.Message)
	fb.reset()
}

func confirmWith(answer bool, prompts *[]string) Confirmer {
	return ConfirmFunc(func(_ context.Context, prompt string) bool {
		*prompts = append(*prompts, prompt)
		return answer
	})
}

func contains(body, sub string) bool {
	return strings.Contains(body, sub)
}
