// ABOUTME: Unit tests for the board TUI model against an httptest backend.
// ABOUTME: Drives synthetic key messages and runs returned commands inline.
package tui

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

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/community/internal/api"
	"github.com/2389-research/community/internal/app"
)

type recorded struct {
	method, path, query, body string
}

// testBackend answers scripted "METHOD /path" routes with success envelopes.
type testBackend struct {
	mu     sync.Mutex
	routes map[string]string
	calls  []recorded
	server *httptest.Server
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{routes: make(map[string]string)}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.calls = append(b.calls, recorded{r.Method, r.URL.Path, r.URL.RawQuery, string(body)})
		data, ok := b.routes[r.Method+" "+r.URL.Path]
		b.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"message":"not found"}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"success":true,"data":%s}`, data)
	}))
	t.Cleanup(b.server.Close)

	b.on("GET", "/api/posts", `[{"id":7,"title":"첫 글","commentsCnt":2},{"id":8,"title":"둘째 글"}]`)
	b.on("GET", "/api/posts/7", `{"id":7,"title":"첫 글","content":"본문입니다"}`)
	b.on("GET", "/api/posts/7/comments", `[{"id":1,"nickname":"lee","content":"좋아요"},{"id":2,"username":"park","content":"동의"}]`)
	return b
}

func (b *testBackend) on(method, path, data string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = data
}

func (b *testBackend) count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.method == method && c.path == path {
			n++
		}
	}
	return n
}

func (b *testBackend) last(t *testing.T, method, path string) recorded {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.calls) - 1; i >= 0; i-- {
		if b.calls[i].method == method && b.calls[i].path == path {
			return b.calls[i]
		}
	}
	t.Fatalf("no %s %s request recorded", method, path)
	return recorded{}
}

func (b *testBackend) loggedIn() {
	b.on("POST", "/api/login", `null`)
	b.on("GET", "/api/me", `{"id":1,"username":"kim"}`)
}

func newTestBoard(t *testing.T, b *testBackend) (BoardModel, *app.Controller, *Prompter) {
	t.Helper()
	client, err := api.NewClient(b.server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	p := NewPrompter()
	ctrl := app.New(client, app.WithConfirmer(p), app.WithNoticeDuration(time.Hour))
	m := NewBoardModel(t.Context(), ctrl, p)
	t.Cleanup(m.Close)
	return m, ctrl, p
}

func press(t *testing.T, m BoardModel, msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(BoardModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// finish runs a controller command inline and feeds its completion back.
func finish(t *testing.T, m BoardModel, cmd tea.Cmd) BoardModel {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if _, ok := msg.(opDoneMsg); !ok {
		t.Fatalf("expected opDoneMsg, got %T", msg)
	}
	updated, _ := m.Update(msg)
	return updated.(BoardModel)
}

func loadPosts(t *testing.T, m BoardModel) BoardModel {
	t.Helper()
	return finish(t, m, m.run(opInit, m.ctrl.Init))
}

func TestBoard_InitShowsPostsLoggedOut(t *testing.T) {
	b := newTestBackend(t)
	m, _, _ := newTestBoard(t, b)
	if m.Init() == nil {
		t.Fatal("expected init command")
	}

	m = loadPosts(t, m)

	view := m.View()
	for _, want := range []string{"첫 글", "둘째 글", "로그인 안 됨", "1 페이지", "댓글 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected list view to contain %q", want)
		}
	}
	if m.panel() != panelList {
		t.Errorf("expected list panel, got %d", m.panel())
	}
}

func TestBoard_EmptyList(t *testing.T) {
	b := newTestBackend(t)
	b.on("GET", "/api/posts", `[]`)
	m, _, _ := newTestBoard(t, b)
	m = loadPosts(t, m)

	if !strings.Contains(m.View(), "게시글이 없습니다") {
		t.Error("expected empty-list placeholder")
	}
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected enter on an empty list to do nothing")
	}
}

func TestBoard_CursorMovement(t *testing.T) {
	b := newTestBackend(t)
	m, _, _ := newTestBoard(t, b)
	m = loadPosts(t, m)

	m, _ = press(t, m, runes("j"))
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}
	m, _ = press(t, m, runes("j"))
	if m.cursor != 1 {
		t.Errorf("expected cursor to stop at last post, got %d", m.cursor)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
}

func TestBoard_OpenPostAndBack(t *testing.T) {
	b := newTestBackend(t)
	m, _, _ := newTestBoard(t, b)
	m = loadPosts(t, m)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)

	if m.panel() != panelDetail {
		t.Fatalf("expected detail panel, got %d", m.panel())
	}
	view := m.View()
	for _, want := range []string{"본문입니다", "댓글 (2)", "lee: 좋아요", "park: 동의"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected detail view to contain %q", want)
		}
	}
	if got := b.last(t, "GET", "/api/posts/7/comments").query; got != "limit=50" {
		t.Errorf("expected default comment limit, got %q", got)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.panel() != panelList {
		t.Errorf("expected list panel after esc, got %d", m.panel())
	}
}

func TestBoard_Pagination(t *testing.T) {
	b := newTestBackend(t)
	m, ctrl, _ := newTestBoard(t, b)
	m = loadPosts(t, m)

	m, cmd := press(t, m, runes("n"))
	m = finish(t, m, cmd)
	if got := b.last(t, "GET", "/api/posts").query; got != "limit=10&page=2" {
		t.Errorf("expected page 2 query, got %q", got)
	}
	if !strings.Contains(m.View(), "2 페이지") {
		t.Error("expected page indicator to show page 2")
	}

	m, cmd = press(t, m, runes("p"))
	_ = finish(t, m, cmd)
	if ctrl.Snapshot().Page != 1 {
		t.Errorf("expected page 1, got %d", ctrl.Snapshot().Page)
	}
}

func TestBoard_LoginFlow(t *testing.T) {
	b := newTestBackend(t)
	b.loggedIn()
	m, _, _ := newTestBoard(t, b)

	m, _ = press(t, m, runes("l"))
	if m.panel() != panelLogin {
		t.Fatalf("expected login panel, got %d", m.panel())
	}
	m, _ = press(t, m, runes("kim"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, runes("pw"))
	if strings.Contains(m.View(), "pw") {
		t.Error("expected password to be masked")
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)

	if got := b.last(t, "POST", "/api/login").body; got != `{"username":"kim","password":"pw"}` {
		t.Errorf("unexpected login body %s", got)
	}
	if m.panel() != panelList {
		t.Errorf("expected login panel to close after success, got %d", m.panel())
	}
	if !strings.Contains(m.View(), "kim 님") {
		t.Error("expected header to show the logged-in user")
	}
	if !strings.Contains(m.View(), app.MsgLoginOK) {
		t.Error("expected login notice")
	}
}

func TestBoard_LoginFailureKeepsPanel(t *testing.T) {
	b := newTestBackend(t)
	m, _, _ := newTestBoard(t, b)

	m, _ = press(t, m, runes("l"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)

	if m.panel() != panelLogin {
		t.Errorf("expected login panel to stay open, got %d", m.panel())
	}
	if !strings.Contains(m.View(), app.MsgCredentialsRequired) {
		t.Error("expected credentials notice")
	}
	if b.count("POST", "/api/login") != 0 {
		t.Error("expected no login request with empty credentials")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.panel() != panelList {
		t.Errorf("expected esc to close login, got %d", m.panel())
	}
}

func TestBoard_RegisterPanelOpensAndCloses(t *testing.T) {
	b := newTestBackend(t)
	m, ctrl, _ := newTestBoard(t, b)

	m, _ = press(t, m, runes("r"))
	if m.panel() != panelRegister {
		t.Fatalf("expected register panel, got %d", m.panel())
	}
	m, _ = press(t, m, runes("newbie"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.panel() != panelList {
		t.Errorf("expected list after esc, got %d", m.panel())
	}
	if got := ctrl.Snapshot().RegisterForm.Username; got != "newbie" {
		t.Errorf("expected draft username kept, got %q", got)
	}
}

func TestBoard_RegisterSubmit(t *testing.T) {
	b := newTestBackend(t)
	b.on("POST", "/api/users", `null`)
	m, _, _ := newTestBoard(t, b)

	m, _ = press(t, m, runes("r"))
	m, _ = press(t, m, runes("newbie"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, runes("secret"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, runes("뉴비"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)

	if b.count("POST", "/api/users") != 1 {
		t.Fatal("expected one register request")
	}
	if m.panel() != panelList {
		t.Errorf("expected register panel closed after success, got %d", m.panel())
	}
	if !strings.Contains(m.View(), app.MsgRegisterOK) {
		t.Error("expected register notice")
	}
}

func loginController(t *testing.T, b *testBackend, ctrl *app.Controller) {
	t.Helper()
	b.loggedIn()
	ctrl.Login(t.Context(), "kim", "pw")
	if !ctrl.Snapshot().LoggedIn() {
		t.Fatal("expected login to succeed")
	}
}

func TestBoard_CreatePost(t *testing.T) {
	b := newTestBackend(t)
	b.on("POST", "/api/posts", `1`)
	m, ctrl, _ := newTestBoard(t, b)
	loginController(t, b, ctrl)
	m.sync()

	m, _ = press(t, m, runes("c"))
	if m.panel() != panelCreate {
		t.Fatalf("expected create panel, got %d", m.panel())
	}
	m, _ = press(t, m, runes("새 글"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, runes("내용"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = finish(t, m, cmd)

	if got := b.last(t, "POST", "/api/posts").body; got != `{"title":"새 글","content":"내용"}` {
		t.Errorf("unexpected create body %s", got)
	}
	if m.panel() != panelList {
		t.Errorf("expected create panel closed, got %d", m.panel())
	}
	if !strings.Contains(m.View(), app.MsgPostCreated) {
		t.Error("expected created notice")
	}
}

func TestBoard_CreatePostTitleTooLong(t *testing.T) {
	b := newTestBackend(t)
	m, ctrl, _ := newTestBoard(t, b)
	loginController(t, b, ctrl)
	m.sync()

	m, _ = press(t, m, runes("c"))
	m, _ = press(t, m, runes(strings.Repeat("가", 26)))
	if !strings.Contains(m.View(), "26/25") {
		t.Error("expected title counter to show 26/25")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, runes("내용"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = finish(t, m, cmd)

	if b.count("POST", "/api/posts") != 0 {
		t.Error("expected no request for an over-long title")
	}
	if m.panel() != panelCreate {
		t.Errorf("expected create panel to stay open, got %d", m.panel())
	}
	if !strings.Contains(m.View(), app.MsgTitleTooLong) {
		t.Error("expected title length notice")
	}
}

func TestBoard_CreateCancelKeepsDraft(t *testing.T) {
	b := newTestBackend(t)
	m, ctrl, _ := newTestBoard(t, b)

	m, _ = press(t, m, runes("c"))
	m, _ = press(t, m, runes("임시"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.panel() != panelList {
		t.Fatalf("expected list after esc, got %d", m.panel())
	}
	if got := ctrl.Snapshot().CreateForm.Title; got != "임시" {
		t.Errorf("expected draft title kept, got %q", got)
	}

	m, _ = press(t, m, runes("c"))
	if m.editor.title.Value() != "임시" {
		t.Errorf("expected reopened editor to restore draft, got %q", m.editor.title.Value())
	}
}

func openFirstPost(t *testing.T, m BoardModel) BoardModel {
	t.Helper()
	m = loadPosts(t, m)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return finish(t, m, cmd)
}

func TestBoard_EditPost(t *testing.T) {
	b := newTestBackend(t)
	b.on("PUT", "/api/posts/7", `{"id":7,"title":"첫 글 수정","content":"본문입니다"}`)
	m, _, _ := newTestBoard(t, b)
	m = openFirstPost(t, m)

	m, _ = press(t, m, runes("e"))
	if m.panel() != panelEdit {
		t.Fatalf("expected edit panel, got %d", m.panel())
	}
	if m.editor.title.Value() != "첫 글" {
		t.Errorf("expected editor prefilled, got %q", m.editor.title.Value())
	}
	m, _ = press(t, m, runes(" 수정"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = finish(t, m, cmd)

	if got := b.last(t, "PUT", "/api/posts/7").body; got != `{"title":"첫 글 수정","content":"본문입니다"}` {
		t.Errorf("unexpected update body %s", got)
	}
	if m.panel() != panelDetail {
		t.Errorf("expected detail after save, got %d", m.panel())
	}
	if !strings.Contains(m.View(), "첫 글 수정") {
		t.Error("expected detail to show the server's title")
	}
}

func TestBoard_DeletePostConfirmed(t *testing.T) {
	b := newTestBackend(t)
	b.on("DELETE", "/api/posts/7", `null`)
	m, _, p := newTestBoard(t, b)
	m = openFirstPost(t, m)

	m, cmd := press(t, m, runes("d"))
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	updated, _ := m.Update(p.wait(t.Context())())
	m = updated.(BoardModel)
	if m.panel() != panelConfirm {
		t.Fatalf("expected confirm overlay, got %d", m.panel())
	}
	if !strings.Contains(m.View(), app.PromptDeletePost) {
		t.Error("expected delete prompt in overlay")
	}

	m, next := press(t, m, runes("y"))
	if next == nil {
		t.Error("expected prompter to be re-armed")
	}

	select {
	case msg := <-done:
		updated, _ = m.Update(msg)
		m = updated.(BoardModel)
	case <-time.After(2 * time.Second):
		t.Fatal("delete did not finish")
	}

	if b.count("DELETE", "/api/posts/7") != 1 {
		t.Error("expected one delete request")
	}
	if m.panel() != panelList {
		t.Errorf("expected list after delete, got %d", m.panel())
	}
}

func TestBoard_DeletePostDeclined(t *testing.T) {
	b := newTestBackend(t)
	m, _, p := newTestBoard(t, b)
	m = openFirstPost(t, m)

	m, cmd := press(t, m, runes("d"))
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	updated, _ := m.Update(p.wait(t.Context())())
	m = updated.(BoardModel)
	m, _ = press(t, m, runes("n"))
	updated, _ = m.Update(<-done)
	m = updated.(BoardModel)

	if b.count("DELETE", "/api/posts/7") != 0 {
		t.Error("expected no delete request when declined")
	}
	if m.panel() != panelDetail {
		t.Errorf("expected detail to stay open, got %d", m.panel())
	}
}

func TestBoard_CommentFlow(t *testing.T) {
	b := newTestBackend(t)
	b.on("POST", "/api/posts/7/comments", `3`)
	m, ctrl, _ := newTestBoard(t, b)
	loginController(t, b, ctrl)
	m = openFirstPost(t, m)

	m, _ = press(t, m, runes("a"))
	if m.panel() != panelComment {
		t.Fatalf("expected comment panel, got %d", m.panel())
	}
	m, _ = press(t, m, runes("반가워요"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)

	if got := b.last(t, "POST", "/api/posts/7/comments").body; got != `{"content":"반가워요"}` {
		t.Errorf("unexpected comment body %s", got)
	}
	if m.panel() != panelDetail {
		t.Errorf("expected comment panel closed after success, got %d", m.panel())
	}
}

func TestBoard_EmptyCommentKeepsPanel(t *testing.T) {
	b := newTestBackend(t)
	m, ctrl, _ := newTestBoard(t, b)
	loginController(t, b, ctrl)
	m = openFirstPost(t, m)

	m, _ = press(t, m, runes("a"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = finish(t, m, cmd)

	if m.panel() != panelComment {
		t.Errorf("expected comment panel to stay open, got %d", m.panel())
	}
	if !strings.Contains(m.View(), app.MsgCommentRequired) {
		t.Error("expected empty comment notice")
	}
}

func TestBoard_DeleteSelectedComment(t *testing.T) {
	b := newTestBackend(t)
	b.on("DELETE", "/api/comments/2", `null`)
	m, _, p := newTestBoard(t, b)
	m = openFirstPost(t, m)

	m, _ = press(t, m, runes("j"))
	m, cmd := press(t, m, runes("x"))
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	updated, _ := m.Update(p.wait(t.Context())())
	m = updated.(BoardModel)
	if !strings.Contains(m.View(), app.PromptDeleteComment) {
		t.Error("expected comment delete prompt")
	}
	m, _ = press(t, m, runes("y"))
	<-done

	if b.count("DELETE", "/api/comments/2") != 1 {
		t.Error("expected delete of the highlighted comment")
	}
}

func TestBoard_NoticeFromFeed(t *testing.T) {
	b := newTestBackend(t)
	m, ctrl, _ := newTestBoard(t, b)

	ctrl.Notify("서버 오류", app.NoticeError)
	msg := m.feed.wait(t.Context())()
	updated, cmd := m.Update(msg)
	m = updated.(BoardModel)

	if !strings.Contains(m.View(), "서버 오류") {
		t.Error("expected notice to render")
	}
	if cmd == nil {
		t.Error("expected feed to be re-armed")
	}
}

func TestBoard_Quit(t *testing.T) {
	b := newTestBackend(t)
	m, _, _ := newTestBoard(t, b)

	m, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestStateFeed_KeepsLatest(t *testing.T) {
	f := newStateFeed()
	f.push(app.State{Page: 1})
	f.push(app.State{Page: 2})

	msg := f.wait(context.Background())()
	if s, ok := msg.(stateMsg); !ok || s.Page != 2 {
		t.Errorf("expected newest snapshot, got %+v", msg)
	}
}

func TestStateFeed_CancelledWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if msg := newStateFeed().wait(ctx)(); msg != nil {
		t.Errorf("expected nil msg after cancel, got %T", msg)
	}
}

func TestPrompter_CancelledContextDeclines(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if NewPrompter().Confirm(ctx, "삭제?") {
		t.Error("expected cancelled confirm to decline")
	}
}
