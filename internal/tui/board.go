// ABOUTME: Interactive bubbletea board: post list, detail, comments, and forms.
// ABOUTME: Controller operations run as tea.Cmds; published snapshots drive rendering.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/community/internal/app"
)

// panel is the part of the screen that currently owns the keyboard.
type panel int

const (
	panelList panel = iota
	panelDetail
	panelLogin
	panelRegister
	panelCreate
	panelEdit
	panelComment
	panelConfirm
)

// Operation names reported back when a controller call finishes.
const (
	opInit          = "init"
	opLogin         = "login"
	opLogout        = "logout"
	opRegister      = "register"
	opListPosts     = "list_posts"
	opOpenPost      = "open_post"
	opCreatePost    = "create_post"
	opUpdatePost    = "update_post"
	opDeletePost    = "delete_post"
	opCreateComment = "create_comment"
	opDeleteComment = "delete_comment"
	opPage          = "page"
)

// opDoneMsg reports that a controller call returned.
type opDoneMsg struct {
	op string
}

// BoardModel is the bubbletea model for the community board.
type BoardModel struct {
	ctx      context.Context
	ctrl     *app.Controller
	prompter *Prompter
	feed     *stateFeed
	closeFn  func()

	state   app.State
	keys    keyMap
	help    help.Model
	cursor  int
	comment int

	loginOpen   bool
	commentOpen bool
	pending     *confirmRequest

	login    fieldForm
	register fieldForm
	draft    fieldForm
	editor   postEditor

	width    int
	quitting bool
}

// NewBoardModel subscribes to ctrl and returns a model ready for tea.NewProgram.
// prompter may be nil when ctrl was built with a different Confirmer. Call
// Close when the program exits.
func NewBoardModel(ctx context.Context, ctrl *app.Controller, prompter *Prompter) BoardModel {
	feed := newStateFeed()
	unsubscribe := ctrl.Subscribe(feed.push)
	return BoardModel{
		ctx:      ctx,
		ctrl:     ctrl,
		prompter: prompter,
		feed:     feed,
		closeFn:  unsubscribe,
		state:    ctrl.Snapshot(),
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

// Close detaches the model from the controller.
func (m BoardModel) Close() {
	if m.closeFn != nil {
		m.closeFn()
	}
}

// Init implements tea.Model.
func (m BoardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.run(opInit, m.ctrl.Init), m.feed.wait(m.ctx)}
	if m.prompter != nil {
		cmds = append(cmds, m.prompter.wait(m.ctx))
	}
	return tea.Batch(cmds...)
}

// run executes a controller call off the UI goroutine.
func (m BoardModel) run(op string, fn func(ctx context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		fn(ctx)
		return opDoneMsg{op: op}
	}
}

func (m BoardModel) panel() panel {
	switch {
	case m.pending != nil:
		return panelConfirm
	case m.loginOpen:
		return panelLogin
	case m.state.ShowRegister:
		return panelRegister
	case m.state.ShowCreate:
		return panelCreate
	case m.state.Editing && m.state.Selected != nil:
		return panelEdit
	case m.commentOpen && m.state.Selected != nil:
		return panelComment
	case m.state.Selected != nil:
		return panelDetail
	}
	return panelList
}

// Update implements tea.Model.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case stateMsg:
		m.setState(app.State(msg))
		return m, m.feed.wait(m.ctx)

	case opDoneMsg:
		m.setState(m.ctrl.Snapshot())
		switch msg.op {
		case opLogin:
			if m.state.LoggedIn() {
				m.loginOpen = false
			}
		case opCreateComment:
			if m.state.CommentDraft == "" && m.draft.value(0) != "" {
				m.commentOpen = false
			}
		case opOpenPost:
			m.comment = 0
		}
		return m, nil

	case confirmMsg:
		req := msg.req
		m.pending = &req
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.panel() {
		case panelConfirm:
			return m.updateConfirm(msg)
		case panelLogin:
			return m.updateLogin(msg)
		case panelRegister:
			return m.updateRegister(msg)
		case panelCreate, panelEdit:
			return m.updateEditor(msg)
		case panelComment:
			return m.updateComment(msg)
		case panelDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m *BoardModel) setState(s app.State) {
	m.state = s
	m.cursor = clamp(m.cursor, len(s.Posts))
	m.comment = clamp(m.comment, len(s.Comments))
}

// sync refreshes state after a synchronous controller call.
func (m *BoardModel) sync() {
	m.setState(m.ctrl.Snapshot())
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m BoardModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer bool
	switch {
	case key.Matches(msg, m.keys.Yes):
		answer = true
	case key.Matches(msg, m.keys.No):
		answer = false
	default:
		return m, nil
	}
	m.pending.reply <- answer
	m.pending = nil
	return m, m.prompter.wait(m.ctx)
}

func (m BoardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, len(m.state.Posts))
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, len(m.state.Posts))
	case key.Matches(msg, m.keys.Open):
		if len(m.state.Posts) == 0 {
			return m, nil
		}
		id := m.state.Posts[m.cursor].ID
		return m, m.run(opOpenPost, func(ctx context.Context) { m.ctrl.OpenPost(ctx, id) })
	case key.Matches(msg, m.keys.NextPage):
		m.cursor = 0
		return m, m.run(opPage, m.ctrl.NextPage)
	case key.Matches(msg, m.keys.PrevPage):
		m.cursor = 0
		return m, m.run(opPage, m.ctrl.PrevPage)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.run(opListPosts, m.ctrl.ListPosts)
	case key.Matches(msg, m.keys.New):
		m.ctrl.ToggleCreate()
		m.sync()
		m.editor = newPostEditor(m.state.CreateForm)
	case key.Matches(msg, m.keys.Login):
		if m.state.LoggedIn() {
			return m, nil
		}
		m.loginOpen = true
		m.login = newLoginForm(m.state.LoginForm)
	case key.Matches(msg, m.keys.Logout):
		if !m.state.LoggedIn() {
			return m, nil
		}
		return m, m.run(opLogout, m.ctrl.Logout)
	case key.Matches(msg, m.keys.Register):
		m.ctrl.OpenRegister()
		m.sync()
		m.register = newRegisterForm(m.state.RegisterForm)
	}
	return m, nil
}

func (m BoardModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.ctrl.ClosePost()
		m.sync()
	case key.Matches(msg, m.keys.Up):
		m.comment = clamp(m.comment-1, len(m.state.Comments))
	case key.Matches(msg, m.keys.Down):
		m.comment = clamp(m.comment+1, len(m.state.Comments))
	case key.Matches(msg, m.keys.Refresh):
		id := m.state.Selected.ID
		return m, m.run(opOpenPost, func(ctx context.Context) { m.ctrl.OpenPost(ctx, id) })
	case key.Matches(msg, m.keys.Edit):
		m.ctrl.StartEdit()
		m.sync()
		m.editor = newPostEditor(m.state.EditForm)
	case key.Matches(msg, m.keys.Delete):
		return m, m.run(opDeletePost, m.ctrl.DeletePost)
	case key.Matches(msg, m.keys.Comment):
		m.commentOpen = true
		m.draft = newCommentForm(m.state.CommentDraft)
	case key.Matches(msg, m.keys.DeleteComment):
		if len(m.state.Comments) == 0 {
			return m, nil
		}
		id := m.state.Comments[m.comment].ID
		return m, m.run(opDeleteComment, func(ctx context.Context) { m.ctrl.DeleteComment(ctx, id) })
	}
	return m, nil
}

func (m BoardModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.SetLoginForm(app.LoginForm{Username: m.login.value(0)})
		m.loginOpen = false
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.login.move(1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.login.move(-1)
	case key.Matches(msg, m.keys.Submit):
		form := m.login.loginForm()
		return m, m.run(opLogin, func(ctx context.Context) {
			m.ctrl.SetLoginForm(form)
			m.ctrl.Login(ctx, form.Username, form.Password)
		})
	}
	return m, m.login.update(msg)
}

func (m BoardModel) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		form := m.register.registerForm()
		form.Password = ""
		m.ctrl.SetRegisterForm(form)
		m.ctrl.CloseRegister()
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.register.move(1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.register.move(-1)
	case key.Matches(msg, m.keys.Submit):
		form := m.register.registerForm()
		return m, m.run(opRegister, func(ctx context.Context) {
			m.ctrl.SetRegisterForm(form)
			m.ctrl.Register(ctx, form)
		})
	}
	return m, m.register.update(msg)
}

func (m BoardModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editing := m.panel() == panelEdit
	switch {
	case key.Matches(msg, m.keys.Cancel):
		form := m.editor.form()
		if editing {
			m.ctrl.SetEditForm(form)
			m.ctrl.CancelEdit()
		} else {
			m.ctrl.SetCreateForm(form)
			m.ctrl.ToggleCreate()
		}
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.editor.toggle()
	case key.Matches(msg, m.keys.SavePost):
		form := m.editor.form()
		if editing {
			return m, m.run(opUpdatePost, func(ctx context.Context) {
				m.ctrl.SetEditForm(form)
				m.ctrl.UpdatePost(ctx, form.Title, form.Content)
			})
		}
		return m, m.run(opCreatePost, func(ctx context.Context) {
			m.ctrl.SetCreateForm(form)
			m.ctrl.CreatePost(ctx, form.Title, form.Content)
		})
	}
	return m, m.editor.update(msg)
}

func (m BoardModel) updateComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.SetCommentDraft(m.draft.inputs[0].Value())
		m.commentOpen = false
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		content := m.draft.value(0)
		postID := m.state.Selected.ID
		return m, m.run(opCreateComment, func(ctx context.Context) {
			m.ctrl.SetCommentDraft(content)
			m.ctrl.CreateComment(ctx, postID, content)
		})
	}
	return m, m.draft.update(msg)
}
