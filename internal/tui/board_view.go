// ABOUTME: Rendering for the board TUI: header, notice slot, panels, and help line.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/community/internal/app"
	"github.com/2389-research/community/internal/models"
)

var (
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headingStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	noticeOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("82")).Padding(0, 1)
	noticeErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("196")).Padding(0, 1)
	boxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
)

// View implements tea.Model.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	if n := m.noticeView(); n != "" {
		b.WriteString(n)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	p := m.panel()
	switch p {
	case panelConfirm:
		b.WriteString(boxStyle.Render(m.pending.prompt + "\n\n" + mutedStyle.Render("[y] 예  [n] 아니오")))
	case panelLogin:
		b.WriteString(headingStyle.Render("로그인"))
		b.WriteString("\n")
		b.WriteString(m.login.view())
	case panelRegister:
		b.WriteString(headingStyle.Render("회원가입"))
		b.WriteString("\n")
		b.WriteString(m.register.view())
	case panelCreate:
		b.WriteString(headingStyle.Render("새 게시글"))
		b.WriteString("\n")
		b.WriteString(m.editor.view())
	case panelEdit:
		b.WriteString(headingStyle.Render("게시글 수정"))
		b.WriteString("\n")
		b.WriteString(m.editor.view())
	case panelComment:
		b.WriteString(m.detailView())
		b.WriteString("\n")
		b.WriteString(m.draft.view())
	case panelDetail:
		b.WriteString(m.detailView())
	default:
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.forPanel(p, m.state.LoggedIn())))
	b.WriteString("\n")
	return b.String()
}

func (m BoardModel) headerView() string {
	title := brandStyle.Render("COMMUNITY") + titleStyle.Render(" 게시판")
	session := mutedStyle.Render("로그인 안 됨")
	if m.state.LoggedIn() {
		session = successStyle.Render(m.state.Me.Name() + " 님")
	}
	line := title + "  " + session
	if m.state.Loading.Any() {
		line += "  " + mutedStyle.Render("처리 중…")
	}
	return line
}

func (m BoardModel) noticeView() string {
	n := m.state.Notice
	if !n.Visible() {
		return ""
	}
	if n.Kind == app.NoticeError {
		return noticeErrStyle.Render(n.Message)
	}
	return noticeOKStyle.Render(n.Message)
}

func (m BoardModel) listView() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("게시글 · %d 페이지", m.state.Page)))
	b.WriteString("\n")
	if len(m.state.Posts) == 0 {
		b.WriteString(mutedStyle.Render("게시글이 없습니다"))
		b.WriteString("\n")
		return b.String()
	}
	for i, p := range m.state.Posts {
		b.WriteString(m.postLine(i == m.cursor, p))
		b.WriteString("\n")
	}
	return b.String()
}

func (m BoardModel) postLine(selected bool, p models.Post) string {
	prefix := "  "
	title := models.TruncateTitle(p.Title)
	if selected {
		prefix = cursorStyle.Render("› ")
		title = cursorStyle.Render(title)
	}
	meta := mutedStyle.Render(fmt.Sprintf("댓글 %d · 조회 %d · %s", p.CommentsCnt, p.ViewCount, p.CreatedAt.Display()))
	return fmt.Sprintf("%s#%d %s  %s", prefix, p.ID, title, meta)
}

func (m BoardModel) detailView() string {
	post := m.state.Selected
	var b strings.Builder
	b.WriteString(headingStyle.Render(post.Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("#%d · 작성 %s · 수정 %s · 조회 %d",
		post.ID, post.CreatedAt.Display(), post.UpdatedAt.Display(), post.ViewCount)))
	b.WriteString("\n\n")
	b.WriteString(post.Content)
	b.WriteString("\n\n")
	b.WriteString(headingStyle.Render(fmt.Sprintf("댓글 (%d)", len(m.state.Comments))))
	b.WriteString("\n")
	if len(m.state.Comments) == 0 {
		b.WriteString(mutedStyle.Render("댓글이 없습니다"))
		b.WriteString("\n")
	}
	for i, c := range m.state.Comments {
		prefix := "  "
		if i == m.comment {
			prefix = cursorStyle.Render("› ")
		}
		b.WriteString(fmt.Sprintf("%s%s: %s  %s\n", prefix, c.Author(), c.Content, mutedStyle.Render(c.CreatedAt.Display())))
	}
	return b.String()
}
