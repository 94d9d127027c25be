// ABOUTME: Form widgets for the board TUI: labelled input stacks and the post editor.
// ABOUTME: Widgets convert to and from the controller's form buffers.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/community/internal/app"
	"github.com/2389-research/community/internal/models"
)

// fieldForm is a vertical stack of single-line inputs with one focused field.
type fieldForm struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newFieldForm(labels, values []string) fieldForm {
	f := fieldForm{labels: labels, inputs: make([]textinput.Model, len(labels))}
	for i := range labels {
		in := textinput.New()
		in.Width = 40
		in.CharLimit = 200
		if i < len(values) {
			in.SetValue(values[i])
		}
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func newLoginForm(lf app.LoginForm) fieldForm {
	f := newFieldForm([]string{"아이디", "비밀번호"}, []string{lf.Username, lf.Password})
	f.inputs[1].EchoMode = textinput.EchoPassword
	return f
}

func newRegisterForm(rf app.RegisterForm) fieldForm {
	f := newFieldForm(
		[]string{"아이디", "비밀번호", "닉네임", "이메일 (선택)"},
		[]string{rf.Username, rf.Password, rf.Nickname, rf.Email},
	)
	f.inputs[1].EchoMode = textinput.EchoPassword
	return f
}

func newCommentForm(draft string) fieldForm {
	f := newFieldForm([]string{"댓글"}, []string{draft})
	f.inputs[0].Width = 60
	f.inputs[0].CharLimit = 1000
	return f
}

func (f *fieldForm) move(delta int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *fieldForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f fieldForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f fieldForm) loginForm() app.LoginForm {
	return app.LoginForm{Username: f.value(0), Password: f.inputs[1].Value()}
}

func (f fieldForm) registerForm() app.RegisterForm {
	return app.RegisterForm{
		Username: f.value(0),
		Password: f.inputs[1].Value(),
		Nickname: f.value(2),
		Email:    f.value(3),
	}
}

func (f fieldForm) view() string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := labelStyle.Render(f.labels[i])
		if i == f.focus {
			label = focusLabelStyle.Render(f.labels[i])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return b.String()
}

// postEditor edits a title and a multi-line body.
type postEditor struct {
	title     textinput.Model
	body      textarea.Model
	focusBody bool
}

func newPostEditor(pf app.PostForm) postEditor {
	title := textinput.New()
	title.Placeholder = "제목"
	title.Width = 50
	title.SetValue(pf.Title)
	title.Focus()

	body := textarea.New()
	body.Placeholder = "내용"
	body.ShowLineNumbers = false
	body.SetWidth(60)
	body.SetHeight(8)
	body.CharLimit = 0
	body.SetValue(pf.Content)
	body.Blur()

	return postEditor{title: title, body: body}
}

func (e *postEditor) toggle() tea.Cmd {
	e.focusBody = !e.focusBody
	if e.focusBody {
		e.title.Blur()
		return e.body.Focus()
	}
	e.body.Blur()
	return e.title.Focus()
}

func (e *postEditor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.focusBody {
		e.body, cmd = e.body.Update(msg)
	} else {
		e.title, cmd = e.title.Update(msg)
	}
	return cmd
}

func (e postEditor) form() app.PostForm {
	return app.PostForm{Title: strings.TrimSpace(e.title.Value()), Content: e.body.Value()}
}

func (e postEditor) view() string {
	var b strings.Builder
	n := models.TitleLength(e.title.Value())
	counter := fmt.Sprintf("%d/%d", n, models.MaxTitleLength)
	if n > models.MaxTitleLength {
		counter = errorStyle.Render(counter)
	} else {
		counter = mutedStyle.Render(counter)
	}
	b.WriteString(focusLabelIf(!e.focusBody, "제목"))
	b.WriteString(" ")
	b.WriteString(counter)
	b.WriteString("\n")
	b.WriteString(e.title.View())
	b.WriteString("\n\n")
	b.WriteString(focusLabelIf(e.focusBody, "내용"))
	b.WriteString("\n")
	b.WriteString(e.body.View())
	b.WriteString("\n")
	return b.String()
}

func focusLabelIf(focused bool, label string) string {
	if focused {
		return focusLabelStyle.Render(label)
	}
	return labelStyle.Render(label)
}
