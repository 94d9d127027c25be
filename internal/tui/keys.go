// ABOUTME: Key bindings for the board TUI, grouped per panel for the help line.
package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	Open          key.Binding
	Back          key.Binding
	NextPage      key.Binding
	PrevPage      key.Binding
	Refresh       key.Binding
	New           key.Binding
	Login         key.Binding
	Logout        key.Binding
	Register      key.Binding
	Quit          key.Binding
	Edit          key.Binding
	Delete        key.Binding
	Comment       key.Binding
	DeleteComment key.Binding
	Submit        key.Binding
	SavePost      key.Binding
	NextField     key.Binding
	PrevField     key.Binding
	Cancel        key.Binding
	Yes           key.Binding
	No            key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Open:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:          key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		NextPage:      key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next page")),
		PrevPage:      key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "prev page")),
		Refresh:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
		New:           key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new post")),
		Login:         key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
		Logout:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
		Register:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "register")),
		Quit:          key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Edit:          key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Comment:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "comment")),
		DeleteComment: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete comment")),
		Submit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		SavePost:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		NextField:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:     key.NewBinding(key.WithKeys("shift+tab")),
		Cancel:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:           key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:            key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	}
}

func (k keyMap) forPanel(p panel, loggedIn bool) []key.Binding {
	switch p {
	case panelConfirm:
		return []key.Binding{k.Yes, k.No}
	case panelLogin, panelRegister:
		return []key.Binding{k.NextField, k.Submit, k.Cancel}
	case panelComment:
		return []key.Binding{k.Submit, k.Cancel}
	case panelCreate, panelEdit:
		return []key.Binding{k.NextField, k.SavePost, k.Cancel}
	case panelDetail:
		return []key.Binding{k.Up, k.Down, k.Edit, k.Delete, k.Comment, k.DeleteComment, k.Back, k.Quit}
	}
	session := k.Login
	if loggedIn {
		session = k.Logout
	}
	return []key.Binding{k.Up, k.Down, k.Open, k.PrevPage, k.NextPage, k.New, session, k.Register, k.Refresh, k.Quit}
}
