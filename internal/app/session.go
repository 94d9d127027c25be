// ABOUTME: Session operations: who-am-i, login, logout, and registration.
// ABOUTME: Also holds the login/register form buffer setters and panel toggles.
package app

import (
	"context"

	"github.com/2389-research/community/internal/models"
)

// WhoAmI refreshes the session. Any failure means "not logged in" and is
// never reported to the user.
func (c *Controller) WhoAmI(ctx context.Context) {
	me, err := c.api.Me(ctx)
	if err != nil {
		c.logger.Debug("no active session", "error", err)
		me = nil
	}
	c.update(func(s *State) { s.Me = me })
}

// Login authenticates and reloads the session.
func (c *Controller) Login(ctx context.Context, username, password string) {
	if username == "" || password == "" {
		c.notifyError(MsgCredentialsRequired)
		return
	}

	c.update(func(s *State) { s.Loading.Login = true })
	defer c.update(func(s *State) { s.Loading.Login = false })

	if err := c.api.Login(ctx, models.Credentials{Username: username, Password: password}); err != nil {
		c.fail("login", err)
		return
	}
	c.WhoAmI(ctx)
	c.notifyOK(MsgLoginOK)
}

// Logout ends the session. The server call is best-effort; the local session
// is cleared regardless.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.api.Logout(ctx); err != nil {
		c.logger.Debug("logout request failed", "error", err)
	}
	c.update(func(s *State) { s.Me = nil })
	c.notifyOK(MsgLoggedOut)
}

// Register creates an account. Email is optional.
func (c *Controller) Register(ctx context.Context, form RegisterForm) {
	if form.Username == "" || form.Password == "" || form.Nickname == "" {
		c.notifyError(MsgRegisterRequired)
		return
	}

	c.update(func(s *State) { s.Loading.Register = true })
	defer c.update(func(s *State) { s.Loading.Register = false })

	err := c.api.Register(ctx, models.Registration{
		Username: form.Username,
		Password: form.Password,
		Nickname: form.Nickname,
		Email:    form.Email,
	})
	if err != nil {
		c.fail("register", err)
		return
	}
	c.notifyOK(MsgRegisterOK)
	c.update(func(s *State) {
		s.RegisterForm = RegisterForm{}
		s.ShowRegister = false
	})
}

// SetLoginForm replaces the login buffer.
func (c *Controller) SetLoginForm(f LoginForm) {
	c.update(func(s *State) { s.LoginForm = f })
}

// SetRegisterForm replaces the registration buffer.
func (c *Controller) SetRegisterForm(f RegisterForm) {
	c.update(func(s *State) { s.RegisterForm = f })
}

// OpenRegister shows the registration panel.
func (c *Controller) OpenRegister() {
	c.update(func(s *State) { s.ShowRegister = true })
}

// CloseRegister hides the registration panel.
func (c *Controller) CloseRegister() {
	c.update(func(s *State) { s.ShowRegister = false })
}
