// ABOUTME: Shared helpers for board subcommands.
// ABOUTME: Maps controller notices to CLI output and errors, and logs in write commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/community/internal/app"
	"github.com/2389-research/community/internal/config"
)

var flagUsername string

// perform runs op and returns the error notice it raised as an error. A
// success notice is printed to the command's output.
func perform(cmd *cobra.Command, ctrl *app.Controller, op func()) error {
	before := ctrl.LastNotice().ID
	op()
	n := ctrl.LastNotice()
	if n.ID == before {
		return nil
	}
	if n.Kind == app.NoticeError {
		return errors.New(n.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), n.Message)
	return nil
}

// addUserFlag registers --username on a write command.
func addUserFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagUsername, "username", "u", "", "account username (default from config)")
}

// loginForWrite opens a session for the configured user. The password comes
// from the environment so it never appears in shell history.
func loginForWrite(ctx context.Context, ctrl *app.Controller) error {
	username := flagUsername
	if username == "" && globalConfig != nil {
		username = globalConfig.Account.Username
	}
	if username == "" {
		return fmt.Errorf("no username: pass --username or run 'community setup'")
	}
	password := os.Getenv(config.EnvPassword)
	if password == "" {
		return fmt.Errorf("%s is not set", config.EnvPassword)
	}

	before := ctrl.LastNotice().ID
	ctrl.Login(ctx, username, password)
	if !ctrl.Snapshot().LoggedIn() {
		if n := ctrl.LastNotice(); n.ID != before && n.Kind == app.NoticeError {
			return fmt.Errorf("login failed: %s", n.Message)
		}
		return fmt.Errorf("login failed")
	}
	return nil
}
