// ABOUTME: CLI commands for board accounts.
// ABOUTME: Provides register and whoami subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/community/internal/app"
	"github.com/2389-research/community/internal/config"
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <nickname>",
	Short: "Create a board account",
	Long: `Create a board account. The password is read from the
COMMUNITY_PASSWORD environment variable.`,
	Args: cobra.ExactArgs(2),
	RunE: runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Log in and show the account details",
	RunE:  runWhoami,
}

var registerEmail string

func init() {
	rootCmd.AddCommand(registerCmd, whoamiCmd)
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "optional email address")
	addUserFlag(whoamiCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	password := os.Getenv(config.EnvPassword)
	if password == "" {
		return fmt.Errorf("%s is not set", config.EnvPassword)
	}
	ctrl := newController()
	return perform(cmd, ctrl, func() {
		ctrl.Register(cmd.Context(), app.RegisterForm{
			Username: args[0],
			Password: password,
			Nickname: args[1],
			Email:    registerEmail,
		})
	})
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctrl := newController()
	if err := loginForWrite(cmd.Context(), ctrl); err != nil {
		return err
	}
	me := ctrl.Snapshot().Me
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (@%s)\n", me.Name(), me.Username)
	if me.Email != "" {
		fmt.Fprintf(out, "email:   %s\n", me.Email)
	}
	if !me.CreatedAt.IsZero() {
		fmt.Fprintf(out, "joined:  %s\n", me.CreatedAt.Display())
	}
	return nil
}
