// ABOUTME: Cobra command that runs the full-screen board browser.
// ABOUTME: Redirects logging to a file so it never draws over the alt screen.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/community/internal/app"
	"github.com/2389-research/community/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"browse"},
	Short:   "Browse the board interactively",
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	logPath, err := globalConfig.GetLogFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0750); err != nil {
		return fmt.Errorf("failed to create log dir: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	globalLogger = newLogger(logFile, globalConfig.GetLogLevel())
	client, err := newClient(globalConfig, globalLogger)
	if err != nil {
		return err
	}
	globalClient = client

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	prompter := tui.NewPrompter()
	ctrl := newController(app.WithConfirmer(prompter))
	model := tui.NewBoardModel(ctx, ctrl, prompter)
	defer model.Close()

	globalLogger.Info("starting board browser", "api_url", globalConfig.GetAPIURL())
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
