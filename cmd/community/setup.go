// ABOUTME: Cobra command for interactive backend setup.
// ABOUTME: Launches a bubbletea wizard to collect and validate the board URL.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/community/internal/config"
	"github.com/2389-research/community/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Point community at a board backend",
	Long:  "Interactive wizard to configure the board URL and your default username.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model := tui.NewSetupModel(cfg.Server.APIURL, cfg.Account.Username)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Fprintln(cmd.OutOrStdout(), "Setup cancelled.")
		return nil
	}

	apiURL, username := final.Result()
	cfg.Server.APIURL = apiURL
	cfg.Account.Username = username

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Config saved successfully.")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configPath)
	}
	return nil
}
