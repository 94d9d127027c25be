// ABOUTME: Root Cobra command and global state for the community CLI.
// ABOUTME: Loads config, builds the logger and API client before every board command.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/community/internal/api"
	"github.com/2389-research/community/internal/app"
	"github.com/2389-research/community/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var globalConfig *config.Config
var globalLogger *slog.Logger
var globalClient *api.Client

var rootCmd = &cobra.Command{
	Use:   "community",
	Short: "Terminal client for the community board",
	Long: `
 ██████╗ ██████╗ ███╗   ███╗███╗   ███╗██╗   ██╗███╗   ██╗██╗████████╗██╗   ██╗
██╔════╝██╔═══██╗████╗ ████║████╗ ████║██║   ██║████╗  ██║██║╚══██╔══╝╚██╗ ██╔╝
██║     ██║   ██║██╔████╔██║██╔████╔██║██║   ██║██╔██╗ ██║██║   ██║    ╚████╔╝
██║     ██║   ██║██║╚██╔╝██║██║╚██╔╝██║██║   ██║██║╚██╗██║██║   ██║     ╚██╔╝
╚██████╗╚██████╔╝██║ ╚═╝ ██║██║ ╚═╝ ██║╚██████╔╝██║ ╚████║██║   ██║      ██║
 ╚═════╝ ╚═════╝ ╚═╝     ╚═╝╚═╝     ╚═╝ ╚═════╝ ╚═╝  ╚═══╝╚═╝   ╚═╝      ╚═╝

Browse posts, read and write comments, and manage your account on a
community board, from a TUI, the command line, or an MCP agent.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "setup" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg
		globalLogger = newLogger(os.Stderr, cfg.GetLogLevel())

		client, err := newClient(cfg, globalLogger)
		if err != nil {
			return err
		}
		globalClient = client
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the community version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "community %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newClient(cfg *config.Config, logger *slog.Logger) (*api.Client, error) {
	opts := []api.Option{api.WithLogger(logger)}
	timeout, err := cfg.GetTimeout()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, api.WithTimeout(timeout))
	}
	client, err := api.NewClient(cfg.GetAPIURL(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// newController builds a board controller from the global client and config.
func newController(opts ...app.Option) *app.Controller {
	base := []app.Option{app.WithLogger(globalLogger)}
	if globalConfig != nil {
		if n := globalConfig.Board.PageSize; n > 0 {
			base = append(base, app.WithPageSize(n))
		}
		if n := globalConfig.Board.CommentLimit; n > 0 {
			base = append(base, app.WithCommentLimit(n))
		}
	}
	return app.New(globalClient, append(base, opts...)...)
}
