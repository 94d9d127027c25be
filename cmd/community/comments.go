// ABOUTME: CLI commands for comments.
// ABOUTME: Provides add and delete subcommands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/community/internal/app"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Write and delete comments",
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <post-id> <content>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentsAdd,
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete <comment-id>",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsDelete,
}

var commentsYes bool

func init() {
	rootCmd.AddCommand(commentsCmd)
	commentsCmd.AddCommand(commentsAddCmd, commentsDeleteCmd)

	addUserFlag(commentsAddCmd)
	addUserFlag(commentsDeleteCmd)
	commentsDeleteCmd.Flags().BoolVarP(&commentsYes, "yes", "y", false, "confirm deletion")
}

func runCommentsAdd(cmd *cobra.Command, args []string) error {
	postID, err := parseID(args[0])
	if err != nil {
		return err
	}
	ctrl := newController()
	if err := loginForWrite(cmd.Context(), ctrl); err != nil {
		return err
	}
	if err := perform(cmd, ctrl, func() { ctrl.CreateComment(cmd.Context(), postID, args[1]) }); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Comment added to post #%d (%d comments)\n", postID, len(ctrl.Snapshot().Comments))
	return nil
}

func runCommentsDelete(cmd *cobra.Command, args []string) error {
	if !commentsYes {
		return fmt.Errorf("refusing to delete without --yes")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ctrl := newController(app.WithConfirmer(app.AcceptAll))
	if err := loginForWrite(cmd.Context(), ctrl); err != nil {
		return err
	}
	return perform(cmd, ctrl, func() { ctrl.DeleteComment(cmd.Context(), id) })
}
