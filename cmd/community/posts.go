// ABOUTME: CLI commands for board posts.
// ABOUTME: Provides list, show, create, edit, and delete subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/2389-research/community/internal/app"
	"github.com/2389-research/community/internal/models"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Read and write posts",
	Long:  "List, read, create, edit, and delete board posts.",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of posts",
	RunE:  runPostsList,
}

var postsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsShow,
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new post",
	RunE:  runPostsCreate,
}

var postsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a post's title and/or content",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsEdit,
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsDelete,
}

// Flags
var (
	postsPage    int
	postsTitle   string
	postsContent string
	postsYes     bool
)

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(postsListCmd, postsShowCmd, postsCreateCmd, postsEditCmd, postsDeleteCmd)

	postsListCmd.Flags().IntVar(&postsPage, "page", 1, "page number")

	for _, c := range []*cobra.Command{postsCreateCmd, postsEditCmd} {
		c.Flags().StringVar(&postsTitle, "title", "", "post title (max 25 characters)")
		c.Flags().StringVar(&postsContent, "content", "", "post body")
		addUserFlag(c)
	}
	_ = postsCreateCmd.MarkFlagRequired("title")
	_ = postsCreateCmd.MarkFlagRequired("content")

	postsDeleteCmd.Flags().BoolVarP(&postsYes, "yes", "y", false, "confirm deletion")
	addUserFlag(postsDeleteCmd)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func runPostsList(cmd *cobra.Command, args []string) error {
	ctrl := newController()
	if err := perform(cmd, ctrl, func() { ctrl.SetPage(cmd.Context(), postsPage) }); err != nil {
		return err
	}

	snap := ctrl.Snapshot()
	out := cmd.OutOrStdout()
	if len(snap.Posts) == 0 {
		fmt.Fprintf(out, "No posts on page %d.\n", snap.Page)
		return nil
	}
	fmt.Fprintf(out, "Page %d\n", snap.Page)
	for _, p := range snap.Posts {
		fmt.Fprintf(out, "#%-5d %s  [%s] comments:%d views:%d\n",
			p.ID, models.TruncateTitle(p.Title), p.CreatedAt.Display(), p.CommentsCnt, p.ViewCount)
	}
	return nil
}

// openPost loads id into ctrl's detail view.
func openPost(cmd *cobra.Command, ctrl *app.Controller, raw string) error {
	id, err := parseID(raw)
	if err != nil {
		return err
	}
	if err := perform(cmd, ctrl, func() { ctrl.OpenPost(cmd.Context(), id) }); err != nil {
		return err
	}
	if ctrl.Snapshot().Selected == nil {
		return fmt.Errorf("post %d could not be loaded", id)
	}
	return nil
}

func runPostsShow(cmd *cobra.Command, args []string) error {
	ctrl := newController()
	if err := openPost(cmd, ctrl, args[0]); err != nil {
		return err
	}

	snap := ctrl.Snapshot()
	p := snap.Selected
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "#%d %s\n", p.ID, p.Title)
	fmt.Fprintf(out, "created %s  updated %s  views %d\n\n", p.CreatedAt.Display(), p.UpdatedAt.Display(), p.ViewCount)
	fmt.Fprintf(out, "%s\n\n", p.Content)
	fmt.Fprintf(out, "Comments (%d)\n", len(snap.Comments))
	for _, c := range snap.Comments {
		fmt.Fprintf(out, "  [%d] %s: %s (%s)\n", c.ID, c.Author(), c.Content, c.CreatedAt.Display())
	}
	return nil
}

func runPostsCreate(cmd *cobra.Command, args []string) error {
	ctrl := newController()
	if err := loginForWrite(cmd.Context(), ctrl); err != nil {
		return err
	}
	return perform(cmd, ctrl, func() { ctrl.CreatePost(cmd.Context(), postsTitle, postsContent) })
}

func runPostsEdit(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") {
		return fmt.Errorf("nothing to change: pass --title and/or --content")
	}
	ctrl := newController()
	if err := loginForWrite(cmd.Context(), ctrl); err != nil {
		return err
	}
	if err := openPost(cmd, ctrl, args[0]); err != nil {
		return err
	}

	current := ctrl.Snapshot().Selected
	title, content := current.Title, current.Content
	if cmd.Flags().Changed("title") {
		title = postsTitle
	}
	if cmd.Flags().Changed("content") {
		content = postsContent
	}
	return perform(cmd, ctrl, func() { ctrl.UpdatePost(cmd.Context(), title, content) })
}

func runPostsDelete(cmd *cobra.Command, args []string) error {
	if !postsYes {
		return fmt.Errorf("refusing to delete without --yes")
	}
	ctrl := newController(app.WithConfirmer(app.AcceptAll))
	if err := loginForWrite(cmd.Context(), ctrl); err != nil {
		return err
	}
	if err := openPost(cmd, ctrl, args[0]); err != nil {
		return err
	}
	return perform(cmd, ctrl, func() { ctrl.DeletePost(cmd.Context()) })
}
