// ABOUTME: Post commands for the bloghub CLI
// ABOUTME: List and read posts anonymously; write, edit and delete require a session

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Pinerealm/my-blogging-app/internal/app"
	"github.com/Pinerealm/my-blogging-app/internal/client"
)

var (
	postsSkip    int
	postsLimit   int
	postTitle    string
	postContent  string
	postFile     string
	deleteYes    bool
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse and manage posts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(runPostsList)
	},
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent posts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(runPostsList)
	},
}

var postsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := mustPostID(args[0])
		runWithApp(func(ctx context.Context, a *app.App, w io.Writer) int {
			return runPostsShow(ctx, a, w, id)
		})
	},
}

var postsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Publish a new post",
	Long: `Publish a post. The body comes from --content, or from --file
(use "-" to read stdin).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		input := &client.PostInput{Title: postTitle, Content: mustContent(postContent, postFile)}
		runWithApp(func(ctx context.Context, a *app.App, w io.Writer) int {
			return runPostsNew(ctx, a, w, input)
		})
	},
}

var postsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit one of your posts",
	Long:  `Change the title and/or body of a post you wrote. Only the given fields change.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := mustPostID(args[0])
		update := &client.PostUpdate{}
		if cmd.Flags().Changed("title") {
			update.Title = &postTitle
		}
		if cmd.Flags().Changed("content") || cmd.Flags().Changed("file") {
			body := mustContent(postContent, postFile)
			update.Content = &body
		}
		runWithApp(func(ctx context.Context, a *app.App, w io.Writer) int {
			return runPostsEdit(ctx, a, w, id, update)
		})
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := mustPostID(args[0])
		if !deleteYes {
			if !interactive() {
				fmt.Fprintln(os.Stderr, "Error: refusing to delete without --yes")
				os.Exit(exitFailed)
			}
			ok, err := confirm("Are you sure you want to delete this post? This action cannot be undone.")
			if err != nil || !ok {
				fmt.Fprintln(os.Stderr, "Cancelled.")
				os.Exit(exitFailed)
			}
		}
		runWithApp(func(ctx context.Context, a *app.App, w io.Writer) int {
			return runPostsDelete(ctx, a, w, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(postsListCmd, postsShowCmd, postsNewCmd, postsEditCmd, postsDeleteCmd)

	for _, c := range []*cobra.Command{postsCmd, postsListCmd} {
		c.Flags().IntVar(&postsSkip, "skip", 0, "Number of posts to skip")
		c.Flags().IntVar(&postsLimit, "limit", 20, "Maximum number of posts to list")
	}
	for _, c := range []*cobra.Command{postsNewCmd, postsEditCmd} {
		c.Flags().StringVar(&postTitle, "title", "", "Post title")
		c.Flags().StringVar(&postContent, "content", "", "Post body")
		c.Flags().StringVar(&postFile, "file", "", `Read the body from a file ("-" for stdin)`)
	}
	postsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")
}

func mustPostID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		fmt.Fprintf(os.Stderr, "Error: invalid post id %q\n", arg)
		os.Exit(exitFailed)
	}
	return id
}

func mustContent(content, file string) string {
	if file == "" {
		return content
	}
	body, err := readContent(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFailed)
	}
	return body
}

// readContent reads a post body from path, or stdin for "-"
func readContent(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// runPostsList lists posts and returns exit code
func runPostsList(ctx context.Context, a *app.App, w io.Writer) int {
	posts, err := a.Posts.List(ctx, postsSkip, postsLimit)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(posts))
	} else {
		fmt.Fprintln(w, formatPostListHuman(posts))
	}
	return exitOK
}

// runPostsShow prints one post and returns exit code
func runPostsShow(ctx context.Context, a *app.App, w io.Writer, id int) int {
	post, err := a.Posts.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(post))
	} else {
		fmt.Fprintln(w, formatPostHuman(post))
	}
	return exitOK
}

// runPostsNew publishes a post and returns exit code
func runPostsNew(ctx context.Context, a *app.App, w io.Writer, input *client.PostInput) int {
	if _, err := currentUser(ctx, a); err != nil {
		return reportError(w, err)
	}
	post, err := a.Posts.Create(ctx, input)
	if err != nil {
		return reportError(w, err)
	}
	invalidateAuthor(a)
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(post))
	} else {
		fmt.Fprintf(w, "Published post %d: %s\n", post.ID, post.Title)
	}
	return exitOK
}

// runPostsEdit updates a post the user owns and returns exit code
func runPostsEdit(ctx context.Context, a *app.App, w io.Writer, id int, update *client.PostUpdate) int {
	user, err := currentUser(ctx, a)
	if err != nil {
		return reportError(w, err)
	}
	if update.Title == nil && update.Content == nil {
		return reportFailure(w, "nothing to update, pass --title, --content or --file")
	}
	if _, err := a.Posts.LoadForEdit(ctx, id, user); err != nil {
		return reportError(w, err)
	}
	post, err := a.Posts.Update(ctx, id, update)
	if err != nil {
		return reportError(w, err)
	}
	invalidateAuthor(a)
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(post))
	} else {
		fmt.Fprintf(w, "Updated post %d: %s\n", post.ID, post.Title)
	}
	return exitOK
}

// runPostsDelete deletes a post and returns exit code
func runPostsDelete(ctx context.Context, a *app.App, w io.Writer, id int) int {
	if _, err := currentUser(ctx, a); err != nil {
		return reportError(w, err)
	}
	if err := a.Posts.Delete(ctx, id); err != nil {
		return reportError(w, err)
	}
	invalidateAuthor(a)
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(map[string]any{"success": true, "id": id}))
	} else {
		fmt.Fprintf(w, "Deleted post %d.\n", id)
	}
	return exitOK
}

// invalidateAuthor drops the signed-in user's cached author page
func invalidateAuthor(a *app.App) {
	if user := a.Session.Snapshot().User; user != nil {
		a.Authors.Invalidate(user.Username)
	}
}

// formatPostListHuman renders posts as a table
func formatPostListHuman(posts []client.Post) string {
	if len(posts) == 0 {
		return "No posts yet."
	}
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tPUBLISHED")
	for _, p := range posts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, truncate(p.Title, 50), p.AuthorName(), p.CreatedAt.Format("Jan 2, 2006"))
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

// formatPostHuman renders a full post
func formatPostHuman(p *client.Post) string {
	return fmt.Sprintf("%s\nby %s on %s\n\n%s", p.Title, p.AuthorName(), p.CreatedAt.Format("January 2, 2006"), p.Content)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
