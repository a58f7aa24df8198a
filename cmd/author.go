// ABOUTME: Author command for the bloghub CLI
// ABOUTME: Shows an author's profile, stats and most recent posts

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pinerealm/my-blogging-app/internal/app"
	"github.com/Pinerealm/my-blogging-app/internal/authors"
)

var authorCmd = &cobra.Command{
	Use:   "author <username>",
	Short: "Show an author's page",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		runWithApp(func(ctx context.Context, a *app.App, w io.Writer) int {
			return runAuthor(ctx, a, w, username)
		})
	},
}

func init() {
	rootCmd.AddCommand(authorCmd)
}

// runAuthor prints the author page and returns exit code
func runAuthor(ctx context.Context, a *app.App, w io.Writer, username string) int {
	page, err := a.Authors.Load(ctx, username)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(page))
	} else {
		fmt.Fprintln(w, formatAuthorHuman(page))
	}
	return exitOK
}

// formatAuthorHuman renders the author page for human readability
func formatAuthorHuman(page *authors.Page) string {
	var sb strings.Builder
	author := page.Author

	sb.WriteString(author.DisplayName())
	if name := author.FullName(); name != "" {
		sb.WriteString(" (" + name + ")")
	}
	sb.WriteString("\n")
	if author.Bio != "" {
		sb.WriteString(author.Bio + "\n")
	}
	if author.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", author.Location)
	}
	if author.Website != "" {
		fmt.Fprintf(&sb, "Website:  %s\n", author.Website)
	}
	fmt.Fprintf(&sb, "Posts:    %d\n", page.Stats.TotalPosts)
	fmt.Fprintf(&sb, "Joined:   %s\n", page.Stats.JoinedDate.Format("January 2006"))

	sb.WriteString("\nRecent posts\n")
	if len(page.Posts) == 0 {
		sb.WriteString("  No posts yet.")
		return sb.String()
	}
	for _, p := range page.Posts {
		fmt.Fprintf(&sb, "  %d  %s  (%s)\n", p.ID, p.Title, p.CreatedAt.Format("Jan 2, 2006"))
	}
	return strings.TrimRight(sb.String(), "\n")
}
