// ABOUTME: Single post screen with author actions
// ABOUTME: Renders a post and offers edit and delete to its author

package postview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
)

// ConfirmDelete is the prompt shown before a post is removed
const ConfirmDelete = "Are you sure you want to delete this post? This action cannot be undone."

// DeleteMsg asks the root model to delete the post
type DeleteMsg struct {
	PostID int
}

// View displays one post
type View struct {
	post       *client.Post
	owner      bool
	confirming bool
	deleting   bool
	err        string
	width      int
}

// New creates the view; owner enables edit and delete
func New(post *client.Post, owner bool, width int) *View {
	return &View{post: post, owner: owner, width: width}
}

// Owner reports whether author actions are offered
func (v *View) Owner() bool {
	return v.owner
}

// Confirming reports whether the delete prompt is showing
func (v *View) Confirming() bool {
	return v.confirming
}

// SetError shows a failed action below the post
func (v *View) SetError(msg string) {
	v.deleting = false
	v.err = msg
}

// SetWidth updates the wrap width
func (v *View) SetWidth(width int) {
	v.width = width
}

// Init implements tea.Model
func (v *View) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || v.deleting {
		return v, nil
	}
	v.err = ""

	if v.confirming {
		switch key.String() {
		case "y":
			v.confirming = false
			v.deleting = true
			id := v.post.ID
			return v, func() tea.Msg { return DeleteMsg{PostID: id} }
		case "n", "esc":
			v.confirming = false
		}
		return v, nil
	}

	switch key.String() {
	case "e":
		if v.owner {
			return v, nav.Go(nav.NavigateMsg{Screen: nav.Editor, PostID: v.post.ID})
		}
	case "d":
		if v.owner {
			v.confirming = true
		}
	case "a":
		if v.post.Author != nil {
			return v, nav.Go(nav.NavigateMsg{Screen: nav.Author, Username: v.post.Author.Username})
		}
	case "b", "esc":
		return v, nav.Back
	}
	return v, nil
}

// View implements tea.Model
func (v *View) View() string {
	var sb strings.Builder
	width := v.width
	if width < 20 {
		width = 76
	}

	sb.WriteString(styles.Title.Render(icons.Post.String() + " " + v.post.Title))
	sb.WriteString("\n")
	sb.WriteString(styles.Meta.Render("by " + v.post.AuthorName() + " on " + v.post.CreatedAt.Format("January 2, 2006")))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.NewStyle().Width(width).Render(v.post.Content))
	sb.WriteString("\n")

	switch {
	case v.confirming:
		sb.WriteString("\n")
		sb.WriteString(styles.StatusWarning.Render(ConfirmDelete))
		sb.WriteString(" " + styles.KeyStyle.Render("y") + "/" + styles.KeyStyle.Render("n"))
	case v.deleting:
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Deleting..."))
	case v.err != "":
		sb.WriteString("\n")
		sb.WriteString(styles.Error(v.err))
	}
	return sb.String()
}
