// ABOUTME: Public author page for the TUI
// ABOUTME: Profile details, post stats and a selectable list of recent posts

package author

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/authors"
	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
	"github.com/Pinerealm/my-blogging-app/internal/tui/widgets"
)

// LoadMsg asks the root model for the author page. Fresh skips the cache.
type LoadMsg struct {
	Username string
	Fresh    bool
}

// View shows one author
type View struct {
	username string
	page     *authors.Page
	cursor   int
	loading  bool
	err      string
	width    int
}

// New creates a page for username that loads on Init
func New(username string) *View {
	return &View{username: username, loading: true}
}

// Username is the author shown
func (v *View) Username() string {
	return v.username
}

// Init implements tea.Model
func (v *View) Init() tea.Cmd {
	return v.load(false)
}

func (v *View) load(fresh bool) tea.Cmd {
	v.loading = true
	username := v.username
	return func() tea.Msg { return LoadMsg{Username: username, Fresh: fresh} }
}

// SetPage stores the loaded page
func (v *View) SetPage(page *authors.Page) {
	v.loading = false
	v.err = ""
	v.page = page
	if v.cursor >= len(page.Posts) {
		v.cursor = 0
	}
}

// SetError shows msg in place of the page
func (v *View) SetError(msg string) {
	v.loading = false
	v.err = msg
}

// Update implements tea.Model
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *View) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		return v, nav.Back
	case "r":
		return v, v.load(true)
	}
	if v.page == nil {
		return v, nil
	}
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.page.Posts)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.page.Posts) {
			return v, nav.Go(nav.NavigateMsg{Screen: nav.Post, PostID: v.page.Posts[v.cursor].ID})
		}
	}
	return v, nil
}

// View implements tea.Model
func (v *View) View() string {
	var sb strings.Builder

	switch {
	case v.err != "":
		sb.WriteString(styles.Error(v.err))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("Press r to try again, b to go back"))
		return sb.String()
	case v.page == nil:
		sb.WriteString(styles.Subtitle.Render("Loading author..."))
		return sb.String()
	}

	u := v.page.Author
	heading := icons.Author.String() + " " + u.DisplayName()
	if full := u.FullName(); full != "" {
		heading += " (" + full + ")"
	}
	sb.WriteString(styles.Title.Render(heading))
	sb.WriteString("\n")

	if u.Bio != "" {
		sb.WriteString(u.Bio)
		sb.WriteString("\n\n")
	}
	if u.Location != "" {
		sb.WriteString(styles.Meta.Render(icons.Location.String() + " " + u.Location))
		sb.WriteString("\n")
	}
	if u.Website != "" {
		sb.WriteString(icons.Website.String() + " " + styles.Link.Render(u.Website))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.MetricBlock(icons.Post, "Posts", fmt.Sprintf("%d", v.page.Stats.TotalPosts), "published", 0),
		" ",
		widgets.MetricBlock(icons.Calendar, "Joined", joined(v.page), "member since", 0),
	))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Recent posts"))
	sb.WriteString("\n")
	if len(v.page.Posts) == 0 {
		sb.WriteString(styles.Meta.Render("No posts yet."))
		return sb.String()
	}
	for i, p := range v.page.Posts {
		prefix, style := "  ", styles.Normal
		if i == v.cursor {
			prefix, style = "> ", styles.Selected
		}
		sb.WriteString(prefix + style.Render(p.Title) + styles.Meta.Render("  "+p.CreatedAt.Format("Jan 2, 2006")))
		sb.WriteString("\n")
	}
	if v.loading {
		sb.WriteString(styles.Meta.Render("Refreshing..."))
	}
	return sb.String()
}

func joined(page *authors.Page) string {
	if page.Stats.JoinedDate.IsZero() {
		return "unknown"
	}
	return page.Stats.JoinedDate.Format("Jan 2006")
}
