// ABOUTME: Scrollable post list for the Explore screen
// ABOUTME: Keyboard navigation, paging and selection of posts

package postlist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
)

// LoadMsg asks the root model for the page of posts starting at Skip
type LoadMsg struct {
	Skip  int
	Limit int
}

// PostList shows posts newest first and pages through them on demand
type PostList struct {
	title    string
	posts    []client.Post
	cursor   int
	pageSize int
	hasMore  bool
	loading  bool
	err      string
	width    int
	height   int
}

var (
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	moreLabel    = "Load more posts..."
)

// New creates an empty list that loads pageSize posts at a time
func New(title string, pageSize int) *PostList {
	return &PostList{title: title, pageSize: pageSize, loading: true}
}

// Init requests the first page
func (pl *PostList) Init() tea.Cmd {
	return pl.load(0)
}

func (pl *PostList) load(skip int) tea.Cmd {
	pl.loading = true
	limit := pl.pageSize
	return func() tea.Msg { return LoadMsg{Skip: skip, Limit: limit} }
}

// SetPage stores a fetched page. A page at skip 0 replaces the list.
func (pl *PostList) SetPage(skip int, posts []client.Post) {
	pl.loading = false
	pl.err = ""
	if skip == 0 {
		pl.posts = nil
		pl.cursor = 0
	}
	pl.posts = append(pl.posts, posts...)
	pl.hasMore = len(posts) == pl.pageSize
}

// SetError shows msg in place of the list
func (pl *PostList) SetError(msg string) {
	pl.loading = false
	pl.err = msg
}

// Posts returns the loaded posts
func (pl *PostList) Posts() []client.Post {
	return pl.posts
}

// Selected returns the post under the cursor
func (pl *PostList) Selected() (client.Post, bool) {
	if pl.cursor < len(pl.posts) {
		return pl.posts[pl.cursor], true
	}
	return client.Post{}, false
}

func (pl *PostList) itemCount() int {
	n := len(pl.posts)
	if pl.hasMore {
		n++ // "Load more..."
	}
	return n
}

// Update implements tea.Model
func (pl *PostList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pl.width = msg.Width
		pl.height = msg.Height
		return pl, nil

	case tea.KeyMsg:
		return pl.updateKeys(msg)
	}
	return pl, nil
}

func (pl *PostList) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if pl.cursor > 0 {
			pl.cursor--
		}
	case "down", "j":
		if pl.cursor < pl.itemCount()-1 {
			pl.cursor++
		}
	case "enter":
		if pl.cursor == len(pl.posts) && pl.hasMore {
			return pl, pl.load(len(pl.posts))
		}
		if p, ok := pl.Selected(); ok {
			return pl, nav.Go(nav.NavigateMsg{Screen: nav.Post, PostID: p.ID})
		}
	case "a":
		if p, ok := pl.Selected(); ok && p.Author != nil {
			return pl, nav.Go(nav.NavigateMsg{Screen: nav.Author, Username: p.Author.Username})
		}
	case "r":
		return pl, pl.load(0)
	}
	return pl, nil
}

// View implements tea.Model
func (pl *PostList) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(icons.Explore.String() + " " + pl.title))
	b.WriteString("\n")

	switch {
	case pl.err != "":
		b.WriteString(styles.Error(pl.err))
		b.WriteString("\n")
		b.WriteString(styles.Help.Render("Press r to try again"))
		return b.String()
	case pl.loading && len(pl.posts) == 0:
		b.WriteString(styles.Subtitle.Render("Loading posts..."))
		return b.String()
	case len(pl.posts) == 0:
		b.WriteString(styles.Subtitle.Render("No posts yet. Be the first to write one!"))
		return b.String()
	}

	for i, p := range pl.posts {
		b.WriteString(pl.row(i, p))
		b.WriteString("\n")
	}

	if pl.hasMore {
		dividerWidth := min(40, pl.width-4)
		if dividerWidth < 1 {
			dividerWidth = 40
		}
		b.WriteString(dividerStyle.Render(strings.Repeat("─", dividerWidth)))
		b.WriteString("\n")
		label := moreLabel
		if pl.loading {
			label = "Loading..."
		}
		b.WriteString(pl.cursorPrefix(len(pl.posts)) + pl.styleFor(len(pl.posts)).Render(label) + "\n")
	}
	return b.String()
}

func (pl *PostList) row(i int, p client.Post) string {
	title := p.Title
	// leave room for the byline
	if limit := pl.width - 40; limit > 10 && len([]rune(title)) > limit {
		title = string([]rune(title)[:limit-3]) + "..."
	}
	byline := fmt.Sprintf("  by %s · %s", p.AuthorName(), p.CreatedAt.Format("Jan 2, 2006"))
	return pl.cursorPrefix(i) + pl.styleFor(i).Render(title) + styles.Meta.Render(byline)
}

func (pl *PostList) cursorPrefix(i int) string {
	if i == pl.cursor {
		return "> "
	}
	return "  "
}

func (pl *PostList) styleFor(i int) lipgloss.Style {
	if i == pl.cursor {
		return styles.Selected
	}
	return styles.Normal
}
