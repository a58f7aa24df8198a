// ABOUTME: Dashboard for the signed-in author
// ABOUTME: Post count, profile completeness, posting activity and recent posts

package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/authors"
	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
	"github.com/Pinerealm/my-blogging-app/internal/tui/widgets"
)

// ActivityMonths is how many months the activity sparkline covers
const ActivityMonths = 6

// LoadMsg asks the root model for the signed-in author's page
type LoadMsg struct {
	Username string
	Fresh    bool
}

// Dashboard summarizes the signed-in author
type Dashboard struct {
	user   *client.User
	page   *authors.Page
	cursor int
	err    string
	width  int
	height int
	now    func() time.Time
}

// New creates a dashboard for user that loads on Init
func New(user *client.User, width, height int) *Dashboard {
	return &Dashboard{user: user, width: width, height: height, now: time.Now}
}

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd {
	return d.load(false)
}

func (d *Dashboard) load(fresh bool) tea.Cmd {
	username := d.user.Username
	return func() tea.Msg { return LoadMsg{Username: username, Fresh: fresh} }
}

// SetPage refreshes the dashboard with the author's page
func (d *Dashboard) SetPage(page *authors.Page) {
	d.page = page
	d.err = ""
	if d.cursor >= len(page.Posts) {
		d.cursor = 0
	}
}

// SetError shows msg in place of the metrics
func (d *Dashboard) SetError(msg string) {
	d.err = msg
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			return d, nav.Go(nav.NavigateMsg{Screen: nav.Editor})
		case "r":
			return d, d.load(true)
		case "b", "esc":
			return d, nav.Back
		}
		if d.page == nil {
			return d, nil
		}
		switch msg.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.page.Posts)-1 {
				d.cursor++
			}
		case "enter":
			if d.cursor < len(d.page.Posts) {
				return d, nav.Go(nav.NavigateMsg{Screen: nav.Post, PostID: d.page.Posts[d.cursor].ID})
			}
		}
	}
	return d, nil
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.err != "" {
		return styles.Error(d.err) + "\n" + styles.Help.Render("Press r to try again")
	}
	if d.page == nil {
		return styles.Panel.Width(max(d.width-4, 20)).Render("Loading your dashboard...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Dashboard.String() + " Welcome back, " + d.user.DisplayName()))
	sb.WriteString("\n")
	sb.WriteString(accountBadges(d.user))
	sb.WriteString("\n\n")

	stats := d.page.Stats
	joined := "unknown"
	if !stats.JoinedDate.IsZero() {
		joined = stats.JoinedDate.Format("Jan 2006")
	}
	activity := MonthlyCounts(d.page.Posts, d.now(), ActivityMonths)
	recent := 0
	for _, n := range activity {
		recent += int(n)
	}

	blocks := []string{
		widgets.MetricBlock(icons.Post, "Posts", fmt.Sprintf("%d", stats.TotalPosts), "published", 0),
		widgets.MetricBlock(icons.Calendar, "Joined", joined, "member since", 0),
		widgets.BarBlock(icons.Author, "Profile", Completeness(d.user), "complete", 0),
		widgets.SparkBlock(icons.Chart, "Activity", fmt.Sprintf("%d recent", recent), activity, 0),
	}
	sb.WriteString(d.arrange(blocks))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Your recent posts"))
	sb.WriteString("\n")
	if len(d.page.Posts) == 0 {
		sb.WriteString(styles.Meta.Render("You haven't written anything yet. Press n to start."))
	}
	for i, p := range d.page.Posts {
		prefix, style := "  ", styles.Normal
		if i == d.cursor {
			prefix, style = "> ", styles.Selected
		}
		sb.WriteString(prefix + style.Render(p.Title) + styles.Meta.Render("  "+p.CreatedAt.Format("Jan 2, 2006")) + "\n")
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Render(sb.String())
}

// arrange lays the blocks out in rows that fit the width
func (d *Dashboard) arrange(blocks []string) string {
	perRow := len(blocks)
	if d.width > 0 {
		perRow = max(1, (d.width+1)/(widgets.DefaultBlockWidth+1))
	}
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := min(i+perRow, len(blocks))
		var row []string
		for j, b := range blocks[i:end] {
			if j > 0 {
				row = append(row, " ")
			}
			row = append(row, b)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

func accountBadges(u *client.User) string {
	badges := []string{}
	if u.IsActive {
		badges = append(badges, widgets.Badge("active", widgets.StatusOK))
	} else {
		badges = append(badges, widgets.Badge("inactive", widgets.StatusCritical))
	}
	if u.IsVerified {
		badges = append(badges, widgets.Badge("verified", widgets.StatusInfo))
	} else {
		badges = append(badges, widgets.Badge("unverified", widgets.StatusWarning))
	}
	if u.IsSuperuser {
		badges = append(badges, widgets.Badge("admin", widgets.StatusNeutral))
	}
	return strings.Join(badges, " ")
}

// Completeness is the percentage of optional profile fields that are filled in
func Completeness(u *client.User) float64 {
	optional := []string{u.FirstName, u.LastName, u.Bio, u.AvatarURL, u.Website, u.Location}
	filled := 0
	for _, v := range optional {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	return float64(filled) * 100 / float64(len(optional))
}

// MonthlyCounts buckets posts by calendar month, oldest first, ending with
// the month containing now
func MonthlyCounts(posts []client.Post, now time.Time, months int) []float64 {
	counts := make([]float64, months)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	for _, p := range posts {
		created := p.CreatedAt.In(now.Location())
		if created.Before(start) || created.After(now) {
			continue
		}
		idx := (created.Year()-start.Year())*12 + int(created.Month()) - int(start.Month())
		if idx >= 0 && idx < months {
			counts[idx]++
		}
	}
	return counts
}
