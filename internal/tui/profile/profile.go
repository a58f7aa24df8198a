// ABOUTME: Profile screen for the signed-in user
// ABOUTME: Shows account details and edits them through a huh form

package profile

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
	"github.com/Pinerealm/my-blogging-app/internal/tui/widgets"
)

// SaveMsg carries the changed fields to the root model
type SaveMsg struct {
	Update client.ProfileUpdate
}

type fields struct {
	firstName, lastName, bio, avatarURL, website, location string
}

func fieldsOf(u *client.User) fields {
	return fields{u.FirstName, u.LastName, u.Bio, u.AvatarURL, u.Website, u.Location}
}

// Profile shows and edits the signed-in user's profile
type Profile struct {
	user    *client.User
	values  fields
	form    *huh.Form
	editing bool
	saving  bool
	notice  string
	err     string
}

// New creates a profile screen for user
func New(user *client.User) *Profile {
	return &Profile{user: user}
}

// Editing reports whether the edit form is open
func (p *Profile) Editing() bool {
	return p.editing
}

// Init implements tea.Model
func (p *Profile) Init() tea.Cmd {
	return nil
}

// SetUser shows the saved profile and closes the form
func (p *Profile) SetUser(user *client.User) {
	p.user = user
	p.editing = false
	p.saving = false
	p.err = ""
	p.notice = "Profile updated"
}

// SetError reopens the form with msg
func (p *Profile) SetError(msg string) tea.Cmd {
	p.saving = false
	p.err = msg
	p.form = p.build()
	return p.form.Init()
}

func (p *Profile) startEditing() tea.Cmd {
	p.editing = true
	p.notice = ""
	p.err = ""
	p.values = fieldsOf(p.user)
	p.form = p.build()
	return p.form.Init()
}

func (p *Profile) build() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First name").Value(&p.values.firstName),
			huh.NewInput().Title("Last name").Value(&p.values.lastName),
			huh.NewText().Title("Bio").Lines(4).CharLimit(500).Value(&p.values.bio).Validate(p.check("bio")),
			huh.NewInput().Title("Avatar URL").Value(&p.values.avatarURL).Validate(p.check("avatar_url")),
			huh.NewInput().Title("Website").Value(&p.values.website).Validate(p.check("website")),
			huh.NewInput().Title("Location").Value(&p.values.location),
		).Title("Edit profile"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

func (p *Profile) check(field string) func(string) error {
	return func(string) error {
		update := p.update()
		return client.FieldError(update.Validate(), field)
	}
}

// update holds only the fields that differ from the current profile
func (p *Profile) update() client.ProfileUpdate {
	was := fieldsOf(p.user)
	changed := func(now, before string) *string {
		now = strings.TrimSpace(now)
		if now == before {
			return nil
		}
		return &now
	}
	return client.ProfileUpdate{
		FirstName: changed(p.values.firstName, was.firstName),
		LastName:  changed(p.values.lastName, was.lastName),
		Bio:       changed(p.values.bio, was.bio),
		AvatarURL: changed(p.values.avatarURL, was.avatarURL),
		Website:   changed(p.values.website, was.website),
		Location:  changed(p.values.location, was.location),
	}
}

// Update implements tea.Model
func (p *Profile) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.saving {
		return p, nil
	}
	if !p.editing {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "e":
				return p, p.startEditing()
			case "b", "esc":
				return p, nav.Back
			}
		}
		return p, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		p.editing = false
		p.err = ""
		return p, nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	if p.form.State == huh.StateCompleted {
		update := p.update()
		if update == (client.ProfileUpdate{}) {
			p.editing = false
			p.notice = "No changes"
			return p, nil
		}
		p.saving = true
		return p, func() tea.Msg { return SaveMsg{Update: update} }
	}
	return p, cmd
}

// View implements tea.Model
func (p *Profile) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Author.String() + " Your profile"))
	sb.WriteString("\n")

	if p.editing {
		if p.saving {
			sb.WriteString(styles.Subtitle.Render("Saving..."))
			return sb.String()
		}
		sb.WriteString(p.form.View())
		if p.err != "" {
			sb.WriteString("\n")
			sb.WriteString(styles.Error(p.err))
		}
		return sb.String()
	}

	if p.notice != "" {
		sb.WriteString(widgets.StatusText(p.notice, widgets.StatusOK))
		sb.WriteString("\n\n")
	}

	u := p.user
	rows := []struct{ label, value string }{
		{"Username", u.Username},
		{"Email", u.Email},
		{"Name", u.FullName()},
		{"Bio", u.Bio},
		{"Avatar", u.AvatarURL},
		{"Website", u.Website},
		{"Location", u.Location},
	}
	for _, r := range rows {
		value := r.value
		if value == "" {
			value = styles.Meta.Render("not set")
		}
		sb.WriteString(styles.KeyStyle.Render(padRight(r.label, 10)) + value + "\n")
	}
	return sb.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
