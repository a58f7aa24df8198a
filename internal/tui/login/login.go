// ABOUTME: Sign-in form for the TUI
// ABOUTME: Collects email and password with huh and hands them to the root model

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
)

// SubmitMsg carries validated credentials to the root model
type SubmitMsg struct {
	Credentials client.Credentials
}

// CancelledMsg is sent when the user leaves the form
type CancelledMsg struct{}

// Form is the sign-in screen
type Form struct {
	email      string
	password   string
	notice     string
	err        string
	submitting bool
	form       *huh.Form
}

// New creates the form. email pre-fills the address and notice is shown
// above the form, e.g. after registering.
func New(email, notice string) *Form {
	f := &Form{email: email, notice: notice}
	f.form = f.build()
	return f
}

func (f *Form) build() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&f.email).
				Validate(f.check("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password).
				Validate(f.check("password")),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// check validates one field against the login rules
func (f *Form) check(field string) func(string) error {
	return func(string) error {
		creds := client.Credentials{Email: strings.TrimSpace(f.email), Password: f.password}
		return client.FieldError(creds.Validate(), field)
	}
}

// SetError shows a failed sign-in and lets the user try again
func (f *Form) SetError(msg string) {
	f.err = msg
	f.notice = ""
	f.submitting = false
	f.password = ""
	f.form = f.build()
}

// Submitting reports whether credentials were handed off
func (f *Form) Submitting() bool {
	return f.submitting
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.submitting {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, func() tea.Msg { return CancelledMsg{} }
		case "ctrl+n":
			return f, nav.Go(nav.NavigateMsg{Screen: nav.Register})
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.submitting = true
		f.err = ""
		creds := client.Credentials{Email: strings.TrimSpace(f.email), Password: f.password}
		return f, func() tea.Msg { return SubmitMsg{Credentials: creds} }
	}
	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.SignIn.String() + " Sign in to your account"))
	sb.WriteString("\n")
	if f.notice != "" {
		sb.WriteString(styles.StatusOK.Render(f.notice))
		sb.WriteString("\n\n")
	}
	if f.submitting {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		return sb.String()
	}
	sb.WriteString(f.form.View())
	if f.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Error(f.err))
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("Don't have an account? Press ctrl+n to create one."))
	return sb.String()
}
