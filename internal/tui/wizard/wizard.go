// ABOUTME: Account registration wizard as a bubbletea model
// ABOUTME: Uses huh forms with a visual progress indicator for step navigation

package wizard

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
)

// CompleteMsg is sent when every step validated
type CompleteMsg struct {
	Request client.RegisterRequest
}

// CancelledMsg is sent when the wizard is cancelled
type CancelledMsg struct{}

// ErrPasswordMismatch is shown when the confirmation differs
var ErrPasswordMismatch = errors.New("Passwords do not match")

// Step names for progress indicator
var stepNames = []string{"Account", "Password", "About you"}

// Wizard walks a new user through registration
type Wizard struct {
	form       *huh.Form
	step       int
	width      int
	err        string
	submitting bool

	// Form field values
	username  string
	email     string
	password  string
	confirm   string
	firstName string
	lastName  string
}

// New creates a wizard on the first step
func New() *Wizard {
	w := &Wizard{step: 1}
	w.form = w.formFor(w.step)
	return w
}

func (w *Wizard) formFor(step int) *huh.Form {
	var group *huh.Group
	switch step {
	case 1:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Description("3-50 characters: letters, numbers and underscores").
				CharLimit(50).
				Value(&w.username).
				Validate(w.check("username")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&w.email).
				Validate(w.check("email")),
		).Title("Step 1: Account").
			Description("Choose how you sign in and how readers find you")
	case 2:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Password").
				Description("At least 8 characters with upper and lower case letters and a number").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&w.password).
				Validate(w.check("password")),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&w.confirm).
				Validate(w.checkConfirm),
		).Title("Step 2: Password").
			Description("Keep it secret")
	default:
		group = huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Description("Optional").
				Value(&w.firstName),
			huh.NewInput().
				Title("Last name").
				Description("Optional").
				Value(&w.lastName),
		).Title("Step 3: About you").
			Description("Shown on your author page; you can change it later")
	}
	return huh.NewForm(group).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// check validates one field against the registration rules
func (w *Wizard) check(field string) func(string) error {
	return func(string) error {
		return client.FieldError(w.request().Validate(), field)
	}
}

func (w *Wizard) checkConfirm(s string) error {
	if s != w.password {
		return ErrPasswordMismatch
	}
	return nil
}

func (w *Wizard) request() client.RegisterRequest {
	return client.RegisterRequest{
		Username:  strings.TrimSpace(w.username),
		Email:     strings.TrimSpace(w.email),
		Password:  w.password,
		FirstName: strings.TrimSpace(w.firstName),
		LastName:  strings.TrimSpace(w.lastName),
	}
}

// Step returns the current step, starting at 1
func (w *Wizard) Step() int {
	return w.step
}

// SetError returns to the first step and shows a rejected registration
func (w *Wizard) SetError(msg string) {
	w.err = msg
	w.submitting = false
	w.step = 1
	w.password, w.confirm = "", ""
	w.form = w.formFor(w.step)
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if w.submitting {
		return w, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}
	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	if w.step < len(stepNames) {
		w.step++
		w.form = w.formFor(w.step)
		return w, w.form.Init()
	}

	w.submitting = true
	w.err = ""
	req := w.request()
	return w, func() tea.Msg { return CompleteMsg{Request: req} }
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Author.String() + " Create your account"))
	sb.WriteString("\n")
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	if w.submitting {
		sb.WriteString(styles.Subtitle.Render("Creating account..."))
		return sb.String()
	}
	sb.WriteString(w.form.View())
	if w.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Error(w.err))
	}
	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}
	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │"
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	progressBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filledWidth))

	title := "Progress"
	topBorder := "┌─ " + titleStyle.Render(title) + " " + strings.Repeat("─", max(0, width-5-lipgloss.Width(title))) + "┐"
	stepsRow := "│ " + stepsLine + strings.Repeat(" ", max(0, width-4-lipgloss.Width(stepsLine))) + " │"
	progressRow := "│  " + progressBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{topBorder, stepsRow, progressRow, bottomBorder}, "\n"))
}
