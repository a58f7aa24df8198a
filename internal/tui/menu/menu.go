// ABOUTME: Main menu for the TUI
// ABOUTME: Offers the screens and account actions that fit the session state

package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
)

// Action is a menu entry
type Action int

const (
	ActionExplore Action = iota
	ActionWrite
	ActionDashboard
	ActionProfile
	ActionSignIn
	ActionRegister
	ActionSignOut
	ActionQuit
)

// LogoutMsg asks the root model to sign out
type LogoutMsg struct{}

// ClosedMsg is sent when the menu is dismissed without a choice
type ClosedMsg struct{}

type option struct {
	label  string
	icon   icons.Icon
	action Action
}

// Menu is the action picker shown on "m"
type Menu struct {
	options  []option
	selected Action
	form     *huh.Form
}

// New creates a menu for the current session state
func New(authenticated bool) *Menu {
	opts := []option{{label: "Explore posts", icon: icons.Explore, action: ActionExplore}}
	if authenticated {
		opts = append(opts,
			option{label: "Write a post", icon: icons.Write, action: ActionWrite},
			option{label: "Dashboard", icon: icons.Dashboard, action: ActionDashboard},
			option{label: "Profile", icon: icons.Author, action: ActionProfile},
			option{label: "Sign out", icon: icons.Quit, action: ActionSignOut},
		)
	} else {
		opts = append(opts,
			option{label: "Sign in", icon: icons.SignIn, action: ActionSignIn},
			option{label: "Create account", icon: icons.Write, action: ActionRegister},
		)
	}
	opts = append(opts, option{label: "Quit", icon: icons.Quit, action: ActionQuit})

	m := &Menu{options: opts, selected: ActionExplore}
	m.form = m.build()
	return m
}

func (m *Menu) build() *huh.Form {
	var options []huh.Option[Action]
	for _, opt := range m.options {
		options = append(options, huh.NewOption(opt.icon.String()+" "+opt.label, opt.action))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title("Go to").
				Options(options...).
				Value(&m.selected),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "esc" || key.String() == "m") {
		return m, func() tea.Msg { return ClosedMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.selected.Cmd()
	}
	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	return styles.Panel.Render(m.form.View())
}

// Cmd is the message the root model receives for the action
func (a Action) Cmd() tea.Cmd {
	switch a {
	case ActionExplore:
		return nav.Go(nav.NavigateMsg{Screen: nav.Posts})
	case ActionWrite:
		return nav.Go(nav.NavigateMsg{Screen: nav.Editor})
	case ActionDashboard:
		return nav.Go(nav.NavigateMsg{Screen: nav.Dashboard})
	case ActionProfile:
		return nav.Go(nav.NavigateMsg{Screen: nav.Profile})
	case ActionSignIn:
		return nav.Go(nav.NavigateMsg{Screen: nav.Login})
	case ActionRegister:
		return nav.Go(nav.NavigateMsg{Screen: nav.Register})
	case ActionSignOut:
		return func() tea.Msg { return LogoutMsg{} }
	default:
		return tea.Quit
	}
}

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionExplore:
		return "explore"
	case ActionWrite:
		return "write"
	case ActionDashboard:
		return "dashboard"
	case ActionProfile:
		return "profile"
	case ActionSignIn:
		return "sign-in"
	case ActionRegister:
		return "register"
	case ActionSignOut:
		return "sign-out"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}
