// ABOUTME: Bubbletea wrapper that gates a screen behind a signed-in session
// ABOUTME: Shows a spinner while the saved token is validated, then renders or redirects

package guard

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	authguard "github.com/Pinerealm/my-blogging-app/internal/guard"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
)

// mountedMsg reports that the gate's InitializeAuth call returned
type mountedMsg struct {
	gate *authguard.Gate
}

// Model wraps a protected screen. The child is built only once the session
// is known to be authenticated.
type Model struct {
	ctx     context.Context
	gate    *authguard.Gate
	build   func() tea.Model
	child   tea.Model
	spinner spinner.Model
}

// New wraps the screen produced by build behind gate
func New(ctx context.Context, gate *authguard.Gate, build func() tea.Model) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.KeyStyle
	return &Model{ctx: ctx, gate: gate, build: build, spinner: sp}
}

// Init starts the spinner and mounts the gate off the UI goroutine
func (m *Model) Init() tea.Cmd {
	gate, ctx := m.gate, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		gate.Mount(ctx)
		return mountedMsg{gate: gate}
	})
}

// Decision exposes the gate's current decision
func (m *Model) Decision() authguard.Decision {
	return m.gate.Decision()
}

// Child returns the wrapped screen, nil until it has rendered
func (m *Model) Child() tea.Model {
	return m.child
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		if msg.gate != m.gate {
			return m, nil
		}
		return m, m.resolve()

	case spinner.TickMsg:
		if m.gate.Decision() != authguard.Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.gate.Decision() {
	case authguard.Render:
		var initCmd tea.Cmd
		if m.child == nil {
			initCmd = m.resolve()
		}
		var cmd tea.Cmd
		m.child, cmd = m.child.Update(msg)
		return m, tea.Batch(initCmd, cmd)
	case authguard.Redirect:
		return m, redirect
	}
	return m, nil
}

// resolve acts on a settled gate: build the child or send the user to login
func (m *Model) resolve() tea.Cmd {
	switch m.gate.Decision() {
	case authguard.Render:
		if m.child == nil {
			m.child = m.build()
			return m.child.Init()
		}
	case authguard.Redirect:
		m.child = nil
		return redirect
	}
	return nil
}

func redirect() tea.Msg {
	return nav.NavigateMsg{Screen: nav.Login}
}

// View implements tea.Model
func (m *Model) View() string {
	switch m.gate.Decision() {
	case authguard.Pending:
		return m.spinner.View() + " " + styles.Subtitle.Render("Checking your session...")
	case authguard.Render:
		if m.child != nil {
			return m.child.View()
		}
	}
	return ""
}
