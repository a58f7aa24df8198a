// ABOUTME: Tests for the TUI route guard
// ABOUTME: Verifies the waiting state, redirect to login and lazy child construction

package guard

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	authguard "github.com/Pinerealm/my-blogging-app/internal/guard"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
)

type fakeAuth struct {
	authenticated bool
	calls         int
}

func (f *fakeAuth) InitializeAuth(context.Context) { f.calls++ }

func (f *fakeAuth) IsAuthenticated() bool { return f.authenticated }

type stubScreen struct{ keys int }

func (s *stubScreen) Init() tea.Cmd { return nil }

func (s *stubScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		s.keys++
	}
	return s, nil
}

func (s *stubScreen) View() string { return "protected content" }

func newModel(auth *fakeAuth) (*Model, *authguard.Gate, *int) {
	built := 0
	gate := authguard.New(auth)
	m := New(context.Background(), gate, func() tea.Model {
		built++
		return &stubScreen{}
	})
	return m, gate, &built
}

func TestPendingShowsSpinner(t *testing.T) {
	m, _, built := newModel(&fakeAuth{})

	if !strings.Contains(m.View(), "Checking your session") {
		t.Errorf("expected waiting view, got %q", m.View())
	}
	// keys while pending never redirect or build the child
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command while pending")
	}
	if *built != 0 {
		t.Error("child must not be built before the gate settles")
	}
}

func TestRedirectsWhenUnauthenticated(t *testing.T) {
	auth := &fakeAuth{}
	m, gate, built := newModel(auth)
	gate.Mount(context.Background())

	_, cmd := m.Update(mountedMsg{gate: gate})
	if cmd == nil {
		t.Fatal("expected a redirect command")
	}
	msg, ok := cmd().(nav.NavigateMsg)
	if !ok || msg.Screen != nav.Login {
		t.Errorf("expected navigation to login, got %#v", cmd())
	}
	if m.View() != "" {
		t.Errorf("expected nothing rendered on redirect, got %q", m.View())
	}
	if *built != 0 {
		t.Error("child must not be built for an anonymous session")
	}
}

func TestRendersChildWhenAuthenticated(t *testing.T) {
	auth := &fakeAuth{authenticated: true}
	m, gate, built := newModel(auth)
	gate.Mount(context.Background())

	m.Update(mountedMsg{gate: gate})
	if *built != 1 {
		t.Fatalf("expected child built once, got %d", *built)
	}
	if m.View() != "protected content" {
		t.Errorf("unexpected view %q", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if child := m.Child().(*stubScreen); child.keys != 1 {
		t.Errorf("expected key forwarded to child, got %d", child.keys)
	}
}

func TestFirstKeyAfterSettlingReachesChild(t *testing.T) {
	m, gate, built := newModel(&fakeAuth{authenticated: true})
	gate.Mount(context.Background())

	// the key beats mountedMsg into the loop
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if *built != 1 {
		t.Fatalf("expected child built once, got %d", *built)
	}
	if child := m.Child().(*stubScreen); child.keys != 1 {
		t.Errorf("expected the key forwarded to the new child, got %d", child.keys)
	}

	m.Update(mountedMsg{gate: gate})
	if *built != 1 {
		t.Errorf("expected the late mount not to rebuild the child, got %d", *built)
	}
}

func TestRedirectsAfterLogout(t *testing.T) {
	auth := &fakeAuth{authenticated: true}
	m, gate, _ := newModel(auth)
	gate.Mount(context.Background())
	m.Update(mountedMsg{gate: gate})

	auth.authenticated = false
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a redirect command")
	}
	if msg, ok := cmd().(nav.NavigateMsg); !ok || msg.Screen != nav.Login {
		t.Errorf("expected navigation to login, got %#v", msg)
	}
}

func TestStaleMountIgnored(t *testing.T) {
	m, _, built := newModel(&fakeAuth{authenticated: true})
	other := authguard.New(&fakeAuth{authenticated: true})
	other.Mount(context.Background())

	if _, cmd := m.Update(mountedMsg{gate: other}); cmd != nil {
		t.Error("expected a mount from another gate to be ignored")
	}
	if *built != 0 {
		t.Error("child must not be built from another gate's mount")
	}
}
