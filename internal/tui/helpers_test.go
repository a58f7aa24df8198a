// ABOUTME: Shared fixtures for TUI tests
// ABOUTME: Builds the root model against the fake backend and runs its commands

package tui

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pinerealm/my-blogging-app/internal/apitest"
	"github.com/Pinerealm/my-blogging-app/internal/app"
	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/config"
	"github.com/Pinerealm/my-blogging-app/internal/storage"
	"github.com/Pinerealm/my-blogging-app/internal/tui/drafts"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
)

type fixture struct {
	tui   *App
	app   *app.App
	srv   *apitest.Server
	alice client.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	alice := srv.SeedUser("alice", "alice@example.com")

	cfg := &config.Config{
		APIURL:         srv.APIURL(),
		ConfigDir:      t.TempDir(),
		HTTPTimeout:    5,
		RateBurst:      1,
		SessionStore:   storage.BackendMemory,
		AuthorCacheTTL: 60,
	}
	a := app.NewWithStorage(cfg, storage.NewMemory())
	t.Cleanup(func() { a.Close() })

	root := New(context.Background(), a, drafts.New(cfg.ConfigDir))
	root.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return &fixture{tui: root, app: a, srv: srv, alice: alice}
}

func (f *fixture) signIn(t *testing.T) {
	t.Helper()
	res := f.app.Session.Login(context.Background(), &client.Credentials{Email: f.alice.Email, Password: apitest.DefaultPassword})
	if !res.Success {
		t.Fatalf("login failed: %s", res.Error)
	}
	f.tui.Update(sessionChangedMsg{})
}

// send delivers msg and runs the resulting command once, feeding its messages
// back. Only use it where every command in the chain returns immediately.
func (f *fixture) send(msg tea.Msg) {
	_, cmd := f.tui.Update(msg)
	for _, m := range run(cmd) {
		f.tui.Update(m)
	}
}

// run executes cmd, flattening one level of batching
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

// mount walks a guarded screen through its session check and returns the
// command the guard produced once the gate settled: a redirect or the
// child's Init
func (f *fixture) mount(screen nav.NavigateMsg) tea.Cmd {
	_, cmd := f.tui.Update(screen)
	var settled tea.Cmd
	for _, m := range run(cmd) {
		if _, tick := m.(spinner.TickMsg); tick {
			continue
		}
		_, settled = f.tui.Update(m)
	}
	return settled
}
