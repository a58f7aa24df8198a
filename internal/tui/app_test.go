// ABOUTME: Integration tests for TUI app
// ABOUTME: Drives the root model through navigation, guards and account flows

package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pinerealm/my-blogging-app/internal/apitest"
	"github.com/Pinerealm/my-blogging-app/internal/authors"
	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/session"
	"github.com/Pinerealm/my-blogging-app/internal/tui/author"
	"github.com/Pinerealm/my-blogging-app/internal/tui/dashboard"
	"github.com/Pinerealm/my-blogging-app/internal/tui/editor"
	"github.com/Pinerealm/my-blogging-app/internal/tui/login"
	"github.com/Pinerealm/my-blogging-app/internal/tui/menu"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/postlist"
	"github.com/Pinerealm/my-blogging-app/internal/tui/postview"
	"github.com/Pinerealm/my-blogging-app/internal/tui/profile"
	"github.com/Pinerealm/my-blogging-app/internal/tui/wizard"
)

func TestAppInitialState(t *testing.T) {
	f := newFixture(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Posts})

	if f.tui.Screen() != nav.Posts {
		t.Errorf("expected posts screen, got %s", f.tui.Screen())
	}
	if _, ok := f.tui.child.(*postlist.PostList); !ok {
		t.Errorf("expected post list child, got %T", f.tui.child)
	}
}

func TestPostsLoad(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedPost(f.alice.ID, "Hello world", "First post")
	f.tui.Update(nav.NavigateMsg{Screen: nav.Posts})

	f.send(postlist.LoadMsg{Skip: 0, Limit: client.DefaultPageSize})

	view := f.tui.View()
	if !strings.Contains(view, "Hello world") {
		t.Errorf("expected post in view\n%s", view)
	}
	if f.tui.lastUpdate.IsZero() {
		t.Error("expected last update to be recorded")
	}
}

func TestPostsLoadError(t *testing.T) {
	f := newFixture(t)
	f.srv.Fail("GET /api/posts/", 500, "")
	f.tui.Update(nav.NavigateMsg{Screen: nav.Posts})

	f.send(postlist.LoadMsg{Skip: 0, Limit: client.DefaultPageSize})

	if !strings.Contains(f.tui.View(), "Failed to load posts") {
		t.Errorf("expected list error\n%s", f.tui.View())
	}
}

func TestBackReturnsToPreviousScreen(t *testing.T) {
	f := newFixture(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Posts})
	f.tui.Update(nav.NavigateMsg{Screen: nav.Author, Username: "alice"})
	if f.tui.Screen() != nav.Author {
		t.Fatalf("expected author screen, got %s", f.tui.Screen())
	}

	f.tui.Update(nav.BackMsg{})
	if f.tui.Screen() != nav.Posts {
		t.Errorf("expected posts after back, got %s", f.tui.Screen())
	}

	// empty history falls back to the post list
	f.tui.Update(nav.BackMsg{})
	if f.tui.Screen() != nav.Posts {
		t.Errorf("expected posts with empty history, got %s", f.tui.Screen())
	}
}

func TestAuthorScreenLoads(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedPost(f.alice.ID, "Alice writes", "body")
	f.tui.Update(nav.NavigateMsg{Screen: nav.Author, Username: "alice"})

	f.send(author.LoadMsg{Username: "alice"})

	if !strings.Contains(f.tui.View(), "Alice writes") {
		t.Errorf("expected author's posts\n%s", f.tui.View())
	}
}

func TestAuthorScreenNotFound(t *testing.T) {
	f := newFixture(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Author, Username: "ghost"})

	f.send(author.LoadMsg{Username: "ghost"})

	if !strings.Contains(f.tui.View(), authors.MsgNotFound) {
		t.Errorf("expected not found\n%s", f.tui.View())
	}
}

func TestGuardedScreenRedirectsToLogin(t *testing.T) {
	f := newFixture(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Posts})

	settled := f.mount(nav.NavigateMsg{Screen: nav.Dashboard})
	if settled == nil {
		t.Fatal("expected a redirect once the gate settled")
	}
	f.tui.Update(settled())

	if f.tui.Screen() != nav.Login {
		t.Fatalf("expected login screen, got %s", f.tui.Screen())
	}
	if f.tui.afterLogin == nil || f.tui.afterLogin.Screen != nav.Dashboard {
		t.Errorf("expected dashboard remembered for after login, got %+v", f.tui.afterLogin)
	}

	// the dashboard that redirected is not a place to go back to
	f.tui.Update(nav.BackMsg{})
	if f.tui.Screen() != nav.Posts {
		t.Errorf("expected back to skip the redirecting screen, got %s", f.tui.Screen())
	}
}

func TestLoginReturnsToGuardedScreen(t *testing.T) {
	f := newFixture(t)
	settled := f.mount(nav.NavigateMsg{Screen: nav.Dashboard})
	f.tui.Update(settled())

	f.send(login.SubmitMsg{Credentials: client.Credentials{Email: "alice@example.com", Password: apitest.DefaultPassword}})

	if !f.app.Session.IsAuthenticated() {
		t.Fatal("expected signed in")
	}
	if f.tui.Screen() != nav.Dashboard {
		t.Errorf("expected dashboard after login, got %s", f.tui.Screen())
	}
	if !strings.Contains(f.tui.flash, "Welcome back, alice") {
		t.Errorf("unexpected flash %q", f.tui.flash)
	}
}

func TestLoginFailureStaysOnForm(t *testing.T) {
	f := newFixture(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Login})

	f.send(login.SubmitMsg{Credentials: client.Credentials{Email: "alice@example.com", Password: "wrong"}})

	if f.tui.Screen() != nav.Login {
		t.Fatalf("expected to stay on login, got %s", f.tui.Screen())
	}
	form, ok := f.tui.child.(*login.Form)
	if !ok {
		t.Fatalf("expected login form, got %T", f.tui.child)
	}
	if form.Submitting() {
		t.Error("expected the form to accept another attempt")
	}
	if !strings.Contains(f.tui.View(), "Error:") {
		t.Errorf("expected error in view\n%s", f.tui.View())
	}
}

func TestRegisterNavigatesToLogin(t *testing.T) {
	f := newFixture(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Register})

	f.send(wizard.CompleteMsg{Request: client.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "Password1"}})

	if f.tui.Screen() != nav.Login {
		t.Fatalf("expected login after registration, got %s", f.tui.Screen())
	}
	if f.app.Session.IsAuthenticated() {
		t.Error("registration must not sign in")
	}
	view := f.tui.View()
	if !strings.Contains(view, NoticeRegistered) {
		t.Errorf("expected registration notice\n%s", view)
	}
	if !strings.Contains(view, "bob@example.com") {
		t.Errorf("expected email prefilled\n%s", view)
	}
}

func TestRegisterDuplicateShowsError(t *testing.T) {
	f := newFixture(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Register})

	f.send(wizard.CompleteMsg{Request: client.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "Password1"}})

	if f.tui.Screen() != nav.Register {
		t.Fatalf("expected to stay on register, got %s", f.tui.Screen())
	}
	w := f.tui.child.(*wizard.Wizard)
	if w.Step() != 1 {
		t.Errorf("expected wizard back at the first step, got %d", w.Step())
	}
}

func TestUnauthorizedRedirectsToLogin(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Posts})

	f.srv.RevokeAll()
	f.app.Session.UpdateProfile(context.Background(), &client.ProfileUpdate{})
	f.tui.Update(unauthorizedMsg{path: "/users/me"})

	if f.tui.Screen() != nav.Login {
		t.Fatalf("expected login, got %s", f.tui.Screen())
	}
	if f.tui.session.IsAuthenticated() {
		t.Error("expected the header state to be signed out")
	}
	if !strings.Contains(f.tui.View(), NoticeSessionExpired) {
		t.Errorf("expected expiry notice\n%s", f.tui.View())
	}

	// a second event while already on login changes nothing
	f.tui.Update(unauthorizedMsg{})
	if f.tui.Screen() != nav.Login {
		t.Error("expected to stay on login")
	}
}

func TestPostViewOwnerAndDelete(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	post := f.srv.SeedPost(f.alice.ID, "Mine", "body")
	f.tui.Update(nav.NavigateMsg{Screen: nav.Posts})

	f.send(nav.NavigateMsg{Screen: nav.Post, PostID: post.ID})

	pv, ok := f.tui.child.(*postview.View)
	if !ok {
		t.Fatalf("expected post view, got %T", f.tui.child)
	}
	if !pv.Owner() {
		t.Error("expected alice to own her post")
	}

	f.send(postview.DeleteMsg{PostID: post.ID})

	if f.tui.Screen() != nav.Posts {
		t.Errorf("expected post list after delete, got %s", f.tui.Screen())
	}
	if f.tui.flash != "Post deleted." {
		t.Errorf("unexpected flash %q", f.tui.flash)
	}
	if f.srv.Hits("DELETE /api/posts/1") != 1 {
		t.Error("expected one delete request")
	}
}

func TestPostViewNotOwner(t *testing.T) {
	f := newFixture(t)
	bob := f.srv.SeedUser("bob", "bob@example.com")
	post := f.srv.SeedPost(bob.ID, "Bob's", "body")
	f.signIn(t)

	f.send(nav.NavigateMsg{Screen: nav.Post, PostID: post.ID})

	if pv := f.tui.child.(*postview.View); pv.Owner() {
		t.Error("expected alice not to own bob's post")
	}
}

func TestPostNotFound(t *testing.T) {
	f := newFixture(t)
	f.send(nav.NavigateMsg{Screen: nav.Post, PostID: 99})

	if !strings.Contains(f.tui.View(), "Post not found") {
		t.Errorf("expected not found\n%s", f.tui.View())
	}
}

func TestEditorPublishesPost(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.mount(nav.NavigateMsg{Screen: nav.Editor})

	if _, ok := f.tui.inner().(*editor.Editor); !ok {
		t.Fatalf("expected editor behind the guard, got %T", f.tui.inner())
	}

	f.send(editor.SaveMsg{Title: "Fresh", Content: "Words"})

	if f.tui.Screen() != nav.Post {
		t.Fatalf("expected the new post, got %s", f.tui.Screen())
	}
	if f.tui.flash != "Post published." {
		t.Errorf("unexpected flash %q", f.tui.flash)
	}
	if f.srv.Hits("POST /api/posts/") != 1 {
		t.Error("expected one create request")
	}
}

func TestEditorLoadRefusesOthersPost(t *testing.T) {
	f := newFixture(t)
	bob := f.srv.SeedUser("bob", "bob@example.com")
	post := f.srv.SeedPost(bob.ID, "Bob's", "body")
	f.signIn(t)

	settled := f.mount(nav.NavigateMsg{Screen: nav.Editor, PostID: post.ID})
	f.send(settled())

	if !strings.Contains(f.tui.View(), "not authorized to edit") {
		t.Errorf("expected ownership error\n%s", f.tui.View())
	}
}

func TestDashboardLoads(t *testing.T) {
	f := newFixture(t)
	f.srv.SeedPost(f.alice.ID, "Dash post", "body")
	f.signIn(t)

	settled := f.mount(nav.NavigateMsg{Screen: nav.Dashboard})
	f.send(settled())

	if _, ok := f.tui.inner().(*dashboard.Dashboard); !ok {
		t.Fatalf("expected dashboard, got %T", f.tui.inner())
	}
	view := f.tui.View()
	if !strings.Contains(view, "Welcome back, alice") || !strings.Contains(view, "Dash post") {
		t.Errorf("unexpected dashboard\n%s", view)
	}
}

func TestProfileSave(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.mount(nav.NavigateMsg{Screen: nav.Profile})

	location := "Oxford"
	f.send(profile.SaveMsg{Update: client.ProfileUpdate{Location: &location}})

	if f.tui.session.User.Location != "Oxford" {
		t.Errorf("expected session user refreshed, got %+v", f.tui.session.User)
	}
	if !strings.Contains(f.tui.View(), "Profile updated") {
		t.Errorf("expected saved notice\n%s", f.tui.View())
	}
}

func TestMenuLogout(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Author, Username: "alice"})

	f.send(menu.LogoutMsg{})

	if f.app.Session.IsAuthenticated() {
		t.Error("expected signed out")
	}
	if f.tui.Screen() != nav.Posts || len(f.tui.history) != 0 {
		t.Errorf("expected a fresh post list, got %s with history %v", f.tui.Screen(), f.tui.history)
	}
	if f.tui.flash != NoticeSignedOut {
		t.Errorf("unexpected flash %q", f.tui.flash)
	}
}

func TestSessionLostOnGuardedScreen(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.mount(nav.NavigateMsg{Screen: nav.Profile})

	f.app.Session.Logout(context.Background())
	f.tui.Update(sessionChangedMsg{})

	if f.tui.Screen() != nav.Login {
		t.Errorf("expected login once the session is gone, got %s", f.tui.Screen())
	}
}

func TestLateSessionNotificationsKeepSignedInUser(t *testing.T) {
	f := newFixture(t)
	var states []session.State
	unsubscribe := f.app.Session.Subscribe(func(st session.State) {
		states = append(states, st)
	})
	f.signIn(t)
	unsubscribe()
	f.mount(nav.NavigateMsg{Screen: nav.Profile})

	if len(states) < 2 || states[0].IsAuthenticated() {
		t.Fatalf("expected a signed-out loading state before the final one, got %+v", states)
	}
	// Notifications from the login's intermediate states arrive after it settled
	for range states {
		f.tui.Update(sessionChangedMsg{})
	}

	if f.tui.Screen() != nav.Profile {
		t.Errorf("expected to stay on profile, got %s", f.tui.Screen())
	}
	if !f.tui.session.IsAuthenticated() {
		t.Error("expected the header to keep the signed-in user")
	}
	if !strings.Contains(f.tui.View(), "alice") {
		t.Error("expected the username in the header")
	}
}

func TestGlobalKeys(t *testing.T) {
	f := newFixture(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Posts})

	f.tui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if f.tui.menu == nil {
		t.Fatal("expected menu open")
	}
	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	if f.tui.menu != nil {
		t.Error("expected esc to close the menu")
	}

	_, cmd := f.tui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected q to quit")
	}
}

func TestTypingScreensKeepLetters(t *testing.T) {
	f := newFixture(t)
	f.tui.Update(nav.NavigateMsg{Screen: nav.Login})

	f.tui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	f.tui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if f.tui.menu != nil {
		t.Error("m on the login form must not open the menu")
	}
	if f.tui.Screen() != nav.Login {
		t.Error("expected to stay on login")
	}
}
