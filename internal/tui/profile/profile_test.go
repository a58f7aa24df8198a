// ABOUTME: Tests for the profile screen
// ABOUTME: Covers display, edit toggling and change detection

package profile

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
)

func sampleUser() *client.User {
	return &client.User{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice", Website: "https://alice.dev"}
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewShowsFields(t *testing.T) {
	view := New(sampleUser()).View()
	for _, want := range []string{"alice", "alice@example.com", "Alice", "https://alice.dev", "not set"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestEditToggle(t *testing.T) {
	p := New(sampleUser())
	p.Update(keyRune("e"))
	if !p.Editing() {
		t.Fatal("expected edit form open")
	}
	if p.values.firstName != "Alice" {
		t.Errorf("expected form prefilled, got %q", p.values.firstName)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Editing() {
		t.Error("expected esc to close the form")
	}
}

func TestBackWhenNotEditing(t *testing.T) {
	p := New(sampleUser())
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(nav.BackMsg); !ok {
		t.Error("expected BackMsg")
	}
}

func TestUpdateOnlyChangedFields(t *testing.T) {
	p := New(sampleUser())
	p.values = fieldsOf(p.user)
	p.values.location = "  Oxford "

	u := p.update()
	if u.Location == nil || *u.Location != "Oxford" {
		t.Errorf("expected trimmed location, got %v", u.Location)
	}
	if u.FirstName != nil || u.Website != nil {
		t.Error("expected unchanged fields to be nil")
	}
}

func TestCheckWebsite(t *testing.T) {
	p := New(sampleUser())
	p.values = fieldsOf(p.user)
	p.values.website = "not a url"
	if err := p.check("website")(""); err == nil {
		t.Error("expected invalid website to fail")
	}
	if err := p.check("bio")(""); err != nil {
		t.Errorf("expected bio to pass, got %v", err)
	}
}

func TestSetUserShowsNotice(t *testing.T) {
	p := New(sampleUser())
	p.Update(keyRune("e"))

	updated := sampleUser()
	updated.Location = "Oxford"
	p.SetUser(updated)

	if p.Editing() {
		t.Error("expected form closed after save")
	}
	view := p.View()
	if !strings.Contains(view, "Profile updated") || !strings.Contains(view, "Oxford") {
		t.Errorf("unexpected view %q", view)
	}
}
