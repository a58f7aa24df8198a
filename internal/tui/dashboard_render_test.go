// ABOUTME: Test to verify dashboard screen renders with visible header/footer
// ABOUTME: Ensures content doesn't push header/footer off screen

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/tui/dashboard"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
)

func TestDashboardRendersWithHeader(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.srv.SeedPost(f.alice.ID, "Post title", "body")
	}
	f.signIn(t)
	f.tui.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	settled := f.mount(nav.NavigateMsg{Screen: nav.Dashboard})
	f.send(settled())

	if _, ok := f.tui.inner().(*dashboard.Dashboard); !ok {
		t.Fatalf("Expected dashboard, got %T", f.tui.inner())
	}

	view := f.tui.View()
	lines := strings.Split(view, "\n")

	// Check header/footer - only first ╭ is header, only last ╰ is footer
	headerLineIdx := -1
	footerLineIdx := -1
	for i, line := range lines {
		if strings.Contains(line, "╭") && headerLineIdx == -1 {
			headerLineIdx = i
		}
		if strings.Contains(line, "╰") {
			footerLineIdx = i // keep updating, last one is the footer
		}
	}

	if headerLineIdx != 0 {
		t.Errorf("Header should be at line 0, found at %d", headerLineIdx)
	}
	if footerLineIdx != len(lines)-1 {
		t.Errorf("Footer should be at last line, found at %d of %d", footerLineIdx, len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > 120 {
			t.Errorf("line %d overflows the terminal: width %d", i, w)
		}
	}
	if !strings.Contains(view, "Updated") {
		t.Error("expected last update time in footer")
	}
}
