// ABOUTME: Tests for dashboard widgets
// ABOUTME: Checks sizing of bars, sparklines and metric blocks

package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
)

func TestProgressBar_Width(t *testing.T) {
	for _, pct := range []float64{-10, 0, 50, 100, 150} {
		bar := ProgressBar(pct, 20, lipgloss.Color("#fff"))
		if w := lipgloss.Width(bar); w != 20 {
			t.Errorf("percent %.0f: expected width 20, got %d", pct, w)
		}
	}
}

func TestLabeledProgressBar_ShowsPercent(t *testing.T) {
	if out := LabeledProgressBar(50, 10); !strings.Contains(out, "50%") {
		t.Errorf("expected percent label, got %q", out)
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 1, 2, 3}, 10, lipgloss.Color("#fff"))
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Errorf("expected lowest and highest blocks, got %q", out)
	}
	if Sparkline(nil, 10, lipgloss.Color("#fff")) != "" {
		t.Error("expected empty sparkline for no data")
	}
}

func TestSparkline_Downsamples(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	if w := lipgloss.Width(Sparkline(values, 12, lipgloss.Color("#fff"))); w != 12 {
		t.Errorf("expected width 12, got %d", w)
	}
}

func TestSparkline_Flat(t *testing.T) {
	out := Sparkline([]float64{0, 0, 0}, 10, lipgloss.Color("#fff"))
	if !strings.Contains(out, "▁▁▁") {
		t.Errorf("expected flat zero line, got %q", out)
	}
}

func TestMetricBlock_LinesShareWidth(t *testing.T) {
	out := MetricBlock(icons.Post, "Posts", "12", "published", 24)
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != 24 {
			t.Errorf("line %d: expected width 24, got %d (%q)", i, w, line)
		}
	}
}

func TestBarBlock_LinesShareWidth(t *testing.T) {
	out := BarBlock(icons.Author, "Profile", 66, "4 of 6 fields", 0)
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != DefaultBlockWidth {
			t.Errorf("line %d: expected width %d, got %d", i, DefaultBlockWidth, w)
		}
	}
}

func TestBadge(t *testing.T) {
	if out := Badge("VERIFIED", StatusOK); !strings.Contains(out, "VERIFIED") {
		t.Errorf("expected badge text, got %q", out)
	}
	if out := StatusText("Active", StatusOK); !strings.Contains(out, "Active") {
		t.Errorf("expected status text, got %q", out)
	}
}
