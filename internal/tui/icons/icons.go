// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// nerdFontTerminals commonly ship with a Nerd Font configured
var nerdFontTerminals = []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"}

func detectNerdFonts() bool {
	if env := os.Getenv("BLOGHUB_NERD_FONTS"); env != "" {
		return env == "1" || strings.EqualFold(env, "true")
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}
	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon has a Nerd Font glyph and a plain Unicode fallback
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Content
	Post     = Icon{"󰈙", "▤"} // nf-md-file_document
	Author   = Icon{"󰀄", "☺"} // nf-md-account
	Calendar = Icon{"󰃭", "▦"} // nf-md-calendar
	Location = Icon{"󰍎", "⌖"} // nf-md-map_marker
	Website  = Icon{"󰖟", "⌘"} // nf-md-web
	Chart    = Icon{"󰄭", "▁"} // nf-md-chart_line

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info
	Lock     = Icon{"󰌾", "⚿"} // nf-md-lock

	// Actions
	Write   = Icon{"󰏫", "✎"} // nf-md-pencil
	Explore = Icon{"󰍉", "◎"} // nf-md-magnify
	Delete  = Icon{"󰆴", "✗"} // nf-md-delete
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app
	SignIn  = Icon{"󰍂", "→"} // nf-md-login

	// Application
	App       = Icon{"󰂺", "✎"} // nf-md-book_open_page_variant
	Dashboard = Icon{"󰕮", "▣"} // nf-md-view_dashboard
)
