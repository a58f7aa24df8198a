// ABOUTME: Screen identifiers and navigation messages shared by TUI components
// ABOUTME: Children ask the root model to switch screens by returning NavigateMsg

package nav

import tea "github.com/charmbracelet/bubbletea"

// Screen identifies a top-level TUI screen
type Screen int

const (
	Posts Screen = iota
	Post
	Login
	Register
	Author
	Editor
	Profile
	Dashboard
)

func (s Screen) String() string {
	switch s {
	case Posts:
		return "posts"
	case Post:
		return "post"
	case Login:
		return "login"
	case Register:
		return "register"
	case Author:
		return "author"
	case Editor:
		return "editor"
	case Profile:
		return "profile"
	case Dashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Protected reports whether the screen needs a signed-in user
func (s Screen) Protected() bool {
	return s == Editor || s == Profile || s == Dashboard
}

// NavigateMsg switches the root model to Screen. PostID and Username select
// the record for the post, editor and author screens; Notice is shown once
// on arrival.
type NavigateMsg struct {
	Screen   Screen
	PostID   int
	Username string
	Notice   string
}

// BackMsg returns to the previous screen
type BackMsg struct{}

// Go returns a command that emits msg
func Go(msg NavigateMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Back returns a command that emits BackMsg
func Back() tea.Msg {
	return BackMsg{}
}
