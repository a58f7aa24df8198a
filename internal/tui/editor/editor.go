// ABOUTME: Post editor for writing and editing posts in the TUI
// ABOUTME: A huh form for title and body that keeps unsaved work as a draft

package editor

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/tui/drafts"
	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
)

// LoadMsg asks the root model for the post being edited
type LoadMsg struct {
	PostID int
}

// SaveMsg carries the validated post to the root model. PostID is 0 for a
// new post.
type SaveMsg struct {
	PostID  int
	Title   string
	Content string
}

// Editor writes a new post (postID 0) or edits an existing one
type Editor struct {
	postID   int
	title    string
	content  string
	original drafts.Draft
	loading  bool
	saving   bool
	err      string
	notice   string
	drafts   *drafts.Store
	form     *huh.Form
	width    int
}

// New creates an editor. Editing an existing post starts in a loading state
// until SetPost is called.
func New(postID int, store *drafts.Store) *Editor {
	e := &Editor{postID: postID, drafts: store, loading: postID != 0}
	if !e.loading {
		e.restoreDraft()
		e.form = e.build()
	}
	return e
}

// PostID is the post being edited, 0 for a new one
func (e *Editor) PostID() int {
	return e.postID
}

// Init implements tea.Model
func (e *Editor) Init() tea.Cmd {
	if e.loading {
		id := e.postID
		return func() tea.Msg { return LoadMsg{PostID: id} }
	}
	return e.form.Init()
}

// SetPost fills the editor with the post being edited
func (e *Editor) SetPost(post *client.Post) tea.Cmd {
	e.loading = false
	e.title, e.content = post.Title, post.Content
	e.original = drafts.Draft{Title: post.Title, Content: post.Content}
	e.restoreDraft()
	e.form = e.build()
	return e.form.Init()
}

// SetError shows a failed load or save
func (e *Editor) SetError(msg string) tea.Cmd {
	e.err = msg
	e.saving = false
	if e.loading {
		return nil
	}
	e.form = e.build()
	return e.form.Init()
}

// Saved discards the draft once the backend accepted the post
func (e *Editor) Saved() {
	if err := e.drafts.Discard(drafts.KeyFor(e.postID)); err != nil {
		slog.Warn("Failed to discard draft", "post_id", e.postID, "error", err)
	}
}

func (e *Editor) restoreDraft() {
	if e.drafts == nil {
		return
	}
	d, ok := e.drafts.Get(drafts.KeyFor(e.postID))
	if !ok {
		return
	}
	e.title, e.content = d.Title, d.Content
	e.notice = "Restored unsaved draft from " + d.SavedAt.Format("Jan 2 15:04")
}

// keepDraft stores unsaved changes so they survive leaving the editor
func (e *Editor) keepDraft() {
	if e.drafts == nil || e.loading {
		return
	}
	current := drafts.Draft{Key: drafts.KeyFor(e.postID), Title: e.title, Content: e.content}
	if current.Title == e.original.Title && current.Content == e.original.Content {
		current = drafts.Draft{Key: current.Key}
	}
	if err := e.drafts.Save(current); err != nil {
		slog.Warn("Failed to keep draft", "post_id", e.postID, "error", err)
	}
}

func (e *Editor) build() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(200).
				Value(&e.title).
				Validate(e.check("title")),
			huh.NewText().
				Title("Content").
				Description("Tell your story").
				Lines(12).
				Value(&e.content).
				Validate(e.check("content")),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

func (e *Editor) input() client.PostInput {
	return client.PostInput{Title: strings.TrimSpace(e.title), Content: e.content}
}

func (e *Editor) check(field string) func(string) error {
	return func(string) error {
		return client.FieldError(e.input().Validate(), field)
	}
}

// Update implements tea.Model
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e.saving {
		return e, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		e.keepDraft()
		return e, nav.Back
	}
	if e.loading {
		return e, nil
	}
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		e.width = ws.Width
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.saving = true
		e.err = ""
		e.keepDraft()
		in := e.input()
		id := e.postID
		return e, func() tea.Msg { return SaveMsg{PostID: id, Title: in.Title, Content: in.Content} }
	}
	return e, cmd
}

// View implements tea.Model
func (e *Editor) View() string {
	var sb strings.Builder
	heading := "Write a new post"
	if e.postID != 0 {
		heading = "Edit post"
	}
	sb.WriteString(styles.Title.Render(icons.Write.String() + " " + heading))
	sb.WriteString("\n")

	switch {
	case e.loading && e.err != "":
		sb.WriteString(styles.Error(e.err))
		return sb.String()
	case e.loading:
		sb.WriteString(styles.Subtitle.Render("Loading post..."))
		return sb.String()
	case e.saving:
		sb.WriteString(styles.Subtitle.Render("Saving..."))
		return sb.String()
	}

	if e.notice != "" {
		sb.WriteString(styles.Meta.Render(e.notice))
		sb.WriteString("\n\n")
	}
	sb.WriteString(e.form.View())
	if e.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Error(e.err))
	}
	return sb.String()
}
