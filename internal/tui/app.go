// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, history and routes messages to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/app"
	"github.com/Pinerealm/my-blogging-app/internal/authors"
	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/posts"
	"github.com/Pinerealm/my-blogging-app/internal/session"
	"github.com/Pinerealm/my-blogging-app/internal/tui/author"
	"github.com/Pinerealm/my-blogging-app/internal/tui/dashboard"
	"github.com/Pinerealm/my-blogging-app/internal/tui/drafts"
	"github.com/Pinerealm/my-blogging-app/internal/tui/editor"
	tuiguard "github.com/Pinerealm/my-blogging-app/internal/tui/guard"
	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/login"
	"github.com/Pinerealm/my-blogging-app/internal/tui/menu"
	"github.com/Pinerealm/my-blogging-app/internal/tui/nav"
	"github.com/Pinerealm/my-blogging-app/internal/tui/postlist"
	"github.com/Pinerealm/my-blogging-app/internal/tui/postview"
	"github.com/Pinerealm/my-blogging-app/internal/tui/profile"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
	"github.com/Pinerealm/my-blogging-app/internal/tui/widgets"
	"github.com/Pinerealm/my-blogging-app/internal/tui/wizard"
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width the frame is drawn at
	panelPadding     = 4  // Total horizontal padding around content
	maxHistory       = 20
)

// Notices shown after account and post actions
const (
	NoticeRegistered     = "Registration successful! Please sign in."
	NoticeSessionExpired = "Your session has expired. Please sign in again."
	NoticeSignedOut      = "You have been signed out."
)

// sessionChangedMsg tells the root model to re-read the session. It carries no
// state because the forwarding goroutines may deliver notifications out of order.
type sessionChangedMsg struct{}

// unauthorizedMsg is sent when the backend rejected the stored token
type unauthorizedMsg struct {
	path string
}

type postsLoadedMsg struct {
	skip  int
	posts []client.Post
	err   error
}

type postLoadedMsg struct {
	id   int
	post *client.Post
	err  error
}

type editLoadedMsg struct {
	id   int
	post *client.Post
	err  error
}

type authorLoadedMsg struct {
	username string
	page     *authors.Page
	err      error
}

type loginDoneMsg struct {
	result session.Result
}

type registerDoneMsg struct {
	email  string
	result session.Result
}

type postSavedMsg struct {
	created bool
	post    *client.Post
	err     error
}

type postDeletedMsg struct {
	id  int
	err error
}

type profileSavedMsg struct {
	result session.Result
}

type logoutDoneMsg struct{}

// App is the root model for the TUI
type App struct {
	ctx     context.Context
	app     *app.App
	drafts  *drafts.Store
	session session.State

	current nav.NavigateMsg
	history []nav.NavigateMsg
	child   tea.Model
	menu    *menu.Menu

	// afterLogin is where a guarded screen sent the user from
	afterLogin *nav.NavigateMsg
	loginEmail string

	flash      string
	flashLevel widgets.StatusLevel
	lastUpdate time.Time

	width  int
	height int
}

// New creates a new TUI application on top of the wired services
func New(ctx context.Context, a *app.App, store *drafts.Store) *App {
	return &App{
		ctx:     ctx,
		app:     a,
		drafts:  store,
		session: a.Session.Snapshot(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	sess, ctx := a.app.Session, a.ctx
	restore := func() tea.Msg {
		sess.InitializeAuth(ctx)
		return sessionChangedMsg{}
	}
	return tea.Batch(restore, a.navigate(nav.NavigateMsg{Screen: nav.Posts}, false))
}

// Screen is the screen currently shown
func (a *App) Screen() nav.Screen {
	return a.current.Screen
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forward(tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.contentHeight()})

	case tea.KeyMsg:
		return a.handleKey(msg)

	case nav.NavigateMsg:
		push := true
		if a.current.Screen.Protected() && !a.guardRendered() {
			// a guard redirect; returning to it would only redirect again
			push = false
			if msg.Screen == nav.Login {
				from := a.current
				a.afterLogin = &from
			}
		}
		return a, a.navigate(msg, push)

	case nav.BackMsg:
		return a, a.back()

	case sessionChangedMsg:
		a.session = a.app.Session.Snapshot()
		if !a.session.IsAuthenticated() && a.current.Screen.Protected() && a.guardRendered() {
			from := a.current
			a.afterLogin = &from
			return a, a.navigate(nav.NavigateMsg{Screen: nav.Login}, false)
		}
		return a, nil

	case unauthorizedMsg:
		slog.Info("Session expired", "path", msg.path, "screen", a.current.Screen)
		a.session = a.app.Session.Snapshot()
		if a.current.Screen == nav.Login {
			return a, nil
		}
		if a.current.Screen.Protected() {
			from := a.current
			a.afterLogin = &from
		}
		return a, a.navigate(nav.NavigateMsg{Screen: nav.Login, Notice: NoticeSessionExpired}, false)

	case menu.ClosedMsg:
		a.menu = nil
		return a, nil

	case menu.LogoutMsg:
		a.menu = nil
		return a, a.logout()

	// Posts
	case postlist.LoadMsg:
		return a, a.loadPosts(msg.Skip, msg.Limit)

	case postsLoadedMsg:
		if pl, ok := a.child.(*postlist.PostList); ok {
			if msg.err != nil {
				pl.SetError(errorText(msg.err))
			} else {
				pl.SetPage(msg.skip, msg.posts)
				a.lastUpdate = time.Now()
			}
		}
		return a, nil

	case postLoadedMsg:
		if a.current.Screen != nav.Post || a.current.PostID != msg.id {
			return a, nil
		}
		if msg.err != nil {
			a.child = newPlaceholder(styles.Error(errorText(msg.err)))
			return a, nil
		}
		owner := a.session.User != nil && a.session.User.ID == msg.post.AuthorID
		a.child = postview.New(msg.post, owner, a.contentWidth())
		return a, nil

	case postview.DeleteMsg:
		return a, a.deletePost(msg.PostID)

	case postDeletedMsg:
		if msg.err != nil {
			if pv, ok := a.child.(*postview.View); ok {
				pv.SetError(errorText(msg.err))
			}
			return a, nil
		}
		a.invalidateOwnAuthorPage()
		a.history = nil
		return a, a.navigate(nav.NavigateMsg{Screen: nav.Posts, Notice: "Post deleted."}, false)

	// Editor
	case editor.LoadMsg:
		return a, a.loadForEdit(msg.PostID)

	case editLoadedMsg:
		if ed, ok := a.inner().(*editor.Editor); ok && ed.PostID() == msg.id {
			if msg.err != nil {
				return a, ed.SetError(errorText(msg.err))
			}
			return a, ed.SetPost(msg.post)
		}
		return a, nil

	case editor.SaveMsg:
		return a, a.savePost(msg)

	case postSavedMsg:
		ed, ok := a.inner().(*editor.Editor)
		if !ok {
			return a, nil
		}
		if msg.err != nil {
			return a, ed.SetError(errorText(msg.err))
		}
		ed.Saved()
		a.invalidateOwnAuthorPage()
		notice := "Post updated."
		if msg.created {
			notice = "Post published."
		}
		return a, a.navigate(nav.NavigateMsg{Screen: nav.Post, PostID: msg.post.ID, Notice: notice}, false)

	// Authors and dashboard
	case author.LoadMsg:
		return a, a.loadAuthor(msg.Username, msg.Fresh)

	case dashboard.LoadMsg:
		return a, a.loadAuthor(msg.Username, msg.Fresh)

	case authorLoadedMsg:
		switch v := a.inner().(type) {
		case *author.View:
			if v.Username() != msg.username {
				return a, nil
			}
			if msg.err != nil {
				v.SetError(errorText(msg.err))
			} else {
				v.SetPage(msg.page)
			}
		case *dashboard.Dashboard:
			if msg.err != nil {
				v.SetError(errorText(msg.err))
			} else {
				v.SetPage(msg.page)
				a.lastUpdate = time.Now()
			}
		}
		return a, nil

	// Account
	case login.SubmitMsg:
		return a, a.login(msg.Credentials)

	case login.CancelledMsg:
		return a, a.back()

	case loginDoneMsg:
		a.session = a.app.Session.Snapshot()
		if !msg.result.Success {
			if f, ok := a.child.(*login.Form); ok {
				f.SetError(msg.result.Error)
				return a, f.Init()
			}
			return a, nil
		}
		dest := nav.NavigateMsg{Screen: nav.Posts}
		if a.afterLogin != nil {
			dest = *a.afterLogin
		}
		a.afterLogin = nil
		dest.Notice = "Welcome back, " + a.session.User.DisplayName() + "!"
		return a, a.navigate(dest, false)

	case wizard.CompleteMsg:
		return a, a.register(msg.Request)

	case wizard.CancelledMsg:
		return a, a.back()

	case registerDoneMsg:
		if !msg.result.Success {
			if w, ok := a.child.(*wizard.Wizard); ok {
				w.SetError(msg.result.Error)
				return a, w.Init()
			}
			return a, nil
		}
		a.loginEmail = msg.email
		return a, a.navigate(nav.NavigateMsg{Screen: nav.Login, Notice: NoticeRegistered}, false)

	case profile.SaveMsg:
		return a, a.saveProfile(msg.Update)

	case profileSavedMsg:
		p, ok := a.inner().(*profile.Profile)
		if !ok {
			return a, nil
		}
		if !msg.result.Success {
			return a, p.SetError(msg.result.Error)
		}
		a.session = a.app.Session.Snapshot()
		a.invalidateOwnAuthorPage()
		p.SetUser(a.session.User)
		return a, nil

	case logoutDoneMsg:
		a.session = a.app.Session.Snapshot()
		a.history = nil
		a.afterLogin = nil
		return a, a.navigate(nav.NavigateMsg{Screen: nav.Posts, Notice: NoticeSignedOut}, false)
	}

	// Anything else belongs to the active child, e.g. huh form internals and
	// spinner ticks
	return a, a.forward(msg)
}

// forward sends msg to the menu when it is open, otherwise to the screen
func (a *App) forward(msg tea.Msg) tea.Cmd {
	if a.menu != nil {
		model, cmd := a.menu.Update(msg)
		a.menu = model.(*menu.Menu)
		return cmd
	}
	if a.child == nil {
		return nil
	}
	var cmd tea.Cmd
	a.child, cmd = a.child.Update(msg)
	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle global quit
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.typing() {
		return a, a.forward(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "m":
		a.menu = menu.New(a.session.IsAuthenticated())
		return a, a.menu.Init()
	case "w":
		if a.current.Screen != nav.Post {
			return a, a.navigate(nav.NavigateMsg{Screen: nav.Editor}, true)
		}
	}
	return a, a.forward(msg)
}

// typing reports whether keys belong to a form rather than to shortcuts
func (a *App) typing() bool {
	if a.menu != nil {
		return true
	}
	switch a.current.Screen {
	case nav.Login, nav.Register:
		return true
	case nav.Editor:
		return a.guardRendered()
	case nav.Profile:
		p, ok := a.inner().(*profile.Profile)
		return ok && p.Editing()
	}
	return false
}

// inner returns the active screen with any guard unwrapped
func (a *App) inner() tea.Model {
	if g, ok := a.child.(*tuiguard.Model); ok {
		return g.Child()
	}
	return a.child
}

func (a *App) guardRendered() bool {
	g, ok := a.child.(*tuiguard.Model)
	return ok && g.Child() != nil
}

// navigate switches screens. push records the current screen for BackMsg.
func (a *App) navigate(msg nav.NavigateMsg, push bool) tea.Cmd {
	if push && a.child != nil && rememberable(a.current) {
		a.history = append(a.history, a.current)
		if len(a.history) > maxHistory {
			a.history = a.history[len(a.history)-maxHistory:]
		}
	}
	a.menu = nil
	a.flash = ""
	if msg.Notice != "" && msg.Screen != nav.Login {
		a.flash, a.flashLevel = msg.Notice, widgets.StatusOK
	}

	notice := msg.Notice
	msg.Notice = ""
	a.current = msg
	a.child = a.screenFor(msg, notice)
	return a.child.Init()
}

// rememberable excludes screens that make no sense to return to
func rememberable(msg nav.NavigateMsg) bool {
	return msg.Screen != nav.Login && msg.Screen != nav.Register && msg.Screen != nav.Editor
}

func (a *App) back() tea.Cmd {
	if len(a.history) == 0 {
		return a.navigate(nav.NavigateMsg{Screen: nav.Posts}, false)
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	return a.navigate(prev, false)
}

func (a *App) screenFor(msg nav.NavigateMsg, notice string) tea.Model {
	switch msg.Screen {
	case nav.Post:
		return newPlaceholder(styles.Subtitle.Render("Loading post...")).
			withInit(a.loadPost(msg.PostID))
	case nav.Author:
		return author.New(msg.Username)
	case nav.Login:
		email := a.loginEmail
		a.loginEmail = ""
		return login.New(email, notice)
	case nav.Register:
		w := wizard.New()
		w.SetWidth(a.contentWidth())
		return w
	case nav.Editor:
		id := msg.PostID
		return a.guarded(func() tea.Model { return editor.New(id, a.drafts) })
	case nav.Profile:
		return a.guarded(func() tea.Model { return profile.New(a.app.Session.Snapshot().User) })
	case nav.Dashboard:
		return a.guarded(func() tea.Model {
			return dashboard.New(a.app.Session.Snapshot().User, a.contentWidth(), a.contentHeight())
		})
	default:
		return postlist.New("Latest posts", client.DefaultPageSize)
	}
}

func (a *App) guarded(build func() tea.Model) tea.Model {
	return tuiguard.New(a.ctx, a.app.Gate(), build)
}

// loadPosts creates a command to fetch a page of posts
func (a *App) loadPosts(skip, limit int) tea.Cmd {
	return func() tea.Msg {
		list, err := a.app.Posts.List(a.ctx, skip, limit)
		return postsLoadedMsg{skip: skip, posts: list, err: err}
	}
}

func (a *App) loadPost(id int) tea.Cmd {
	return func() tea.Msg {
		post, err := a.app.Posts.Get(a.ctx, id)
		return postLoadedMsg{id: id, post: post, err: err}
	}
}

func (a *App) loadForEdit(id int) tea.Cmd {
	user := a.session.User
	return func() tea.Msg {
		post, err := a.app.Posts.LoadForEdit(a.ctx, id, user)
		return editLoadedMsg{id: id, post: post, err: err}
	}
}

func (a *App) savePost(msg editor.SaveMsg) tea.Cmd {
	return func() tea.Msg {
		if msg.PostID == 0 {
			post, err := a.app.Posts.Create(a.ctx, &client.PostInput{Title: msg.Title, Content: msg.Content})
			return postSavedMsg{created: true, post: post, err: err}
		}
		title, content := msg.Title, msg.Content
		post, err := a.app.Posts.Update(a.ctx, msg.PostID, &client.PostUpdate{Title: &title, Content: &content})
		return postSavedMsg{post: post, err: err}
	}
}

func (a *App) deletePost(id int) tea.Cmd {
	return func() tea.Msg {
		return postDeletedMsg{id: id, err: a.app.Posts.Delete(a.ctx, id)}
	}
}

func (a *App) loadAuthor(username string, fresh bool) tea.Cmd {
	if fresh {
		a.app.Authors.Invalidate(username)
	}
	return func() tea.Msg {
		page, err := a.app.Authors.Load(a.ctx, username)
		return authorLoadedMsg{username: username, page: page, err: err}
	}
}

func (a *App) login(creds client.Credentials) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{result: a.app.Session.Login(a.ctx, &creds)}
	}
}

func (a *App) register(req client.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		return registerDoneMsg{email: req.Email, result: a.app.Session.Register(a.ctx, &req)}
	}
}

func (a *App) saveProfile(update client.ProfileUpdate) tea.Cmd {
	return func() tea.Msg {
		return profileSavedMsg{result: a.app.Session.UpdateProfile(a.ctx, &update)}
	}
}

func (a *App) logout() tea.Cmd {
	return func() tea.Msg {
		a.app.Session.Logout(a.ctx)
		return logoutDoneMsg{}
	}
}

// invalidateOwnAuthorPage drops the signed-in user's cached author page
func (a *App) invalidateOwnAuthorPage() {
	if a.session.User != nil {
		a.app.Authors.Invalidate(a.session.User.Username)
	}
}

// errorText prefers the message prepared for display by the services
func errorText(err error) string {
	var postErr *posts.Error
	if errors.As(err, &postErr) {
		return postErr.Message
	}
	var authorErr *authors.Error
	if errors.As(err, &authorErr) {
		return authorErr.Message
	}
	return client.FirstViolation(err)
}

// View implements tea.Model
func (a *App) View() string {
	content := ""
	switch {
	case a.menu != nil:
		content = a.menu.View()
	case a.child != nil:
		content = a.child.View()
	}
	content = lipgloss.NewStyle().Padding(0, 2).Width(a.frameWidth()).Render(content)
	return a.wrapWithFrame(content)
}

// frameWidth guards against zero/small width before WindowSizeMsg is received
func (a *App) frameWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

// contentWidth is the width available inside the frame padding
func (a *App) contentWidth() int {
	return a.frameWidth() - panelPadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header, the line after it, the line before the footer and the footer
	return max(a.height-4, 0)
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	linkStyle := lipgloss.NewStyle().Foreground(styles.Text)
	activeStyle := lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	link := func(label string, screen nav.Screen) string {
		if a.current.Screen == screen {
			return activeStyle.Render(label)
		}
		return linkStyle.Render(label)
	}

	leftText := fmt.Sprintf(" %s %s  %s", icons.App.String(), titleStyle.Render("BlogHub"), link("Explore", nav.Posts))
	var rightText string
	if a.session.IsAuthenticated() {
		leftText += "  " + link("Write", nav.Editor)
		rightText = contextStyle.Render(icons.Author.String()+" "+a.session.User.DisplayName()) + " "
	} else {
		rightText = link("Sign in", nav.Login) + " · " + link("Get started", nav.Register) + " "
	}

	// Calculate fill needed
	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText) // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╭─") + leftText +
		borderStyle.Render(strings.Repeat("─", fillWidth)) + rightText +
		borderStyle.Render("─╮")
}

// shortcuts lists the keys that work on the current screen
func (a *App) shortcuts() []string {
	if a.menu != nil {
		return []string{"↑↓ Navigate", "Enter Select", "Esc Close"}
	}
	switch a.current.Screen {
	case nav.Posts:
		return []string{"↑↓ Navigate", "Enter Open", "a Author", "r Refresh", "m Menu", "q Quit"}
	case nav.Post:
		if pv, ok := a.child.(*postview.View); ok && pv.Owner() {
			return []string{"e Edit", "d Delete", "a Author", "b Back", "q Quit"}
		}
		return []string{"a Author", "b Back", "m Menu", "q Quit"}
	case nav.Author:
		return []string{"↑↓ Navigate", "Enter Open", "r Refresh", "b Back", "q Quit"}
	case nav.Login:
		return []string{"Enter Submit", "ctrl+n Register", "Esc Back"}
	case nav.Register:
		return []string{"Enter Next", "Esc Cancel"}
	case nav.Editor:
		return []string{"Tab Next", "Enter Save", "Esc Keep draft"}
	case nav.Profile:
		if a.typing() {
			return []string{"Tab Next", "Enter Save", "Esc Cancel"}
		}
		return []string{"e Edit", "b Back", "m Menu", "q Quit"}
	case nav.Dashboard:
		return []string{"n New post", "Enter Open", "r Refresh", "m Menu", "q Quit"}
	}
	return nil
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()
	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	// Right side: flash message, else last update time
	rightText := ""
	switch {
	case a.flash != "":
		rightText = widgets.StatusText(a.flash, a.flashLevel) + " "
	case !a.lastUpdate.IsZero() && (a.current.Screen == nav.Posts || a.current.Screen == nav.Dashboard):
		rightText = statusStyle.Render("Updated "+formatTimeSince(a.lastUpdate)) + " "
	}

	// Calculate widths; the status gives way to the shortcuts when both don't fit
	leftWidth := lipgloss.Width(leftPlainText)
	fillWidth := width - 4 - leftWidth - lipgloss.Width(rightText) // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		rightText = ""
		fillWidth = max(width-4-leftWidth, 0)
	}

	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╰─") + leftText + borderStyle.Render(fill) + rightText + borderStyle.Render("─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// placeholder stands in for a screen whose data is still loading or failed
type placeholder struct {
	text string
	init tea.Cmd
}

func newPlaceholder(text string) *placeholder {
	return &placeholder{text: text}
}

func (p *placeholder) withInit(cmd tea.Cmd) *placeholder {
	p.init = cmd
	return p
}

func (p *placeholder) Init() tea.Cmd { return p.init }

func (p *placeholder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "b" || key.String() == "esc") {
		return p, nav.Back
	}
	return p, nil
}

func (p *placeholder) View() string { return p.text }

// Run starts the TUI and forwards session events into the program until it exits
func Run(ctx context.Context, a *app.App) error {
	root := New(ctx, a, drafts.New(a.Config.ConfigDir))

	p := tea.NewProgram(
		root,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	// Subscribers run inside the store and client; Send must not block them
	unsubscribeSession := a.Session.Subscribe(func(session.State) {
		go p.Send(sessionChangedMsg{})
	})
	defer unsubscribeSession()
	unsubscribeAuth := a.API.OnUnauthorized(func(ev client.UnauthorizedEvent) {
		go p.Send(unauthorizedMsg{path: ev.Path})
	})
	defer unsubscribeAuth()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
