// ABOUTME: Session store holding the signed-in user and access token
// ABOUTME: Orchestrates login, registration, logout and startup token validation

package session

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/storage"
)

// Fallback messages when the backend supplies no detail
const (
	MsgLoginFailed         = "Login failed"
	MsgRegistrationFailed  = "Registration failed"
	MsgProfileUpdateFailed = "Failed to update profile"
)

// AuthAPI is the subset of the API client the store orchestrates
type AuthAPI interface {
	Login(ctx context.Context, creds *client.Credentials) (*client.TokenResponse, error)
	Register(ctx context.Context, req *client.RegisterRequest) (*client.User, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*client.User, error)
	UpdateProfile(ctx context.Context, update *client.ProfileUpdate) (*client.User, error)
}

// State is a point-in-time copy of the session
type State struct {
	User      *client.User
	Token     string
	IsLoading bool
	Error     string
}

// IsAuthenticated is true iff both a user and a token are present
func (s State) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// Result is returned by operations that report failure as a message
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Store is the single source of truth for who is logged in. Construct one per
// process (or per test) with New; there is no package-level instance.
type Store struct {
	api     AuthAPI
	storage storage.Storage

	mu    sync.RWMutex
	state State

	listenersMu sync.Mutex
	listeners   map[int]func(State)
	nextID      int

	// persistMu orders storage writes so the last committed state wins
	persistMu sync.Mutex
	init      singleflight.Group
}

// New creates an anonymous store. Persisted credentials are only picked up by
// InitializeAuth.
func New(api AuthAPI, store storage.Storage) *Store {
	return &Store{
		api:       api,
		storage:   store,
		listeners: make(map[int]func(State)),
	}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// IsAuthenticated recomputes the predicate from the live state on every call
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated()
}

// IsLoading reports whether an operation is in flight
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoading
}

// Subscribe registers fn to receive every committed state. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

// Login exchanges credentials for a token, then loads the profile
func (s *Store) Login(ctx context.Context, creds *client.Credentials) Result {
	s.update(ctx, func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	token, err := s.api.Login(ctx, creds)
	if err != nil {
		return s.fail(ctx, err, MsgLoginFailed, false)
	}
	s.update(ctx, func(st *State) {
		st.Token = token.AccessToken
	})

	user, err := s.api.GetProfile(ctx)
	if err != nil {
		// a token without a user must not outlive the operation
		return s.fail(ctx, err, MsgLoginFailed, true)
	}
	s.update(ctx, func(st *State) {
		st.User = user
		st.IsLoading = false
	})
	slog.Info("Signed in", "username", user.Username)
	return Result{Success: true}
}

// Register creates an account. It never signs the user in.
func (s *Store) Register(ctx context.Context, req *client.RegisterRequest) Result {
	s.update(ctx, func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	if _, err := s.api.Register(ctx, req); err != nil {
		return s.fail(ctx, err, MsgRegistrationFailed, false)
	}
	s.update(ctx, func(st *State) {
		st.IsLoading = false
	})
	slog.Info("Registered account", "username", req.Username)
	return Result{Success: true}
}

// Logout tells the backend best-effort, then clears the session unconditionally
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		slog.Warn("Logout request failed", "error", err)
	}
	s.signOut(ctx, func(st *State) {
		st.Error = ""
	})
}

// InitializeAuth validates a persisted token by fetching the profile. Without a
// persisted token it does nothing. Concurrent callers share a single flight, and
// calls after a successful resolution are no-ops.
func (s *Store) InitializeAuth(ctx context.Context) {
	s.init.Do("init", func() (any, error) {
		s.initialize(ctx)
		return nil, nil
	})
}

func (s *Store) initialize(ctx context.Context) {
	if s.IsAuthenticated() {
		return
	}

	token := s.persistedToken(ctx)
	if token == "" {
		return
	}

	// storage already holds this token
	s.apply(ctx, persistNever, func(st *State) {
		st.Token = token
		st.IsLoading = true
	})

	user, err := s.api.GetProfile(ctx)
	if err != nil && ctx.Err() != nil {
		// Interrupted, not rejected: keep the persisted token for the next run
		slog.Info("Session validation interrupted", "error", err)
		s.apply(ctx, persistNever, func(st *State) {
			st.Token = ""
			st.User = nil
			st.IsLoading = false
		})
		return
	}
	if err != nil {
		slog.Info("Persisted token rejected", "error", err)
		s.update(ctx, func(st *State) {
			st.Token = ""
			st.User = nil
			st.IsLoading = false
		})
		return
	}
	s.update(ctx, func(st *State) {
		st.User = user
		st.IsLoading = false
	})
}

// ClearError drops the sticky error message only
func (s *Store) ClearError() {
	s.update(context.Background(), func(st *State) {
		st.Error = ""
	})
}

// UpdateProfile sends the changed fields and refreshes the in-memory user
func (s *Store) UpdateProfile(ctx context.Context, update *client.ProfileUpdate) Result {
	s.update(ctx, func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})
	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		return s.fail(ctx, err, MsgProfileUpdateFailed, false)
	}
	s.update(ctx, func(st *State) {
		if st.Token != "" {
			st.User = user
		}
		st.IsLoading = false
	})
	return Result{Success: true}
}

// AccessToken implements client.CredentialProvider
func (s *Store) AccessToken(ctx context.Context) string {
	s.mu.RLock()
	token := s.state.Token
	s.mu.RUnlock()
	if token != "" {
		return token
	}
	value, found, err := s.storage.Get(ctx, TokenKey)
	if err != nil || !found {
		return ""
	}
	return value
}

// ClearCredentials implements client.CredentialProvider. It runs when the
// backend answers 401 and drops both the persisted and in-memory session.
func (s *Store) ClearCredentials(ctx context.Context) {
	s.signOut(ctx, nil)
}

// fail records err as the sticky error and ends the operation
func (s *Store) fail(ctx context.Context, err error, fallback string, dropToken bool) Result {
	msg := messageFor(err, fallback)
	slog.Debug("Session operation failed", "error", err)
	s.update(ctx, func(st *State) {
		st.Error = msg
		st.IsLoading = false
		if dropToken {
			st.Token = ""
			st.User = nil
		}
	})
	return Result{Success: false, Error: msg}
}

// messageFor prefers the backend's detail over the fallback
func messageFor(err error, fallback string) string {
	if detail := client.DetailOf(err); detail != "" {
		return detail
	}
	return fallback
}

// persistMode says when an update writes through to storage
type persistMode int

const (
	persistOnChange persistMode = iota
	persistAlways
	persistNever
)

// update applies mutate under the lock, then persists and notifies outside it
func (s *Store) update(ctx context.Context, mutate func(*State)) {
	s.apply(ctx, persistOnChange, mutate)
}

// signOut clears the in-memory session and purges storage even when memory was
// already anonymous, since a process that never initialized still holds the
// persisted token on disk.
func (s *Store) signOut(ctx context.Context, mutate func(*State)) {
	s.apply(ctx, persistAlways, func(st *State) {
		st.User = nil
		st.Token = ""
		if mutate != nil {
			mutate(st)
		}
	})
}

func (s *Store) apply(ctx context.Context, mode persistMode, mutate func(*State)) {
	s.mu.Lock()
	before := s.state
	mutate(&s.state)
	credentialsChanged := before.Token != s.state.Token || before.User != s.state.User
	after := s.snapshotLocked()
	s.mu.Unlock()

	if mode == persistAlways || (mode == persistOnChange && credentialsChanged) {
		s.persist(ctx)
	}
	s.notify(after)
}

func (s *Store) notify(st State) {
	s.listenersMu.Lock()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
