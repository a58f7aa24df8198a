// ABOUTME: Mirrors the session's user and token into storage
// ABOUTME: Keeps the legacy raw-token entry in lock-step with the JSON mirror

package session

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Pinerealm/my-blogging-app/internal/client"
)

// Storage keys
const (
	// StorageKey holds {"state":{"user":...,"token":...},"version":0}
	StorageKey = "auth-storage"
	// TokenKey holds the raw access token
	TokenKey = "auth_token"
)

// mirrorVersion is bumped when the mirror's shape changes
const mirrorVersion = 0

type mirror struct {
	State   mirrorState `json:"state"`
	Version int         `json:"version"`
}

// mirrorState is the persisted subset: loading and error never persist
type mirrorState struct {
	User  *client.User `json:"user"`
	Token *string      `json:"token"`
}

// persist writes the current user and token. An anonymous session removes both
// entries. Writes are serialized and always read the latest state, so
// concurrent updates cannot leave storage behind memory.
func (s *Store) persist(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	st := s.Snapshot()
	if st.User == nil && st.Token == "" {
		if err := s.storage.Delete(ctx, StorageKey, TokenKey); err != nil {
			slog.Warn("Failed to purge persisted session", "error", err)
		}
		return
	}

	m := mirror{Version: mirrorVersion}
	m.State.User = st.User
	if st.Token != "" {
		token := st.Token
		m.State.Token = &token
	}
	data, err := json.Marshal(m)
	if err != nil {
		slog.Warn("Failed to encode session", "error", err)
		return
	}
	if err := s.storage.Set(ctx, StorageKey, string(data)); err != nil {
		slog.Warn("Failed to persist session", "error", err)
	}

	if st.Token != "" {
		err = s.storage.Set(ctx, TokenKey, st.Token)
	} else {
		err = s.storage.Delete(ctx, TokenKey)
	}
	if err != nil {
		slog.Warn("Failed to persist access token", "error", err)
	}
}

// persistedToken reads the raw token entry first, then the mirror
func (s *Store) persistedToken(ctx context.Context) string {
	value, found, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		slog.Warn("Failed to read access token", "error", err)
	}
	if found && value != "" {
		return value
	}
	m, ok := s.readMirror(ctx)
	if !ok || m.State.Token == nil {
		return ""
	}
	return *m.State.Token
}

// CachedUser returns the user last persisted alongside the token. It is only a
// display hint while InitializeAuth is running and never authenticates anyone.
func (s *Store) CachedUser(ctx context.Context) *client.User {
	m, ok := s.readMirror(ctx)
	if !ok {
		return nil
	}
	return m.State.User
}

func (s *Store) readMirror(ctx context.Context) (mirror, bool) {
	var m mirror
	value, found, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		slog.Warn("Failed to read persisted session", "error", err)
		return m, false
	}
	if !found {
		return m, false
	}
	if err := json.Unmarshal([]byte(value), &m); err != nil {
		slog.Warn("Ignoring corrupt persisted session", "error", err)
		return m, false
	}
	return m, true
}
