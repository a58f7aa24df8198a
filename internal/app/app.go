// ABOUTME: Wires configuration, storage, API client, session store and services
// ABOUTME: Shared by the CLI commands and the TUI so both see the same session

package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Pinerealm/my-blogging-app/internal/authors"
	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/config"
	"github.com/Pinerealm/my-blogging-app/internal/guard"
	"github.com/Pinerealm/my-blogging-app/internal/posts"
	"github.com/Pinerealm/my-blogging-app/internal/session"
	"github.com/Pinerealm/my-blogging-app/internal/storage"
)

// App holds the wired components
type App struct {
	Config  *config.Config
	API     *client.Client
	Storage storage.Storage
	Session *session.Store
	Authors *authors.Service
	Posts   *posts.Service
}

// New opens the configured storage backend and wires everything on top of it
func New(cfg *config.Config) (*App, error) {
	store, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return NewWithStorage(cfg, store), nil
}

// NewWithStorage wires the app around an existing storage backend.
// The session store needs the client and the client needs the store as its
// credential provider, so the provider is installed after both exist.
func NewWithStorage(cfg *config.Config, store storage.Storage) *App {
	api := client.New(cfg.APIURL,
		client.WithTimeout(cfg.Timeout()),
		client.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
	sess := session.New(api, store)
	api.SetCredentials(sess)

	slog.Debug("App wired",
		"api_url", cfg.APIURL,
		"session_store", cfg.SessionStore,
		"rate_limit", cfg.RateLimit,
	)

	return &App{
		Config:  cfg,
		API:     api,
		Storage: store,
		Session: sess,
		Authors: authors.New(api, cfg.AuthorCacheDuration()),
		Posts:   posts.New(api),
	}
}

// Gate returns a fresh route guard; use one per protected view or command
func (a *App) Gate() *guard.Gate {
	return guard.New(a.Session)
}

// Close stops background work and releases the storage backend
func (a *App) Close() error {
	a.Authors.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
