// ABOUTME: Shared fixtures for command tests
// ABOUTME: Builds an app against the fake backend with in-memory session storage

package cmd

import (
	"context"
	"testing"

	"github.com/Pinerealm/my-blogging-app/internal/apitest"
	"github.com/Pinerealm/my-blogging-app/internal/app"
	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/config"
	"github.com/Pinerealm/my-blogging-app/internal/storage"
)

func newTestApp(t *testing.T, apiURL string) *app.App {
	t.Helper()
	return newTestAppOn(t, apiURL, storage.NewMemory())
}

// newTestAppOn builds an app on store, so two apps can share a session
func newTestAppOn(t *testing.T, apiURL string, store storage.Storage) *app.App {
	t.Helper()
	cfg := &config.Config{
		APIURL:         apiURL,
		HTTPTimeout:    5,
		RateBurst:      1,
		SessionStore:   storage.BackendMemory,
		AuthorCacheTTL: 60,
	}
	a := app.NewWithStorage(cfg, store)
	t.Cleanup(func() { a.Close() })
	return a
}

// newBackend starts the fake backend with alice seeded
func newBackend(t *testing.T) (*apitest.Server, client.User) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	return srv, srv.SeedUser("alice", "alice@example.com")
}

func signIn(t *testing.T, a *app.App, email string) {
	t.Helper()
	res := a.Session.Login(context.Background(), &client.Credentials{Email: email, Password: apitest.DefaultPassword})
	if !res.Success {
		t.Fatalf("login failed: %s", res.Error)
	}
}

func withJSON(t *testing.T) {
	t.Helper()
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })
}
