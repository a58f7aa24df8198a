// ABOUTME: Tests for the fake backend itself
// ABOUTME: Guards the contract other packages' tests rely on

package apitest

import (
	"context"
	"net/http"
	"testing"

	"github.com/Pinerealm/my-blogging-app/internal/client"
)

func TestServer_LoginAndProfile(t *testing.T) {
	srv := New()
	defer srv.Close()
	srv.SeedUser("alice", "alice@example.com")

	c := client.New(srv.APIURL())
	token, err := c.Login(context.Background(), &client.Credentials{Email: "alice@example.com", Password: DefaultPassword})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if srv.Hits("POST /api/auth/jwt/login") != 1 {
		t.Errorf("expected one login hit, got %d", srv.Hits("POST /api/auth/jwt/login"))
	}
}

func TestServer_BadCredentials(t *testing.T) {
	srv := New()
	defer srv.Close()
	srv.SeedUser("alice", "alice@example.com")

	c := client.New(srv.APIURL())
	_, err := c.Login(context.Background(), &client.Credentials{Email: "alice@example.com", Password: "nope"})
	if client.StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if client.DetailOf(err) != "LOGIN_BAD_CREDENTIALS" {
		t.Errorf("unexpected detail %q", client.DetailOf(err))
	}
}

func TestServer_FailInjection(t *testing.T) {
	srv := New()
	defer srv.Close()
	srv.Fail("GET /api/users/{username}", http.StatusServiceUnavailable, "maintenance")

	c := client.New(srv.APIURL())
	_, err := c.GetUserByUsername(context.Background(), "alice")
	if client.StatusCode(err) != http.StatusServiceUnavailable {
		t.Errorf("expected injected 503, got %v", err)
	}
}

func TestServer_RevokeAll(t *testing.T) {
	srv := New()
	defer srv.Close()
	user := srv.SeedUser("alice", "alice@example.com")
	token := srv.IssueToken(user.ID)
	srv.RevokeAll()

	req, _ := http.NewRequest(http.MethodGet, srv.APIURL()+"/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after revoke, got %d", resp.StatusCode)
	}
}
