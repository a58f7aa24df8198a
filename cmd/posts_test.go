// ABOUTME: Tests for the post commands
// ABOUTME: Covers anonymous reads, gated writes and ownership failures

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Pinerealm/my-blogging-app/internal/client"
	"github.com/Pinerealm/my-blogging-app/internal/posts"
)

func strPtr(s string) *string { return &s }

func TestPostsList_Human(t *testing.T) {
	srv, alice := newBackend(t)
	srv.SeedPost(alice.ID, "First post", "hello")
	a := newTestApp(t, srv.APIURL())

	var buf bytes.Buffer
	if code := runPostsList(context.Background(), a, &buf); code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, want := range []string{"TITLE", "First post", "alice"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q, got %q", want, buf.String())
		}
	}
}

func TestPostsList_JSON(t *testing.T) {
	withJSON(t)
	srv, alice := newBackend(t)
	srv.SeedPost(alice.ID, "First post", "hello")
	a := newTestApp(t, srv.APIURL())

	var buf bytes.Buffer
	runPostsList(context.Background(), a, &buf)

	var parsed []client.Post
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Title != "First post" {
		t.Errorf("unexpected posts %+v", parsed)
	}
}

func TestPostsShow_NotFound(t *testing.T) {
	srv, _ := newBackend(t)
	a := newTestApp(t, srv.APIURL())

	var buf bytes.Buffer
	if code := runPostsShow(context.Background(), a, &buf, 42); code != exitFailed {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), posts.MsgNotFound) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPostsNew_RequiresLogin(t *testing.T) {
	srv, _ := newBackend(t)
	a := newTestApp(t, srv.APIURL())

	var buf bytes.Buffer
	code := runPostsNew(context.Background(), a, &buf, &client.PostInput{Title: "t", Content: "c"})

	if code != exitError {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "not logged in") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if srv.Hits("POST /api/posts/") != 0 {
		t.Error("expected no create request without a session")
	}
}

func TestPostsNew_Publishes(t *testing.T) {
	srv, _ := newBackend(t)
	a := newTestApp(t, srv.APIURL())
	signIn(t, a, "alice@example.com")

	var buf bytes.Buffer
	code := runPostsNew(context.Background(), a, &buf, &client.PostInput{Title: "Hello", Content: "World"})

	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Published post 1: Hello") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPostsNew_Invalid(t *testing.T) {
	srv, _ := newBackend(t)
	a := newTestApp(t, srv.APIURL())
	signIn(t, a, "alice@example.com")

	var buf bytes.Buffer
	code := runPostsNew(context.Background(), a, &buf, &client.PostInput{Title: "Hello"})

	if code != exitFailed {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Content is required") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPostsNew_SessionExpired(t *testing.T) {
	srv, _ := newBackend(t)
	a := newTestApp(t, srv.APIURL())
	signIn(t, a, "alice@example.com")
	srv.RevokeAll()

	var buf bytes.Buffer
	code := runPostsNew(context.Background(), a, &buf, &client.PostInput{Title: "Hello", Content: "World"})

	if code != exitError {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "session expired") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if a.Session.IsAuthenticated() {
		t.Error("expected the 401 to clear the session")
	}
}

func TestPostsEdit_Owner(t *testing.T) {
	srv, alice := newBackend(t)
	post := srv.SeedPost(alice.ID, "Draft", "body")
	a := newTestApp(t, srv.APIURL())
	signIn(t, a, "alice@example.com")

	var buf bytes.Buffer
	code := runPostsEdit(context.Background(), a, &buf, post.ID, &client.PostUpdate{Title: strPtr("Final")})

	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Final") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPostsEdit_NotOwner(t *testing.T) {
	srv, _ := newBackend(t)
	bob := srv.SeedUser("bob", "bob@example.com")
	post := srv.SeedPost(bob.ID, "Bob's", "body")
	a := newTestApp(t, srv.APIURL())
	signIn(t, a, "alice@example.com")

	var buf bytes.Buffer
	code := runPostsEdit(context.Background(), a, &buf, post.ID, &client.PostUpdate{Title: strPtr("Mine now")})

	if code != exitFailed {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), posts.MsgNotAuthorEdit) {
		t.Errorf("unexpected output %q", buf.String())
	}
	if srv.Hits("PUT /api/posts/1") != 0 {
		t.Error("expected no update request for someone else's post")
	}
}

func TestPostsEdit_NothingToUpdate(t *testing.T) {
	srv, alice := newBackend(t)
	post := srv.SeedPost(alice.ID, "Draft", "body")
	a := newTestApp(t, srv.APIURL())
	signIn(t, a, "alice@example.com")

	var buf bytes.Buffer
	if code := runPostsEdit(context.Background(), a, &buf, post.ID, &client.PostUpdate{}); code != exitFailed {
		t.Errorf("expected exit code 1, got %d", code)
	}
}

func TestPostsDelete(t *testing.T) {
	srv, alice := newBackend(t)
	post := srv.SeedPost(alice.ID, "Draft", "body")
	a := newTestApp(t, srv.APIURL())
	signIn(t, a, "alice@example.com")

	var buf bytes.Buffer
	if code := runPostsDelete(context.Background(), a, &buf, post.ID); code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	buf.Reset()
	if code := runPostsShow(context.Background(), a, &buf, post.ID); code != exitFailed {
		t.Errorf("expected deleted post to be gone, got exit code %d", code)
	}
}

func TestPostsDelete_NotOwner(t *testing.T) {
	srv, _ := newBackend(t)
	bob := srv.SeedUser("bob", "bob@example.com")
	post := srv.SeedPost(bob.ID, "Bob's", "body")
	a := newTestApp(t, srv.APIURL())
	signIn(t, a, "alice@example.com")

	var buf bytes.Buffer
	if code := runPostsDelete(context.Background(), a, &buf, post.ID); code != exitFailed {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), posts.MsgNotAuthorDelete) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFormatPostListHuman_Empty(t *testing.T) {
	if got := formatPostListHuman(nil); got != "No posts yet." {
		t.Errorf("unexpected output %q", got)
	}
}

func TestFormatPostHuman_UnknownAuthor(t *testing.T) {
	p := &client.Post{Title: "T", Content: "C", AuthorID: 7, CreatedAt: client.Timestamp{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}}
	out := formatPostHuman(p)
	if !strings.Contains(out, "Author ID: 7") || !strings.Contains(out, "March 1, 2024") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("expected truncated string, got %q", got)
	}
}
