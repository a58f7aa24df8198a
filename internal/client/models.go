// ABOUTME: Request and response types for the BlogHub REST API
// ABOUTME: Mirrors the backend's user, post and stats schemas

package client

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// User is the authenticated or public user record
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Website     string `json:"website,omitempty"`
	Location    string `json:"location,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	IsVerified  bool   `json:"is_verified"`
}

// DisplayName prefers the username and falls back to the email
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// FullName joins first and last name when present
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Credentials are submitted to the login endpoint as a form
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new account
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Website   *string `json:"website,omitempty"`
	Location  *string `json:"location,omitempty"`
}

// TokenResponse is returned by the login endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// PostAuthor is the author summary embedded in posts
type PostAuthor struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Post is a blog post
type Post struct {
	ID        int         `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	AuthorID  int         `json:"author_id"`
	CreatedAt Timestamp   `json:"created_at"`
	Author    *PostAuthor `json:"author,omitempty"`
}

// AuthorName returns the embedded author's username or a placeholder with the ID
func (p *Post) AuthorName() string {
	if p.Author != nil && p.Author.Username != "" {
		return p.Author.Username
	}
	return "Author ID: " + strconv.Itoa(p.AuthorID)
}

// PostInput creates a post
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostUpdate edits a post. Nil fields are left unchanged.
type PostUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// UserStats is returned by /users/{username}/stats
type UserStats struct {
	Username   string    `json:"username"`
	TotalPosts int       `json:"total_posts"`
	JoinedDate Timestamp `json:"joined_date"`
}

// Timestamp accepts RFC 3339 and the backend's naive ISO-8601 datetimes (no offset,
// assumed UTC)
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
