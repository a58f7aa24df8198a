// ABOUTME: Authentication and current-user endpoints
// ABOUTME: Login is form-encoded as the backend's JWT strategy requires

package client

import (
	"context"
	"net/http"
	"net/url"
)

// Register calls POST /auth/register and returns the created user
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	var user User
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login calls POST /auth/jwt/login. The email is submitted as the form's
// username field.
func (c *Client) Login(ctx context.Context, creds *Credentials) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", creds.Email)
	form.Set("password", creds.Password)

	var token TokenResponse
	if err := c.sendForm(ctx, http.MethodPost, "/auth/jwt/login", form, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, ErrInvalidResponse
	}
	return &token, nil
}

// Logout calls POST /auth/jwt/logout
func (c *Client) Logout(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/auth/jwt/logout", nil, nil)
}

// GetProfile calls GET /users/me
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile calls PUT /users/me with the non-nil fields
func (c *Client) UpdateProfile(ctx context.Context, update *ProfileUpdate) (*User, error) {
	var user User
	if err := c.sendJSON(ctx, http.MethodPut, "/users/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
