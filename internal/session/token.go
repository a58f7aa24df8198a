// ABOUTME: Reads claims from the backend's JWT access tokens
// ABOUTME: The signature is not verified; only the backend can do that

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned for tokens without an exp claim
var ErrNoExpiry = errors.New("token has no expiry")

// TokenExpiry decodes the exp claim of an access token without verifying it.
// It is informational; the backend remains the authority on validity.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// ExpiresIn is the time left until the session's token expires, or 0 when the
// token is absent or undecodable
func (s *Store) ExpiresIn(now time.Time) time.Duration {
	token := s.Snapshot().Token
	if token == "" {
		return 0
	}
	exp, err := TokenExpiry(token)
	if err != nil {
		return 0
	}
	if d := exp.Sub(now); d > 0 {
		return d
	}
	return 0
}
