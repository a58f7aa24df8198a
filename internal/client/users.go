// ABOUTME: Public author endpoints
// ABOUTME: Profile, paginated posts and statistics by username

package client

import (
	"context"
	"net/url"
	"strconv"
)

// DefaultPageSize is the page size used by author pages
const DefaultPageSize = 10

// GetUserByUsername calls GET /users/{username}
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserPosts calls GET /users/{username}/posts?skip&limit
func (c *Client) GetUserPosts(ctx context.Context, username string, skip, limit int) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username)+"/posts", pageQuery(skip, limit), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetUserStats calls GET /users/{username}/stats
func (c *Client) GetUserStats(ctx context.Context, username string) (*UserStats, error) {
	var stats UserStats
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func pageQuery(skip, limit int) url.Values {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
