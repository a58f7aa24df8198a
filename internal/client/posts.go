// ABOUTME: Post CRUD endpoints
// ABOUTME: Ownership is enforced by the backend; 403 and 404 surface as APIError

package client

import (
	"context"
	"net/http"
	"strconv"
)

// ListPosts calls GET /posts?skip&limit
func (c *Client) ListPosts(ctx context.Context, skip, limit int) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, "/posts/", pageQuery(skip, limit), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost calls GET /posts/{id}
func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	var post Post
	if err := c.getJSON(ctx, postPath(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost calls POST /posts
func (c *Client) CreatePost(ctx context.Context, input *PostInput) (*Post, error) {
	var post Post
	if err := c.sendJSON(ctx, http.MethodPost, "/posts/", input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost calls PUT /posts/{id}
func (c *Client) UpdatePost(ctx context.Context, id int, update *PostUpdate) (*Post, error) {
	var post Post
	if err := c.sendJSON(ctx, http.MethodPut, postPath(id), update, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost calls DELETE /posts/{id}
func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.sendJSON(ctx, http.MethodDelete, postPath(id), nil, nil)
}

func postPath(id int) string {
	return "/posts/" + strconv.Itoa(id)
}
