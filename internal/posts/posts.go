// ABOUTME: Post browsing and authoring on top of the API client
// ABOUTME: Validates input and turns status codes into messages for the reader

package posts

import (
	"context"
	"log/slog"

	"github.com/Pinerealm/my-blogging-app/internal/client"
)

// Messages shown for failed operations
const (
	MsgListFailed      = "Failed to load posts"
	MsgNotFound        = "Post not found"
	MsgLoadFailed      = "Failed to load post"
	MsgCreateFailed    = "Failed to create post. Please try again."
	MsgUpdateFailed    = "Failed to update post. Please try again."
	MsgDeleteFailed    = "Failed to delete post. Please try again."
	MsgNotAuthorEdit   = "You are not authorized to edit this post"
	MsgNotAuthorDelete = "You are not authorized to delete this post"
)

// API is the subset of the client the service needs
type API interface {
	ListPosts(ctx context.Context, skip, limit int) ([]client.Post, error)
	GetPost(ctx context.Context, id int) (*client.Post, error)
	CreatePost(ctx context.Context, input *client.PostInput) (*client.Post, error)
	UpdatePost(ctx context.Context, id int, update *client.PostUpdate) (*client.Post, error)
	DeletePost(ctx context.Context, id int) error
}

// Error is a failed operation with a message ready for display. Err is nil for
// failures caught before any request was sent.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Service wraps post CRUD
type Service struct {
	api API
}

// New creates a post service
func New(api API) *Service {
	return &Service{api: api}
}

// List returns a page of posts
func (s *Service) List(ctx context.Context, skip, limit int) ([]client.Post, error) {
	posts, err := s.api.ListPosts(ctx, skip, limit)
	if err != nil {
		return nil, wrap(err, MsgListFailed)
	}
	return posts, nil
}

// Get returns a single post
func (s *Service) Get(ctx context.Context, id int) (*client.Post, error) {
	post, err := s.api.GetPost(ctx, id)
	if err != nil {
		return nil, s.loadError(err, MsgLoadFailed)
	}
	return post, nil
}

// Create validates and publishes a new post
func (s *Service) Create(ctx context.Context, input *client.PostInput) (*client.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, &Error{Message: client.FirstViolation(err)}
	}
	post, err := s.api.CreatePost(ctx, input)
	if err != nil {
		return nil, wrap(err, detailOr(err, MsgCreateFailed))
	}
	slog.Info("Post created", "id", post.ID)
	return post, nil
}

// LoadForEdit fetches a post and refuses it unless author owns it
func (s *Service) LoadForEdit(ctx context.Context, id int, author *client.User) (*client.Post, error) {
	post, err := s.api.GetPost(ctx, id)
	if err != nil {
		if client.IsForbidden(err) {
			return nil, wrap(err, MsgNotAuthorEdit)
		}
		return nil, s.loadError(err, MsgLoadFailed)
	}
	if author == nil || post.AuthorID != author.ID {
		return nil, &Error{Message: MsgNotAuthorEdit}
	}
	return post, nil
}

// Update validates and applies an edit
func (s *Service) Update(ctx context.Context, id int, update *client.PostUpdate) (*client.Post, error) {
	if err := update.Validate(); err != nil {
		return nil, &Error{Message: client.FirstViolation(err)}
	}
	post, err := s.api.UpdatePost(ctx, id, update)
	if err != nil {
		switch {
		case client.IsForbidden(err):
			return nil, wrap(err, MsgNotAuthorEdit)
		case client.IsNotFound(err):
			return nil, wrap(err, MsgNotFound)
		}
		return nil, wrap(err, detailOr(err, MsgUpdateFailed))
	}
	slog.Info("Post updated", "id", id)
	return post, nil
}

// Delete removes a post
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.api.DeletePost(ctx, id); err != nil {
		switch {
		case client.IsForbidden(err):
			return wrap(err, MsgNotAuthorDelete)
		case client.IsNotFound(err):
			return wrap(err, MsgNotFound)
		}
		return wrap(err, MsgDeleteFailed)
	}
	slog.Info("Post deleted", "id", id)
	return nil
}

func (s *Service) loadError(err error, fallback string) error {
	if client.IsNotFound(err) {
		return wrap(err, MsgNotFound)
	}
	return wrap(err, fallback)
}

func wrap(err error, msg string) *Error {
	slog.Debug("Post operation failed", "message", msg, "error", err)
	return &Error{Message: msg, Err: err}
}

func detailOr(err error, fallback string) string {
	if detail := client.DetailOf(err); detail != "" {
		return detail
	}
	return fallback
}
