// ABOUTME: Loads an author's public page: profile, recent posts and stats
// ABOUTME: Fetches the three resources concurrently and caches the bundle

package authors

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Pinerealm/my-blogging-app/internal/cache"
	"github.com/Pinerealm/my-blogging-app/internal/client"
)

// Messages shown for failed loads
const (
	MsgNotFound   = "Author not found"
	MsgLoadFailed = "Failed to load author information"
)

// RecentPosts is how many posts an author page shows
const RecentPosts = client.DefaultPageSize

// API is the subset of the client the service needs
type API interface {
	GetUserByUsername(ctx context.Context, username string) (*client.User, error)
	GetUserPosts(ctx context.Context, username string, skip, limit int) ([]client.Post, error)
	GetUserStats(ctx context.Context, username string) (*client.UserStats, error)
}

// Page is everything an author page renders
type Page struct {
	Author client.User      `json:"author"`
	Posts  []client.Post    `json:"posts"`
	Stats  client.UserStats `json:"stats"`
}

// Error is a failed load with a message ready for display
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Service loads author pages
type Service struct {
	api   API
	cache *cache.Cache[*Page]
}

// New creates a service caching pages for ttl. ttl <= 0 disables caching.
func New(api API, ttl time.Duration) *Service {
	return &Service{
		api:   api,
		cache: cache.New[*Page](ttl),
	}
}

// Load returns the author page for username
func (s *Service) Load(ctx context.Context, username string) (*Page, error) {
	if page, ok := s.cache.Get(username); ok {
		return page, nil
	}

	var (
		author *client.User
		posts  []client.Post
		stats  *client.UserStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		author, err = s.api.GetUserByUsername(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.api.GetUserPosts(gctx, username, 0, RecentPosts)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.api.GetUserStats(gctx, username)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Debug("Author load failed", "username", username, "error", err)
		if client.IsNotFound(err) {
			return nil, &Error{Message: MsgNotFound, Err: err}
		}
		return nil, &Error{Message: MsgLoadFailed, Err: err}
	}

	if posts == nil {
		posts = []client.Post{}
	}
	page := &Page{Author: *author, Posts: posts, Stats: *stats}
	s.cache.Set(username, page)
	return page, nil
}

// Invalidate drops the cached page for username, e.g. after the author posts
func (s *Service) Invalidate(username string) {
	s.cache.Invalidate(username)
}

// Close stops the cache sweeper
func (s *Service) Close() {
	s.cache.Stop()
}
