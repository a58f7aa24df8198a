// ABOUTME: In-memory fake of the BlogHub REST backend for tests
// ABOUTME: Implements auth, users and posts routes with chi and mints real JWT access tokens

package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Pinerealm/my-blogging-app/internal/client"
)

const signingSecret = "apitest-secret"

// DefaultPassword is the password of seeded users
const DefaultPassword = "Password1"

type account struct {
	user      client.User
	password  string
	createdAt time.Time
}

// failure is an injected response for a route
type failure struct {
	status int
	detail string
}

// Server is a fake backend. The zero value is not usable; call New.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[int]*account
	tokens   map[string]int
	posts    map[int]*client.Post
	nextUser int
	nextPost int
	tokenTTL time.Duration
	failures map[string]failure
	hits     map[string]int
	authHdrs []string
}

// New starts a fake backend; it is closed with t.Cleanup by the caller or Close.
func New() *Server {
	s := &Server{
		accounts: make(map[int]*account),
		tokens:   make(map[string]int),
		posts:    make(map[int]*client.Post),
		nextUser: 1,
		nextPost: 1,
		tokenTTL: time.Hour,
		failures: make(map[string]failure),
		hits:     make(map[string]int),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// APIURL is the base URL clients should use (includes /api)
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if s.injected(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, client.HealthResponse{Status: "healthy"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/jwt/login", s.handleLogin)
		r.With(s.requireAuth).Post("/auth/jwt/logout", s.handleLogout)

		r.With(s.requireAuth).Get("/users/me", s.handleMe)
		r.With(s.requireAuth).Put("/users/me", s.handleUpdateMe)
		r.Get("/users/{username}", s.handleUser)
		r.Get("/users/{username}/posts", s.handleUserPosts)
		r.Get("/users/{username}/stats", s.handleUserStats)

		r.Get("/posts/", s.handleListPosts)
		r.Get("/posts/{id}", s.handleGetPost)
		r.With(s.requireAuth).Post("/posts/", s.handleCreatePost)
		r.With(s.requireAuth).Put("/posts/{id}", s.handleUpdatePost)
		r.With(s.requireAuth).Delete("/posts/{id}", s.handleDeletePost)
	})
	return r
}

// SeedUser registers an account directly and returns it
func (s *Server) SeedUser(username, email string) client.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAccount(username, email, DefaultPassword)
}

// SeedPost stores a post authored by userID
func (s *Server) SeedPost(userID int, title, content string) client.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPost(userID, title, content)
}

// IssueToken returns a valid access token for userID without a login round trip
func (s *Server) IssueToken(userID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mint(userID)
}

// RevokeAll invalidates every issued token, as a server-side expiry would
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]int)
}

// SetTokenTTL changes the lifetime of newly minted tokens
func (s *Server) SetTokenTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenTTL = ttl
}

// Fail makes every request matching "METHOD /path" answer with status and detail.
// The path is the chi route pattern, e.g. "GET /api/users/me".
func (s *Server) Fail(route string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, detail: detail}
}

// Hits returns how many requests reached "METHOD /path" (concrete path)
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// AuthHeaders returns the Authorization headers seen so far, in order
func (s *Server) AuthHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authHdrs...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.Method+" "+r.URL.Path]++
		s.authHdrs = append(s.authHdrs, r.Header.Get("Authorization"))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// injected answers with a configured failure when one matches the route pattern
func (s *Server) injected(w http.ResponseWriter, r *http.Request) bool {
	pattern := chi.RouteContext(r.Context()).RoutePattern()
	s.mu.Lock()
	f, ok := s.failures[r.Method+" "+pattern]
	s.mu.Unlock()
	if !ok {
		return false
	}
	writeDetail(w, f.status, f.detail)
	return true
}

type ctxUserKey struct{}

type authInfo struct {
	userID int
	token  string
}

func withUserID(ctx context.Context, userID int, token string) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, authInfo{userID: userID, token: token})
}

func userFrom(ctx context.Context) (int, string) {
	info, _ := ctx.Value(ctxUserKey{}).(authInfo)
	return info.userID, info.token
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		userID, valid := s.verify(token)
		if !valid {
			writeDetail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID, token)))
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	var req client.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.user.Email, req.Email) || a.user.Username == req.Username {
			writeDetail(w, http.StatusBadRequest, "REGISTER_USER_ALREADY_EXISTS")
			return
		}
	}
	user := s.addAccount(req.Username, req.Email, req.Password)
	acc := s.accounts[user.ID]
	acc.user.FirstName = req.FirstName
	acc.user.LastName = req.LastName
	writeJSON(w, http.StatusCreated, acc.user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		writeDetail(w, http.StatusUnprocessableEntity, "Login expects form data")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid form body")
		return
	}
	email := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.user.Email, email) && a.password == password {
			writeJSON(w, http.StatusOK, client.TokenResponse{AccessToken: s.mint(a.user.ID), TokenType: "bearer"})
			return
		}
	}
	writeDetail(w, http.StatusBadRequest, "LOGIN_BAD_CREDENTIALS")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	_, token := userFrom(r.Context())
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	userID, _ := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.accounts[userID].user)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	var update client.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid JSON body")
		return
	}
	userID, _ := userFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	u := &s.accounts[userID].user
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&u.FirstName, update.FirstName)
	apply(&u.LastName, update.LastName)
	apply(&u.Bio, update.Bio)
	apply(&u.AvatarURL, update.AvatarURL)
	apply(&u.Website, update.Website)
	apply(&u.Location, update.Location)
	writeJSON(w, http.StatusOK, *u)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.byUsername(chi.URLParam(r, "username"))
	if acc == nil {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, acc.user)
}

func (s *Server) handleUserPosts(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	skip, limit := pagination(r, 10)

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.byUsername(chi.URLParam(r, "username"))
	if acc == nil {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	var owned []client.Post
	for _, p := range s.sortedPosts(true) {
		if p.AuthorID == acc.user.ID {
			owned = append(owned, p)
		}
	}
	writeJSON(w, http.StatusOK, page(owned, skip, limit))
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.byUsername(chi.URLParam(r, "username"))
	if acc == nil {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	total := 0
	for _, p := range s.posts {
		if p.AuthorID == acc.user.ID {
			total++
		}
	}
	writeJSON(w, http.StatusOK, client.UserStats{
		Username:   acc.user.Username,
		TotalPosts: total,
		JoinedDate: client.Timestamp{Time: acc.createdAt},
	})
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	skip, limit := pagination(r, 100)
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, page(s.sortedPosts(false), skip, limit))
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	post := s.postParam(r)
	if post == nil {
		writeDetail(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	var input client.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Title == "" || input.Content == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "field required")
		return
	}
	userID, _ := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusCreated, s.addPost(userID, input.Title, input.Content))
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	var update client.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid JSON body")
		return
	}
	userID, _ := userFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	post := s.postParam(r)
	if post == nil {
		writeDetail(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.AuthorID != userID {
		writeDetail(w, http.StatusForbidden, "Not authorized to edit this post")
		return
	}
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	userID, _ := userFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	post := s.postParam(r)
	if post == nil {
		writeDetail(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.AuthorID != userID {
		writeDetail(w, http.StatusForbidden, "Not authorized to delete this post")
		return
	}
	delete(s.posts, post.ID)
	w.WriteHeader(http.StatusNoContent)
}

// addAccount requires s.mu
func (s *Server) addAccount(username, email, password string) client.User {
	user := client.User{
		ID:       s.nextUser,
		Username: username,
		Email:    email,
		IsActive: true,
	}
	s.accounts[user.ID] = &account{user: user, password: password, createdAt: time.Now().UTC()}
	s.nextUser++
	return user
}

// addPost requires s.mu
func (s *Server) addPost(userID int, title, content string) client.Post {
	post := &client.Post{
		ID:        s.nextPost,
		Title:     title,
		Content:   content,
		AuthorID:  userID,
		CreatedAt: client.Timestamp{Time: time.Now().UTC().Add(time.Duration(s.nextPost) * time.Millisecond)},
	}
	if acc, ok := s.accounts[userID]; ok {
		post.Author = &client.PostAuthor{ID: acc.user.ID, Username: acc.user.Username, Email: acc.user.Email}
	}
	s.posts[post.ID] = post
	s.nextPost++
	return *post
}

// mint requires s.mu
func (s *Server) mint(userID int) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.Itoa(userID),
		Audience:  jwt.ClaimStrings{"fastapi-users:auth"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	if err != nil {
		panic(err)
	}
	s.tokens[signed] = userID
	return signed
}

func (s *Server) verify(token string) (int, bool) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(signingSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return 0, false
	}
	if _, exists := s.accounts[userID]; !exists {
		return 0, false
	}
	return userID, true
}

// byUsername requires s.mu
func (s *Server) byUsername(username string) *account {
	for _, a := range s.accounts {
		if a.user.Username == username {
			return a
		}
	}
	return nil
}

// postParam requires s.mu
func (s *Server) postParam(r *http.Request) *client.Post {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return nil
	}
	return s.posts[id]
}

// sortedPosts requires s.mu
func (s *Server) sortedPosts(newestFirst bool) []client.Post {
	out := make([]client.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func pagination(r *http.Request, defaultLimit int) (int, int) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if skip < 0 {
		skip = 0
	}
	return skip, limit
}

func page(posts []client.Post, skip, limit int) []client.Post {
	if skip >= len(posts) {
		return []client.Post{}
	}
	end := skip + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[skip:end]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
