// ABOUTME: Keeps unpublished post drafts between TUI sessions
// ABOUTME: Stores the most recent drafts as JSON in the config directory

package drafts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// MaxDrafts is the maximum number of drafts kept; older ones are dropped
const MaxDrafts = 5

// NewPostKey is the key of the draft for a post that does not exist yet
const NewPostKey = "new"

// Draft is an unsaved title and body
type Draft struct {
	Key     string    `json:"key"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	SavedAt time.Time `json:"saved_at"`
}

// Empty reports whether there is nothing worth keeping
func (d Draft) Empty() bool {
	return d.Title == "" && d.Content == ""
}

// KeyFor returns the draft key for an existing post, or NewPostKey for id 0
func KeyFor(postID int) string {
	if postID == 0 {
		return NewPostKey
	}
	return "post-" + strconv.Itoa(postID)
}

// Store reads and writes drafts.json under a config directory
type Store struct {
	configDir string
	now       func() time.Time
}

type draftsFile struct {
	Drafts []Draft `json:"drafts"`
}

// New creates a draft store in configDir
func New(configDir string) *Store {
	return &Store{configDir: configDir, now: time.Now}
}

func (s *Store) path() string {
	return filepath.Join(s.configDir, "drafts.json")
}

// Load returns all drafts, most recent first. A missing or corrupt file is an
// empty list.
func (s *Store) Load() ([]Draft, error) {
	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return []Draft{}, nil
	}
	if err != nil {
		return nil, err
	}

	var f draftsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return []Draft{}, nil
	}
	return f.Drafts, nil
}

// Get returns the draft stored under key
func (s *Store) Get(key string) (Draft, bool) {
	all, err := s.Load()
	if err != nil {
		return Draft{}, false
	}
	for _, d := range all {
		if d.Key == key {
			return d, true
		}
	}
	return Draft{}, false
}

// Save stores d under its key, moving it to the front. Empty drafts discard
// the key instead.
func (s *Store) Save(d Draft) error {
	if d.Empty() {
		return s.Discard(d.Key)
	}
	all, err := s.Load()
	if err != nil {
		all = nil
	}

	d.SavedAt = s.now()
	kept := make([]Draft, 0, len(all)+1)
	kept = append(kept, d)
	for _, existing := range all {
		if existing.Key != d.Key {
			kept = append(kept, existing)
		}
	}
	return s.write(kept)
}

// Discard removes the draft stored under key
func (s *Store) Discard(key string) error {
	all, err := s.Load()
	if err != nil {
		return err
	}
	kept := make([]Draft, 0, len(all))
	for _, d := range all {
		if d.Key != key {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(all) {
		return nil
	}
	return s.write(kept)
}

func (s *Store) write(all []Draft) error {
	if err := os.MkdirAll(s.configDir, 0o700); err != nil {
		return err
	}
	if len(all) > MaxDrafts {
		all = all[:MaxDrafts]
	}
	data, err := json.MarshalIndent(draftsFile{Drafts: all}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o600)
}
