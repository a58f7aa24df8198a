// ABOUTME: Tests for draft storage
// ABOUTME: Validates config dir storage, max limit and key deduplication

package drafts

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestLoadEmpty(t *testing.T) {
	s := New(t.TempDir())

	all, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty list, got %d drafts", len(all))
	}
}

func TestSaveAndGet(t *testing.T) {
	s := New(t.TempDir())

	if err := s.Save(Draft{Key: NewPostKey, Title: "Hello", Content: "World"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	d, ok := s.Get(NewPostKey)
	if !ok {
		t.Fatal("expected draft to be found")
	}
	if d.Title != "Hello" || d.Content != "World" {
		t.Errorf("unexpected draft %+v", d)
	}
	if d.SavedAt.IsZero() {
		t.Error("expected SavedAt to be set")
	}
}

func TestSaveMovesToFront(t *testing.T) {
	s := New(t.TempDir())
	s.Save(Draft{Key: "post-1", Title: "one"})
	s.Save(Draft{Key: "post-2", Title: "two"})
	s.Save(Draft{Key: "post-1", Title: "one again"})

	all, _ := s.Load()
	if len(all) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(all))
	}
	if all[0].Key != "post-1" || all[0].Title != "one again" {
		t.Errorf("expected updated post-1 first, got %+v", all[0])
	}
}

func TestMaxDrafts(t *testing.T) {
	s := New(t.TempDir())
	for i := 1; i <= MaxDrafts+2; i++ {
		s.Save(Draft{Key: KeyFor(i), Title: strconv.Itoa(i)})
	}

	all, _ := s.Load()
	if len(all) != MaxDrafts {
		t.Errorf("expected %d drafts, got %d", MaxDrafts, len(all))
	}
}

func TestSaveEmptyDiscards(t *testing.T) {
	s := New(t.TempDir())
	s.Save(Draft{Key: NewPostKey, Title: "Hello"})
	s.Save(Draft{Key: NewPostKey})

	if _, ok := s.Get(NewPostKey); ok {
		t.Error("expected empty draft to discard the key")
	}
}

func TestDiscard(t *testing.T) {
	s := New(t.TempDir())
	s.Save(Draft{Key: "post-3", Title: "x"})

	if err := s.Discard("post-3"); err != nil {
		t.Fatalf("Discard() error: %v", err)
	}
	if _, ok := s.Get("post-3"); ok {
		t.Error("expected draft to be gone")
	}
}

func TestCorruptFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "drafts.json"), []byte("not json"), 0o600)

	all, err := New(dir).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected corrupt file to read as empty, got %d", len(all))
	}
}

func TestKeyFor(t *testing.T) {
	if KeyFor(0) != NewPostKey {
		t.Errorf("expected %q for id 0", NewPostKey)
	}
	if KeyFor(7) != "post-7" {
		t.Errorf("unexpected key %q", KeyFor(7))
	}
}
