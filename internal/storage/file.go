// ABOUTME: File-backed storage in the XDG config directory
// ABOUTME: Keeps every entry in a single JSON document written with owner-only permissions

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// sessionFileName is the document holding all persisted entries
const sessionFileName = "session.json"

// FileStorage stores entries in <configDir>/session.json
type FileStorage struct {
	configDir string
	mu        sync.Mutex
}

type fileData struct {
	Entries map[string]string `json:"entries"`
}

// NewFile creates a FileStorage rooted at configDir
func NewFile(configDir string) *FileStorage {
	return &FileStorage{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following the XDG base directory layout
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bloghub")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bloghub")
}

// Path returns the location of the session document
func (fs *FileStorage) Path() string {
	return filepath.Join(fs.configDir, sessionFileName)
}

// Get reads a single entry
func (fs *FileStorage) Get(_ context.Context, key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := fs.load()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

// Set writes a single entry
func (fs *FileStorage) Set(_ context.Context, key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := fs.load()
	if err != nil {
		return err
	}
	entries[key] = value
	return fs.save(entries)
}

// Delete removes entries; missing keys are ignored
func (fs *FileStorage) Delete(_ context.Context, keys ...string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := fs.load()
	if err != nil {
		return err
	}
	changed := false
	for _, key := range keys {
		if _, ok := entries[key]; ok {
			delete(entries, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return fs.save(entries)
}

// load reads the document. A missing or corrupt file yields an empty set.
func (fs *FileStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.Path())
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var doc fileData
	if err := json.Unmarshal(data, &doc); err != nil || doc.Entries == nil {
		return map[string]string{}, nil
	}
	return doc.Entries, nil
}

// save replaces the document via a temp file and rename
func (fs *FileStorage) save(entries map[string]string) error {
	if fs.configDir == "" {
		return errors.New("no config directory available for session storage")
	}
	if err := os.MkdirAll(fs.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(fileData{Entries: entries}, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(fs.configDir, sessionFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return os.Rename(tmpName, fs.Path())
}
