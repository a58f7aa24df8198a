// ABOUTME: Key/value persistence for client session state
// ABOUTME: Defines the Storage interface implemented by file, memory and Redis backends

package storage

import (
	"context"
	"fmt"
)

// Storage persists small string values under fixed keys.
// Get reports found=false (and a nil error) for keys that were never set or were deleted.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a storage backend
type Options struct {
	Backend   string
	ConfigDir string
	RedisURL  string
	Namespace string
}

// Open builds the backend named in opts
func Open(opts Options) (Storage, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFile(opts.ConfigDir), nil
	case BackendMemory:
		return NewMemory(), nil
	case BackendRedis:
		return OpenRedis(opts.RedisURL, opts.Namespace)
	default:
		return nil, fmt.Errorf("unknown session store %q", opts.Backend)
	}
}
