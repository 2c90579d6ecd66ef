package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotExist indicates the requested resource is absent from the backend
	ErrNotExist = errors.New("resource does not exist")

	// ErrInvalidKey indicates the key cannot be mapped to a backend location
	ErrInvalidKey = errors.New("invalid storage key")
)

// Store reads named resources from a backend.
type Store interface {
	// Read returns the full contents stored under key. It returns an error
	// wrapping ErrNotExist when nothing is stored there and ErrInvalidKey
	// when the key cannot be resolved to a location.
	Read(ctx context.Context, key string) ([]byte, error)
}

// Backend names used as metric labels.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendHTTP   = "http"
	BackendMemory = "memory"
)
