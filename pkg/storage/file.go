package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultSuffix is appended to keys by FileStore and HTTPStore when no
// suffix is configured.
const DefaultSuffix = ".txt"

// MaxNameLength is the longest file name FileStore resolves, suffix
// included, in bytes.
const MaxNameLength = 255

// FileStore reads resources from files below a root directory.
type FileStore struct {
	root   string
	suffix string
}

// NewFileStore creates a store reading <root>/<key><suffix>.
// An empty suffix selects DefaultSuffix; pass "-" for no suffix at all.
func NewFileStore(root, suffix string) *FileStore {
	switch suffix {
	case "":
		suffix = DefaultSuffix
	case "-":
		suffix = ""
	}
	return &FileStore{root: root, suffix: suffix}
}

// Root returns the directory the store reads from.
func (s *FileStore) Root() string {
	return s.root
}

// Path returns the location a key resolves to.
func (s *FileStore) Path(key string) (string, error) {
	name := key + s.suffix
	if !filepath.IsLocal(name) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q does not name a file below %s", ErrInvalidKey, key, s.root)
	}
	if len(name) > MaxNameLength {
		return "", fmt.Errorf("%w: file name %s... exceeds %d bytes", ErrInvalidKey, name[:16], MaxNameLength)
	}
	return filepath.Join(s.root, name), nil
}

// Read returns the contents of the file a key resolves to.
func (s *FileStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.read(ctx, key)
	observeRead(BackendFile, err)
	return data, err
}

func (s *FileStore) read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.Path(key); err != nil {
		return nil, err
	}
	name := key + s.suffix

	// os.Root refuses to follow symlinks out of the directory
	root, err := os.OpenRoot(s.root)
	if err != nil {
		return nil, fmt.Errorf("open root %s: %w", s.root, err)
	}
	defer root.Close()

	f, err := root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, filepath.Join(s.root, name))
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotExist, filepath.Join(s.root, name))
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return data, nil
}
