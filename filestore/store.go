// Package filestore keeps original PDF uploads in a flat library directory,
// deduplicated by filename.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store manages the library directory. The identity key is the filename
// alone: two different binaries sharing a filename are treated as the same
// file. The weak key protects a previously archived original from being
// overwritten when the same document is re-uploaded in a later session.
type Store struct {
	dir string
}

// New creates a Store over the given library directory, creating it if
// needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("library directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the library directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes an upload into the library. If a file with that name already
// exists, the existing file is left untouched and isNew=false is returned
// with its path; otherwise the bytes are written and isNew=true.
func (s *Store) Save(name string, data []byte) (path string, isNew bool, err error) {
	path = filepath.Join(s.dir, filepath.Base(name))

	if _, statErr := os.Stat(path); statErr == nil {
		return path, false, nil
	} else if !os.IsNotExist(statErr) {
		return "", false, fmt.Errorf("failed to check library for %s: %w", name, statErr)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", false, fmt.Errorf("failed to store %s: %w", name, err)
	}
	return path, true, nil
}

// Open reads a previously stored file back for download. A missing file is
// reported via os.IsNotExist on the returned error; callers treat that as a
// normal branch (cloud note without a local original), not a failure.
func (s *Store) Open(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
}
