// Package tokenstore persists the CLI session token between runs. The store
// holds at most one token in a single file: login overwrites it, logout
// removes it.
package tokenstore

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the persisted token, or "" when none is stored.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save replaces the stored token. 0600 keeps the token private to the user.
func (s *FileStore) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the stored token. A missing file is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
