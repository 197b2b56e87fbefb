package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// The credential is stored under a single constant key, as a plain file in
// the app's config dir with owner-only permissions.
const accessTokenKey = "access_token"

// Store persists the raw access token string between runs.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, accessTokenKey)
}

func (s *Store) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), []byte(token), 0o600)
}

// Load returns the stored token, or empty when none is stored.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
