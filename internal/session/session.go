package session

import (
	"os"
	"path/filepath"
	"strings"
)

// Store keeps the opaque API token on disk. The token is never decoded
// client-side; the only question the rest of the app asks is whether one
// is present.
type Store struct {
	path string
}

func appDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	base := filepath.Join(home, ".local", "share", "mindly")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	return base, nil
}

// Open returns a Store backed by the default token location.
func Open() (*Store, error) {
	dir, err := appDataDir()
	if err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(dir, "token")}, nil
}

// OpenAt returns a Store backed by an explicit path.
func OpenAt(path string) *Store {
	return &Store{path: path}
}

// Token returns the stored token, or "" if none is stored.
func (s *Store) Token() string {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Present reports whether a token is stored.
func (s *Store) Present() bool {
	return s.Token() != ""
}

// Save stores a token, replacing any previous one.
func (s *Store) Save(token string) error {
	return os.WriteFile(s.path, []byte(strings.TrimSpace(token)+"\n"), 0o600)
}

// Clear removes the stored token. Clearing an already-empty store is not
// an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
