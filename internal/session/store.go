package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotLoggedIn is returned when an operation requires stored credentials
// and either the username or the token is missing.
var ErrNotLoggedIn = errors.New("not logged in (run `scaudit login` first)")

// Session holds the locally persisted account state. A session counts as
// logged in only when both username and token are present; a missing token
// is treated the same as no session at all.
type Session struct {
	Username string `json:"username,omitempty"`
	Token    string `json:"token,omitempty"`
	Theme    string `json:"theme,omitempty"`
}

// LoggedIn reports whether both credentials are present.
func (s *Session) LoggedIn() bool {
	return s.Username != "" && s.Token != ""
}

// ThemeOrDefault returns the stored theme, or "light" when none is set.
func (s *Session) ThemeOrDefault() string {
	if s.Theme == "" {
		return "light"
	}
	return s.Theme
}

// Store persists a Session as a JSON file on disk.
type Store struct {
	path string
}

// DefaultDir returns the default data directory (~/.scaudit).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".scaudit"), nil
}

// NewStore creates a store rooted at the given data directory.
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, "session.json")}
}

// Path returns the session file location.
func (st *Store) Path() string { return st.path }

// Load reads the session from disk. A missing file yields an empty session,
// not an error. Reads are synchronous, so callers can check credentials
// immediately at startup without any settling delay.
func (st *Store) Load() (*Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	return &s, nil
}

// Save writes the session to disk with restricted permissions.
func (st *Store) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}

	if err := os.WriteFile(st.path, data, 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear removes every persisted key (username, token, theme) by deleting
// the session file. A missing file is not an error.
func (st *Store) Clear() error {
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Require loads the session and fails with ErrNotLoggedIn unless both
// username and token are present.
func (st *Store) Require() (*Session, error) {
	s, err := st.Load()
	if err != nil {
		return nil, err
	}
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return s, nil
}
