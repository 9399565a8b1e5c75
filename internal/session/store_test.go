package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	st := NewStore(t.TempDir())

	s, err := st.Load()
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if s.Username != "" || s.Token != "" || s.Theme != "" {
		t.Errorf("expected empty session, got %+v", s)
	}
	if s.LoggedIn() {
		t.Error("empty session must not count as logged in")
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := NewStore(t.TempDir())

	original := &Session{Username: "alice", Token: "token-alice", Theme: "dark"}
	if err := st.Save(original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Username != "alice" {
		t.Errorf("username: got %q, want %q", loaded.Username, "alice")
	}
	if loaded.Token != "token-alice" {
		t.Errorf("token: got %q, want %q", loaded.Token, "token-alice")
	}
	if loaded.Theme != "dark" {
		t.Errorf("theme: got %q, want %q", loaded.Theme, "dark")
	}
}

func TestLoggedInRequiresBothCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		token    string
		want     bool
	}{
		{"both present", "alice", "token-alice", true},
		{"username only", "alice", "", false},
		{"token only", "", "token-alice", false},
		{"both absent", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{Username: tt.username, Token: tt.token}
			if got := s.LoggedIn(); got != tt.want {
				t.Errorf("LoggedIn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	st := NewStore(t.TempDir())

	// No session on disk.
	if _, err := st.Require(); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}

	// Username without token still fails the guard.
	if err := st.Save(&Session{Username: "alice"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := st.Require(); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn for tokenless session, got %v", err)
	}

	// Full credentials pass.
	if err := st.Save(&Session{Username: "alice", Token: "abc"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	s, err := st.Require()
	if err != nil {
		t.Fatalf("Require failed: %v", err)
	}
	if s.Username != "alice" || s.Token != "abc" {
		t.Errorf("unexpected session %+v", s)
	}
}

func TestClearRemovesAllKeys(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)

	if err := st.Save(&Session{Username: "alice", Token: "abc", Theme: "dark"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := st.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "session.json")); !os.IsNotExist(err) {
		t.Error("session file should be gone after Clear")
	}

	s, err := st.Load()
	if err != nil {
		t.Fatalf("Load after Clear failed: %v", err)
	}
	if s.Username != "" || s.Token != "" || s.Theme != "" {
		t.Errorf("expected empty session after Clear, got %+v", s)
	}

	// Clearing again is a no-op, not an error.
	if err := st.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestThemeOrDefault(t *testing.T) {
	s := &Session{}
	if got := s.ThemeOrDefault(); got != "light" {
		t.Errorf("default theme: got %q, want %q", got, "light")
	}
	s.Theme = "dark"
	if got := s.ThemeOrDefault(); got != "dark" {
		t.Errorf("stored theme: got %q, want %q", got, "dark")
	}
}
