package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"", 0.5},
		{"   ", 0.5},
		{"not-a-number", 0.5},
		{"0.7", 0.7},
		{" 0.25 ", 0.25},
		{"1", 1},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseThreshold(tt.input); got != tt.want {
				t.Errorf("parseThreshold(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCollectSourcesFromFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.sol")
	b := filepath.Join(dir, "b.sol")
	if err := os.WriteFile(a, []byte("contract A {}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("contract B {}"), 0644); err != nil {
		t.Fatal(err)
	}

	sources, err := collectSources([]string{a, b})
	if err != nil {
		t.Fatalf("collectSources: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].Text != "contract A {}" {
		t.Errorf("unexpected text %q", sources[0].Text)
	}
}

func TestCollectSourcesGlob(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "c.sol"), []byte("contract C {}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	sources, err := collectSources([]string{filepath.Join(dir, "**", "*.sol")})
	if err != nil {
		t.Fatalf("collectSources: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if !strings.HasSuffix(sources[0].Name, "c.sol") {
		t.Errorf("unexpected source %q", sources[0].Name)
	}
}

func TestCollectSourcesRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.sol")
	if err := os.WriteFile(empty, []byte("  \n\t"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := collectSources([]string{empty}); err == nil {
		t.Fatal("expected error for whitespace-only file")
	}
}

func TestCollectSourcesNoGlobMatch(t *testing.T) {
	dir := t.TempDir()
	if _, err := collectSources([]string{filepath.Join(dir, "*.sol")}); err == nil {
		t.Fatal("expected error when glob matches nothing")
	}
}
