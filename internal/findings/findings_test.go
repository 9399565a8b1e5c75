package findings

import (
	"strings"
	"testing"
)

func TestParseSplitsAtFirstColonOnly(t *testing.T) {
	tests := []struct {
		label     string
		wantTitle string
		wantDesc  string
	}{
		{"A: B: C", "A", "B: C"},
		{"Reentrancy: Allowing an external contract to re-enter", "Reentrancy", "Allowing an external contract to re-enter"},
		{"Timestamp Ordering (Transaction Order Dependence): Logic depending on order", "Timestamp Ordering (Transaction Order Dependence)", "Logic depending on order"},
		{"NoColonHere", "NoColonHere", ""},
		{"  padded title  ", "padded title", ""},
		{"Title:", "Title", ""},
		{"Title:   ", "Title", ""},
		{":desc only", "", "desc only"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			f := Parse(tt.label)
			if f.Title != tt.wantTitle {
				t.Errorf("title: got %q, want %q", f.Title, tt.wantTitle)
			}
			if f.Description != tt.wantDesc {
				t.Errorf("description: got %q, want %q", f.Description, tt.wantDesc)
			}
		})
	}
}

func TestRenderHTMLEmpty(t *testing.T) {
	out := RenderHTML(nil)
	if got := strings.Count(out, "no-findings"); got != 1 {
		t.Errorf("expected exactly one notice, got %d in %q", got, out)
	}
	if strings.Contains(out, "result-card") {
		t.Errorf("empty input must render zero cards: %q", out)
	}
}

func TestRenderHTMLEscapesMarkup(t *testing.T) {
	out := RenderHTML([]string{`<script>alert("x")</script>: & 'inject' <b>`})

	// Strip our own tags, then nothing angle-bracketed may remain.
	stripped := out
	for _, tag := range []string{
		`<div class="result-card">`, `<div class="result-title">`,
		`<div class="result-desc">`, `</div>`,
	} {
		stripped = strings.ReplaceAll(stripped, tag, "")
	}
	if strings.ContainsAny(stripped, "<>\"'") {
		t.Errorf("unescaped markup characters survived: %q", stripped)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("script tag not escaped: %q", out)
	}
	if !strings.Contains(out, "&amp;") {
		t.Errorf("ampersand not escaped: %q", out)
	}
}

func TestRenderHTMLOmitsEmptyDescription(t *testing.T) {
	out := RenderHTML([]string{"Locked Ether"})
	if strings.Contains(out, "result-desc") {
		t.Errorf("description element must be omitted when empty: %q", out)
	}
	if !strings.Contains(out, "Locked Ether") {
		t.Errorf("title missing: %q", out)
	}
}

func TestRenderHTMLPreservesOrder(t *testing.T) {
	out := RenderHTML([]string{"B: second", "A: first", "B: again"})

	iB := strings.Index(out, "second")
	iA := strings.Index(out, "first")
	iB2 := strings.Index(out, "again")
	if !(iB < iA && iA < iB2) {
		t.Errorf("cards not in input order: %q", out)
	}
	if got := strings.Count(out, "result-card"); got != 3 {
		t.Errorf("no deduplication expected, got %d cards", got)
	}
}

func TestWriteText(t *testing.T) {
	var b strings.Builder
	WriteText(&b, []string{"Reentrancy: external call before state update", "Locked Ether"})
	out := b.String()

	if !strings.Contains(out, "1. Reentrancy") {
		t.Errorf("first title missing: %q", out)
	}
	if !strings.Contains(out, "external call before state update") {
		t.Errorf("description missing: %q", out)
	}
	if !strings.Contains(out, "2. Locked Ether") {
		t.Errorf("second title missing: %q", out)
	}

	b.Reset()
	WriteText(&b, nil)
	if !strings.Contains(b.String(), "No vulnerabilities") {
		t.Errorf("empty input should print the notice, got %q", b.String())
	}
}
