// Package findings turns the detection service's label strings into
// terminal and HTML output. Labels follow the convention
// "<title>: <description>"; everything after the first colon is the
// description, so colons inside the description survive intact.
package findings

import (
	"fmt"
	"io"
	"strings"
)

// Finding is one vulnerability label split into its display parts.
type Finding struct {
	Title       string
	Description string
}

// Parse splits a label at the first colon. A label without a colon has the
// whole trimmed string as title and an empty description.
func Parse(label string) Finding {
	title, desc, found := strings.Cut(label, ":")
	if !found {
		return Finding{Title: strings.TrimSpace(label)}
	}
	return Finding{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(desc),
	}
}

// ParseAll parses labels in input order.
func ParseAll(labels []string) []Finding {
	out := make([]Finding, len(labels))
	for i, l := range labels {
		out[i] = Parse(l)
	}
	return out
}

// WriteText renders findings as plain text for the terminal.
func WriteText(w io.Writer, labels []string) {
	if len(labels) == 0 {
		fmt.Fprintln(w, "No vulnerabilities detected above the current threshold.")
		return
	}
	for i, f := range ParseAll(labels) {
		fmt.Fprintf(w, "%d. %s\n", i+1, f.Title)
		if f.Description != "" {
			fmt.Fprintf(w, "   %s\n", f.Description)
		}
	}
}
