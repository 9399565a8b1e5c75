package findings

import (
	"html"
	"strings"
)

// RenderHTML renders labels as a sequence of result cards, preserving input
// order. All server-supplied text is escaped before insertion; the detection
// service echoes fragments of untrusted contract source, so nothing from it
// may reach the page as markup. An empty label set yields a single notice
// and no cards.
func RenderHTML(labels []string) string {
	if len(labels) == 0 {
		return `<div class="no-findings">No vulnerabilities detected above the current threshold.</div>`
	}

	var b strings.Builder
	for _, f := range ParseAll(labels) {
		b.WriteString(`<div class="result-card"><div class="result-title">`)
		b.WriteString(html.EscapeString(f.Title))
		b.WriteString(`</div>`)
		if f.Description != "" {
			b.WriteString(`<div class="result-desc">`)
			b.WriteString(html.EscapeString(f.Description))
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
	}
	return b.String()
}
