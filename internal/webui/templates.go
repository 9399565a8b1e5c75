package webui

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// serveIndex serves the embedded audit page.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}
