// Package webui hosts a small local page for submitting contract source to
// the audit backend and viewing the rendered findings.
package webui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/scaudit/scaudit-cli/internal/api"
	"github.com/scaudit/scaudit-cli/internal/findings"
	"github.com/scaudit/scaudit-cli/internal/session"
)

// Server bridges the browser page to the remote audit backend through the
// shared API client, reusing the locally stored session.
type Server struct {
	client     *api.Client
	store      *session.Store
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a web UI server backed by the given client and session store.
func New(client *api.Client, store *session.Store, logger *slog.Logger) *Server {
	s := &Server{
		client: client,
		store:  store,
		logger: logger,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.serveIndex)
	r.Post("/api/detect", s.handleDetect)
	r.Get("/api/theme", s.handleGetTheme)
	r.Post("/api/theme", s.handleSetTheme)

	return r
}

// Router returns the chi router (exposed for tests).
func (s *Server) Router() chi.Router { return s.router }

type detectRequest struct {
	Text      string   `json:"text"`
	Threshold *float64 `json:"threshold"`
}

type detectResponse struct {
	Labels []string  `json:"labels"`
	Probs  []float64 `json:"probs"`
	HTML   string    `json:"html"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "contract source is empty"})
		return
	}

	threshold := 0.5
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	resp, err := s.client.Predict(r.Context(), api.PredictRequest{Text: req.Text, Threshold: threshold})
	if err != nil {
		status := http.StatusBadGateway
		msg := err.Error()
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
			msg = apiErr.Message()
		}
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, detectResponse{
		Labels: resp.Labels,
		Probs:  resp.Probs,
		HTML:   findings.RenderHTML(resp.Labels),
	})
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Load()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": sess.ThemeOrDefault()})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Theme != "light" && req.Theme != "dark" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "theme must be light or dark"})
		return
	}

	sess, err := s.store.Load()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	sess.Theme = req.Theme
	if err := s.store.Save(sess); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// Mirror the preference to the backend when logged in. Failures are
	// logged only; the local save already succeeded.
	if sess.Username != "" {
		if err := s.client.SyncTheme(r.Context(), sess.Username, sess.Theme, sess.Token); err != nil {
			s.logger.Warn("theme sync failed", "username", sess.Username, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"theme": sess.Theme})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

// Start begins listening on the configured port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("scaudit web UI listening on http://%s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
