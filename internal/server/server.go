// Package server exposes settings and content gap analyses over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cosmolaser/content-gap/internal/analyzer"
	"github.com/cosmolaser/content-gap/internal/report"
	"github.com/cosmolaser/content-gap/internal/settings"
)

// ExportFilename is the attachment name of exported workbooks.
const ExportFilename = "content_gap_analysis.xlsx"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Runner runs an analysis for the given settings.
type Runner interface {
	Run(ctx context.Context, s *settings.Settings) (*analyzer.Result, error)
}

// Server serves the HTTP API. Analyses run one at a time.
type Server struct {
	editor *settings.Editor
	runner Runner
	log    *zap.Logger

	mu      sync.Mutex // guards editor
	analyze sync.Mutex // serializes analyses
}

// New creates a Server over the shared settings editor.
func New(editor *settings.Editor, runner Runner) *Server {
	return &Server{
		editor: editor,
		runner: runner,
		log:    zap.L().With(zap.String("component", "server")),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", s.getSettings)
		r.Post("/settings", s.postSettings)
		r.Post("/analyze", s.postAnalyze)
		r.Post("/export", s.postExport)
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server", zap.Int("port", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server: listen")
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server: shutdown")
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.current())
}

func (s *Server) postSettings(w http.ResponseWriter, r *http.Request) {
	var in settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	if strings.TrimSpace(in.TargetDomain) == "" {
		in.TargetDomain = s.editor.Settings().TargetDomain
	}
	if in.Competitors == nil {
		in.Competitors = []string{}
	}
	if in.TreatmentKeywords == nil {
		in.TreatmentKeywords = []string{}
	}
	err := s.editor.Replace(in)
	out := s.editor.Settings().Clone()
	s.mu.Unlock()

	if err != nil {
		s.log.Error("saving settings failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "settings": out})
}

func (s *Server) postAnalyze(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) postExport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, res); err != nil {
		s.log.Error("export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to export results")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// run decodes optional settings from the body, validates them and runs the
// analysis. It writes the error response itself and reports whether to go on.
func (s *Server) run(w http.ResponseWriter, r *http.Request) (*analyzer.Result, bool) {
	st := s.current()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, st); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return nil, false
		}
	}

	if strings.TrimSpace(st.TargetDomain) == "" || len(st.Competitors) == 0 {
		writeError(w, http.StatusBadRequest, "target domain and at least one competitor are required")
		return nil, false
	}

	s.analyze.Lock()
	defer s.analyze.Unlock()

	res, err := s.runner.Run(r.Context(), st)
	if err != nil {
		s.log.Error("analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return res, true
}

func (s *Server) current() *settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Settings().Clone()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
