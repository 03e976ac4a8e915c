package web

import (
	"bytes"
	"codeexplainer/config"
	"codeexplainer/internal/models"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

// Analyzer runs an analysis for one submitted form.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error)
}

// Server serves the analysis form and the JSON API.
type Server struct {
	analyzer     Analyzer
	maxBodyBytes int64
	pages        *template.Template
}

// NewServer creates a new Server.
func NewServer(analyzer Analyzer, cfg config.ServerConfig) *Server {
	return &Server{
		analyzer:     analyzer,
		maxBodyBytes: cfg.MaxBodyBytes,
		pages:        template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.indexHandler)
	mux.HandleFunc("POST /analyze", s.analyzeFormHandler)
	mux.HandleFunc("POST /api/analyze", s.analyzeAPIHandler)
	mux.HandleFunc("GET /health", healthCheckHandler)

	return requestLogger(corsMiddleware(s.limitBody(mux)))
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Starting server on %s...", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// pageData is everything the form page template needs.
type pageData struct {
	Languages []models.Language
	Language  models.Language
	Code      string
	Warning   string
	Error     string
	Result    *models.AnalyzeResponse
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	if data.Languages == nil {
		data.Languages = models.Languages
	}
	if data.Language == "" {
		data.Language = models.Languages[0]
	}

	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "index.html", data); err != nil {
		logrus.Errorf("Error rendering page: %v", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageData{})
}

func (s *Server) analyzeFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", bodyErrorStatus(err))
		return
	}

	req := models.AnalyzeRequest{
		Language: r.FormValue("language"),
		Code:     r.FormValue("code"),
	}
	data := pageData{Code: req.Code}
	if lang, err := models.ParseLanguage(req.Language); err == nil {
		data.Language = lang
	}

	resp, err := s.analyzer.Analyze(r.Context(), req)
	switch {
	case err == nil:
		data.Result = resp
		s.render(w, http.StatusOK, data)
	case errors.Is(err, models.ErrEmptyCode):
		data.Warning = "Please enter some code to analyze."
		s.render(w, http.StatusOK, data)
	case errors.Is(err, models.ErrUnknownLanguage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		requestLog(r).Errorf("Error during analysis: %v", err)
		data.Error = "The AI service could not analyze your code. Please try again later."
		s.render(w, http.StatusBadGateway, data)
	}
}

func (s *Server) analyzeAPIHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, bodyErrorStatus(err), models.ErrorResponse{Error: "Error decoding JSON request"})
		return
	}

	resp, err := s.analyzer.Analyze(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, models.ErrEmptyCode), errors.Is(err, models.ErrUnknownLanguage):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	default:
		requestLog(r).Errorf("Error during analysis: %v", err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: fmt.Sprintf("Error during analysis: %v", err)})
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("Error encoding JSON response: %v", err)
	}
}

func bodyErrorStatus(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
