// Package httpapi exposes invoice generation over HTTP.
//
// The API is stateless: each request carries a full manifest (the same shape
// as the TOML manifest, as JSON) and receives the rendered PDF back. Nothing
// is stored between requests.
package httpapi

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/billforge/billforge/pkg/assemble"
	"github.com/billforge/billforge/pkg/errors"
	"github.com/billforge/billforge/pkg/manifest"
	"github.com/billforge/billforge/pkg/render"
	"github.com/billforge/billforge/pkg/render/pdf"
)

// maxBodyBytes caps request bodies; manifests are small.
const maxBodyBytes = 1 << 20

// Server handles invoice generation requests.
type Server struct {
	logger  *charmlog.Logger
	gateway render.Gateway
}

// Option configures the server.
type Option func(*Server)

// WithGateway overrides the rendering gateway (used by tests).
func WithGateway(g render.Gateway) Option {
	return func(s *Server) { s.gateway = g }
}

// New creates the server with its routes mounted on a chi router.
func New(logger *charmlog.Logger, opts ...Option) http.Handler {
	s := &Server{logger: logger, gateway: pdf.New()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Get("/healthz", s.handleHealthz)
	r.Post("/v1/invoices", s.handleGenerate)
	return r
}

// logRequests logs one line per request with method, path, status and
// elapsed time.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// handleGenerate renders a PDF invoice from the JSON manifest in the request
// body and streams it back.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var m manifest.Manifest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&m); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body"))
		return
	}
	if err := m.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := m.Document()
	if err != nil {
		s.writeError(w, err)
		return
	}

	dir, err := os.MkdirTemp("", "billforge")
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "create temp dir"))
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "invoice.pdf")
	req := assemble.Request(doc, path, m.Metadata(), render.Geometry{})
	if err := s.gateway.Build(r.Context(), req); err != nil {
		s.writeError(w, err)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "read rendered artifact"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invoice.pdf"`)
	_, _ = w.Write(data)
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// writeError maps structured error codes to HTTP statuses: validation and
// input errors are the caller's fault (400), everything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidManifest,
		errors.ErrCodeInvalidAmount, errors.ErrCodeInvalidAlignment,
		errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:  string(errors.GetCode(err)),
		Error: errors.UserMessage(err),
	})
}
