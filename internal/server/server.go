// Package server serves a live preview of a rendered book list over HTTP.
//
// The catalog file is re-read on every request, so edits to the CSV show up
// on the next page load without restarting.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	booklist "github.com/alnah/go-booklist"
	"github.com/alnah/go-booklist/internal/logging"
)

// Sentinel errors for server setup.
var (
	ErrNoCatalog = errors.New("catalog path is required")
	ErrListen    = errors.New("cannot listen")
)

// Server timeouts.
const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// FallbackRow replaces the table body when the catalog cannot be rendered.
const FallbackRow = `<tr><td colspan="6">Error loading book data.</td></tr>`

// fallbackColumns is the header shown around FallbackRow.
var fallbackColumns = []string{
	booklist.ColumnTitle,
	booklist.ColumnAuthor,
	booklist.ColumnThemes,
	booklist.ColumnDescription,
	booklist.ColumnISBN,
	booklist.ColumnTargetAge,
}

// Options configures a Server.
type Options struct {
	CatalogPath string             // CSV or spreadsheet served and rendered
	Renderer    *booklist.Renderer // nil means booklist.NewRenderer()
	CSS         string             // stylesheet inlined in the page and served at /booklist.css
	Title       string             // page title
	Logger      *slog.Logger       // nil means slog.Default()
}

// Server is the preview HTTP server.
type Server struct {
	opts   Options
	router *chi.Mux
	logger *slog.Logger
}

// New creates a Server. The catalog is not read until the first request.
func New(opts Options) (*Server, error) {
	if opts.CatalogPath == "" {
		return nil, ErrNoCatalog
	}
	if opts.Renderer == nil {
		opts.Renderer = booklist.NewRenderer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		opts:   opts,
		router: chi.NewRouter(),
		logger: logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handlePage)
	s.router.Get("/table", s.handleTable)
	s.router.Get("/booklist.csv", s.handleCatalog)
	s.router.Get("/booklist.css", s.handleStyle)
	s.router.Get("/healthz", s.handleHealth)
}

// Handler returns the router for use with httptest or a custom http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %v", ErrListen, addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("preview server listening", "addr", "http://"+ln.Addr().String(), "catalog", s.opts.CatalogPath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("preview server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handlePage serves the full document. A render failure still returns the
// page, with the fallback row in place of the table body.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	fragment, ok := s.renderTable(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
	}
	_, _ = io.WriteString(w, booklist.WrapDocument(fragment, s.opts.CSS, s.opts.Title))
}

// handleTable serves the bare table fragment.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	fragment, ok := s.renderTable(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
	}
	_, _ = io.WriteString(w, fragment)
}

// handleCatalog serves the raw catalog file.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(s.opts.CatalogPath)
	if err != nil {
		logging.FromContext(r.Context(), s.logger).Error("catalog unavailable", "error", err)
		http.Error(w, "catalog unavailable", http.StatusNotFound)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}

	if strings.EqualFold(filepath.Ext(s.opts.CatalogPath), ".csv") || filepath.Ext(s.opts.CatalogPath) == "" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	}
	http.ServeContent(w, r, filepath.Base(s.opts.CatalogPath), info.ModTime(), f)
}

// handleStyle serves the stylesheet.
func (s *Server) handleStyle(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = io.WriteString(w, s.opts.CSS)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// renderTable renders the catalog for one request. On failure it logs
// the error and returns the fallback table.
func (s *Server) renderTable(r *http.Request) (string, bool) {
	result, err := s.opts.Renderer.Render(r.Context(), s.opts.CatalogPath)
	if err != nil {
		logging.FromContext(r.Context(), s.logger).Error("Error populating table",
			"catalog", s.opts.CatalogPath, "error", err)
		return s.fallbackTable(), false
	}
	return result.HTML, true
}

// fallbackTable is the table shell with FallbackRow as its only body row.
func (s *Server) fallbackTable() string {
	var b strings.Builder
	b.WriteString("<table>\n    <thead>\n        <tr>\n")
	for _, name := range fallbackColumns {
		b.WriteString(s.opts.Renderer.RenderHeaderCell(name))
	}
	b.WriteString("        </tr>\n    </thead>\n    <tbody>\n")
	b.WriteString("        " + FallbackRow + "\n")
	b.WriteString("    </tbody>\n</table>")
	return b.String()
}
