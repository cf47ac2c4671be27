// Package server exposes triangle rendering over HTTP.
//
// Routes:
//
//	GET /healthz                 liveness probe
//	GET /stats                   event counters (JSON)
//	GET /triangle?k=4&n=8        triangle as JSON
//	GET /triangle.png?k=4&n=8    PNG (also .svg, .dot, .json)
//
// Query parameters: k, n (default from config), highlight (value),
// diagonal (index) and diagonals ("j:color,..."). Invalid parameters
// answer 400 with {"code","message"}; render failures answer 500.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/tompkins/pkg/config"
	tperrors "github.com/matzehuels/tompkins/pkg/errors"
	"github.com/matzehuels/tompkins/pkg/observability"
	"github.com/matzehuels/tompkins/pkg/pipeline"
	"github.com/matzehuels/tompkins/pkg/render"
)

// RequestIDHeader carries the per-request ID.
const RequestIDHeader = "X-Request-ID"

const shutdownTimeout = 10 * time.Second

// Server serves rendered triangles.
type Server struct {
	runner *pipeline.Runner
	cfg    config.Config
	opts   render.Options
	ttl    time.Duration
	logger *log.Logger
	stats  *observability.Stats
	router chi.Router
}

// New creates a server. The configuration is validated up front so a bad
// render section fails at startup rather than per request.
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) (*Server, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{runner: runner, cfg: cfg, opts: opts, ttl: ttl, logger: logger, stats: observability.NewStats()}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.stats.Snapshot())
	})
	r.Get("/triangle", s.handleTriangle(render.FormatJSON))
	r.Get("/triangle.{format}", func(w http.ResponseWriter, req *http.Request) {
		s.handleTriangle(chi.URLParam(req, "format"))(w, req)
	})
	return r
}

// Stats returns the counters served on /stats. They only see pipeline and
// cache events once registered with [observability.Stats.Register].
func (s *Server) Stats() *observability.Stats { return s.stats }

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleTriangle(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := render.ValidateFormat(format); err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		opts, err := s.parseQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		opts.Formats = []string{format}

		res, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			status := http.StatusInternalServerError
			if tperrors.IsInput(err) {
				status = http.StatusBadRequest
			}
			s.logger.Warn("render failed", "id", requestIDFrom(r.Context()), "err", err)
			writeError(w, status, err)
			return
		}

		w.Header().Set("Content-Type", render.ContentTypes[format])
		w.Header().Set("X-Highlighted", strconv.Itoa(res.Highlighted))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write(res.Artifacts[format])
	}
}

func (s *Server) parseQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		K:              s.cfg.K,
		N:              s.cfg.N,
		MaxRows:        s.cfg.ServerMaxRows(),
		DiagonalColors: q.Get("diagonals"),
		Render:         s.opts,
		CacheTTL:       s.ttl,
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"k", &opts.K},
		{"n", &opts.N},
	} {
		if v := q.Get(p.name); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				return opts, tperrors.New(tperrors.ErrCodeInvalidParameter, "%s must be an integer, got %q", p.name, v)
			}
			*p.dst = i
		}
	}

	if v := q.Get("highlight"); v != "" {
		h, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, tperrors.New(tperrors.ErrCodeInvalidParameter, "highlight must be a non-negative integer, got %q", v)
		}
		opts.Highlight = &h
	}
	if v := q.Get("diagonal"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return opts, tperrors.New(tperrors.ErrCodeInvalidParameter, "diagonal must be an integer, got %q", v)
		}
		opts.Diagonal = &d
	}
	return opts, nil
}

type errorBody struct {
	Code    tperrors.Code `json:"code"`
	Message string        `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := tperrors.GetCode(err)
	if code == "" {
		code = tperrors.ErrCodeInternal
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: code, Message: tperrors.UserMessage(err)})
}

type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns a UUID to each request unless the client sent one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, ww.Status(), elapsed)

		s.logger.Info("request",
			"id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Millisecond))
	})
}
