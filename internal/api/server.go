// Package api exposes the HTTP interface for the report service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/serplens/serpintel/internal/config"
	"github.com/serplens/serpintel/internal/intel"
	"github.com/serplens/serpintel/internal/market"
	"github.com/serplens/serpintel/internal/metrics"
	"github.com/serplens/serpintel/internal/serpapi"
)

// Reporter produces the two report types. The intel service satisfies it;
// tests substitute stubs.
type Reporter interface {
	SEOOpportunity(ctx context.Context, keyword string, m market.Code) (*intel.SEOReport, error)
	AdIntel(ctx context.Context, keyword string, m market.Code) (*intel.AdReport, error)
}

// Server wires HTTP handlers to the report service.
type Server struct {
	router  chi.Router
	service Reporter
	cfg     config.Config
	log     *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(service Reporter, cfg config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		service: service,
		cfg:     cfg,
		log:     log,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoverMiddleware(log))
	r.Use(metrics.Middleware)
	r.Use(timeoutMiddleware(cfg.ServerTimeout()))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		if cfg.Auth.Enabled {
			r.Use(apiKeyMiddleware(cfg.Auth.APIKey))
		}
		r.Post("/seo/opportunity", s.seoOpportunity)
		r.Post("/ads/intel", s.adIntel)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	// Stateless service: ready as soon as it can serve traffic.
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type reportRequest struct {
	Keyword string `json:"keyword"`
	Market  string `json:"market"`
}

func (s *Server) seoOpportunity(w http.ResponseWriter, r *http.Request) {
	req, m, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	report, err := s.service.SEOOpportunity(r.Context(), req.Keyword, m)
	if err != nil {
		s.writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) adIntel(w http.ResponseWriter, r *http.Request) {
	req, m, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	report, err := s.service.AdIntel(r.Context(), req.Keyword, m)
	if err != nil {
		s.writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (reportRequest, market.Code, bool) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return reportRequest{}, "", false
	}
	raw := req.Market
	if raw == "" {
		raw = s.cfg.Search.DefaultMarket
	}
	return req, market.Parse(raw), true
}

func (s *Server) writeReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, intel.ErrEmptyKeyword):
		writeError(w, http.StatusBadRequest, intel.ErrEmptyKeyword.Error())
	case errors.Is(err, serpapi.ErrProvider):
		writeError(w, http.StatusBadGateway, "search provider unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "upstream timeout")
	default:
		s.log.Error("report failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("panic", rec))
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

func apiKeyMiddleware(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				key = r.URL.Query().Get("api_key")
			}
			if key != expected {
				writeError(w, http.StatusForbidden, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type requestIDKey struct{}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
