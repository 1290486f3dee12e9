package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/23bam037-tech/HITHESH-P-H/internal/events"
	"github.com/23bam037-tech/HITHESH-P-H/internal/logging"
	"github.com/23bam037-tech/HITHESH-P-H/internal/server/ratelimit"
	"github.com/23bam037-tech/HITHESH-P-H/internal/session"
)

// PDFRenderer turns the print document into a PDF
type PDFRenderer interface {
	PDF(ctx context.Context, html string) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	sessions    *session.Store
	broker      *events.Broker
	renderer    PDFRenderer
	rateLimiter *ratelimit.Limiter
	logger      *slog.Logger
	heartbeat   time.Duration
}

// Config holds server configuration
type Config struct {
	Port     int
	Sessions *session.Store
	Broker   *events.Broker
	// Renderer is optional; without it print requests only return HTML
	Renderer  PDFRenderer
	RateLimit *ratelimit.Config
	Logger    *slog.Logger
	// Heartbeat is the SSE keep-alive interval
	Heartbeat time.Duration
}

// New creates a new server instance
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Broker == nil {
		cfg.Broker = events.NewBroker(0)
	}
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = 15 * time.Second
	}

	s := &Server{
		sessions:    cfg.Sessions,
		broker:      cfg.Broker,
		renderer:    cfg.Renderer,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		logger:      cfg.Logger,
		heartbeat:   cfg.Heartbeat,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Session lifecycle
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /sessions/{id}/events", s.handleEvents)

	// Profile and assessment
	mux.HandleFunc("PUT /sessions/{id}/profile", s.handleUpdateProfile)
	mux.HandleFunc("POST /sessions/{id}/assessment", s.handleStartAssessment)
	mux.HandleFunc("PUT /sessions/{id}/answers/{question_id}", s.handleRecordAnswer)
	mux.HandleFunc("POST /sessions/{id}/assessment/submit", s.handleSubmitAssessment)

	// Dashboard
	mux.HandleFunc("POST /sessions/{id}/dashboard", s.handleDashboard)
	mux.HandleFunc("POST /sessions/{id}/careers/select", s.handleSelectCareer)
	mux.HandleFunc("POST /sessions/{id}/analysis/retry", s.handleRetryAnalysis)
	mux.HandleFunc("POST /sessions/{id}/view", s.handleNavigate)

	// Resume
	mux.HandleFunc("PUT /sessions/{id}/resume", s.handleSetResume)
	mux.HandleFunc("POST /sessions/{id}/resume/upload", s.handleUploadResume)
	mux.HandleFunc("POST /sessions/{id}/resume/analyze", s.handleAnalyzeResume)
	mux.HandleFunc("POST /sessions/{id}/resume/optimize", s.handleOptimizeResume)
	mux.HandleFunc("POST /sessions/{id}/resume/mode", s.handleResumeMode)
	mux.HandleFunc("POST /sessions/{id}/resume/copy", s.handleCopyResume)
	mux.HandleFunc("GET /sessions/{id}/resume/print", s.handlePrintResume)

	// Assistant
	mux.HandleFunc("POST /sessions/{id}/chat", s.handleChat)

	s.handler = s.withRequestID(s.withRecover(s.withLogging(s.withCORS(s.withRateLimit(mux)))))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for grounded generation
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close stops the rate limiter and ends every session
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.sessions != nil {
		s.sessions.Close()
	}
}

// responseWriter records the status code for logging
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush lets SSE responses through the logging middleware
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// withRequestID tags every request with an id and echoes it in X-Request-ID
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), requestID)))
	})
}

// withRecover turns handler panics into 500 responses
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.ErrorContext(r.Context(), "panic recovered", "error", rec, "path", r.URL.Path)
				s.errorResponse(w, http.StatusInternalServerError, "unexpected server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case rw.statusCode >= 500:
			s.logger.ErrorContext(r.Context(), "request failed with server error", attrs...)
		case rw.statusCode >= 400:
			s.logger.WarnContext(r.Context(), "request failed with client error", attrs...)
		default:
			s.logger.InfoContext(r.Context(), "request completed", attrs...)
		}
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failResponse maps err to its status and writes it
func (s *Server) failResponse(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.WarnContext(r.Context(), "rate limit exceeded", "path", r.URL.Path, "limit", info.Limit)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
