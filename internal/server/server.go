package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/WeddingBot_Go/internal/database"
	"github.com/osse101/WeddingBot_Go/internal/eventlog"
	"github.com/osse101/WeddingBot_Go/internal/handler"
	"github.com/osse101/WeddingBot_Go/internal/logger"
	"github.com/osse101/WeddingBot_Go/internal/lottery"
	"github.com/osse101/WeddingBot_Go/internal/metrics"
	"github.com/osse101/WeddingBot_Go/internal/sse"
)

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	lotteryService lottery.Service
	sseHub         *sse.Hub
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, schema handler.SchemaVersionFunc, lotteryService lottery.Service, eventlogService eventlog.Service, sseHub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool, lotteryService))
	r.Get("/version", handler.HandleVersion(schema))
	r.Handle("/metrics", promhttp.Handler())

	lotteryHandler := handler.NewLotteryHandler(lotteryService)
	adminEventsHandler := handler.NewAdminEventsHandler(eventlogService)
	adminMetricsHandler := handler.NewAdminMetricsHandler(sseHub)

	r.Route(APIPrefix, func(r chi.Router) {
		// Push channel for display screens; the current state is sent on connect
		r.Get("/events", sse.Handler(sseHub, lotteryService.GetState))

		r.Route("/lottery", func(r chi.Router) {
			r.Get("/state", lotteryHandler.HandleGetState)

			r.Post("/control", lotteryHandler.HandleUpdateControl)
			r.Put("/control/reset", lotteryHandler.HandleReset)

			r.Post("/draw", lotteryHandler.HandleDraw)

			r.Get("/history", lotteryHandler.HandleGetHistory)
			r.Delete("/history", lotteryHandler.HandleDeleteHistory)

			r.Get("/eligible", lotteryHandler.HandleGetEligible)
			r.Get("/photos", lotteryHandler.HandleGetPhotos)
			r.Get("/exclusions", lotteryHandler.HandleGetExclusions)

			r.Get("/track", lotteryHandler.HandleGetTrack)
			r.Put("/track", lotteryHandler.HandleUpdateTrack)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/events", adminEventsHandler.HandleGetEvents)
			r.Get("/metrics", adminMetricsHandler.HandleGetMetrics)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool:         dbPool,
		lotteryService: lotteryService,
		sseHub:         sseHub,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps the event stream working behind the logger
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
