package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/catalogue-browser/internal/catalog"
	"github.com/terra-clan/catalogue-browser/internal/config"
	"github.com/terra-clan/catalogue-browser/internal/session"
)

// Server represents the HTTP server
type Server struct {
	config   config.ServerConfig
	router   *chi.Mux
	catalog  *catalog.Store
	sessions *session.Manager
	cookies  *SessionMiddleware
}

// NewServer creates a new server
func NewServer(cfg config.ServerConfig, store *catalog.Store, sessions *session.Manager) *Server {
	s := &Server{
		config:   cfg,
		catalog:  store,
		sessions: sessions,
		cookies:  NewSessionMiddleware(sessions),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// Browser pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Use(s.cookies.Attach)

		r.Get("/", s.handlePage)
		r.Post("/courses/{id}", s.handlePageSelectCourse)
		r.Post("/modules/{index}", s.handlePageSelectModule)
		r.Post("/lessons/{index}", s.handlePageSelectLesson)
		r.Post("/back/{level}", s.handlePageBack)
	})

	// Live search; no timeout middleware on a long-lived connection
	r.With(s.cookies.Attach).Get("/ws/search", s.handleSearchWS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", s.handleSearchCourses)
			r.Get("/{id}", s.handleGetCourse)
		})

		r.Route("/session", func(r chi.Router) {
			r.Use(s.cookies.Attach)
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/search", s.handleSessionSearch)
			r.Post("/course", s.handleSessionSelectCourse)
			r.Post("/module", s.handleSessionSelectModule)
			r.Post("/lesson", s.handleSessionSelectLesson)
			r.Post("/back", s.handleSessionBack)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
