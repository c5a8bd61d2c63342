package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"minitweet/internal/handler"
	"minitweet/internal/metrics"
	authmw "minitweet/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler     *handler.AuthHandler
	PostHandler     *handler.PostHandler
	FollowHandler   *handler.FollowHandler
	TimelineHandler *handler.TimelineHandler

	TokenVerifier  authmw.TokenVerifier
	Metrics        metrics.Recorder
	MetricsHandler http.Handler
	AllowedOrigins []string

	// Logger receives access logs; nil means slog.Default().
	Logger *slog.Logger
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	accessLogger := cfg.Logger
	if accessLogger == nil {
		accessLogger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(accessLogger.With(slog.String("component", "http")).Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(authmw.NewCORSMiddleware(cfg.AllowedOrigins))
	r.Use(authmw.NewMetricsMiddleware(recorder))

	// Public routes - no authentication required
	r.Get("/ping", handler.Ping)
	r.Put("/sign-up", cfg.AuthHandler.SignUp)
	r.Post("/login", cfg.AuthHandler.Login)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.TokenVerifier, recorder))

		r.Put("/tweet", cfg.PostHandler.Create)
		r.Put("/follow", cfg.FollowHandler.Follow)
		r.Delete("/unfollow", cfg.FollowHandler.Unfollow)
		r.Get("/timeline", cfg.TimelineHandler.Get)
	})

	return r
}
