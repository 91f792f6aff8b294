package api

import (
	"database/sql"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/karanns19/task-manager/internal/api/handlers"
	"github.com/karanns19/task-manager/internal/auth"
	"github.com/karanns19/task-manager/internal/config"
	"github.com/karanns19/task-manager/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, tokens *auth.Manager, userService services.UserServiceProvider, taskService services.TaskServiceProvider, db *sql.DB, startedAt time.Time) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(db, startedAt)

	r.Get("/health", healthHandler.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(tokens.Middleware())
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.Get)
				r.Put("/", taskHandler.Update)
				r.Delete("/", taskHandler.Delete)
			})
		})
	})

	return r
}
