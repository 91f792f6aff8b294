package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"

	"github.com/karanns19/task-manager/internal/api"
	"github.com/karanns19/task-manager/internal/api/respond"
	"github.com/karanns19/task-manager/internal/auth"
	"github.com/karanns19/task-manager/internal/config"
	"github.com/karanns19/task-manager/internal/database"
	"github.com/karanns19/task-manager/internal/logger"
	"github.com/karanns19/task-manager/internal/monitoring"
	"github.com/karanns19/task-manager/internal/services"
)

func main() {
	startedAt := time.Now()

	// Load configuration. A missing JWT secret is fatal before anything starts.
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.IsDevelopment())
	respond.SetDevelopment(cfg.IsDevelopment())

	// Set up database
	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	tokens := auth.NewManager(cfg)
	userService := services.NewUserService(db, tokens)
	taskService := services.NewTaskService(db)

	// Set up and run the background reminder sweeper
	sweeper, err := monitoring.NewSweeper(db, cfg.ReminderSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.ReminderSchedule).Msg("Invalid reminder schedule")
	}
	go sweeper.Run()

	// Set up router and server
	router := api.NewRouter(cfg, tokens, userService, taskService, db, startedAt)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
