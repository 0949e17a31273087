package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Rhman101/fcc0404/internal/api"
	"github.com/Rhman101/fcc0404/internal/config"
	"github.com/Rhman101/fcc0404/internal/domain"
	"github.com/Rhman101/fcc0404/internal/persistence/memory"
	persistence "github.com/Rhman101/fcc0404/internal/persistence/postgres"
	httptransport "github.com/Rhman101/fcc0404/internal/transport/http"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var users domain.UserRepository
	var exercises domain.ExerciseRepository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		users = persistence.NewUserRepository(pool)
		exercises = persistence.NewExerciseRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, records will not survive a restart")
		users = memory.NewUserRepository()
		exercises = memory.NewExerciseRepository()
	}

	service := domain.NewService(users, exercises)
	handler := api.NewHandler(service, logger)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      ":" + cfg.Port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, httptransport.Logging(logger, httptransport.CORS(router)))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("exercise tracker listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
