package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/burndown/roadmap-api/pkg/config"
	"github.com/burndown/roadmap-api/pkg/database"
	"github.com/burndown/roadmap-api/pkg/handlers"
	"github.com/burndown/roadmap-api/pkg/logger"
	"github.com/burndown/roadmap-api/pkg/metrics"
	"github.com/burndown/roadmap-api/pkg/planner"
	"github.com/burndown/roadmap-api/pkg/repository"
)

func main() {
	cfg, err := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(database.Options{DatabaseURL: cfg.DatabaseURL, DataPath: cfg.DataPath})
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	h := handlers.New(repository.NewGorm(db), planner.New(cfg.Palette), metrics.New(), log)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.NewRouter(h),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("could not run server", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
