package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burndown/roadmap-api/pkg/config"
	"github.com/burndown/roadmap-api/pkg/database"
	"github.com/burndown/roadmap-api/pkg/handlers"
	"github.com/burndown/roadmap-api/pkg/logger"
	"github.com/burndown/roadmap-api/pkg/metrics"
	"github.com/burndown/roadmap-api/pkg/planner"
	"github.com/burndown/roadmap-api/pkg/repository"
)

var r *gin.Engine

func init() {
	cfg, err := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		log.Warn("config file ignored", "error", err)
	}

	db, err := database.Open(database.Options{DatabaseURL: cfg.DatabaseURL, DataPath: cfg.DataPath})
	if err != nil {
		log.Error("failed to open database", "error", err)
		panic(err)
	}

	gin.SetMode(gin.ReleaseMode)
	h := handlers.New(repository.NewGorm(db), planner.New(cfg.Palette), metrics.New(), log)
	r = handlers.NewRouter(h)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
