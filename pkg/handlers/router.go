package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the root route
const Version = "1.0.0"

// NewRouter registers every route on a fresh engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Burndown Roadmap API",
			"version": Version,
		})
	})
	r.GET("/healthz", h.Health)
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		api.POST("/roadmap", h.PlanJSON)
		api.POST("/roadmap/csv", h.PlanCSV)
		api.POST("/validate", h.ValidateInput)

		scopes := api.Group("/scopes/:scope_id")
		scopes.GET("/roadmap", h.ScopeRoadmap)
		scopes.PUT("/data", h.ReplaceScopeData)
		scopes.GET("/runs", h.GetRuns)
	}

	return r
}
