package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/burndown/roadmap-api/pkg/database"
	"github.com/burndown/roadmap-api/pkg/metrics"
	"github.com/burndown/roadmap-api/pkg/models"
	"github.com/burndown/roadmap-api/pkg/planner"
	"github.com/burndown/roadmap-api/pkg/repository"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Projects repository.ProjectRepository
	Members  repository.TeamMemberRepository
	Scopes   repository.ScopeRepository
	Runs     repository.RunRepository
	Planner  *planner.Planner
	Metrics  *metrics.Metrics
	Log      *slog.Logger
	Ping     func(ctx context.Context) error
}

// New wires a Handler to a gorm-backed repository
func New(repo *repository.Gorm, pl *planner.Planner, m *metrics.Metrics, log *slog.Logger) *Handler {
	return &Handler{
		Projects: repo.Projects,
		Members:  repo.Members,
		Scopes:   repo,
		Runs:     repo,
		Planner:  pl,
		Metrics:  m,
		Log:      log,
		Ping:     repo.Ping,
	}
}

// build plans as of today, or as of the planner's clock when today is nil
func (h *Handler) build(projects []models.Project, members []models.TeamMember, today *time.Time) models.Roadmap {
	if today != nil {
		return h.Planner.BuildAt(projects, members, *today)
	}
	return h.Planner.Build(projects, members)
}

// plan runs the planner and reports the run to metrics and logs.
// It fails only when the schedule would run past planner.Horizon.
func (h *Handler) plan(source string, projects []models.Project, members []models.TeamMember, today *time.Time) (models.Roadmap, error) {
	started := time.Now()
	rm := h.build(projects, members, today)
	if err := planner.CheckHorizon(rm); err != nil {
		h.Log.Warn("roadmap rejected", "source", source, "projects", len(projects), "error", err)
		return models.Roadmap{}, err
	}
	h.Metrics.ObservePlan(source, rm, time.Since(started))

	if rm.Summary.FallbackFTEUsed {
		h.Log.Warn("no team capacity data, assuming 1 FTE",
			"source", source,
			"members", len(members),
			"items", len(rm.Items))
	}
	h.Log.Debug("roadmap planned",
		"source", source,
		"projects", len(projects),
		"items", len(rm.Items),
		"duration", time.Since(started))
	return rm, nil
}

// Health reports whether the database is reachable
func (h *Handler) Health(c *gin.Context) {
	if h.Ping != nil {
		if err := h.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PlanJSON plans a roadmap from inline projects and team members
func (h *Handler) PlanJSON(c *gin.Context) {
	var input models.RoadmapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rm, err := h.plan("inline", input.Projects, input.TeamMembers, input.Today)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rm)
}

// ScopeRoadmap loads a scope's projects and team and plans them
func (h *Handler) ScopeRoadmap(c *gin.Context) {
	ctx := c.Request.Context()
	scopeID := c.Param("scope_id")

	if _, err := h.Scopes.GetScope(ctx, scopeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scope not found"})
			return
		}
		h.Log.Error("failed to load scope", "scope_id", scopeID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load scope"})
		return
	}

	projects, err := h.Projects.FindByScopeID(ctx, scopeID)
	if err != nil {
		h.Log.Error("failed to load projects", "scope_id", scopeID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load projects"})
		return
	}
	members, err := h.Members.FindByScopeID(ctx, scopeID)
	if err != nil {
		h.Log.Error("failed to load team", "scope_id", scopeID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load team members"})
		return
	}

	var today *time.Time
	if q := c.Query("today"); q != "" {
		if today = models.ParseDate(q); today == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "today must be a date (YYYY-MM-DD)"})
			return
		}
	}

	rm, err := h.plan("scope", projects, members, today)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	h.recordRun(c, scopeID, len(projects), len(rm.Items), len(members))

	c.JSON(http.StatusOK, rm)
}

// recordRun adds the plan to the scope's run ledger. Failures are logged, not returned.
func (h *Handler) recordRun(c *gin.Context, scopeID string, projects, items, members int) {
	if err := h.Runs.RecordRun(c.Request.Context(), scopeID, projects, items, members); err != nil {
		h.Log.Warn("failed to record roadmap run", "scope_id", scopeID, "error", err)
	}
}

// ReplaceScopeData stores the posted projects and team as the scope's data
func (h *Handler) ReplaceScopeData(c *gin.Context) {
	var req struct {
		Name        string              `json:"name"`
		Projects    []models.Project    `json:"projects"`
		TeamMembers []models.TeamMember `json:"team_members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := models.RoadmapInput{Projects: req.Projects, TeamMembers: req.TeamMembers}
	if err := models.Validate(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := planner.CheckHorizon(h.build(req.Projects, req.TeamMembers, nil)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := database.Scope{ID: c.Param("scope_id"), Name: req.Name}
	if err := h.Scopes.ReplaceScope(c.Request.Context(), scope, req.Projects, req.TeamMembers); err != nil {
		h.Log.Error("failed to replace scope data", "scope_id", scope.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store scope data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scope_id":     scope.ID,
		"projects":     len(req.Projects),
		"team_members": len(req.TeamMembers),
	})
}
