package repository

import (
	"context"
	"errors"

	"github.com/burndown/roadmap-api/pkg/database"
	"github.com/burndown/roadmap-api/pkg/models"
)

// ErrNotFound indicates an entity was not located.
var ErrNotFound = errors.New("repository: not found")

// ProjectRepository lists a scope's projects as plain records.
type ProjectRepository interface {
	FindByScopeID(ctx context.Context, scopeID string) ([]models.Project, error)
}

// TeamMemberRepository lists a scope's team as plain records.
type TeamMemberRepository interface {
	FindByScopeID(ctx context.Context, scopeID string) ([]models.TeamMember, error)
}

// ScopeRepository manages scopes and the data planned for them.
type ScopeRepository interface {
	GetScope(ctx context.Context, scopeID string) (*database.Scope, error)
	ReplaceScope(ctx context.Context, scope database.Scope, projects []models.Project, members []models.TeamMember) error
}

// RunRepository keeps the daily roadmap run ledger.
type RunRepository interface {
	RecordRun(ctx context.Context, scopeID string, projects, items, members int) error
	ListRuns(ctx context.Context, scopeID string, limit int) ([]database.RoadmapRun, error)
}
