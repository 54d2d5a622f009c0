package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/burndown/roadmap-api/pkg/database"
	"github.com/burndown/roadmap-api/pkg/models"
)

// Gorm implements the repositories on top of a gorm connection
type Gorm struct {
	db       *gorm.DB
	Projects ProjectRepository
	Members  TeamMemberRepository
}

type projectRepo struct{ db *gorm.DB }

type memberRepo struct{ db *gorm.DB }

// NewGorm wraps db
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{
		db:       db,
		Projects: projectRepo{db: db},
		Members:  memberRepo{db: db},
	}
}

// Ping checks the underlying connection
func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r projectRepo) FindByScopeID(ctx context.Context, scopeID string) ([]models.Project, error) {
	var rows []database.ProjectRecord
	err := r.db.WithContext(ctx).
		Preload("Efforts").
		Where("scope_id = ?", scopeID).
		Order("priority asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, projectFromRecord(row))
	}
	return projects, nil
}

func (r memberRepo) FindByScopeID(ctx context.Context, scopeID string) ([]models.TeamMember, error) {
	var rows []database.TeamMemberRecord
	if err := r.db.WithContext(ctx).Where("scope_id = ?", scopeID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]models.TeamMember, 0, len(rows))
	for _, row := range rows {
		m := models.TeamMember{ID: row.ID, ScopeID: row.ScopeID, Name: row.Name, FTE: row.FTE}
		if row.MDRate != nil {
			m.MDRate = *row.MDRate
		}
		members = append(members, m)
	}
	return members, nil
}

func projectFromRecord(row database.ProjectRecord) models.Project {
	p := models.Project{
		ID:           row.ID,
		ScopeID:      row.ScopeID,
		Name:         row.Name,
		Priority:     row.Priority,
		DeliveryDate: utcDate(row.DeliveryDate),
		StartDay:     utcDate(row.StartDay),
		Roles:        make(map[string]models.RoleEffort, len(row.Efforts)),
	}
	for _, e := range row.Efforts {
		p.Roles[e.Role] = models.RoleEffort{PlannedMandays: e.PlannedMandays, DonePercent: e.DonePercent}
	}
	return p
}

func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// GetScope returns ErrNotFound when the scope does not exist
func (g *Gorm) GetScope(ctx context.Context, scopeID string) (*database.Scope, error) {
	var scope database.Scope
	err := g.db.WithContext(ctx).Where("id = ?", scopeID).First(&scope).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &scope, nil
}

// ReplaceScope swaps a scope's projects and team for the given records in one transaction
func (g *Gorm) ReplaceScope(ctx context.Context, scope database.Scope, projects []models.Project, members []models.TeamMember) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).Create(&scope).Error; err != nil {
			return err
		}

		scopeProjects := tx.Model(&database.ProjectRecord{}).Select("record_id").Where("scope_id = ?", scope.ID)
		if err := tx.Where("project_record_id IN (?)", scopeProjects).Delete(&database.ProjectRoleEffort{}).Error; err != nil {
			return err
		}
		if err := tx.Where("scope_id = ?", scope.ID).Delete(&database.ProjectRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("scope_id = ?", scope.ID).Delete(&database.TeamMemberRecord{}).Error; err != nil {
			return err
		}

		for _, p := range projects {
			rec := database.ProjectRecord{
				ID:           p.ID,
				ScopeID:      scope.ID,
				Name:         p.Name,
				Priority:     p.Priority,
				DeliveryDate: p.DeliveryDate,
				StartDay:     p.StartDay,
			}
			if rec.ID == "" {
				rec.ID = uuid.NewString()
			}
			for _, role := range p.SortedRoles() {
				effort := p.Roles[role]
				rec.Efforts = append(rec.Efforts, database.ProjectRoleEffort{
					Role:           role,
					PlannedMandays: effort.PlannedMandays,
					DonePercent:    effort.DonePercent,
				})
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}

		for _, m := range members {
			rec := database.TeamMemberRecord{ID: m.ID, ScopeID: scope.ID, Name: m.Name, FTE: m.FTE}
			if rec.ID == "" {
				rec.ID = uuid.NewString()
			}
			if m.MDRate != 0 {
				rate := m.MDRate
				rec.MDRate = &rate
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RecordRun adds one plan to today's ledger row using a single-query upsert
func (g *Gorm) RecordRun(ctx context.Context, scopeID string, projects, items, members int) error {
	today := time.Now().Format("2006-01-02")
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "scope_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"run_count":      gorm.Expr("run_count + ?", 1),
			"total_projects": gorm.Expr("total_projects + ?", projects),
			"total_items":    gorm.Expr("total_items + ?", items),
			"total_members":  gorm.Expr("total_members + ?", members),
		}),
	}).Create(&database.RoadmapRun{
		ScopeID:       scopeID,
		Date:          today,
		RunCount:      1,
		TotalProjects: projects,
		TotalItems:    items,
		TotalMembers:  members,
	}).Error
}

// ListRuns returns the most recent ledger rows, newest first
func (g *Gorm) ListRuns(ctx context.Context, scopeID string, limit int) ([]database.RoadmapRun, error) {
	var runs []database.RoadmapRun
	err := g.db.WithContext(ctx).Where("scope_id = ?", scopeID).Order("date desc").Limit(limit).Find(&runs).Error
	return runs, err
}
