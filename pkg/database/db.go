package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Scope represents the scopes table
type Scope struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectRecord represents the projects table. Project IDs are unique per scope only.
type ProjectRecord struct {
	RecordID     uint                `gorm:"primaryKey" json:"-"`
	ScopeID      string              `gorm:"uniqueIndex:idx_scope_project,priority:1;not null" json:"scope_id"`
	ID           string              `gorm:"uniqueIndex:idx_scope_project,priority:2;not null" json:"id"`
	Name         string              `gorm:"not null" json:"name"`
	Priority     int                 `gorm:"default:0" json:"priority"`
	DeliveryDate *time.Time          `json:"delivery_date"`
	StartDay     *time.Time          `json:"start_day"`
	Efforts      []ProjectRoleEffort `gorm:"foreignKey:ProjectRecordID;references:RecordID;constraint:OnDelete:CASCADE" json:"efforts"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// TableName keeps the source table name
func (ProjectRecord) TableName() string { return "projects" }

// ProjectRoleEffort represents one <role>_mandays / <role>_done pair of a project
type ProjectRoleEffort struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	ProjectRecordID uint    `gorm:"uniqueIndex:idx_project_role;not null" json:"-"`
	Role            string  `gorm:"uniqueIndex:idx_project_role;not null" json:"role"`
	PlannedMandays  float64 `gorm:"default:0" json:"planned_mandays"`
	DonePercent     float64 `gorm:"default:0" json:"done_percent"`
}

// TeamMemberRecord represents the team_members table. Member IDs are unique per scope only.
type TeamMemberRecord struct {
	RecordID  uint      `gorm:"primaryKey" json:"-"`
	ScopeID   string    `gorm:"uniqueIndex:idx_scope_member,priority:1;not null" json:"scope_id"`
	ID        string    `gorm:"uniqueIndex:idx_scope_member,priority:2;not null" json:"id"`
	Name      string    `json:"name"`
	FTE       float64   `gorm:"column:fte;default:0" json:"fte"`
	MDRate    *float64  `gorm:"column:md_rate" json:"md_rate"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the source table name
func (TeamMemberRecord) TableName() string { return "team_members" }

// RoadmapRun represents the roadmap_runs table, one row per scope and day
type RoadmapRun struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ScopeID       string `gorm:"uniqueIndex:idx_scope_date;not null" json:"scope_id"`
	Date          string `gorm:"uniqueIndex:idx_scope_date;not null" json:"date"`
	RunCount      int    `gorm:"default:0" json:"run_count"`
	TotalProjects int    `gorm:"default:0" json:"total_projects"`
	TotalItems    int    `gorm:"default:0" json:"total_items"`
	TotalMembers  int    `gorm:"default:0" json:"total_members"`
}

// Options selects the backing store
type Options struct {
	DatabaseURL string
	DataPath    string
	Silent      bool
}

// Open connects to Postgres when a URL is given, otherwise to a SQLite file,
// and migrates the schema
func Open(opts Options) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if opts.Silent {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	var db *gorm.DB
	var err error
	if opts.DatabaseURL != "" {
		gormCfg.PrepareStmt = false
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  opts.DatabaseURL,
			PreferSimpleProtocol: true,
		}), gormCfg)
	} else {
		dbPath := opts.DataPath
		if dbPath == "" {
			dbPath = "roadmap.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&Scope{}, &ProjectRecord{}, &ProjectRoleEffort{}, &TeamMemberRecord{}, &RoadmapRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}
