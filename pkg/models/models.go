package models

import (
	"fmt"
	"sort"
	"time"
)

// TeamMember represents a person contributing capacity to a scope
type TeamMember struct {
	ID      string  `json:"id"`
	ScopeID string  `json:"scope_id,omitempty"`
	Name    string  `json:"name"`
	FTE     float64 `json:"fte"`
	MDRate  float64 `json:"md_rate"`
}

// RoleEffort is the planned effort and completion for one role on a project
type RoleEffort struct {
	PlannedMandays float64 `json:"planned_mandays"`
	DonePercent    float64 `json:"done_percent"`
}

// Project represents a deliverable competing for the team's capacity
type Project struct {
	ID           string                `json:"id"`
	ScopeID      string                `json:"scope_id,omitempty"`
	Name         string                `json:"name"`
	Priority     int                   `json:"priority"`
	DeliveryDate *time.Time            `json:"delivery_date,omitempty"`
	StartDay     *time.Time            `json:"start_day,omitempty"`
	Roles        map[string]RoleEffort `json:"roles"`
}

// SortedRoles returns the project's role keys in ascending order
func (p Project) SortedRoles() []string {
	keys := make([]string, 0, len(p.Roles))
	for k := range p.Roles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RiskLevel classifies a scheduled project against its deadline
type RiskLevel string

const (
	RiskOnTrack     RiskLevel = "on_track"
	RiskAtRisk      RiskLevel = "at_risk"
	RiskCapacityGap RiskLevel = "capacity_gap"
	RiskNoDeadline  RiskLevel = "no_deadline"
)

// RiskLevels lists every level in reporting order
var RiskLevels = []RiskLevel{RiskOnTrack, RiskAtRisk, RiskCapacityGap, RiskNoDeadline}

// RoadmapItem is one project's scheduled window
type RoadmapItem struct {
	ProjectID                 string     `json:"project_id"`
	ProjectName               string     `json:"project_name"`
	Priority                  int        `json:"priority"`
	DeliveryDate              *time.Time `json:"delivery_date"`
	PlannedMandays            float64    `json:"planned_mandays"`
	RemainingMandays          float64    `json:"remaining_mandays"`
	CompletionPercent         float64    `json:"completion_percent"`
	EstimatedDurationWorkdays int        `json:"estimated_duration_workdays"`
	PlannedStart              time.Time  `json:"planned_start"`
	PlannedFinish             time.Time  `json:"planned_finish"`
	AvailableTeamFTE          float64    `json:"available_team_fte"`
	RequiredFTEForDeadline    float64    `json:"required_fte_for_deadline"`
	FTEGap                    float64    `json:"fte_gap"`
	RiskLevel                 RiskLevel  `json:"risk_level"`
	EstimatedBudget           float64    `json:"estimated_budget"`
	Color                     string     `json:"color"`
}

// RoadmapSummary folds a roadmap into scope-wide totals
type RoadmapSummary struct {
	TeamFTE               float64           `json:"team_fte"`
	RawTeamFTE            float64           `json:"raw_team_fte"`
	FallbackFTEUsed       bool              `json:"fallback_fte_used"`
	AverageDailyRate      float64           `json:"average_daily_rate"`
	ItemCount             int               `json:"item_count"`
	TotalRemainingMandays float64           `json:"total_remaining_mandays"`
	TotalDurationWorkdays int               `json:"total_duration_workdays"`
	TotalBudget           float64           `json:"total_budget"`
	RoadmapStart          *time.Time        `json:"roadmap_start"`
	RoadmapEnd            *time.Time        `json:"roadmap_end"`
	RiskCounts            map[RiskLevel]int `json:"risk_counts"`
}

// Roadmap is the result of one planner invocation
type Roadmap struct {
	Items   []RoadmapItem  `json:"items"`
	Summary RoadmapSummary `json:"summary"`
}

// RoadmapInput is the payload for inline planning
type RoadmapInput struct {
	Projects    []Project    `json:"projects"`
	TeamMembers []TeamMember `json:"team_members"`
	Today       *time.Time   `json:"today,omitempty"`
}

// InvalidInputError reports a field rejected by strict validation
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}
