package planner

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/burndown/roadmap-api/pkg/models"
)

// DefaultPalette colors roadmap bars by schedule position
var DefaultPalette = []string{
	"#2563eb", "#16a34a", "#d97706", "#dc2626", "#7c3aed",
	"#0891b2", "#db2777", "#65a30d", "#ea580c", "#4f46e5",
}

// Horizon is the last date a roadmap may reach. Later dates have no JSON encoding.
var Horizon = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// maxItemWorkdays bounds one item's duration so the float to int conversion stays defined
const maxItemWorkdays = 1 << 24

// Planner builds sequential allocation roadmaps. The zero value is usable.
type Planner struct {
	Now     func() time.Time
	Palette []string
}

// New creates a planner reading today from the system clock
func New(palette []string) *Planner {
	return &Planner{Now: time.Now, Palette: palette}
}

// Build plans the given projects against the team, reading today once
func (pl *Planner) Build(projects []models.Project, members []models.TeamMember) models.Roadmap {
	now := time.Now
	if pl != nil && pl.Now != nil {
		now = pl.Now
	}
	return pl.BuildAt(projects, members, now())
}

// BuildAt plans as if today were the given date
func (pl *Planner) BuildAt(projects []models.Project, members []models.TeamMember, today time.Time) models.Roadmap {
	palette := DefaultPalette
	if pl != nil && len(pl.Palette) > 0 {
		palette = pl.Palette
	}
	return plan(projects, members, today, palette)
}

// Plan schedules projects one after another against the whole team's capacity
func Plan(projects []models.Project, members []models.TeamMember, today time.Time) models.Roadmap {
	return plan(projects, members, today, DefaultPalette)
}

type candidate struct {
	project   models.Project
	remaining float64
	deadline  *time.Time
	startDay  *time.Time
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := Day(*t)
	return &d
}

// less orders by ascending priority, then ascending deadline with missing deadlines last
func less(a, b candidate) bool {
	if a.project.Priority != b.project.Priority {
		return a.project.Priority < b.project.Priority
	}
	switch {
	case a.deadline == nil:
		return false
	case b.deadline == nil:
		return true
	}
	return a.deadline.Before(*b.deadline)
}

func schedulable(projects []models.Project) []candidate {
	out := make([]candidate, 0, len(projects))
	for _, p := range projects {
		remaining := RemainingMandays(p)
		if remaining <= 0 {
			continue
		}
		out = append(out, candidate{
			project:   p,
			remaining: remaining,
			deadline:  dayPtr(p.DeliveryDate),
			startDay:  dayPtr(p.StartDay),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// initialCursor is the earliest explicit start day, or today, never before today
func initialCursor(cands []candidate, today time.Time) time.Time {
	var earliest *time.Time
	for _, c := range cands {
		if c.startDay != nil && (earliest == nil || c.startDay.Before(*earliest)) {
			earliest = c.startDay
		}
	}
	cursor := today
	if earliest != nil {
		cursor = *earliest
	}
	if cursor.Before(today) {
		cursor = today
	}
	return cursor
}

// Classify applies the risk rules in precedence order
func Classify(finish time.Time, deadline *time.Time, required, available float64) models.RiskLevel {
	switch {
	case deadline == nil:
		return models.RiskNoDeadline
	case !finish.After(*deadline) && required <= available:
		return models.RiskOnTrack
	case required > available:
		return models.RiskCapacityGap
	default:
		return models.RiskAtRisk
	}
}

type stepContext struct {
	capacity Capacity
	rate     float64
	palette  []string
}

// step schedules one candidate at or after cursor and returns the advanced cursor
func (sc stepContext) step(cursor time.Time, c candidate, index int) (models.RoadmapItem, time.Time) {
	floor := cursor
	if c.startDay != nil && c.startDay.After(floor) {
		floor = *c.startDay
	}
	start := NextWorkday(floor)

	available := sc.capacity.Baseline
	duration := maxItemWorkdays
	if d := math.Ceil(c.remaining / available); d < maxItemWorkdays {
		duration = int(d)
	}
	if duration < 1 {
		duration = 1
	}
	finish := AddWorkdays(start, duration)

	required := available
	if c.deadline != nil {
		window := WorkdaysDiff(start, *c.deadline)
		if window < 0 {
			window = -window
		}
		if window < 1 {
			window = 1
		}
		required = round2(c.remaining / float64(window))
	}

	item := models.RoadmapItem{
		ProjectID:                 c.project.ID,
		ProjectName:               c.project.Name,
		Priority:                  c.project.Priority,
		DeliveryDate:              c.deadline,
		PlannedMandays:            round2(PlannedMandays(c.project)),
		RemainingMandays:          round2(c.remaining),
		CompletionPercent:         CompletionPercent(c.project),
		EstimatedDurationWorkdays: duration,
		PlannedStart:              start,
		PlannedFinish:             finish,
		AvailableTeamFTE:          available,
		RequiredFTEForDeadline:    required,
		FTEGap:                    round2(available - required),
		RiskLevel:                 Classify(finish, c.deadline, required, available),
		EstimatedBudget:           round2(c.remaining * sc.rate),
	}
	if len(sc.palette) > 0 {
		item.Color = sc.palette[index%len(sc.palette)]
	}
	return item, finish
}

func plan(projects []models.Project, members []models.TeamMember, today time.Time, palette []string) models.Roadmap {
	today = Day(today)
	capacity := TeamCapacity(members)
	sc := stepContext{
		capacity: capacity,
		rate:     AverageDailyRate(members),
		palette:  palette,
	}

	cands := schedulable(projects)
	items := make([]models.RoadmapItem, 0, len(cands))
	cursor := initialCursor(cands, today)
	for i, c := range cands {
		var item models.RoadmapItem
		item, cursor = sc.step(cursor, c, i)
		items = append(items, item)
	}

	return models.Roadmap{
		Items:   items,
		Summary: Summarize(items, capacity, sc.rate),
	}
}

// CheckHorizon reports the first item that would finish after Horizon
func CheckHorizon(rm models.Roadmap) error {
	for _, item := range rm.Items {
		if item.PlannedFinish.After(Horizon) {
			return &models.InvalidInputError{
				Field:  "projects",
				Reason: fmt.Sprintf("project %q would finish after %s", item.ProjectID, Horizon.Format("2006-01-02")),
			}
		}
	}
	return nil
}
