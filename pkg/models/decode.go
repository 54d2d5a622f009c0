package models

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	// MandaysSuffix marks a planned-effort field for a role, e.g. "fe_mandays"
	MandaysSuffix = "_mandays"
	// DoneSuffix marks the completion percentage paired with a role, e.g. "fe_done"
	DoneSuffix = "_done"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate parses a calendar date, returning nil for empty or unparsable input.
// The result is truncated to midnight UTC.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// ParseNumber converts a JSON number or numeric string to float64.
func ParseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ParsePriority reads a priority rank. Fractions truncate toward zero and values
// beyond the 32-bit range clamp to its bounds so the rank is the same on every platform.
func ParsePriority(v any) (int, bool) {
	f, ok := ParseNumber(v)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	switch {
	case f >= math.MaxInt32:
		return math.MaxInt32, true
	case f <= math.MinInt32:
		return math.MinInt32, true
	}
	return int(f), true
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == math.Trunc(s) && math.Abs(s) < 1<<53 {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case nil:
		return ""
	}
	return ""
}

func dateOf(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return ParseDate(s)
}

// RolesFromFields folds flat "<role>_mandays" / "<role>_done" fields into a role map.
// Missing or non-numeric values contribute zero.
func RolesFromFields(fields map[string]any) map[string]RoleEffort {
	roles := make(map[string]RoleEffort)
	for key, val := range fields {
		if !strings.HasSuffix(key, MandaysSuffix) {
			continue
		}
		role := strings.TrimSuffix(key, MandaysSuffix)
		if role == "" {
			continue
		}
		planned, _ := ParseNumber(val)
		done, _ := ParseNumber(fields[role+DoneSuffix])
		roles[role] = RoleEffort{PlannedMandays: planned, DonePercent: done}
	}
	return roles
}

// UnmarshalJSON accepts both an explicit "roles" object and the flat
// per-role field layout used by the source tables.
func (p *Project) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Project{
		ID:      stringOf(raw["id"]),
		ScopeID: stringOf(raw["scope_id"]),
		Name:    stringOf(raw["name"]),
		Roles:   make(map[string]RoleEffort),
	}
	p.Priority, _ = ParsePriority(raw["priority"])
	p.DeliveryDate = dateOf(raw["delivery_date"])
	p.StartDay = dateOf(raw["start_day"])

	if explicit, ok := raw["roles"].(map[string]any); ok {
		for role, v := range explicit {
			entry, _ := v.(map[string]any)
			planned, _ := ParseNumber(entry["planned_mandays"])
			done, _ := ParseNumber(entry["done_percent"])
			p.Roles[role] = RoleEffort{PlannedMandays: planned, DonePercent: done}
		}
	}
	for role, effort := range RolesFromFields(raw) {
		p.Roles[role] = effort
	}
	return nil
}

// UnmarshalJSON tolerates numeric strings and nulls for capacity and rate.
func (m *TeamMember) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = TeamMember{
		ID:      stringOf(raw["id"]),
		ScopeID: stringOf(raw["scope_id"]),
		Name:    stringOf(raw["name"]),
	}
	m.FTE, _ = ParseNumber(raw["fte"])
	m.MDRate, _ = ParseNumber(raw["md_rate"])
	return nil
}

// UnmarshalJSON reads "today" as a plain date.
func (in *RoadmapInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Projects    []Project    `json:"projects"`
		TeamMembers []TeamMember `json:"team_members"`
		Today       string       `json:"today"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	in.Projects = raw.Projects
	in.TeamMembers = raw.TeamMembers
	in.Today = ParseDate(raw.Today)
	return nil
}
