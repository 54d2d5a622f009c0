package models

import (
	"fmt"
	"math"
)

// MaxPlannedMandays bounds a single role's planned effort. At one FTE it is
// roughly 3,800 years of workdays, which keeps plans inside the year 9999.
const MaxPlannedMandays = 1_000_000

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate applies strict boundary checks to a planning payload.
// The planner itself never requires this; it degrades gracefully instead.
func Validate(input RoadmapInput) error {
	memberIDs := make(map[string]bool)
	for i, m := range input.TeamMembers {
		field := fmt.Sprintf("team_members[%d]", i)
		if m.ID != "" {
			if memberIDs[m.ID] {
				return &InvalidInputError{Field: field + ".id", Reason: "duplicate team member ID: " + m.ID}
			}
			memberIDs[m.ID] = true
		}
		if !finite(m.FTE) || m.FTE < 0 {
			return &InvalidInputError{Field: field + ".fte", Reason: "must be a finite, non-negative number"}
		}
		if !finite(m.MDRate) || m.MDRate < 0 {
			return &InvalidInputError{Field: field + ".md_rate", Reason: "must be a finite, non-negative number"}
		}
	}

	projectIDs := make(map[string]bool)
	for i, p := range input.Projects {
		field := fmt.Sprintf("projects[%d]", i)
		if p.ID != "" {
			if projectIDs[p.ID] {
				return &InvalidInputError{Field: field + ".id", Reason: "duplicate project ID: " + p.ID}
			}
			projectIDs[p.ID] = true
		}
		for _, role := range p.SortedRoles() {
			effort := p.Roles[role]
			if !finite(effort.PlannedMandays) || effort.PlannedMandays < 0 {
				return &InvalidInputError{Field: field + "." + role + MandaysSuffix, Reason: "must be a finite, non-negative number"}
			}
			if effort.PlannedMandays > MaxPlannedMandays {
				return &InvalidInputError{Field: field + "." + role + MandaysSuffix, Reason: fmt.Sprintf("must not exceed %d", MaxPlannedMandays)}
			}
			if !finite(effort.DonePercent) || effort.DonePercent < 0 || effort.DonePercent > 100 {
				return &InvalidInputError{Field: field + "." + role + DoneSuffix, Reason: "must be between 0 and 100"}
			}
		}
	}
	return nil
}
