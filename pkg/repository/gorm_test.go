package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/burndown/roadmap-api/pkg/database"
	"github.com/burndown/roadmap-api/pkg/models"
)

func newTestRepo(t *testing.T) *Gorm {
	t.Helper()
	db, err := database.Open(database.Options{
		DataPath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		Silent:   true,
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	return NewGorm(db)
}

func TestReplaceAndFindByScopeID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	deadline := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	projects := []models.Project{
		{ID: "p2", Name: "Billing", Priority: 2, Roles: map[string]models.RoleEffort{"be": {PlannedMandays: 8, DonePercent: 25}}},
		{ID: "p1", Name: "Checkout", Priority: 1, DeliveryDate: &deadline, Roles: map[string]models.RoleEffort{
			"fe": {PlannedMandays: 10},
			"qa": {PlannedMandays: 4, DonePercent: 50},
		}},
		{Name: "Unnamed", Priority: 3},
	}
	members := []models.TeamMember{{ID: "m1", Name: "Ada", FTE: 1, MDRate: 450}, {ID: "m2", Name: "Linus", FTE: 0.5}}

	if err := repo.ReplaceScope(ctx, database.Scope{ID: "s1", Name: "Core"}, projects, members); err != nil {
		t.Fatalf("ReplaceScope failed: %v", err)
	}

	got, err := repo.Projects.FindByScopeID(ctx, "s1")
	if err != nil {
		t.Fatalf("FindByScopeID failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 projects, got %d", len(got))
	}
	if got[0].ID != "p1" || len(got[0].Roles) != 2 || got[0].Roles["qa"].DonePercent != 50 {
		t.Errorf("Unexpected first project: %+v", got[0])
	}
	if got[0].DeliveryDate == nil || !got[0].DeliveryDate.Equal(deadline) {
		t.Errorf("Expected delivery date %s, got %v", deadline, got[0].DeliveryDate)
	}
	if got[2].ID == "" {
		t.Errorf("Expected a generated ID for a project imported without one")
	}

	team, err := repo.Members.FindByScopeID(ctx, "s1")
	if err != nil {
		t.Fatalf("FindByScopeID failed: %v", err)
	}
	if len(team) != 2 || team[0].MDRate != 450 || team[1].MDRate != 0 {
		t.Errorf("Unexpected team: %+v", team)
	}

	// Replacing again drops the previous records
	if err := repo.ReplaceScope(ctx, database.Scope{ID: "s1", Name: "Core"}, projects[:1], nil); err != nil {
		t.Fatalf("second ReplaceScope failed: %v", err)
	}
	got, _ = repo.Projects.FindByScopeID(ctx, "s1")
	if len(got) != 1 || got[0].ID != "p2" {
		t.Errorf("Expected only p2 after replace, got %+v", got)
	}
	team, _ = repo.Members.FindByScopeID(ctx, "s1")
	if len(team) != 0 {
		t.Errorf("Expected an empty team after replace, got %d", len(team))
	}
}

func TestGetScopeNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.GetScope(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRecordRunUpserts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for i := 0; i < 3; i++ {
		if err := repo.RecordRun(ctx, "s1", 4, 3, 2); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := repo.ListRuns(ctx, "s1", 30)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected a single ledger row for today, got %d", len(runs))
	}
	if runs[0].RunCount != 3 || runs[0].TotalProjects != 12 || runs[0].TotalItems != 9 || runs[0].TotalMembers != 6 {
		t.Errorf("Unexpected counters: %+v", runs[0])
	}
}

func TestReplaceScopeSharedIDsAcrossScopes(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	projects := []models.Project{{ID: "p1", Name: "Checkout", Priority: 1, Roles: map[string]models.RoleEffort{"fe": {PlannedMandays: 5}}}}
	members := []models.TeamMember{{ID: "m1", Name: "Ada", FTE: 1}}

	if err := repo.ReplaceScope(ctx, database.Scope{ID: "a"}, projects, members); err != nil {
		t.Fatalf("ReplaceScope a failed: %v", err)
	}
	other := []models.Project{{ID: "p1", Name: "Payments", Priority: 2, Roles: map[string]models.RoleEffort{"be": {PlannedMandays: 9}}}}
	if err := repo.ReplaceScope(ctx, database.Scope{ID: "b"}, other, []models.TeamMember{{ID: "m1", Name: "Grace", FTE: 0.5}}); err != nil {
		t.Fatalf("ReplaceScope b with the same IDs failed: %v", err)
	}

	a, _ := repo.Projects.FindByScopeID(ctx, "a")
	b, _ := repo.Projects.FindByScopeID(ctx, "b")
	if len(a) != 1 || a[0].Name != "Checkout" || a[0].Roles["fe"].PlannedMandays != 5 || len(a[0].Roles) != 1 {
		t.Errorf("Unexpected scope a projects: %+v", a)
	}
	if len(b) != 1 || b[0].Name != "Payments" || b[0].Roles["be"].PlannedMandays != 9 || len(b[0].Roles) != 1 {
		t.Errorf("Unexpected scope b projects: %+v", b)
	}

	teamA, _ := repo.Members.FindByScopeID(ctx, "a")
	teamB, _ := repo.Members.FindByScopeID(ctx, "b")
	if len(teamA) != 1 || teamA[0].Name != "Ada" || len(teamB) != 1 || teamB[0].Name != "Grace" {
		t.Errorf("Unexpected teams: a=%+v b=%+v", teamA, teamB)
	}

	// Replacing b leaves a's efforts and team untouched
	if err := repo.ReplaceScope(ctx, database.Scope{ID: "b"}, nil, nil); err != nil {
		t.Fatalf("clearing scope b failed: %v", err)
	}
	a, _ = repo.Projects.FindByScopeID(ctx, "a")
	if len(a) != 1 || a[0].Roles["fe"].PlannedMandays != 5 {
		t.Errorf("Expected scope a to survive, got %+v", a)
	}
	teamA, _ = repo.Members.FindByScopeID(ctx, "a")
	if len(teamA) != 1 {
		t.Errorf("Expected scope a team to survive, got %+v", teamA)
	}
}
