package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/burndown/roadmap-api/pkg/planner"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadmap.json")
	input := `{"team_members":[{"fte":1}],"projects":[{"id":"p1","priority":1,"fe_mandays":10,"fe_done":0}]}`
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"-in", path, "-today", "2025-01-06"}, &out, &planner.Planner{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, `"estimated_duration_workdays": 10`) {
		t.Errorf("Expected a 10 workday item, got %s", got)
	}
	if !strings.Contains(got, `"risk_level": "no_deadline"`) {
		t.Errorf("Expected no_deadline risk, got %s", got)
	}
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	if err := run(nil, &out, &planner.Planner{}); err == nil {
		t.Errorf("Expected a usage error without -in")
	}
	if err := run([]string{"-in", filepath.Join(t.TempDir(), "missing.json")}, &out, &planner.Planner{}); err == nil {
		t.Errorf("Expected an error for a missing file")
	}

	huge := filepath.Join(t.TempDir(), "huge.json")
	if err := os.WriteFile(huge, []byte(`{"projects":[{"id":"p1","fe_mandays":1e12}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := run([]string{"-in", huge, "-today", "2025-01-06"}, &out, &planner.Planner{}); err == nil || !strings.Contains(err.Error(), "9999-12-31") {
		t.Errorf("Expected a horizon error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output for a rejected plan, got %s", out.String())
	}
}
