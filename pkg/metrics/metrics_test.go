package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/burndown/roadmap-api/pkg/models"
)

func TestObservePlan(t *testing.T) {
	m := New()
	rm := models.Roadmap{
		Items: []models.RoadmapItem{
			{RiskLevel: models.RiskOnTrack},
			{RiskLevel: models.RiskCapacityGap},
			{RiskLevel: models.RiskOnTrack},
		},
		Summary: models.RoadmapSummary{FallbackFTEUsed: true},
	}

	m.ObservePlan("inline", rm, 2*time.Millisecond)

	if got := testutil.ToFloat64(m.runs.WithLabelValues("inline")); got != 1 {
		t.Errorf("Expected 1 run, got %v", got)
	}
	if got := testutil.ToFloat64(m.items.WithLabelValues("on_track")); got != 2 {
		t.Errorf("Expected 2 on_track items, got %v", got)
	}
	if got := testutil.ToFloat64(m.fallbackFTE); got != 1 {
		t.Errorf("Expected fallback counter to be 1, got %v", got)
	}
}

func TestObservePlanNil(t *testing.T) {
	var m *Metrics
	m.ObservePlan("inline", models.Roadmap{}, time.Millisecond)
}
