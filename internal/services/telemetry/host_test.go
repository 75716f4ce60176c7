package telemetry

import (
	"testing"
	"time"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
)

func TestSample(t *testing.T) {
	got := New("chile_metrics", nil).Sample(1500 * time.Millisecond)
	if len(got) == 0 {
		t.Fatal("Sample returned no metrics")
	}

	if got[0].Name != domain.MetricSelfRuntime {
		t.Fatalf("first metric = %s, want %s", got[0].Name, domain.MetricSelfRuntime)
	}
	if got[0].Value != 1.5 {
		t.Fatalf("run seconds = %v, want 1.5", got[0].Value)
	}

	for _, m := range got {
		if len(m.Labels) != 1 || m.Labels[0].Key != "job" || m.Labels[0].Value != "chile_metrics" {
			t.Errorf("metric %s labels = %v, want job=chile_metrics", m.Name, m.Labels)
		}
	}
}
