package collect

import (
	"fmt"
	"strings"
	"testing"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
)

func quakeRecord(i int) string {
	return fmt.Sprintf(`{"RefGeografica":"%d km al SO de Quillota","Fecha":"2024-05-01 12:0%d","Magnitud":"4.%d","Profundidad":"%d"}`,
		10+i, i%10, i%10, 30+i)
}

func TestSeismicCollect_CapsAtTen(t *testing.T) {
	tests := []struct {
		name    string
		records int
		want    int
	}{
		{"fewer than cap", 3, 6},
		{"exactly cap", 10, 20},
		{"over cap truncates", 25, 20},
		{"empty", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := make([]string, 0, tt.records)
			for i := 0; i < tt.records; i++ {
				parts = append(parts, quakeRecord(i))
			}
			body := "[" + strings.Join(parts, ",") + "]"

			got := NewSeismic(nil).Collect(decodeRecords(t, body))
			if len(got) != tt.want {
				t.Fatalf("metrics = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSeismicCollect_LabelsAndValues(t *testing.T) {
	body := `[{"RefGeografica":"15 km al NO de Valparaiso","Fecha":"2024-05-01","Magnitud":"5.2","Profundidad":"42"}]`
	got := NewSeismic(nil).Collect(decodeRecords(t, body))
	if len(got) != 2 {
		t.Fatalf("metrics = %d, want 2", len(got))
	}

	mag, depth := got[0], got[1]
	if mag.Name != domain.MetricQuakeMag || mag.Value != 5.2 {
		t.Errorf("magnitude = %s %v", mag.Name, mag.Value)
	}
	if depth.Name != domain.MetricQuakeDepth || depth.Value != 42 {
		t.Errorf("depth = %s %v", depth.Name, depth.Value)
	}
	for _, m := range got {
		if v := labelValue(t, m, "location"); v != "15 km al NO de Valparaiso" {
			t.Errorf("location label = %q", v)
		}
		if v := labelValue(t, m, "index"); v != "0" {
			t.Errorf("index label = %q, want 0", v)
		}
	}
}

func TestSeismicCollect_SkipsBadRecordKeepsIndex(t *testing.T) {
	body := `[{"RefGeografica":"A","Magnitud":"bad","Profundidad":"1"},
	          {"RefGeografica":"B","Magnitud":"4.0","Profundidad":"2"}]`
	got := NewSeismic(nil).Collect(decodeRecords(t, body))
	if len(got) != 2 {
		t.Fatalf("metrics = %d, want 2", len(got))
	}
	// The surviving quake keeps its upstream position.
	if v := labelValue(t, got[0], "index"); v != "1" {
		t.Errorf("index label = %q, want 1", v)
	}
}

func Test_cleanLocation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "20 km al SO de Illapel", "20 km al SO de Illapel"},
		{"quotes removed", `cerca de "La Serena"`, "cerca de La Serena"},
		{"single quotes removed", "O'Higgins", "OHiggins"},
		{"commas removed", "Illapel, Coquimbo", "Illapel Coquimbo"},
		{"truncated to fifty", strings.Repeat("x", 80), strings.Repeat("x", 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanLocation(tt.in); got != tt.want {
				t.Errorf("cleanLocation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
