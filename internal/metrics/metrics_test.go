package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetricsHandler(t *testing.T) {
	m := New()
	m.IncFrames()
	m.IncFrames()
	m.AddExtentRecomputes(3)
	m.AddExtentRecomputes(0)
	m.AddMutations(2)
	m.SetAliveObjects(12)
	m.SetAdjustments(4)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		"osuscroll_frames_total 2",
		"osuscroll_extent_recomputes_total 3",
		"osuscroll_mutations_total 2",
		"osuscroll_alive_objects 12",
		"osuscroll_speed_adjustments 4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in metrics output:\n%s", want, out)
		}
	}
}
