package chart

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/NicholasChin28/osu/internal/timing"
)

func TestGenerator(t *testing.T) {
	g := NewGenerator(7)

	c, err := g.Generate("test", 50, 30000)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if c.Version != Version {
		t.Errorf("Expected version %s, got %s", Version, c.Version)
	}
	if len(c.HitObjects) != 50 {
		t.Fatalf("Expected 50 objects, got %d", len(c.HitObjects))
	}
	if len(c.Points) != 1+g.SpeedChanges {
		t.Errorf("Expected %d control points, got %d", 1+g.SpeedChanges, len(c.Points))
	}

	for i := 1; i < len(c.HitObjects); i++ {
		if c.HitObjects[i].StartTime <= c.HitObjects[i-1].StartTime {
			t.Errorf("Objects not strictly increasing at %d: %.0f after %.0f", i, c.HitObjects[i].StartTime, c.HitObjects[i-1].StartTime)
		}
	}

	for _, p := range c.Points {
		if p.Multiplier < 0.5 || p.Multiplier > 2 {
			t.Errorf("Multiplier out of range: %f", p.Multiplier)
		}
	}

	t.Logf("Generated chart with %d objects, length %.0fms", len(c.HitObjects), c.Length())
}

func TestGeneratorDeterministic(t *testing.T) {
	a, err := NewGenerator(99).Generate("a", 20, 10000)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := NewGenerator(99).Generate("a", 20, 10000)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Same seed should produce the same chart")
	}
}

func TestGeneratorErrors(t *testing.T) {
	g := NewGenerator(1)
	if _, err := g.Generate("x", 0, 1000); err == nil {
		t.Error("Expected error for zero count")
	}
	if _, err := g.Generate("x", 10, 0); err == nil {
		t.Error("Expected error for zero duration")
	}
}

func TestChartWriteRead(t *testing.T) {
	c := &Chart{
		Version:          Version,
		Title:            "roundtrip",
		Axes:             "y",
		VisibleTimeRange: 1500,
		Points: []timing.ControlPoint{
			{StartTime: 0, Multiplier: 1},
			{StartTime: 4000, Multiplier: 1.5},
		},
		HitObjects: []timing.HitObject{
			timing.Instant("n1", 100, 64, 24),
			timing.Hold("h1", 300, 900, 64, 24),
		},
	}

	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := WriteChart(c, path); err != nil {
		t.Fatalf("WriteChart failed: %v", err)
	}

	read, err := ReadChart(path)
	if err != nil {
		t.Fatalf("ReadChart failed: %v", err)
	}

	if read.Title != c.Title || read.VisibleTimeRange != c.VisibleTimeRange {
		t.Errorf("Header mismatch: %+v", read)
	}
	if len(read.HitObjects) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(read.HitObjects))
	}
	if read.HitObjects[0].EndTime != nil {
		t.Errorf("Instant object should have no end time")
	}
	if read.HitObjects[1].End() != 900 {
		t.Errorf("Expected hold end 900, got %f", read.HitObjects[1].End())
	}
}

func TestChartValidate(t *testing.T) {
	base := func() *Chart {
		return &Chart{
			Version:    Version,
			Axes:       "y",
			Points:     []timing.ControlPoint{{StartTime: 0, Multiplier: 1}},
			HitObjects: []timing.HitObject{timing.Instant("a", 0, 1, 1)},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Chart)
	}{
		{"bad axes", func(c *Chart) { c.Axes = "z" }},
		{"no control points", func(c *Chart) { c.Points = nil }},
		{"negative multiplier", func(c *Chart) { c.Points[0].Multiplier = -1 }},
		{"negative range", func(c *Chart) { c.VisibleTimeRange = -1 }},
		{"end before start", func(c *Chart) { c.HitObjects = append(c.HitObjects, timing.Hold("b", 10, 5, 1, 1)) }},
		{"duplicate id", func(c *Chart) { c.HitObjects = append(c.HitObjects, timing.Instant("a", 5, 1, 1)) }},
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("Base chart should be valid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidChart) {
				t.Errorf("Expected ErrInvalidChart, got %v", err)
			}
		})
	}
}

func TestChartObjectsSortedWithIDs(t *testing.T) {
	c := &Chart{
		HitObjects: []timing.HitObject{
			timing.Instant("", 500, 1, 1),
			timing.Instant("first", 100, 1, 1),
		},
	}

	objs := c.Objects()
	if objs[0].ID != "first" {
		t.Errorf("Expected earliest object first, got %s", objs[0].ID)
	}
	if objs[1].ID != "obj_1" {
		t.Errorf("Expected generated id obj_1, got %s", objs[1].ID)
	}

	points, err := c.ControlPoints()
	if err != nil {
		t.Fatalf("ControlPoints failed: %v", err)
	}
	if points.Len() != 1 || points.At(0).Multiplier != 1 {
		t.Errorf("Expected default control point")
	}
}

func TestChartObjectsGeneratedIDsSkipExplicit(t *testing.T) {
	c := &Chart{
		Axes: "y",
		HitObjects: []timing.HitObject{
			timing.Instant("obj_2", 100, 1, 1),
			timing.Instant("", 200, 1, 1),
			timing.Instant("", 300, 1, 1),
			timing.Instant("obj_4", 400, 1, 1),
			timing.Instant("", 500, 1, 1),
		},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	objs := c.Objects()
	seen := make(map[string]bool)
	for _, o := range objs {
		if o.ID == "" {
			t.Errorf("Object at %.0f has no id", o.StartTime)
		}
		if seen[o.ID] {
			t.Errorf("Duplicate id %q", o.ID)
		}
		seen[o.ID] = true
	}

	want := []string{"obj_2", "obj_3", "obj_5", "obj_4", "obj_6"}
	for i, o := range objs {
		if o.ID != want[i] {
			t.Errorf("Object %d: expected id %s, got %s", i, want[i], o.ID)
		}
	}
}
