package scrolling

import (
	"errors"
	"math"
	"testing"

	"github.com/NicholasChin28/osu/internal/timing"
)

func newTestCollection(t *testing.T) *Collection {
	t.Helper()
	points, err := timing.NewControlPointList([]timing.ControlPoint{
		{StartTime: 0, Multiplier: 1},
		{StartTime: 2000, Multiplier: 2},
		{StartTime: 1000, Multiplier: 0.5},
	})
	if err != nil {
		t.Fatalf("NewControlPointList failed: %v", err)
	}
	c := NewCollectionFromControlPoints(points, timing.AxisY)
	c.SetDrawSize(timing.Vec2{X: 300, Y: 600})
	return c
}

func TestCollectionOrdersAdjustmentsDescending(t *testing.T) {
	c := newTestCollection(t)
	var starts []float64
	for _, a := range c.Adjustments() {
		starts = append(starts, a.ControlPoint().StartTime)
	}
	want := []float64{2000, 1000, 0}
	for i := range want {
		if starts[i] != want[i] {
			t.Fatalf("Expected adjustments %v, got %v", want, starts)
		}
	}
}

func TestCollectionRouting(t *testing.T) {
	c := newTestCollection(t)

	tests := []struct {
		start     float64
		wantPoint float64
	}{
		{-300, 0}, // before every control point
		{0, 0},
		{999, 0},
		{1000, 1000},
		{2500, 2000},
	}

	for _, tt := range tests {
		d := NewDrawable(timing.Instant("n", tt.start, 10, 10))
		if err := c.Add(d); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if got := d.Parent().ControlPoint().StartTime; got != tt.wantPoint {
			t.Errorf("Object at %.0f routed to %.0f, expected %.0f", tt.start, got, tt.wantPoint)
		}
		if !c.Remove(d) {
			t.Errorf("Remove failed for object at %.0f", tt.start)
		}
	}

	if c.Len() != 0 {
		t.Errorf("Expected empty collection, got %d", c.Len())
	}
}

func TestCollectionEmpty(t *testing.T) {
	c := NewCollection(timing.AxisY)
	err := c.Add(NewDrawable(timing.Instant("n", 0, 1, 1)))
	if !errors.Is(err, ErrNoControlPoint) {
		t.Errorf("Expected ErrNoControlPoint, got %v", err)
	}
}

func TestCollectionPropagatesSettings(t *testing.T) {
	c := newTestCollection(t)
	c.SetAxes(timing.AxisX)
	c.SetVisibleTimeRange(2000)
	c.SetDrawSize(timing.Vec2{X: 800, Y: 100})

	extra := NewSpeedAdjustment(timing.ControlPoint{StartTime: 3000, Multiplier: 1}, timing.AxisY)
	c.AddAdjustment(extra)

	for _, a := range c.Adjustments() {
		cont := a.Container()
		if cont.Axes() != timing.AxisX {
			t.Errorf("Adjustment %.0f: expected axes x, got %v", a.ControlPoint().StartTime, cont.Axes())
		}
		if cont.VisibleTimeRange() != 2000 {
			t.Errorf("Adjustment %.0f: expected range 2000, got %f", a.ControlPoint().StartTime, cont.VisibleTimeRange())
		}
		if cont.DrawSize().X != 800 {
			t.Errorf("Adjustment %.0f: expected draw width 800, got %f", a.ControlPoint().StartTime, cont.DrawSize().X)
		}
	}
}

func TestSpeedAdjustmentMapping(t *testing.T) {
	a := NewSpeedAdjustment(timing.ControlPoint{StartTime: 1000, Multiplier: 2}, timing.AxisY)
	d := NewDrawable(timing.Instant("n", 1500, 0, 0))
	if err := a.Container().Add(d); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	a.Update()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"offset at anchor", a.Offset(1000), 0},
		{"offset before anchor", a.Offset(750), 0.5},
		{"length", a.Length(), 1.0},
		{"object position", a.PositionOf(d, 1000), 1.0},
		{"object at hit time", a.PositionOf(d, 1500), 0},
		{"preempt", a.Preempt(), 500},
	}

	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %f, got %f", tt.name, tt.want, tt.got)
		}
	}
}

func TestSpeedAdjustmentDefaultsMultiplier(t *testing.T) {
	a := NewSpeedAdjustment(timing.ControlPoint{StartTime: 0}, timing.AxisY)
	if a.ControlPoint().Multiplier != 1 {
		t.Errorf("Expected multiplier 1, got %f", a.ControlPoint().Multiplier)
	}
}
