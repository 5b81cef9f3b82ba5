package scrolling

import (
	"errors"
	"slices"
	"sort"

	"github.com/NicholasChin28/osu/internal/timing"
)

var ErrNoControlPoint = errors.New("no speed adjustment to route into")

// SpeedAdjustment owns the Container of one control point and maps it into
// the playfield's scroll space.
type SpeedAdjustment struct {
	container *Container
}

func NewSpeedAdjustment(cp timing.ControlPoint, axes timing.Axes) *SpeedAdjustment {
	if cp.Multiplier <= 0 {
		cp.Multiplier = 1
	}
	return &SpeedAdjustment{container: NewContainer(cp, axes)}
}

func (a *SpeedAdjustment) Container() *Container {
	return a.container
}

func (a *SpeedAdjustment) ControlPoint() timing.ControlPoint {
	return a.container.ControlPoint()
}

// CanContain reports whether the drawable starts within this adjustment
func (a *SpeedAdjustment) CanContain(d *Drawable) bool {
	return d.StartTime() >= a.container.ControlPoint().StartTime
}

// Offset is where the control point's start time sits at time now, in
// playfield units: 0 at the judgement line, 1 at the far edge.
func (a *SpeedAdjustment) Offset(now float64) float64 {
	cp := a.container.ControlPoint()
	return (cp.StartTime - now) * cp.Multiplier / a.container.VisibleTimeRange()
}

// Length is the container's extent in playfield units
func (a *SpeedAdjustment) Length() float64 {
	cp := a.container.ControlPoint()
	return a.container.Duration() * cp.Multiplier / a.container.VisibleTimeRange()
}

// PositionOf is where d sits at time now, in playfield units
func (a *SpeedAdjustment) PositionOf(d *Drawable, now float64) float64 {
	cp := a.container.ControlPoint()
	return (d.StartTime() - now) * cp.Multiplier / a.container.VisibleTimeRange()
}

// Preempt is how long before its start time an object scrolls into view
func (a *SpeedAdjustment) Preempt() float64 {
	return a.container.VisibleTimeRange() / a.container.ControlPoint().Multiplier
}

func (a *SpeedAdjustment) Update() {
	a.container.Update()
}

// Collection routes drawables into the speed adjustment whose control point
// covers their start time.
type Collection struct {
	axes             timing.Axes
	visibleTimeRange float64
	drawSize         timing.Vec2

	// sorted by descending control point start time
	adjustments []*SpeedAdjustment
}

func NewCollection(axes timing.Axes) *Collection {
	return &Collection{
		axes:             axes,
		visibleTimeRange: DefaultVisibleTimeRange,
	}
}

// NewCollectionFromControlPoints creates one adjustment per control point
func NewCollectionFromControlPoints(points *timing.ControlPointList, axes timing.Axes) *Collection {
	c := NewCollection(axes)
	for _, cp := range points.Points() {
		c.AddAdjustment(NewSpeedAdjustment(cp, axes))
	}
	return c
}

// AddAdjustment inserts a and applies the collection's axes, range and size
func (c *Collection) AddAdjustment(a *SpeedAdjustment) {
	a.container.SetScrollingAxes(c.axes)
	a.container.SetVisibleTimeRange(c.visibleTimeRange)
	a.container.SetDrawSize(c.drawSize)

	start := a.ControlPoint().StartTime
	i := sort.Search(len(c.adjustments), func(i int) bool {
		return c.adjustments[i].ControlPoint().StartTime < start
	})
	c.adjustments = slices.Insert(c.adjustments, i, a)
}

// Adjustments returns the adjustments, latest control point first
func (c *Collection) Adjustments() []*SpeedAdjustment {
	return slices.Clone(c.adjustments)
}

// AdjustmentFor returns the adjustment a drawable would be routed to
func (c *Collection) AdjustmentFor(d *Drawable) (*SpeedAdjustment, error) {
	if len(c.adjustments) == 0 {
		return nil, ErrNoControlPoint
	}
	for _, a := range c.adjustments {
		if a.CanContain(d) {
			return a, nil
		}
	}
	// Before every control point: use the earliest one
	return c.adjustments[len(c.adjustments)-1], nil
}

func (c *Collection) Add(d *Drawable) error {
	a, err := c.AdjustmentFor(d)
	if err != nil {
		return err
	}
	return a.container.Add(d)
}

// Remove detaches d from whichever adjustment holds it
func (c *Collection) Remove(d *Drawable) bool {
	for _, a := range c.adjustments {
		if a.container.Remove(d) {
			return true
		}
	}
	return false
}

func (c *Collection) Len() int {
	n := 0
	for _, a := range c.adjustments {
		n += a.container.Len()
	}
	return n
}

func (c *Collection) Axes() timing.Axes {
	return c.axes
}

func (c *Collection) SetAxes(axes timing.Axes) {
	c.axes = axes
	for _, a := range c.adjustments {
		a.container.SetScrollingAxes(axes)
	}
}

func (c *Collection) VisibleTimeRange() float64 {
	return c.visibleTimeRange
}

func (c *Collection) SetVisibleTimeRange(ms float64) {
	if ms <= 0 {
		ms = DefaultVisibleTimeRange
	}
	c.visibleTimeRange = ms
	for _, a := range c.adjustments {
		a.container.SetVisibleTimeRange(ms)
	}
}

// SetDrawSize passes the playfield's absolute size down to every container
func (c *Collection) SetDrawSize(size timing.Vec2) {
	c.drawSize = size
	for _, a := range c.adjustments {
		a.container.SetDrawSize(size)
	}
}

// Update runs the per-frame pass over every adjustment
func (c *Collection) Update() {
	for _, a := range c.adjustments {
		a.Update()
	}
}
