package scrolling

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/NicholasChin28/osu/internal/timing"
)

// DefaultVisibleTimeRange is the time span shown along the full length of
// the scroll axes, in milliseconds.
const DefaultVisibleTimeRange = 1000.0

var ErrAlreadyContained = errors.New("drawable already belongs to a container")

// Container scrolls relative to the current time. Along its scroll axes it
// sizes itself to the total duration of the contained drawables, measured
// from the control point's start time.
//
// A Container is driven by a single update pass: Add, Remove and the
// setters must not run concurrently with Update or Duration.
type Container struct {
	visibleTimeRange float64
	axes             timing.Axes
	controlPoint     timing.ControlPoint
	drawSize         timing.Vec2

	children    []*Drawable
	nextChildID uint64

	duration       cached
	recomputations int

	size                timing.Vec2
	relativeChildOffset timing.Vec2
	relativeChildSize   timing.Vec2
}

// NewContainer creates a container bound to cp, scrolling along axes
func NewContainer(cp timing.ControlPoint, axes timing.Axes) *Container {
	return &Container{
		visibleTimeRange:  DefaultVisibleTimeRange,
		axes:              axes,
		controlPoint:      cp,
		size:              timing.Vec2{X: 1, Y: 1},
		relativeChildSize: timing.Vec2{X: 1, Y: 1},
	}
}

// Add inserts d at its place in the draw order
func (c *Container) Add(d *Drawable) error {
	if d.parent != nil {
		return fmt.Errorf("%w: %q", ErrAlreadyContained, d.HitObject.ID)
	}
	if err := d.HitObject.Validate(); err != nil {
		return err
	}

	c.nextChildID++
	d.childID = c.nextChildID
	d.parent = c

	c.insert(d)

	c.duration.invalidate()
	return nil
}

func (c *Container) insert(d *Drawable) {
	i := sort.Search(len(c.children), func(i int) bool {
		return Compare(c.children[i], d) > 0
	})
	c.children = slices.Insert(c.children, i, d)
}

// Remove detaches d. It reports whether d was a child of this container.
func (c *Container) Remove(d *Drawable) bool {
	if d.parent != c {
		return false
	}
	i := slices.Index(c.children, d)
	if i < 0 {
		return false
	}

	c.children = slices.Delete(c.children, i, i+1)
	d.parent = nil
	d.childID = 0

	c.duration.invalidate()
	return true
}

// ChangeChildDepth sets the depth of child d and moves it to its new
// position. d keeps its child ID. It reports whether d is a child of c.
func (c *Container) ChangeChildDepth(d *Drawable, depth float32) bool {
	if d.parent != c {
		return false
	}
	i := slices.Index(c.children, d)
	if i < 0 {
		return false
	}
	if d.depth == depth {
		return true
	}

	c.children = slices.Delete(c.children, i, i+1)
	d.depth = depth
	c.insert(d)
	return true
}

// Clear removes every child
func (c *Container) Clear() {
	for _, d := range c.children {
		d.parent = nil
		d.childID = 0
	}
	c.children = nil
	c.duration.invalidate()
}

// ResizeChild updates the absolute size of a child after layout
func (c *Container) ResizeChild(d *Drawable, size timing.Vec2) {
	if d.Size == size {
		return
	}
	d.Size = size
	if d.parent == c {
		c.duration.invalidate()
	}
}

func (c *Container) ControlPoint() timing.ControlPoint {
	return c.controlPoint
}

// SetControlPoint rebinds the container to a new speed segment
func (c *Container) SetControlPoint(cp timing.ControlPoint) {
	c.controlPoint = cp
	c.duration.invalidate()
}

func (c *Container) Axes() timing.Axes {
	return c.axes
}

func (c *Container) SetScrollingAxes(axes timing.Axes) {
	c.axes = axes
	c.duration.invalidate()
}

func (c *Container) DrawSize() timing.Vec2 {
	return c.drawSize
}

// SetDrawSize records the container's own absolute size, supplied by the
// layout pass. The extent only depends on the scroll axis component.
func (c *Container) SetDrawSize(size timing.Vec2) {
	changed := size.Along(c.axes) != c.drawSize.Along(c.axes)
	c.drawSize = size
	if changed {
		c.duration.invalidate()
	}
}

func (c *Container) VisibleTimeRange() float64 {
	return c.visibleTimeRange
}

func (c *Container) SetVisibleTimeRange(ms float64) {
	if ms <= 0 {
		ms = DefaultVisibleTimeRange
	}
	c.visibleTimeRange = ms
}

// Duration is the extent of the contained drawables relative to the control
// point's start time. It is recomputed only on the first read after a
// change to the children, control point, axes or draw size.
func (c *Container) Duration() float64 {
	if c.duration.valid {
		return c.duration.value
	}
	c.recomputations++
	return c.duration.set(ComputeExtent(c.children, c.controlPoint.StartTime, c.axes, c.drawSize.Along(c.axes)))
}

// Recomputations counts how many times Duration ran the extent calculation
func (c *Container) Recomputations() int {
	return c.recomputations
}

// Update is the per-frame pass. Along each scroll axis the child space is
// shifted to the control point's start time and spans the duration; other
// axes are left alone.
func (c *Container) Update() {
	var offset timing.Vec2
	size := c.size

	if c.axes.Has(timing.AxisX) {
		offset.X = c.controlPoint.StartTime
		size.X = c.Duration()
	}
	if c.axes.Has(timing.AxisY) {
		offset.Y = c.controlPoint.StartTime
		size.Y = c.Duration()
	}

	c.relativeChildOffset = offset
	c.size = size
	// Child position space follows the size so children don't move when we resize
	c.relativeChildSize = size
}

func (c *Container) Size() timing.Vec2 {
	return c.size
}

func (c *Container) RelativeChildOffset() timing.Vec2 {
	return c.relativeChildOffset
}

func (c *Container) RelativeChildSize() timing.Vec2 {
	return c.relativeChildSize
}

// RelativePosition is where d starts inside the container along the scroll
// axes, in [0, 1] for drawables the container encloses.
func (c *Container) RelativePosition(d *Drawable) float64 {
	span := c.relativeChildSize.Along(c.axes)
	if span == 0 {
		return 0
	}
	return (d.StartTime() - c.relativeChildOffset.Along(c.axes)) / span
}

func (c *Container) Len() int {
	return len(c.children)
}

// Children returns the drawables in draw order, back to front
func (c *Container) Children() []*Drawable {
	return slices.Clone(c.children)
}

// HitTestOrder returns the drawables front to back, the order input
// handling should visit them in.
func (c *Container) HitTestOrder() []*Drawable {
	out := slices.Clone(c.children)
	slices.Reverse(out)
	return out
}
