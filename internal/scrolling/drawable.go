package scrolling

import "github.com/NicholasChin28/osu/internal/timing"

// Drawable is a hit object placed in a Container
type Drawable struct {
	HitObject timing.HitObject

	// Size is the absolute draw size, independent of time
	Size timing.Vec2

	// depth orders drawables that start at the same time.
	// Higher depth is further back.
	depth float32

	childID uint64
	parent  *Container
}

// NewDrawable creates a drawable sized from the hit object's layout size
func NewDrawable(obj timing.HitObject) *Drawable {
	return &Drawable{
		HitObject: obj,
		Size:      obj.Size(),
	}
}

func (d *Drawable) Depth() float32 {
	return d.depth
}

// SetDepth changes the tie-break depth. A contained drawable is moved to
// its new position in the parent's order.
func (d *Drawable) SetDepth(depth float32) {
	if d.parent != nil {
		d.parent.ChangeChildDepth(d, depth)
		return
	}
	d.depth = depth
}

func (d *Drawable) StartTime() float64 {
	return d.HitObject.StartTime
}

func (d *Drawable) EndTime() float64 {
	return d.HitObject.End()
}

// ChildID is the insertion sequence number inside the current container.
// Zero means the drawable is not contained.
func (d *Drawable) ChildID() uint64 {
	return d.childID
}

func (d *Drawable) Parent() *Container {
	return d.parent
}
