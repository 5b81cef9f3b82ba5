package scrolling

import "github.com/NicholasChin28/osu/internal/timing"

// ComputeExtent returns the length along the scroll axes, in time units,
// that encloses every drawable relative to anchor.
//
// The furthest end time gives the base duration. Drawables also have an
// absolute size that does not scale with time, so the largest of them is
// converted into an extra duration using the container's own absolute
// size (selfExtent). This over-estimates slightly near the far edge but
// never under-estimates, which keeps partially visible objects from being
// masked away.
//
// A selfExtent <= 0 means the container has not been laid out yet; the
// unscaled base duration is returned.
func ComputeExtent(children []*Drawable, anchor float64, axes timing.Axes, selfExtent float64) float64 {
	if len(children) == 0 {
		return 0
	}

	furthest := children[0].EndTime()
	maxAbsolute := 0.0
	for _, c := range children {
		if end := c.EndTime(); end > furthest {
			furthest = end
		}
		if s := c.Size.Along(axes); s > maxAbsolute {
			maxAbsolute = s
		}
	}

	base := furthest - anchor

	// A single object right at the anchor would collapse the container
	if base == 0 {
		base = 1
	}

	// Scaling a negative base (everything before the anchor) would push it
	// further below the furthest end time.
	if selfExtent <= 0 || base < 0 {
		return base
	}

	return base * (1 + maxAbsolute/selfExtent)
}

// cached is a memoized value with an explicit validity flag
type cached struct {
	value float64
	valid bool
}

func (c *cached) invalidate() {
	c.valid = false
}

func (c *cached) set(v float64) float64 {
	c.value = v
	c.valid = true
	return v
}
