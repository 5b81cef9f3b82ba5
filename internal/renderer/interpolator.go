package renderer

import (
	"slices"

	"github.com/NicholasChin28/osu/internal/engine"
)

// FrameAt calculates the layout at a given time by interpolating between
// the surrounding frames. Frames must be sorted by time.
func FrameAt(frames []engine.Frame, currentTime float64) engine.Frame {
	if len(frames) == 0 {
		return engine.Frame{Time: currentTime}
	}

	// If before first frame, use first frame
	if currentTime <= frames[0].Time {
		return frames[0]
	}

	// If after last frame, use last frame
	if currentTime >= frames[len(frames)-1].Time {
		return frames[len(frames)-1]
	}

	// Find surrounding frames
	i, _ := slices.BinarySearchFunc(frames, currentTime, func(f engine.Frame, t float64) int {
		switch {
		case f.Time < t:
			return -1
		case f.Time > t:
			return 1
		}
		return 0
	})
	if frames[i].Time == currentTime {
		return frames[i]
	}
	prev, next := frames[i-1], frames[i]

	timeDelta := next.Time - prev.Time
	if timeDelta == 0 {
		return next
	}
	return InterpolateFrames(prev, next, (currentTime-prev.Time)/timeDelta)
}

// InterpolateFrames blends two frames of the same session. Scrolling is
// linear in time, so positions are interpolated linearly. Objects missing
// from b keep their position in a.
func InterpolateFrames(a, b engine.Frame, t float64) engine.Frame {
	t = clamp01(t)

	out := engine.Frame{
		Index:        a.Index,
		Time:         lerp(a.Time, b.Time, t),
		Axes:         a.Axes,
		Adjustments:  make([]engine.AdjustmentState, len(a.Adjustments)),
		HitTestOrder: slices.Clone(a.HitTestOrder),
	}

	for i, adj := range a.Adjustments {
		next := adj
		if i < len(b.Adjustments) && b.Adjustments[i].ControlPoint == adj.ControlPoint {
			next = b.Adjustments[i]
		}

		blended := adj
		blended.Offset = lerp(adj.Offset, next.Offset, t)
		blended.Objects = make([]engine.ObjectState, len(adj.Objects))

		positions := make(map[string]float64, len(next.Objects))
		for _, o := range next.Objects {
			positions[o.ID] = o.Position
		}
		for j, o := range adj.Objects {
			if p, ok := positions[o.ID]; ok {
				o.Position = lerp(o.Position, p, t)
			}
			blended.Objects[j] = o
		}
		out.Adjustments[i] = blended
	}

	return out
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// easeInOutCubic applies smooth easing function
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
