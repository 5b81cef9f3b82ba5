package engine

import (
	"github.com/NicholasChin28/osu/internal/timing"
)

// Frame is an immutable snapshot of one update pass. Positions and lengths
// are in playfield units: 0 is the judgement line, 1 the far edge.
type Frame struct {
	Index        int               `json:"index" yaml:"index"`
	Time         float64           `json:"time" yaml:"time"`
	Axes         string            `json:"axes" yaml:"axes"`
	Adjustments  []AdjustmentState `json:"adjustments" yaml:"adjustments"`
	HitTestOrder []string          `json:"hit_test_order" yaml:"hit_test_order"`
}

// AdjustmentState is one speed adjustment's container at the frame time
type AdjustmentState struct {
	ControlPoint timing.ControlPoint `json:"control_point" yaml:"control_point"`
	Offset       float64             `json:"offset" yaml:"offset"`
	Length       float64             `json:"length" yaml:"length"`
	Extent       float64             `json:"extent" yaml:"extent"` // ms
	Size         timing.Vec2         `json:"size" yaml:"size"`
	ChildOffset  timing.Vec2         `json:"child_offset" yaml:"child_offset"`
	Objects      []ObjectState       `json:"objects" yaml:"objects"` // draw order, back to front
}

type ObjectState struct {
	ID        string      `json:"id" yaml:"id"`
	StartTime float64     `json:"start_time" yaml:"start_time"`
	EndTime   float64     `json:"end_time" yaml:"end_time"`
	Position  float64     `json:"position" yaml:"position"`
	Length    float64     `json:"length" yaml:"length"`
	Size      timing.Vec2 `json:"size" yaml:"size"`
}

// ObjectCount is the number of objects in the frame
func (f Frame) ObjectCount() int {
	n := 0
	for _, a := range f.Adjustments {
		n += len(a.Objects)
	}
	return n
}

// Object finds an object by id
func (f Frame) Object(id string) (ObjectState, bool) {
	for _, a := range f.Adjustments {
		for _, o := range a.Objects {
			if o.ID == id {
				return o, true
			}
		}
	}
	return ObjectState{}, false
}

func (s *Session) snapshot(now float64) Frame {
	adjustments := s.collection.Adjustments()

	frame := Frame{
		Time:        now,
		Axes:        s.collection.Axes().String(),
		Adjustments: make([]AdjustmentState, 0, len(adjustments)),
	}

	for _, a := range adjustments {
		c := a.Container()
		cp := c.ControlPoint()

		state := AdjustmentState{
			ControlPoint: cp,
			Offset:       a.Offset(now),
			Length:       a.Length(),
			Extent:       c.Duration(),
			Size:         c.Size(),
			ChildOffset:  c.RelativeChildOffset(),
		}
		for _, d := range c.Children() {
			state.Objects = append(state.Objects, ObjectState{
				ID:        d.HitObject.ID,
				StartTime: d.StartTime(),
				EndTime:   d.EndTime(),
				Position:  a.PositionOf(d, now),
				Length:    (d.EndTime() - d.StartTime()) * cp.Multiplier / c.VisibleTimeRange(),
				Size:      d.Size,
			})
		}
		frame.Adjustments = append(frame.Adjustments, state)
	}

	// Adjustments draw latest control point first, so the front-most
	// objects are in the earliest adjustment.
	for i := len(adjustments) - 1; i >= 0; i-- {
		for _, d := range adjustments[i].Container().HitTestOrder() {
			frame.HitTestOrder = append(frame.HitTestOrder, d.HitObject.ID)
		}
	}

	return frame
}
