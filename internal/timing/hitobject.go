package timing

import (
	"errors"
	"fmt"
)

var ErrInvalidObject = errors.New("invalid hit object")

// HitObject is a timed object on the playfield. Times are in milliseconds,
// Width and Height are the absolute on-screen size decided by layout.
// EndTime is nil for instant objects; the end time is then the start time.
type HitObject struct {
	ID        string   `yaml:"id" json:"id"`
	StartTime float64  `yaml:"time" json:"time"`
	EndTime   *float64 `yaml:"end_time,omitempty" json:"end_time,omitempty"`
	Width     float64  `yaml:"width" json:"width"`
	Height    float64  `yaml:"height" json:"height"`
}

// Instant creates a zero-duration object
func Instant(id string, t, w, h float64) HitObject {
	return HitObject{ID: id, StartTime: t, Width: w, Height: h}
}

// Hold creates an object spanning [t, end]
func Hold(id string, t, end, w, h float64) HitObject {
	e := end
	return HitObject{ID: id, StartTime: t, EndTime: &e, Width: w, Height: h}
}

// End returns the time the object stops extending along the timeline
func (o HitObject) End() float64 {
	if o.EndTime != nil {
		return *o.EndTime
	}
	return o.StartTime
}

func (o HitObject) Duration() float64 {
	return o.End() - o.StartTime
}

func (o HitObject) Size() Vec2 {
	return Vec2{X: o.Width, Y: o.Height}
}

func (o HitObject) Validate() error {
	if o.EndTime != nil && *o.EndTime < o.StartTime {
		return fmt.Errorf("%w: %q ends at %.2f before it starts at %.2f", ErrInvalidObject, o.ID, *o.EndTime, o.StartTime)
	}
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("%w: %q has negative size %.2fx%.2f", ErrInvalidObject, o.ID, o.Width, o.Height)
	}
	return nil
}
