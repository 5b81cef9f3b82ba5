package chart

import (
	"errors"
	"fmt"
	"sort"

	"github.com/NicholasChin28/osu/internal/timing"
)

const Version = "1.0"

var ErrInvalidChart = errors.New("invalid chart")

// Chart is a complete playable timeline: speed segments and hit objects
type Chart struct {
	Version          string                `yaml:"version"`
	Title            string                `yaml:"title,omitempty"`
	Axes             string                `yaml:"axes"`                         // x, y, both, none
	VisibleTimeRange float64               `yaml:"visible_time_range,omitempty"` // ms shown along the scroll axis
	Points           []timing.ControlPoint `yaml:"control_points"`
	HitObjects       []timing.HitObject    `yaml:"hit_objects"`
}

// Validate checks the chart before it is handed to a session
func (c *Chart) Validate() error {
	if _, err := timing.ParseAxes(c.Axes); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidChart, err)
	}
	if c.VisibleTimeRange < 0 {
		return fmt.Errorf("%w: negative visible time range %.2f", ErrInvalidChart, c.VisibleTimeRange)
	}
	if _, err := timing.NewControlPointList(c.Points); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidChart, err)
	}

	seen := make(map[string]bool, len(c.HitObjects))
	for _, o := range c.HitObjects {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidChart, err)
		}
		if o.ID != "" {
			if seen[o.ID] {
				return fmt.Errorf("%w: duplicate hit object id %q", ErrInvalidChart, o.ID)
			}
			seen[o.ID] = true
		}
	}
	return nil
}

func (c *Chart) ScrollAxes() timing.Axes {
	axes, err := timing.ParseAxes(c.Axes)
	if err != nil {
		return timing.AxisY
	}
	return axes
}

// ControlPoints returns the chart's speed segments, sorted
func (c *Chart) ControlPoints() (*timing.ControlPointList, error) {
	if len(c.Points) == 0 {
		return timing.NewControlPointList([]timing.ControlPoint{timing.DefaultControlPoint()})
	}
	return timing.NewControlPointList(c.Points)
}

// Objects returns the hit objects sorted by start time. Objects without an
// ID get one from their position in the file, skipping IDs already taken.
func (c *Chart) Objects() []timing.HitObject {
	out := make([]timing.HitObject, len(c.HitObjects))
	copy(out, c.HitObjects)

	used := make(map[string]bool, len(out))
	for _, o := range out {
		if o.ID != "" {
			used[o.ID] = true
		}
	}
	for i := range out {
		if out[i].ID != "" {
			continue
		}
		n := i + 1
		id := fmt.Sprintf("obj_%d", n)
		for used[id] {
			n++
			id = fmt.Sprintf("obj_%d", n)
		}
		used[id] = true
		out[i].ID = id
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// Length is the end time of the last object
func (c *Chart) Length() float64 {
	end := 0.0
	for _, o := range c.HitObjects {
		if o.End() > end {
			end = o.End()
		}
	}
	return end
}
