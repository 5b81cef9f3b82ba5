package timing

import (
	"errors"
	"fmt"
	"sort"
)

var ErrNoControlPoints = errors.New("no control points")

// ControlPoint is a span of time with a constant scroll speed multiplier,
// starting at StartTime and lasting until the next control point.
type ControlPoint struct {
	StartTime  float64 `yaml:"time" json:"time"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

// DefaultControlPoint anchors at 0 with normal speed
func DefaultControlPoint() ControlPoint {
	return ControlPoint{StartTime: 0, Multiplier: 1}
}

// ControlPointList is an ordered read-only list of control points
type ControlPointList struct {
	points []ControlPoint
}

// NewControlPointList sorts the points by start time. A zero multiplier
// is treated as 1 (unset in chart files).
func NewControlPointList(points []ControlPoint) (*ControlPointList, error) {
	if len(points) == 0 {
		return nil, ErrNoControlPoints
	}

	sorted := make([]ControlPoint, len(points))
	copy(sorted, points)
	for i := range sorted {
		if sorted[i].Multiplier == 0 {
			sorted[i].Multiplier = 1
		}
		if sorted[i].Multiplier < 0 {
			return nil, fmt.Errorf("control point at %.2f: negative multiplier %.3f", sorted[i].StartTime, sorted[i].Multiplier)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	return &ControlPointList{points: sorted}, nil
}

func (l *ControlPointList) Len() int {
	return len(l.points)
}

// Points returns a copy of the points in ascending start time
func (l *ControlPointList) Points() []ControlPoint {
	out := make([]ControlPoint, len(l.points))
	copy(out, l.points)
	return out
}

// At returns the control point active at time t. Times before the first
// point use the first point.
func (l *ControlPointList) At(t float64) ControlPoint {
	i := sort.Search(len(l.points), func(i int) bool {
		return l.points[i].StartTime > t
	})
	if i == 0 {
		return l.points[0]
	}
	return l.points[i-1]
}
