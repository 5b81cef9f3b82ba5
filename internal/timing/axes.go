package timing

import (
	"fmt"
	"strings"
)

// Axes is the set of axes a container scrolls along
type Axes uint8

const (
	AxesNone Axes = 0
	AxisX    Axes = 1 << 0
	AxisY    Axes = 1 << 1
	AxesBoth      = AxisX | AxisY
)

func (a Axes) Has(other Axes) bool {
	return a&other != 0
}

func (a Axes) String() string {
	switch a {
	case AxesNone:
		return "none"
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxesBoth:
		return "both"
	default:
		return fmt.Sprintf("Axes(%d)", uint8(a))
	}
}

func ParseAxes(s string) (Axes, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return AxesNone, nil
	case "x", "horizontal":
		return AxisX, nil
	case "y", "vertical", "":
		return AxisY, nil
	case "both", "xy":
		return AxesBoth, nil
	default:
		return AxesNone, fmt.Errorf("unknown axes: %s", s)
	}
}

// Vec2 is a size or offset in draw space
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Along returns the component the scroll axes select: X if scrolling
// horizontally, Y otherwise.
func (v Vec2) Along(a Axes) float64 {
	if a.Has(AxisX) {
		return v.X
	}
	return v.Y
}
