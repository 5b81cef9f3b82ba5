package renderer

import (
	"image"
	"math"

	"github.com/NicholasChin28/osu/internal/engine"
	"github.com/NicholasChin28/osu/internal/timing"
)

// JudgementInset is the distance in pixels between the canvas edge and the
// judgement line.
const JudgementInset = 48

// Canvas maps playfield units onto a pixel canvas. Position 0 is the
// judgement line and 1 the far edge; on Y objects fall towards the bottom,
// on X they travel towards the left.
type Canvas struct {
	Width  int
	Height int
	Axes   timing.Axes
}

// travel is the number of pixels one playfield unit spans along axis
func (c Canvas) travel(axis timing.Axes) float64 {
	if axis == timing.AxisX {
		return float64(c.Width - JudgementInset)
	}
	return float64(c.Height - JudgementInset)
}

// JudgementLine returns the line objects are hit on
func (c Canvas) JudgementLine() image.Rectangle {
	switch {
	case c.Axes.Has(timing.AxisY):
		y := c.Height - JudgementInset
		return image.Rect(0, y-1, c.Width, y+1)
	case c.Axes.Has(timing.AxisX):
		return image.Rect(JudgementInset-1, 0, JudgementInset+1, c.Height)
	}
	return image.Rectangle{}
}

// Place returns the pixel rectangle of an object. The leading edge sits on
// the object's position and a hold stretches back by its length. On an
// axis that does not scroll the object is centred.
func (c Canvas) Place(o engine.ObjectState) image.Rectangle {
	var r image.Rectangle

	if c.Axes.Has(timing.AxisX) {
		x := JudgementInset + o.Position*c.travel(timing.AxisX)
		tail := x + o.Length*c.travel(timing.AxisX)
		r.Min.X = round(x)
		r.Max.X = round(math.Max(tail, x+o.Size.X))
	} else {
		r.Min.X = round((float64(c.Width) - o.Size.X) / 2)
		r.Max.X = r.Min.X + round(o.Size.X)
	}

	if c.Axes.Has(timing.AxisY) {
		y := float64(c.Height-JudgementInset) - o.Position*c.travel(timing.AxisY)
		tail := y - o.Length*c.travel(timing.AxisY)
		r.Max.Y = round(y)
		r.Min.Y = round(math.Min(tail, y-o.Size.Y))
	} else {
		r.Min.Y = round((float64(c.Height) - o.Size.Y) / 2)
		r.Max.Y = r.Min.Y + round(o.Size.Y)
	}

	return r
}

// Visible reports whether r overlaps the canvas
func (c Canvas) Visible(r image.Rectangle) bool {
	return r.Overlaps(image.Rect(0, 0, c.Width, c.Height))
}

func round(v float64) int {
	return int(math.Round(v))
}
