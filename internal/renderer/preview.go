package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/NicholasChin28/osu/internal/engine"
	"github.com/NicholasChin28/osu/internal/system"
	"github.com/NicholasChin28/osu/internal/timing"
)

// glowWindow is how close to the judgement line (playfield units) an
// object starts lighting up
const glowWindow = 0.1

var (
	background = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	lineColor  = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	textColor  = color.RGBA{R: 200, G: 200, B: 200, A: 255}

	// one colour per speed adjustment, latest control point first
	palette = []color.RGBA{
		{R: 255, G: 102, B: 170, A: 255},
		{R: 102, G: 204, B: 255, A: 255},
		{R: 255, G: 204, B: 102, A: 255},
		{R: 153, G: 255, B: 153, A: 255},
	}
)

// PreviewRenderer draws frames as PNG images. The layout is drawn at the
// playfield size and scaled by Scale on output.
type PreviewRenderer struct {
	Width  int
	Height int
	Scale  float64

	log *slog.Logger
}

func NewPreviewRenderer(width, height int, scale float64, log *slog.Logger) *PreviewRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &PreviewRenderer{Width: width, Height: height, Scale: scale, log: log}
}

// OutputSize is the size of the images Render returns
func (r *PreviewRenderer) OutputSize() image.Point {
	return image.Pt(
		int(math.Max(1, math.Round(float64(r.Width)*r.Scale))),
		int(math.Max(1, math.Round(float64(r.Height)*r.Scale))),
	)
}

// Render draws one frame. Hand the image back with Release when done.
func (r *PreviewRenderer) Render(f engine.Frame) *image.RGBA {
	axes, err := timing.ParseAxes(f.Axes)
	if err != nil || axes == timing.AxesNone {
		axes = timing.AxisY
	}
	c := Canvas{Width: r.Width, Height: r.Height, Axes: axes}

	img := system.GetImage(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	draw.Draw(img, c.JudgementLine(), image.NewUniform(lineColor), image.Point{}, draw.Src)

	drawn := 0
	for i, adj := range f.Adjustments {
		base := palette[i%len(palette)]
		// back to front
		for _, o := range adj.Objects {
			rect := c.Place(o)
			if !c.Visible(rect) {
				continue
			}
			draw.Draw(img, rect, image.NewUniform(glow(base, o.Position)), image.Point{}, draw.Over)
			drawn++
		}
	}

	label(img, 8, 16, fmt.Sprintf("t=%.0fms", f.Time))
	label(img, 8, 30, fmt.Sprintf("objects %d/%d", drawn, f.ObjectCount()))

	if r.Scale == 1 {
		return img
	}

	size := r.OutputSize()
	out := system.GetImage(image.Rectangle{Max: size})
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	system.PutImage(img)
	return out
}

// Release returns an image from Render to the pool
func (r *PreviewRenderer) Release(img *image.RGBA) {
	system.PutImage(img)
}

// WriteFrame renders f and encodes it as PNG at path
func (r *PreviewRenderer) WriteFrame(f engine.Frame, path string) error {
	img := r.Render(f)
	defer r.Release(img)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// RenderFrames writes every frame to dir as frame_NNNNN.png using at most
// workers goroutines, and returns the paths in frame order.
func (r *PreviewRenderer) RenderFrames(ctx context.Context, frames []engine.Frame, dir string, workers int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	workers = system.RecommendedWorkers(workers)
	r.log.Info("rendering preview", "frames", len(frames), "workers", workers, "dir", dir)

	paths := make([]string, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, f := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", f.Index))
			if err := r.WriteFrame(f, path); err != nil {
				return fmt.Errorf("frame %d: %w", f.Index, err)
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// glow lightens c as the object approaches the judgement line
func glow(c color.RGBA, position float64) color.RGBA {
	d := math.Abs(position)
	if d >= glowWindow {
		return c
	}
	k := easeInOutCubic(1-d/glowWindow) * 0.6
	mix := func(v uint8) uint8 {
		return uint8(lerp(float64(v), 255, k))
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}

func label(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
