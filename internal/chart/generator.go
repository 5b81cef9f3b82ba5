package chart

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/NicholasChin28/osu/internal/timing"
)

// Generator builds procedural charts for previews and load tests
type Generator struct {
	ObjectWidth  float64
	ObjectHeight float64
	MinSpacing   float64 // Minimum gap between objects (ms)
	MaxSpacing   float64 // Maximum gap between objects (ms)
	HoldRatio    float64 // Share of objects that are holds, 0.0-1.0
	SpeedChanges int     // Number of control points after the first
	Seed         int64
}

// NewGenerator creates a new Generator with default settings
func NewGenerator(seed int64) *Generator {
	return &Generator{
		ObjectWidth:  64,
		ObjectHeight: 24,
		MinSpacing:   100,
		MaxSpacing:   600,
		HoldRatio:    0.2,
		SpeedChanges: 3,
		Seed:         seed,
	}
}

// Generate creates a chart with count objects spread over duration ms
func (g *Generator) Generate(title string, count int, duration float64) (*Chart, error) {
	if count <= 0 {
		return nil, fmt.Errorf("object count must be positive, got %d", count)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %.2f", duration)
	}

	r := rand.New(rand.NewSource(g.Seed))

	spacing := g.calculateSpacing(duration, count)
	objects := g.generateObjects(r, count, spacing)
	points := g.generateControlPoints(r, duration)

	c := &Chart{
		Version:          Version,
		Title:            title,
		Axes:             timing.AxisY.String(),
		VisibleTimeRange: 1000,
		Points:           points,
		HitObjects:       objects,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// calculateSpacing determines the average gap between object starts
func (g *Generator) calculateSpacing(duration float64, count int) float64 {
	// Leave a lead-in before the first object
	leadIn := 1000.0
	available := duration - leadIn
	if available <= 0 {
		available = duration
	}

	spacing := available / float64(count)

	if spacing < g.MinSpacing {
		spacing = g.MinSpacing
	}
	if spacing > g.MaxSpacing {
		spacing = g.MaxSpacing
	}

	return spacing
}

func (g *Generator) generateObjects(r *rand.Rand, count int, spacing float64) []timing.HitObject {
	objects := make([]timing.HitObject, 0, count)
	current := 1000.0

	for i := 0; i < count; i++ {
		id := fmt.Sprintf("obj_%d", i+1)
		start := math.Round(current)

		if r.Float64() < g.HoldRatio {
			length := math.Round(spacing * (0.5 + r.Float64()*1.5))
			objects = append(objects, timing.Hold(id, start, start+length, g.ObjectWidth, g.ObjectHeight))
		} else {
			objects = append(objects, timing.Instant(id, start, g.ObjectWidth, g.ObjectHeight))
		}

		// Jitter +/-25% around the average, snapped to 1/4 of the spacing
		step := spacing * (0.75 + r.Float64()*0.5)
		step = math.Max(spacing/4, math.Round(step/(spacing/4))*(spacing/4))
		current += step
	}

	return objects
}

func (g *Generator) generateControlPoints(r *rand.Rand, duration float64) []timing.ControlPoint {
	points := []timing.ControlPoint{timing.DefaultControlPoint()}
	if g.SpeedChanges <= 0 {
		return points
	}

	times := make([]float64, g.SpeedChanges)
	for i := range times {
		times[i] = math.Round(duration * (0.1 + r.Float64()*0.85))
	}
	sort.Float64s(times)

	for _, t := range times {
		// Multipliers between 0.5x and 2x in 0.25 steps
		m := 0.5 + float64(r.Intn(7))*0.25
		points = append(points, timing.ControlPoint{StartTime: t, Multiplier: m})
	}

	return points
}
