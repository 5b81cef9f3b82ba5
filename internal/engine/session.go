package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/NicholasChin28/osu/internal/chart"
	"github.com/NicholasChin28/osu/internal/config"
	"github.com/NicholasChin28/osu/internal/metrics"
	"github.com/NicholasChin28/osu/internal/scrolling"
	"github.com/NicholasChin28/osu/internal/timing"
)

// DefaultPostTime keeps objects around after their end time so late input
// can still hit them.
const DefaultPostTime = 500.0

var ErrUnknownObject = errors.New("unknown hit object")

// Mutation changes session state. Mutations submitted with Enqueue run on
// the update pass, before any extent is read.
type Mutation func(s *Session) error

type scheduled struct {
	drawable *scrolling.Drawable
	admitAt  float64
}

// Session owns a scrolling collection and decides when hit objects enter
// and leave it. It is the single update pass the collection is driven by.
type Session struct {
	Config  *config.Config
	log     *slog.Logger
	metrics *metrics.Metrics

	collection *scrolling.Collection
	postTime   float64

	// waiting to scroll into view, sorted by admitAt
	upcoming []scheduled
	waiting  map[string]struct{} // IDs in upcoming
	alive    map[string]*scrolling.Drawable

	mu      sync.Mutex
	queue   []Mutation
	applied int

	recomputes int
	frames     int
}

// NewSession builds a session for a chart. m may be nil.
func NewSession(cfg *config.Config, c *chart.Chart, log *slog.Logger, m *metrics.Metrics) (*Session, error) {
	points, err := c.ControlPoints()
	if err != nil {
		return nil, fmt.Errorf("control points: %w", err)
	}

	axes := c.ScrollAxes()
	if cfg.Axes != "" {
		if axes, err = timing.ParseAxes(cfg.Axes); err != nil {
			return nil, err
		}
	}

	collection := scrolling.NewCollectionFromControlPoints(points, axes)

	visible := c.VisibleTimeRange
	if cfg.VisibleTimeRange > 0 {
		visible = cfg.VisibleTimeRange
	}
	collection.SetVisibleTimeRange(visible)
	collection.SetDrawSize(timing.Vec2{X: float64(cfg.Width), Y: float64(cfg.Height)})

	postTime := cfg.PostTime
	if postTime <= 0 {
		postTime = DefaultPostTime
	}

	s := &Session{
		Config:     cfg,
		log:        log,
		metrics:    m,
		collection: collection,
		postTime:   postTime,
		waiting:    make(map[string]struct{}),
		alive:      make(map[string]*scrolling.Drawable),
	}

	for _, obj := range c.Objects() {
		if err := s.Schedule(obj); err != nil {
			return nil, err
		}
	}
	if m != nil {
		m.SetAdjustments(len(collection.Adjustments()))
	}

	log.Debug("session created",
		"objects", len(s.upcoming),
		"adjustments", len(collection.Adjustments()),
		"axes", axes.String(),
		"visible_time_range", collection.VisibleTimeRange())

	return s, nil
}

func (s *Session) Collection() *scrolling.Collection {
	return s.collection
}

// Schedule registers a hit object. It is added to its container once its
// start time is within the preempt window of its speed adjustment.
// Call it from the update pass or through Enqueue.
func (s *Session) Schedule(obj timing.HitObject) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	if _, ok := s.alive[obj.ID]; ok {
		return fmt.Errorf("hit object %q is already alive", obj.ID)
	}
	if _, ok := s.waiting[obj.ID]; ok {
		return fmt.Errorf("hit object %q is already scheduled", obj.ID)
	}

	d := scrolling.NewDrawable(obj)
	a, err := s.collection.AdjustmentFor(d)
	if err != nil {
		return err
	}
	item := scheduled{drawable: d, admitAt: obj.StartTime - a.Preempt()}

	i := sort.Search(len(s.upcoming), func(i int) bool {
		return s.upcoming[i].admitAt > item.admitAt
	})
	s.upcoming = slices.Insert(s.upcoming, i, item)
	s.waiting[obj.ID] = struct{}{}
	return nil
}

// Unschedule drops a hit object wherever it is: waiting or alive
func (s *Session) Unschedule(id string) error {
	if d, ok := s.alive[id]; ok {
		s.collection.Remove(d)
		delete(s.alive, id)
		return nil
	}
	if _, ok := s.waiting[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObject, id)
	}
	for i, item := range s.upcoming {
		if item.drawable.HitObject.ID == id {
			s.upcoming = slices.Delete(s.upcoming, i, i+1)
			delete(s.waiting, id)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownObject, id)
}

// Enqueue hands a mutation to the update pass. Safe for concurrent use.
func (s *Session) Enqueue(m Mutation) {
	s.mu.Lock()
	s.queue = append(s.queue, m)
	s.mu.Unlock()
}

// drain applies queued mutations in submission order
func (s *Session) drain() int {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, m := range queue {
		if err := m(s); err != nil {
			s.log.Warn("mutation rejected", "err", err)
		}
	}
	return len(queue)
}

// admit moves objects whose preempt window has opened into the collection
func (s *Session) admit(now float64) {
	n := 0
	for n < len(s.upcoming) && s.upcoming[n].admitAt <= now {
		d := s.upcoming[n].drawable
		delete(s.waiting, d.HitObject.ID)
		if err := s.collection.Add(d); err != nil {
			s.log.Warn("admit failed", "id", d.HitObject.ID, "err", err)
		} else {
			s.alive[d.HitObject.ID] = d
		}
		n++
	}
	s.upcoming = s.upcoming[n:]
}

// expire removes objects whose post time has passed. Objects are never
// removed just because they scrolled off screen.
func (s *Session) expire(now float64) {
	for id, d := range s.alive {
		if now > d.EndTime()+s.postTime {
			s.collection.Remove(d)
			delete(s.alive, id)
		}
	}
}

// Step runs one update pass at playback time now (ms)
func (s *Session) Step(now float64) Frame {
	mutations := s.drain()
	s.admit(now)
	s.expire(now)

	s.collection.Update()

	frame := s.snapshot(now)
	frame.Index = s.frames
	s.frames++

	recomputes := s.totalRecomputes()
	if s.metrics != nil {
		s.metrics.IncFrames()
		s.metrics.AddMutations(mutations)
		s.metrics.AddExtentRecomputes(recomputes - s.recomputes)
		s.metrics.SetAliveObjects(len(s.alive))
	}
	s.recomputes = recomputes
	s.applied += mutations

	return frame
}

func (s *Session) totalRecomputes() int {
	total := 0
	for _, a := range s.collection.Adjustments() {
		total += a.Container().Recomputations()
	}
	return total
}

// Run steps from..to (inclusive) at fps and returns every frame
func (s *Session) Run(ctx context.Context, from, to float64, fps int) ([]Frame, Stats, error) {
	if fps <= 0 {
		return nil, Stats{}, fmt.Errorf("fps must be positive, got %d", fps)
	}
	if to < from {
		return nil, Stats{}, fmt.Errorf("end time %.2f is before start time %.2f", to, from)
	}

	started := time.Now()
	recomputesBefore := s.totalRecomputes()
	interval := 1000.0 / float64(fps)
	// tolerate rounding so the end time itself is stepped
	count := int(math.Floor((to-from)/interval+1e-9)) + 1

	frames := make([]Frame, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return frames, Stats{}, err
		}
		frames = append(frames, s.Step(from+float64(i)*interval))
	}

	stats := Stats{
		Frames:     len(frames),
		Elapsed:    time.Since(started),
		Recomputes: s.totalRecomputes() - recomputesBefore,
		Mutations:  s.applied,
	}
	s.log.Info("playback finished", "frames", stats.Frames, "elapsed", stats.Elapsed, "extent_recomputes", stats.Recomputes)

	return frames, stats, nil
}

// Alive returns the number of objects currently in containers
func (s *Session) Alive() int {
	return len(s.alive)
}

// Pending returns the number of objects waiting to scroll into view
func (s *Session) Pending() int {
	return len(s.upcoming)
}
