// Package inspect serves a running session over HTTP: the latest layout
// frame, Prometheus metrics, and a way to schedule objects while it plays.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/NicholasChin28/osu/internal/engine"
	"github.com/NicholasChin28/osu/internal/logger"
	"github.com/NicholasChin28/osu/internal/metrics"
	"github.com/NicholasChin28/osu/internal/timing"
)

const shutdownTimeout = 10 * time.Second

// Server drives a session in real time. Only the ticker goroutine touches
// the session; handlers read the last frame and submit mutations.
type Server struct {
	session *engine.Session
	metrics *metrics.Metrics
	log     *slog.Logger

	// playback time at start, in ms
	from    float64
	started time.Time
	now     func() time.Time

	mu   sync.RWMutex
	last engine.Frame
	ok   bool
}

type Option func(*Server)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithStartTime starts playback at the given chart time (ms)
func WithStartTime(ms float64) Option {
	return func(s *Server) { s.from = ms }
}

// New creates a server. m may be nil, in which case /metrics is not mounted.
func New(session *engine.Session, m *metrics.Metrics, log *slog.Logger, opts ...Option) *Server {
	s := &Server{session: session, metrics: m, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.started = s.now()
	return s
}

// PlaybackTime is the chart time the clock currently points at
func (s *Server) PlaybackTime() float64 {
	return s.from + float64(s.now().Sub(s.started))/float64(time.Millisecond)
}

// Tick runs one update pass at the current playback time. Call it from a
// single goroutine.
func (s *Server) Tick() engine.Frame {
	f := s.session.Step(s.PlaybackTime())

	s.mu.Lock()
	s.last = f
	s.ok = true
	s.mu.Unlock()
	return f
}

// Last returns the most recent frame
func (s *Server) Last() (engine.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.ok
}

// Loop ticks at fps until ctx is done
func (s *Server) Loop(ctx context.Context, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Tick()
		}
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(logger.RequestLogger(s.log))

	r.Get("/healthz", s.health)
	r.Get("/layout", s.layout)
	if s.metrics != nil {
		r.Get("/metrics", s.metrics.Handler().ServeHTTP)
	}
	r.Post("/objects", s.scheduleObject)
	r.Delete("/objects/{id}", s.unscheduleObject)
	return r
}

// ListenAndServe runs the ticker and the HTTP server until ctx is done,
// then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context, addr string, fps int) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Loop(ctx, fps)
	})
	g.Go(func() error {
		s.log.Info("inspect server starting", "addr", addr, "fps", fps)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down inspect server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	f, ok := s.Last()
	if !ok {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f); err != nil {
		s.log.Error("encode layout failed", slog.String("error", err.Error()))
	}
}

// scheduleObject handles POST /objects.
// Body: {"id": "late_1", "time": 5000, "end_time": 5400, "width": 64, "height": 24}
func (s *Server) scheduleObject(w http.ResponseWriter, r *http.Request) {
	var obj timing.HitObject
	if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
		s.log.Debug("invalid object body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if obj.ID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	if err := obj.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.session.Enqueue(func(s *engine.Session) error {
		return s.Schedule(obj)
	})
	w.WriteHeader(http.StatusAccepted)
}

// unscheduleObject handles DELETE /objects/{id}
func (s *Server) unscheduleObject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.session.Enqueue(func(s *engine.Session) error {
		return s.Unschedule(id)
	})
	w.WriteHeader(http.StatusAccepted)
}
