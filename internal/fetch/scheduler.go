package fetch

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// ErrInactive is returned by TriggerNow on a scheduler that is not
// currently activated.
var ErrInactive = errors.New("fetch: scheduler inactive")

// Startable is the lifecycle surface the scheduler drives. Both Unit
// and Group satisfy it.
type Startable interface {
	Start(ctx context.Context) error
	Stop()
}

// SchedulerConfig holds the immutable schedule settings.
type SchedulerConfig struct {
	Interval  time.Duration // <= 0 disables the periodic refresh
	AutoStart bool          // refresh once immediately on Activate
	Clock     Clock         // nil = system clock
}

// Scheduler re-runs one source on a fixed interval, with an out-of-band
// manual trigger. Its lifetime is tied to the consuming view: Activate
// on mount, Deactivate on unmount.
type Scheduler struct {
	source Startable
	cfg    SchedulerConfig
	clock  Clock

	mu     sync.Mutex
	active bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewScheduler wraps source with the given schedule. Nothing runs until
// Activate.
func NewScheduler(source Startable, cfg SchedulerConfig) *Scheduler {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{source: source, cfg: cfg, clock: clock}
}

// Activate arms the schedule. Calling it on an active scheduler is a
// no-op, so a re-mounting view never ends up with two timers. The
// context is handed to every refresh this scheduler dispatches.
func (s *Scheduler) Activate(ctx context.Context) {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.done = make(chan struct{})
	if s.cfg.Interval > 0 {
		s.wg.Add(1)
		go s.tickLoop(ctx, s.done)
	}
	s.mu.Unlock()

	if s.cfg.AutoStart {
		s.refresh(ctx)
	}
}

func (s *Scheduler) tickLoop(ctx context.Context, done chan struct{}) {
	defer s.wg.Done()
	ticker := s.clock.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			s.refresh(ctx)
		case <-done:
			return
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	if err := s.source.Start(ctx); err != nil {
		log.Printf("fetch: scheduled refresh: %v", err)
	}
}

// TriggerNow dispatches an extra refresh without touching the ticker:
// the next scheduled tick still fires at its original offset. Overlap
// with a scheduled refresh is fine, the newest request wins.
func (s *Scheduler) TriggerNow(ctx context.Context) error {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()
	if !active {
		return ErrInactive
	}
	return s.source.Start(ctx)
}

// Deactivate disarms the ticker, waits for the tick loop to exit, and
// stops the source. In-flight requests are not aborted; their results
// are discarded by the source's staleness check. Idempotent.
func (s *Scheduler) Deactivate() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
	s.source.Stop()
}
