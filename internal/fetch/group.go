package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source is the type-erased view of a Unit that a Group composes.
type Source interface {
	Startable
	Name() string
	Snapshot() SourceState
	WaitSettled(ctx context.Context) error
	AddListener(fn func()) func()
}

// GroupConfig holds optional Group settings.
type GroupConfig struct {
	Clock Clock // nil = system clock
}

// GroupSnapshot is the derived view over a group's sources. It is
// recomputed on every call, never stored, so it cannot drift from the
// constituent unit states.
type GroupSnapshot struct {
	Name          string
	Overall       Phase
	Sources       []SourceState
	Failing       []string  // names of sources currently in error
	LastRefreshed time.Time // zero until a refresh cycle fully settles
}

// Group aggregates the units a view displays together. Each source
// keeps its own state; the group only fans refreshes out and derives
// the combined view. One failing source never clears another's value.
type Group struct {
	name    string
	sources []Source
	clock   Clock

	mu            sync.Mutex
	stopped       bool
	lastRefreshed time.Time
}

// NewGroup composes the given sources under one name.
func NewGroup(name string, sources []Source, conf ...GroupConfig) *Group {
	g := &Group{name: name, sources: sources, clock: SystemClock()}
	if len(conf) > 0 && conf[0].Clock != nil {
		g.clock = conf[0].Clock
	}
	return g
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// RefreshAll dispatches a refresh on every source and watches, in the
// background, for the moment all of them have settled; that moment is
// recorded as LastRefreshed. Sources that fail to start (already
// stopped) are skipped; the first such error is returned for logging.
func (g *Group) RefreshAll(ctx context.Context) error {
	var firstErr error
	for _, src := range g.sources {
		if err := src.Start(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	go g.watchSettle(ctx)
	return firstErr
}

// Start makes Group satisfy Startable so one scheduler can drive a
// whole view.
func (g *Group) Start(ctx context.Context) error { return g.RefreshAll(ctx) }

// Stop stops every source. Idempotent.
func (g *Group) Stop() {
	g.mu.Lock()
	g.stopped = true
	g.mu.Unlock()
	for _, src := range g.sources {
		src.Stop()
	}
}

func (g *Group) watchSettle(ctx context.Context) {
	if err := g.WaitSettled(ctx); err != nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		// Teardown released the waiters; that is not a refresh.
		return
	}
	g.lastRefreshed = g.clock.Now()
}

// WaitSettled blocks until every source has settled its newest request,
// or ctx ends.
func (g *Group) WaitSettled(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, src := range g.sources {
		eg.Go(func() error { return src.WaitSettled(ctx) })
	}
	return eg.Wait()
}

// LastRefreshed returns when a refresh cycle last settled in full, or
// the zero time if that has not happened yet.
func (g *Group) LastRefreshed() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastRefreshed
}

// Snapshot derives the combined view. The overall phase is Loading only
// while the first cycle is still unresolved; after any source has data,
// a refresh in progress keeps showing the data it already has.
func (g *Group) Snapshot() GroupSnapshot {
	snap := GroupSnapshot{
		Name:          g.name,
		LastRefreshed: g.LastRefreshed(),
		Sources:       make([]SourceState, 0, len(g.sources)),
	}

	var anyLoading, anyError, anySucceeded bool
	allIdle := true
	for _, src := range g.sources {
		st := src.Snapshot()
		snap.Sources = append(snap.Sources, st)
		if st.Phase != PhaseIdle {
			allIdle = false
		}
		if st.Succeeded() {
			anySucceeded = true
		}
		switch st.Phase {
		case PhaseLoading:
			anyLoading = true
		case PhaseError:
			anyError = true
			snap.Failing = append(snap.Failing, st.Name)
		}
	}

	switch {
	case anyLoading && !anySucceeded:
		snap.Overall = PhaseLoading
	case anyError:
		snap.Overall = PhaseError
	case allIdle:
		snap.Overall = PhaseIdle
	default:
		snap.Overall = PhaseSuccess
	}
	return snap
}

// AddListener registers fn with every source and returns one function
// that removes all the registrations.
func (g *Group) AddListener(fn func()) func() {
	offs := make([]func(), 0, len(g.sources))
	for _, src := range g.sources {
		offs = append(offs, src.AddListener(fn))
	}
	return func() {
		for _, off := range offs {
			off()
		}
	}
}
