// Package fetch coordinates the data flow between remote sources and
// the dashboard: one Unit per source owning an Idle/Loading/Success/
// Error state machine, a Scheduler that re-runs sources on an interval,
// and a Group that aggregates units displayed together.
//
// Requests are never aborted mid-flight. Every dispatch gets a fresh
// request id, and a completion is applied only while its id is still
// the unit's current one; anything older is discarded. That single
// check is what keeps late responses from clobbering newer state or
// resurrecting a torn-down view.
package fetch

import (
	"context"
	"errors"
	"sync"

	"github.com/projectcompass/spyglass/internal/fault"
)

// ErrStopped is returned by Start on a unit that was torn down. Hitting
// it means the caller's lifecycle wiring is wrong, not that the remote
// misbehaved.
var ErrStopped = errors.New("fetch: unit stopped")

// FetchFunc loads one payload from a remote source. Implementations
// own their timeouts; a timeout surfaces as an error to classify, not
// as machinery here.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Classifier maps a raw fetch error onto a Fault.
type Classifier func(error) *fault.Fault

// UnitConfig holds optional Unit settings.
type UnitConfig[T any] struct {
	Initial  T          // value reported before the first success
	Clock    Clock      // nil = system clock
	Classify Classifier // nil = fault.Classify
}

// Unit owns the fetch state for one remote source. All methods are safe
// for concurrent use. Only the unit itself mutates its State.
type Unit[T any] struct {
	name     string
	fn       FetchFunc[T]
	clock    Clock
	classify Classifier

	mu        sync.Mutex
	state     State[T]
	active    bool
	settled   chan struct{} // open while a request is in flight
	listeners map[int]func()
	nextID    int
}

// NewUnit creates an idle, active unit for the named source.
func NewUnit[T any](name string, fn FetchFunc[T], conf ...UnitConfig[T]) *Unit[T] {
	u := &Unit[T]{
		name:      name,
		fn:        fn,
		clock:     SystemClock(),
		classify:  fault.Classify,
		active:    true,
		settled:   make(chan struct{}),
		listeners: make(map[int]func()),
	}
	close(u.settled) // nothing in flight yet
	if len(conf) > 0 {
		c := conf[0]
		u.state.Value = c.Initial
		if c.Clock != nil {
			u.clock = c.Clock
		}
		if c.Classify != nil {
			u.classify = c.Classify
		}
	}
	return u
}

// Name returns the source name the unit was created with.
func (u *Unit[T]) Name() string { return u.name }

// Start dispatches a new request. The unit transitions to Loading
// immediately; the result is applied asynchronously if, and only if,
// this request is still the newest one when it completes. An in-flight
// older request is not aborted, just superseded.
func (u *Unit[T]) Start(ctx context.Context) error {
	u.mu.Lock()
	if !u.active {
		u.mu.Unlock()
		return ErrStopped
	}
	if u.state.Phase == PhaseLoading {
		// Supersede the in-flight request. Waiters re-check and pick
		// up the channel of the request dispatched below.
		close(u.settled)
	}
	u.state.RequestID++
	id := u.state.RequestID
	u.state.Phase = PhaseLoading
	u.settled = make(chan struct{})
	fn := u.fn
	u.mu.Unlock()

	u.notify()

	go func() {
		value, err := fn(ctx)
		u.finish(id, value, err)
	}()
	return nil
}

// Refetch dispatches a fresh request regardless of the current phase.
// The newest request always wins.
func (u *Unit[T]) Refetch(ctx context.Context) error {
	return u.Start(ctx)
}

// finish applies a completed request, unless it went stale in flight.
func (u *Unit[T]) finish(id uint64, value T, err error) {
	u.mu.Lock()
	if !u.active || id != u.state.RequestID {
		u.mu.Unlock()
		return
	}
	if err != nil {
		u.state.Phase = PhaseError
		u.state.Fault = u.classify(err)
	} else {
		u.state.Phase = PhaseSuccess
		u.state.Value = value
		u.state.Fault = nil
		u.state.LastSuccess = u.clock.Now()
	}
	close(u.settled)
	u.mu.Unlock()

	u.notify()
}

// Stop tears the unit down. Later Start calls return ErrStopped and any
// in-flight completion is discarded; the request itself is left to run
// out on its own. Stop is idempotent.
func (u *Unit[T]) Stop() {
	u.mu.Lock()
	if !u.active {
		u.mu.Unlock()
		return
	}
	u.active = false
	if u.state.Phase == PhaseLoading {
		close(u.settled) // release waiters, the result will be discarded
	}
	u.mu.Unlock()
}

// State returns a copy of the unit's current state.
func (u *Unit[T]) State() State[T] {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Snapshot returns the type-erased view of the current state.
func (u *Unit[T]) Snapshot() SourceState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return SourceState{
		Name:        u.name,
		Phase:       u.state.Phase,
		Fault:       u.state.Fault,
		RequestID:   u.state.RequestID,
		LastSuccess: u.state.LastSuccess,
	}
}

// WaitSettled blocks until the newest request has reached a terminal
// phase, the unit is stopped, or ctx ends. A request superseded while
// waiting hands the wait over to its replacement.
func (u *Unit[T]) WaitSettled(ctx context.Context) error {
	for {
		u.mu.Lock()
		if !u.active || u.state.Phase != PhaseLoading {
			u.mu.Unlock()
			return nil
		}
		ch := u.settled
		u.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// AddListener registers fn to run after every state change. The
// returned function removes the registration. Listeners run outside the
// unit's lock and must not block.
func (u *Unit[T]) AddListener(fn func()) func() {
	u.mu.Lock()
	id := u.nextID
	u.nextID++
	u.listeners[id] = fn
	u.mu.Unlock()
	return func() {
		u.mu.Lock()
		delete(u.listeners, id)
		u.mu.Unlock()
	}
}

func (u *Unit[T]) notify() {
	u.mu.Lock()
	fns := make([]func(), 0, len(u.listeners))
	for _, fn := range u.listeners {
		fns = append(fns, fn)
	}
	u.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
