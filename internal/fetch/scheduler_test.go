package fetch_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/projectcompass/spyglass/internal/fetch"
	"github.com/projectcompass/spyglass/internal/fetch/fetchtest"
)

func TestSchedulerDoubleActivateArmsOneTimer(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := fetchtest.NewFakeClock()
	var calls atomic.Int32
	u := fetch.NewUnit("status", func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	}, fetch.UnitConfig[int]{Clock: clock})

	s := fetch.NewScheduler(u, fetch.SchedulerConfig{Interval: time.Second, Clock: clock})
	ctx := context.Background()
	s.Activate(ctx)
	s.Activate(ctx)
	defer s.Deactivate()

	if got := clock.Armed(); got != 1 {
		t.Fatalf("armed tickers after double activate = %d, want 1", got)
	}

	clock.Advance(time.Second)
	waitEventually(t, 2*time.Second, 2*time.Millisecond, func() bool {
		return calls.Load() == 1
	}, "one fetch after one interval")
	assertHolds(t, func() bool { return calls.Load() == 1 }, "double activate produced extra fetches")
}

func TestSchedulerManualTriggerKeepsSchedule(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := fetchtest.NewFakeClock()
	epoch := clock.Now()

	var mu sync.Mutex
	var offsets []time.Duration
	u := fetch.NewUnit("inquiries", func(ctx context.Context) (int, error) {
		mu.Lock()
		offsets = append(offsets, clock.Now().Sub(epoch))
		mu.Unlock()
		return 1, nil
	}, fetch.UnitConfig[int]{Clock: clock})

	s := fetch.NewScheduler(u, fetch.SchedulerConfig{Interval: 1000 * time.Millisecond, Clock: clock})
	ctx := context.Background()
	s.Activate(ctx)
	defer s.Deactivate()

	fetched := func(n int) func() bool {
		return func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(offsets) == n
		}
	}

	// Manual trigger at t=500ms.
	clock.Advance(500 * time.Millisecond)
	if err := s.TriggerNow(ctx); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	waitEventually(t, 2*time.Second, 2*time.Millisecond, fetched(1), "manual trigger fetched")

	// The scheduled tick still fires at t=1000ms, not t=1500ms.
	clock.Advance(500 * time.Millisecond)
	waitEventually(t, 2*time.Second, 2*time.Millisecond, fetched(2), "scheduled tick fetched")

	mu.Lock()
	got := append([]time.Duration(nil), offsets...)
	mu.Unlock()
	if got[0] != 500*time.Millisecond || got[1] != 1000*time.Millisecond {
		t.Fatalf("fetch offsets = %v, want [500ms 1s]", got)
	}

	// And nothing extra fires at what would have been a reset schedule.
	clock.Advance(500 * time.Millisecond) // t=1500ms
	assertHolds(t, fetched(2), "tick fired at t=1500ms, schedule was reset by the manual trigger")
}

func TestSchedulerDeactivateStopsTimerAndSource(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := fetchtest.NewFakeClock()
	var calls atomic.Int32
	u := fetch.NewUnit("departments", func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	}, fetch.UnitConfig[int]{Clock: clock})

	s := fetch.NewScheduler(u, fetch.SchedulerConfig{Interval: time.Second, Clock: clock})
	ctx := context.Background()
	s.Activate(ctx)

	clock.Advance(time.Second)
	waitEventually(t, 2*time.Second, 2*time.Millisecond, func() bool {
		return calls.Load() == 1
	}, "tick fetched before deactivate")

	s.Deactivate()
	s.Deactivate() // idempotent

	if err := u.Start(ctx); !errors.Is(err, fetch.ErrStopped) {
		t.Fatalf("source start after deactivate = %v, want ErrStopped", err)
	}
	if err := s.TriggerNow(ctx); !errors.Is(err, fetch.ErrInactive) {
		t.Fatalf("trigger after deactivate = %v, want ErrInactive", err)
	}

	clock.Advance(3 * time.Second)
	assertHolds(t, func() bool { return calls.Load() == 1 }, "ticks kept firing after deactivate")
}

func TestSchedulerDeactivateDuringFetch(t *testing.T) {
	defer goleak.VerifyNone(t)

	fn, calls := gatedFetch()
	clock := fetchtest.NewFakeClock()
	u := fetch.NewUnit("categories", fn, fetch.UnitConfig[string]{Clock: clock})

	s := fetch.NewScheduler(u, fetch.SchedulerConfig{Interval: time.Second, AutoStart: true, Clock: clock})
	s.Activate(context.Background())

	d1 := <-calls
	before := u.State()

	// Deactivate must not wait for the in-flight request.
	done := make(chan struct{})
	go func() {
		s.Deactivate()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("deactivate blocked on an in-flight request")
	}

	d1 <- reply{value: "late"}
	assertHolds(t, func() bool {
		st := u.State()
		return st.Phase == before.Phase && st.Value == before.Value
	}, "in-flight result applied after deactivate")
}

func TestSchedulerAutoStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := fetchtest.NewFakeClock()
	var calls atomic.Int32
	u := fetch.NewUnit("status", func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	}, fetch.UnitConfig[int]{Clock: clock})

	s := fetch.NewScheduler(u, fetch.SchedulerConfig{Interval: 0, AutoStart: true, Clock: clock})
	s.Activate(context.Background())
	defer s.Deactivate()

	if got := clock.Armed(); got != 0 {
		t.Fatalf("armed tickers with interval 0 = %d, want 0", got)
	}
	waitEventually(t, 2*time.Second, 2*time.Millisecond, func() bool {
		return calls.Load() == 1
	}, "auto start fetched once")

	if err := s.TriggerNow(context.Background()); err != nil {
		t.Fatalf("trigger with disabled ticker: %v", err)
	}
	waitEventually(t, 2*time.Second, 2*time.Millisecond, func() bool {
		return calls.Load() == 2
	}, "manual trigger fetched with disabled ticker")
}
