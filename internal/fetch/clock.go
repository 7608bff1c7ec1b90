package fetch

import "time"

// Clock supplies time to units and schedulers. The system clock is the
// default; tests inject a controllable one to drive refresh cycles
// deterministically.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker is the subset of time.Ticker the scheduler needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (st systemTicker) C() <-chan time.Time { return st.t.C }
func (st systemTicker) Stop()               { st.t.Stop() }

// SystemClock returns the real time source.
func SystemClock() Clock { return systemClock{} }
