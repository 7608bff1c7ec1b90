package fetch

import (
	"time"

	"github.com/projectcompass/spyglass/internal/fault"
)

// Phase is the lifecycle position of a data source.
type Phase int

const (
	// PhaseIdle means no request has been dispatched yet.
	PhaseIdle Phase = iota
	// PhaseLoading means the most recent request is still in flight.
	PhaseLoading
	// PhaseSuccess means the most recent request applied a new value.
	PhaseSuccess
	// PhaseError means the most recent request failed. The previous
	// value, if any, is still available.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "invalid"
	}
}

// Terminal reports whether p is a settled outcome for a request.
func (p Phase) Terminal() bool {
	return p == PhaseSuccess || p == PhaseError
}

// State is the full condition of one data source. Value always holds
// the most recent successful payload (or the configured initial value);
// a later failure sets Fault without clearing Value. RequestID counts
// dispatched requests and is the sole authority for staleness checks.
type State[T any] struct {
	Phase       Phase
	Value       T
	Fault       *fault.Fault
	RequestID   uint64
	LastSuccess time.Time // zero until the first success
}

// SourceState is the type-erased view of a unit's State, used where
// sources of different payload types are handled together.
type SourceState struct {
	Name        string
	Phase       Phase
	Fault       *fault.Fault
	RequestID   uint64
	LastSuccess time.Time
}

// Succeeded reports whether the source has ever applied a value.
func (s SourceState) Succeeded() bool {
	return !s.LastSuccess.IsZero()
}
