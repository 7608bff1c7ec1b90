// Package fault classifies fetch failures into the small set of
// categories the dashboard can act on. Classification happens once, at
// the point a request settles; everything downstream works with the
// resulting Fault instead of inspecting raw transport errors.
package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// Kind is the user-facing failure category.
type Kind int

const (
	// KindUnknown covers anything that is neither a transport failure
	// nor a remote status: decode errors, programming mistakes.
	KindUnknown Kind = iota
	// KindNetwork means the request never produced a response:
	// unreachable host, refused connection, DNS failure, timeout.
	KindNetwork
	// KindRemote means the service answered with a non-success status.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Fault is a classified failure. StatusCode is set only for KindRemote.
type Fault struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (f *Fault) Error() string {
	if f.Kind == KindRemote {
		return fmt.Sprintf("%s (%d): %s", f.Kind, f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// StatusError is a non-2xx response from the inquiry service. Detail
// carries the structured message from the response body when the
// service provided one.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fault: remote returned %d: %s", e.Code, e.message())
}

func (e *StatusError) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if text := http.StatusText(e.Code); text != "" {
		return text
	}
	return "unexpected status"
}

// Classify maps a raw fetch error onto a Fault. A response with a
// failure status beats a transport check: if the service answered at
// all, the failure is the service's.
func Classify(err error) *Fault {
	if err == nil {
		return nil
	}

	var status *StatusError
	if errors.As(err, &status) {
		return &Fault{
			Kind:       KindRemote,
			StatusCode: status.Code,
			Message:    status.message(),
		}
	}

	if isNetwork(err) {
		return &Fault{Kind: KindNetwork, Message: "no response received"}
	}

	return &Fault{Kind: KindUnknown, Message: err.Error()}
}

// isNetwork reports whether err is a transport-level failure. url.Error
// implements net.Error, so every failed http.Client round trip lands
// here unless the body was already received and decoded.
func isNetwork(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
