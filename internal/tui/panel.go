package tui

import "github.com/projectcompass/spyglass/internal/fetch"

// Panel is one dashboard tile. Data is pushed into panels when a sync
// snapshot arrives; rendering never fetches.
type Panel interface {
	ID() string
	Title() string
	Render(ctx ViewContext, width, height int, active bool) string
	ContentLines(ctx ViewContext) int
	ItemCount() int
}

// panelSource holds the per-source fetch state panels share for their
// header badges. Embedded by every concrete panel.
type panelSource struct {
	src fetch.SourceState
}

func (p *panelSource) setSource(src fetch.SourceState) { p.src = src }

// loading reports whether a request for this panel is in flight.
func (p *panelSource) loading() bool { return p.src.Phase == fetch.PhaseLoading }

// stale reports whether the panel shows old data alongside an error.
func (p *panelSource) stale() bool {
	return p.src.Phase == fetch.PhaseError && p.src.Succeeded()
}

// faultLine returns the classified failure to show, or "".
func (p *panelSource) faultLine() string {
	if p.src.Fault == nil {
		return ""
	}
	return p.src.Fault.Error()
}

// titleBadge renders the small state marker next to a panel title.
func (p *panelSource) titleBadge() string {
	switch {
	case p.loading():
		return helpStyle.Render(" " + spinnerFrame())
	case p.src.Phase == fetch.PhaseError && p.src.Succeeded():
		return staleBadgeStyle.Render(" stale")
	case p.src.Phase == fetch.PhaseError:
		return errorBadgeStyle.Render(" ✗")
	default:
		return ""
	}
}
