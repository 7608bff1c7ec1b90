package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/projectcompass/spyglass/internal/fetch"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerFrame selects a frame from the wall clock so the spinner
// animates on every re-render without per-panel state.
func spinnerFrame() string {
	return spinnerFrames[time.Now().UnixMilli()/120%int64(len(spinnerFrames))]
}

// renderLoadingPlaceholder renders an animated loading indicator for a
// panel that has no data yet.
func renderLoadingPlaceholder(width, height int) string {
	text := helpStyle.Render(spinnerFrame() + " Loading...")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// SpinnerTickMsg triggers a re-render for loading spinners.
type SpinnerTickMsg struct{}

// startSpinnerIfNeeded schedules a spinner tick while any source is
// still loading. At most one tick is in flight at a time.
func (m *DashboardModel) startSpinnerIfNeeded() tea.Cmd {
	if m.spinnerLive || !m.anySourceLoading() {
		return nil
	}
	m.spinnerLive = true
	return tea.Tick(120*time.Millisecond, func(_ time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

func (m *DashboardModel) anySourceLoading() bool {
	for _, st := range m.snap.Group.Sources {
		if st.Phase == fetch.PhaseLoading {
			return true
		}
	}
	return false
}
