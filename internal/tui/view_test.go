package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestViewBeforeFirstWindowSize(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestDashboard(t)
	if got := m.View(); !strings.Contains(got, "Initializing") {
		t.Errorf("view = %q, want initializing placeholder", got)
	}
}

func TestViewTooSmall(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestDashboard(t)
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 10})
	if got := m.View(); !strings.Contains(got, "Terminal too small") {
		t.Errorf("view = %q, want size warning", got)
	}
}

func TestViewRendersAllPanels(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestDashboard(t)
	m.Init()
	settledSync(t, m.sync)
	m.Update(SyncMsg{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	for _, want := range []string{
		"System Status",
		"Recent Inquiries",
		"Department Load",
		"Categories",
		"Invoice overdue",
		"operational",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}

	// Status line: active panel marker and refresh cadence.
	if !strings.Contains(out, "[Recent Inquiries]") {
		t.Error("status line missing active panel marker")
	}
	if !strings.Contains(out, "every 1m0s") {
		t.Error("status line missing refresh interval")
	}
}

func TestViewShowsFailingSources(t *testing.T) {
	t.Parallel()

	m, api, _ := newTestDashboard(t)
	m.Init()
	settledSync(t, m.sync)
	m.Update(SyncMsg{})

	api.failDepartments(errTestNetwork{})
	if err := m.sync.TriggerNow(context.Background()); err != nil {
		t.Fatalf("trigger now: %v", err)
	}
	settledSync(t, m.sync)
	m.Update(SyncMsg{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	if !strings.Contains(out, "✗ departments") {
		t.Error("status line missing failing source badge")
	}
	if !strings.Contains(out, "stale") {
		t.Error("departments panel missing stale badge")
	}
	// The failed panel keeps rendering its last good data.
	if !strings.Contains(out, "Finance") {
		t.Error("departments panel dropped its payload")
	}
}

func TestViewModalCoversDashboard(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestDashboard(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.Update(keyRune('?'))
	out := m.View()
	if !strings.Contains(out, "NAVIGATION:") {
		t.Error("help modal not rendered")
	}
	if strings.Contains(out, "[Recent Inquiries]") {
		t.Error("dashboard status line visible under modal")
	}
}

func TestPanelWidthFor(t *testing.T) {
	t.Parallel()

	// Two bordered panels plus the gap must fit the terminal.
	w := panelWidthFor(120)
	if total := 2*(w+panelBorderWidth) + panelColGap; total > 120 {
		t.Errorf("grid overflows: panel width %d gives total %d", w, total)
	}
	if w < 25 {
		t.Errorf("panel width = %d, want >= 25", w)
	}
}

// errTestNetwork is a minimal net.Error so classification lands on
// the network kind.
type errTestNetwork struct{}

func (errTestNetwork) Error() string   { return "dial tcp: connection refused" }
func (errTestNetwork) Timeout() bool   { return false }
func (errTestNetwork) Temporary() bool { return false }
