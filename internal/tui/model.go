package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/projectcompass/spyglass/internal/model"
)

// SyncMsg signals that the data layer published a new snapshot. The
// dashboard re-reads the snapshot and re-arms its notification waiter.
type SyncMsg struct{}

// DashboardModel is the root model for the inquiry dashboard. It owns
// the sync bridge, the four data panels and the modal stack.
type DashboardModel struct {
	width  int
	height int

	sync *DataSync
	api  model.API
	keys KeyMap
	snap ViewSnapshot

	statusPanel      *StatusPanel
	inquiriesPanel   *InquiriesPanel
	departmentsPanel *DepartmentsPanel
	categoriesPanel  *CategoriesPanel
	panels           []Panel
	activePanelIdx   int

	modalStack []Modal

	started     bool
	spinnerLive bool
}

// NewDashboardModel creates the dashboard. The sync bridge must not be
// activated yet; Init does that once the program starts.
func NewDashboardModel(sync *DataSync, api model.API) *DashboardModel {
	m := &DashboardModel{
		sync:             sync,
		api:              api,
		keys:             DefaultKeyMap(),
		statusPanel:      NewStatusPanel(),
		inquiriesPanel:   NewInquiriesPanel(),
		departmentsPanel: NewDepartmentsPanel(),
		categoriesPanel:  NewCategoriesPanel(),
	}
	m.panels = []Panel{
		m.statusPanel,
		m.inquiriesPanel,
		m.departmentsPanel,
		m.categoriesPanel,
	}
	m.activePanelIdx = 1 // inquiries panel, the only selectable one
	return m
}

// Init activates the sync bridge and arms the snapshot waiter. Guarded
// so a repeated Init cannot start a second waiter.
func (m *DashboardModel) Init() tea.Cmd {
	if m.started {
		return nil
	}
	m.started = true

	m.sync.Activate(context.Background())
	m.applySnapshot()

	return tea.Batch(m.waitForSync(), m.startSpinnerIfNeeded())
}

// waitForSync blocks until the next snapshot notification, then wakes
// the program with a SyncMsg. Exactly one waiter is in flight between
// Init/SyncMsg pairs; the done channel releases it on shutdown.
func (m *DashboardModel) waitForSync() tea.Cmd {
	notify, done := m.sync.Notify(), m.sync.Done()
	return func() tea.Msg {
		select {
		case <-notify:
			return SyncMsg{}
		case <-done:
			return nil
		}
	}
}

// applySnapshot pulls the current snapshot out of the sync bridge and
// pushes it into the panels. Panels only receive data from sources
// that have succeeded at least once; failed sources keep their last
// good payload and show a stale badge instead.
func (m *DashboardModel) applySnapshot() {
	m.snap = m.sync.Snapshot()

	m.statusPanel.setSource(m.snap.SourceState(sourceStatus))
	m.inquiriesPanel.setSource(m.snap.SourceState(sourceInquiries))
	m.departmentsPanel.setSource(m.snap.SourceState(sourceDepartments))
	m.categoriesPanel.setSource(m.snap.SourceState(sourceCategories))

	if m.snap.SourceState(sourceStatus).Succeeded() {
		m.statusPanel.SetData(m.snap.Status)
	}
	if m.snap.SourceState(sourceInquiries).Succeeded() {
		m.inquiriesPanel.SetData(m.snap.Inquiries)
	}
	if m.snap.SourceState(sourceDepartments).Succeeded() {
		m.departmentsPanel.SetData(m.snap.Departments)
	}
	if m.snap.SourceState(sourceCategories).Succeeded() {
		m.categoriesPanel.SetData(m.snap.Categories)
	}
}

func (m *DashboardModel) activePanel() Panel {
	if m.activePanelIdx < 0 || m.activePanelIdx >= len(m.panels) {
		return nil
	}
	return m.panels[m.activePanelIdx]
}

func (m *DashboardModel) cyclePanel(delta int) {
	n := len(m.panels)
	m.activePanelIdx = (m.activePanelIdx + delta + n) % n
}

// moveSelection moves the cursor inside the active panel. Only the
// inquiries panel has per-row selection.
func (m *DashboardModel) moveSelection(delta int) {
	if m.activePanel() == m.inquiriesPanel {
		m.inquiriesPanel.MoveSelection(delta)
	}
}
