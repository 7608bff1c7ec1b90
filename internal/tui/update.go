package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case SyncMsg:
		m.applySnapshot()
		return m, tea.Batch(m.waitForSync(), m.startSpinnerIfNeeded())

	case SpinnerTickMsg:
		m.spinnerLive = false
		return m, m.startSpinnerIfNeeded()

	case submitResultMsg:
		// Submission outcomes go to the form modal; it stays open to
		// show the receipt or the failure.
		if modal := m.TopModal(); modal != nil {
			pop, cmd := modal.Update(msg)
			if pop {
				return m.popModal(modal, cmd)
			}
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress dispatches key events: modal stack first, then global
// dashboard shortcuts.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	// Modal on stack gets the event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			return m.popModal(modal, cmd)
		}
		return m, cmd
	}

	return m.handleGlobalKeys(msg)
}

// handleGlobalKeys handles dashboard-level shortcuts. Only reached when
// no modal is on the stack.
func (m *DashboardModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()

	case key.Matches(msg, k.Refresh):
		return m, m.refreshNowCmd()

	case key.Matches(msg, k.Submit):
		m.PushModal(NewSubmitModal(m.api, 0))
		return m, nil

	case key.Matches(msg, k.Help):
		m.PushModal(NewHelpModal())
		return m, nil

	case key.Matches(msg, k.NextPanel):
		m.cyclePanel(1)
		return m, nil

	case key.Matches(msg, k.PrevPanel):
		m.cyclePanel(-1)
		return m, nil

	case key.Matches(msg, k.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, k.Down):
		m.moveSelection(1)
		return m, nil
	}

	return m, nil
}

// handleMouseEvent processes mouse interactions.
func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Modal on stack gets the mouse event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			return m.popModal(modal, cmd)
		}
		return m, cmd
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if idx, ok := m.panelAt(msg.X, msg.Y); ok {
				m.activePanelIdx = idx
			}
			return m, nil

		case tea.MouseButtonWheelUp:
			m.moveSelection(-1)
			return m, nil

		case tea.MouseButtonWheelDown:
			m.moveSelection(1)
			return m, nil
		}
	}

	return m, nil
}

// popModal removes the modal and, when an inquiry submission went
// through, schedules an immediate refresh so the new inquiry shows up
// without waiting for the next interval.
func (m *DashboardModel) popModal(modal Modal, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.PopModal()
	if form, ok := modal.(*SubmitModal); ok && form.Submitted() {
		return m, tea.Batch(cmd, m.refreshNowCmd())
	}
	return m, cmd
}

// refreshNowCmd requests an out-of-schedule refresh of every source.
// The resulting state changes arrive through the regular SyncMsg path.
func (m *DashboardModel) refreshNowCmd() tea.Cmd {
	sync := m.sync
	return func() tea.Msg {
		// ErrInactive only happens when quitting raced the keypress.
		_ = sync.TriggerNow(context.Background())
		return nil
	}
}

func (m *DashboardModel) quit() (tea.Model, tea.Cmd) {
	m.sync.Deactivate()
	return m, tea.Quit
}
