package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModal lists the dashboard key bindings.
type HelpModal struct{}

func NewHelpModal() *HelpModal { return &HelpModal{} }

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "?", "h":
			return true, nil
		}
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	content := `Vendor Inquiry Dashboard Help

NAVIGATION:
  Tab/Shift+Tab  - Move between panels
  up/down or k/j - Move selection in the inquiries panel
  Escape         - Close modal

ACTIONS:
  r              - Refresh all panels now
  s              - Open the inquiry submission form
  ? or h         - Toggle this help
  q/Ctrl+C       - Quit

PANELS:
  System Status  - Service health and performance metrics
  Inquiries      - Most recent vendor inquiries
  Departments    - Routing load per department
  Categories     - Inquiry category distribution

Panels refresh on a fixed interval. A panel showing "stale" kept its
last good data after a failed refresh; the red badge in the status
line names the failing sources.`

	header := lipgloss.NewStyle().
		Foreground(ColorBlue).
		Bold(true).
		Render("Help")

	statusBar := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render("?/h: Toggle Help | ESC: Close")

	modal := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	finalModal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(0, 2).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}
