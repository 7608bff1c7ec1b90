package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	gridCols         = 2
	panelBorderWidth = 2
	panelColGap      = 1
)

func (m *DashboardModel) viewContext() ViewContext {
	return ViewContext{
		ContentWidth:  m.width,
		ContentHeight: m.height,
		Compact:       m.width < 100,
	}
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing dashboard..."
	}

	// A modal on the stack renders full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	return m.renderDashboard()
}

func (m *DashboardModel) renderDashboard() string {
	if m.height < 16 || m.width < 60 {
		return "Terminal too small. Resize to at least 60x16."
	}

	statusLineHeight := 1
	grid := m.renderPanelsGrid(m.width, m.height-statusLineHeight)
	statusLine := m.renderStatusLine()

	return lipgloss.JoinVertical(lipgloss.Left, grid, statusLine)
}

// panelWidthFor computes the content width each panel style receives so
// that two bordered panels plus the column gap fit the terminal.
func panelWidthFor(width int) int {
	w := (width - panelColGap - gridCols*panelBorderWidth) / gridCols
	if w < 25 {
		w = 25
	}
	return w
}

// rowHeightsFor splits the grid height into two bordered rows.
func rowHeightsFor(height int) (top, bottom int) {
	outerTop := height / 2
	top = outerTop - panelBorderWidth
	bottom = height - outerTop - panelBorderWidth
	if top < 3 {
		top = 3
	}
	if bottom < 3 {
		bottom = 3
	}
	return top, bottom
}

// renderPanelsGrid renders the four panels in a two-column grid:
// status and inquiries on top, departments and categories below.
func (m *DashboardModel) renderPanelsGrid(width, height int) string {
	panelWidth := panelWidthFor(width)
	topH, bottomH := rowHeightsFor(height)

	ctx := m.viewContext()
	render := func(idx, h int) string {
		return m.panels[idx].Render(ctx, panelWidth, h, idx == m.activePanelIdx)
	}

	gap := strings.Repeat(" ", panelColGap)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, render(0, topH), gap, render(1, topH))
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, render(2, bottomH), gap, render(3, bottomH))

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow)
}

// panelAt maps a mouse click onto a panel index using the same layout
// math as renderPanelsGrid.
func (m *DashboardModel) panelAt(x, y int) (int, bool) {
	if m.width <= 0 || m.height <= 0 || x < 0 || y < 0 {
		return 0, false
	}
	if y >= m.height-1 { // status line
		return 0, false
	}

	topH, _ := rowHeightsFor(m.height - 1)
	row := 0
	if y >= topH+panelBorderWidth {
		row = 1
	}

	stride := panelWidthFor(m.width) + panelBorderWidth + panelColGap
	col := x / stride
	if col >= gridCols {
		col = gridCols - 1
	}

	idx := row*gridCols + col
	if idx >= len(m.panels) {
		return 0, false
	}
	return idx, true
}

// renderBranding renders "Spyglass" with a blue to green gradient.
func renderBranding() string {
	colors := []string{
		"#09B1E2", // S
		"#0FBCC7", // p
		"#15C7AC", // y
		"#1BD291", // g
		"#21DD76", // l
		"#27E85B", // a
		"#2DF340", // s
		"#33FE25", // s
	}
	chars := []string{"S", "p", "y", "g", "l", "a", "s", "s"}

	var result string
	for i, char := range chars {
		style := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color(colors[i])).Bold(true)
		result += style.Render(char)
	}
	return result
}

// renderStatusLine renders the status/help line at the bottom of the
// screen: active panel on the left, key help in the center, sync state
// and branding on the right.
func (m *DashboardModel) renderStatusLine() string {
	baseStyle := statusLineStyle

	w := m.width
	veryNarrow := w < 60
	narrow := w < 80
	medium := w < 120

	var leftText string
	if panel := m.activePanel(); panel != nil {
		if veryNarrow {
			leftText = panel.Title()[:min(5, len(panel.Title()))]
		} else {
			leftText = fmt.Sprintf("[%s]", panel.Title())
		}
	}

	var statusText string
	switch {
	case veryNarrow:
		statusText = "Tab • r • s • ? • q"
	case narrow:
		statusText = "?: Help • Tab: Panels • r: Refresh • s: Submit • q: Quit"
	case medium:
		statusText = "?: Help • Tab: Panels • ↑↓: Select • r: Refresh • s: Submit • q: Quit"
	default:
		statusText = "?: Help • Click panels • Wheel: Scroll • Tab: Panels • ↑↓: Select inquiry • r: Refresh now • s: Submit inquiry • q: Quit"
	}

	var rightParts []string

	if failing := m.snap.Group.Failing; len(failing) > 0 {
		badge := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorRed).
			Bold(true).
			Render("✗ " + strings.Join(failing, ","))
		rightParts = append(rightParts, badge)
	}

	if m.anySourceLoading() {
		rightParts = append(rightParts, spinnerFrame())
	} else if !m.snap.Group.LastRefreshed.IsZero() && !narrow {
		rightParts = append(rightParts, fmt.Sprintf("updated %s", m.snap.Group.LastRefreshed.Format("15:04:05")))
	}

	if !veryNarrow {
		rightParts = append(rightParts, fmt.Sprintf("every %s", m.sync.RefreshEvery()))
	}

	if !veryNarrow {
		rightParts = append(rightParts, m.connectivityDot()+" API")
	}

	if w >= 30 {
		rightParts = append(rightParts, renderBranding())
	}

	rightText := strings.Join(rightParts, "  ")

	leftWidth := lipgloss.Width(leftText) + 2
	rightWidth := lipgloss.Width(rightText) + 2

	if leftWidth+rightWidth >= w {
		if w < 20 {
			return baseStyle.Width(w).Render(leftText)
		}
		leftWidth = min(10, w/3)
		rightWidth = min(15, w/3)
	}

	centerWidth := w - leftWidth - rightWidth
	if centerWidth < 0 {
		centerWidth = 0
	}

	if lipgloss.Width(statusText) > centerWidth {
		statusText = statusText[:max(0, centerWidth-1)]
	}

	leftPart := baseStyle.Align(lipgloss.Left).Width(leftWidth).Render(leftText)
	centerPart := baseStyle.Align(lipgloss.Center).Width(centerWidth).Render(statusText)
	rightPart := baseStyle.Align(lipgloss.Right).Width(rightWidth).Render(rightText)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPart, centerPart, rightPart)
}

// connectivityDot summarizes the last refresh cycle: green when every
// source succeeded, red when any failed, gray before the first cycle.
func (m *DashboardModel) connectivityDot() string {
	color := ColorGreen
	switch {
	case len(m.snap.Group.Failing) > 0:
		color = ColorRed
	case m.snap.Group.LastRefreshed.IsZero():
		color = ColorGray
	}
	return lipgloss.NewStyle().Background(ColorNavy).Foreground(color).Render("●")
}
