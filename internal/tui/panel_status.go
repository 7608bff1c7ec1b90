package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/projectcompass/spyglass/internal/model"
)

// StatusPanel summarizes the service health endpoint: status word,
// inquiry counters, and the current performance metrics.
type StatusPanel struct {
	panelSource
	status  model.SystemStatus
	hasData bool
}

// NewStatusPanel creates an empty status panel.
func NewStatusPanel() *StatusPanel { return &StatusPanel{} }

func (p *StatusPanel) ID() string    { return "status" }
func (p *StatusPanel) Title() string { return "System Status" }

// SetData replaces the panel's payload.
func (p *StatusPanel) SetData(status model.SystemStatus) {
	p.status = status
	p.hasData = true
}

func (p *StatusPanel) ContentLines(_ ViewContext) int { return 9 }

func (p *StatusPanel) ItemCount() int { return 0 }

func (p *StatusPanel) Render(_ ViewContext, width, height int, active bool) string {
	style := panelStyle.Width(width).Height(height)
	if active {
		style = activePanelStyle.Width(width).Height(height)
	}

	title := panelTitleStyle.Render(p.Title()) + p.titleBadge()

	var content string
	switch {
	case !p.hasData && p.loading():
		content = renderLoadingPlaceholder(width-4, height-3)
	case !p.hasData && p.faultLine() != "":
		content = errorBadgeStyle.Render("✗ " + p.faultLine())
	case !p.hasData:
		content = helpStyle.Render("No data available")
	default:
		content = p.renderContent(width - 4)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (p *StatusPanel) renderContent(width int) string {
	label := lipgloss.NewStyle().Foreground(ColorGray)
	value := lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)

	lines := []string{
		fmt.Sprintf("%s %s", label.Render("Service:"), statusStyle(p.status.Status).Render(p.status.Status)),
		fmt.Sprintf("%s %s   %s %s   %s %s",
			label.Render("Active:"), value.Render(fmt.Sprintf("%d", p.status.ActiveInquiries)),
			label.Render("Total:"), value.Render(fmt.Sprintf("%d", p.status.TotalInquiries)),
			label.Render("Notified:"), value.Render(fmt.Sprintf("%d", p.status.NotificationsSent)),
		),
	}

	if m := p.status.Metrics; m != nil {
		lines = append(lines,
			"",
			fmt.Sprintf("%s %s", label.Render("Uptime:"), value.Render(formatUptime(m.UptimeSeconds))),
			fmt.Sprintf("%s %s", label.Render("Avg response:"), value.Render(fmt.Sprintf("%.2fs", m.Performance.AvgResponseTime))),
			fmt.Sprintf("%s %s   %s %s",
				label.Render("Accuracy:"), value.Render(fmt.Sprintf("%.0f%%", m.Performance.CategorizationAccuracy*100)),
				label.Render("Routing:"), value.Render(fmt.Sprintf("%.0f%%", m.Performance.RoutingEfficiency*100)),
			),
			fmt.Sprintf("%s %s   %s %s",
				label.Render("Queue:"), value.Render(fmt.Sprintf("%d", m.Queue.CurrentQueueSize)),
				label.Render("Avg wait:"), value.Render(fmt.Sprintf("%.1fs", m.Queue.AvgWaitTime)),
			),
		)
	}

	if fault := p.faultLine(); fault != "" {
		lines = append(lines, "", errorBadgeStyle.Render(truncate("✗ "+fault, width)))
	}

	return strings.Join(lines, "\n")
}

// formatUptime renders seconds as a compact d/h/m string.
func formatUptime(seconds float64) string {
	d := time.Duration(seconds) * time.Second
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd%dh", int(d.Hours())/24, int(d.Hours())%24)
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	default:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

// truncate cuts s to width runes with an ellipsis.
func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
