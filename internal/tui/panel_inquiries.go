package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/projectcompass/spyglass/internal/model"
)

// InquiriesPanel lists the most recent vendor inquiries, newest first.
type InquiriesPanel struct {
	panelSource
	inquiries []model.InquirySummary
	total     int
	hasData   bool
	selIdx    int
}

// NewInquiriesPanel creates an empty inquiries panel.
func NewInquiriesPanel() *InquiriesPanel { return &InquiriesPanel{} }

func (p *InquiriesPanel) ID() string    { return "inquiries" }
func (p *InquiriesPanel) Title() string { return "Recent Inquiries" }

// SetData replaces the panel's rows, clamping the selection.
func (p *InquiriesPanel) SetData(recent model.RecentInquiries) {
	p.inquiries = append([]model.InquirySummary(nil), recent.Inquiries...)
	p.total = recent.Total
	p.hasData = true
	if p.selIdx >= len(p.inquiries) {
		p.selIdx = max(0, len(p.inquiries)-1)
	}
}

// MoveSelection shifts the highlighted row by delta, clamped to bounds.
func (p *InquiriesPanel) MoveSelection(delta int) {
	if len(p.inquiries) == 0 {
		return
	}
	p.selIdx += delta
	if p.selIdx < 0 {
		p.selIdx = 0
	}
	if p.selIdx >= len(p.inquiries) {
		p.selIdx = len(p.inquiries) - 1
	}
}

// Selected returns the highlighted inquiry, or nil when the list is empty.
func (p *InquiriesPanel) Selected() *model.InquirySummary {
	if p.selIdx < 0 || p.selIdx >= len(p.inquiries) {
		return nil
	}
	inq := p.inquiries[p.selIdx]
	return &inq
}

func (p *InquiriesPanel) ContentLines(_ ViewContext) int {
	return max(4, len(p.inquiries)+2)
}

func (p *InquiriesPanel) ItemCount() int { return len(p.inquiries) }

func (p *InquiriesPanel) Render(ctx ViewContext, width, height int, active bool) string {
	style := panelStyle.Width(width).Height(height)
	if active {
		style = activePanelStyle.Width(width).Height(height)
	}

	titleText := p.Title()
	if p.total > len(p.inquiries) {
		titleText = fmt.Sprintf("%s (%d of %d)", p.Title(), len(p.inquiries), p.total)
	}
	title := panelTitleStyle.Render(titleText) + p.titleBadge()

	var content string
	switch {
	case !p.hasData && p.loading():
		content = renderLoadingPlaceholder(width-4, height-3)
	case !p.hasData && p.faultLine() != "":
		content = errorBadgeStyle.Render("✗ " + p.faultLine())
	case len(p.inquiries) == 0:
		content = helpStyle.Render("No inquiries yet")
	default:
		content = p.renderRows(ctx, width-4, height-3, active)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (p *InquiriesPanel) renderRows(ctx ViewContext, width, maxRows int, active bool) string {
	if maxRows < 1 {
		maxRows = 1
	}

	// Keep the selection visible when the list is taller than the panel.
	start := 0
	if p.selIdx >= maxRows {
		start = p.selIdx - maxRows + 1
	}

	subjectWidth := width - 34
	if ctx.Compact {
		subjectWidth = width - 20
	}
	if subjectWidth < 8 {
		subjectWidth = 8
	}

	rowStyle := lipgloss.NewStyle().Foreground(ColorWhite)
	dimStyle := lipgloss.NewStyle().Foreground(ColorGray)
	selStyle := lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorNavy)

	var rows []string
	for i := start; i < len(p.inquiries) && len(rows) < maxRows; i++ {
		inq := p.inquiries[i]

		prio := priorityStyle(inq.Priority).Render(fmt.Sprintf("%-8s", shortPriority(inq.Priority)))
		age := dimStyle.Render(fmt.Sprintf("%6s", formatAge(inq.CreatedAt)))
		subject := truncate(inq.Subject, subjectWidth)

		var line string
		if ctx.Compact {
			line = fmt.Sprintf("%s %s %s", prio, rowStyle.Render(fmt.Sprintf("%-*s", subjectWidth, subject)), age)
		} else {
			vendor := dimStyle.Render(truncate(fmt.Sprintf("%-14s", inq.VendorName), 14))
			line = fmt.Sprintf("%s %s %s %s", prio, vendor, rowStyle.Render(fmt.Sprintf("%-*s", subjectWidth, subject)), age)
		}

		if active && i == p.selIdx {
			line = selStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	return strings.Join(rows, "\n")
}

// shortPriority abbreviates "informational" so the column stays narrow.
func shortPriority(priority string) string {
	if priority == model.PriorityInformational {
		return "info"
	}
	return priority
}

// formatAge renders how long ago an inquiry arrived.
func formatAge(at time.Time) string {
	if at.IsZero() {
		return "-"
	}
	d := time.Since(at)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	}
}
