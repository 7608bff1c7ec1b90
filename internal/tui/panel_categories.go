package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/projectcompass/spyglass/internal/model"
)

// CategoriesPanel displays the inquiry category distribution as
// horizontal proportion bars.
type CategoriesPanel struct {
	panelSource
	categories []model.CategoryShare
	hasData    bool
}

// NewCategoriesPanel creates an empty categories panel.
func NewCategoriesPanel() *CategoriesPanel { return &CategoriesPanel{} }

func (p *CategoriesPanel) ID() string    { return "categories" }
func (p *CategoriesPanel) Title() string { return "Categories" }

// SetData replaces the panel's payload.
func (p *CategoriesPanel) SetData(dist model.CategoryDistribution) {
	p.categories = append([]model.CategoryShare(nil), dist.Categories...)
	p.hasData = true
}

func (p *CategoriesPanel) ContentLines(_ ViewContext) int {
	return max(4, len(p.categories))
}

func (p *CategoriesPanel) ItemCount() int { return len(p.categories) }

func (p *CategoriesPanel) Render(ctx ViewContext, width, height int, active bool) string {
	style := panelStyle.Width(width).Height(height)
	if active {
		style = activePanelStyle.Width(width).Height(height)
	}

	titleText := p.Title()
	if total := p.totalCount(); total > 0 {
		titleText = fmt.Sprintf("%s (%d inquiries)", p.Title(), total)
	}
	title := panelTitleStyle.Render(titleText) + p.titleBadge()

	var content string
	switch {
	case !p.hasData && p.loading():
		content = renderLoadingPlaceholder(width-4, height-3)
	case !p.hasData && p.faultLine() != "":
		content = errorBadgeStyle.Render("✗ " + p.faultLine())
	case len(p.categories) == 0:
		content = helpStyle.Render("No data available")
	default:
		content = p.renderContent(width-4, height-3)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (p *CategoriesPanel) totalCount() int {
	total := 0
	for _, share := range p.categories {
		total += share.Count
	}
	return total
}

func (p *CategoriesPanel) renderContent(width, height int) string {
	maxPct := 0.0
	for _, share := range p.categories {
		if share.Percentage > maxPct {
			maxPct = share.Percentage
		}
	}
	if maxPct <= 0 {
		maxPct = 1
	}

	nameWidth := width - 28
	if nameWidth < 12 {
		nameWidth = 12
	}

	var lines []string
	for i, share := range p.categories {
		if i >= height {
			break
		}

		barWidth := 12
		fillWidth := int(share.Percentage * float64(barWidth) / maxPct)
		if fillWidth == 0 && share.Count > 0 {
			fillWidth = 1
		}
		if fillWidth > barWidth {
			fillWidth = barWidth
		}

		bar := strings.Repeat("█", fillWidth) + strings.Repeat("░", barWidth-fillWidth)
		percentage := fmt.Sprintf("%5.1f%%", share.Percentage)

		name := share.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}

		line := fmt.Sprintf("%s %s │ %s %s",
			categoryStyle(share.Name).Render(bar),
			lipgloss.NewStyle().Foreground(ColorGray).Render(percentage),
			lipgloss.NewStyle().Foreground(ColorWhite).Render(name),
			lipgloss.NewStyle().Foreground(ColorDim).Render(fmt.Sprintf("(%d)", share.Count)),
		)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// categoryStyle colors a category's proportion bar.
func categoryStyle(category string) lipgloss.Style {
	colors := map[string]lipgloss.Color{
		model.CategoryPrequalification: ColorBlue,
		model.CategoryFinance:          ColorGreen,
		model.CategoryContract:         ColorYellow,
		model.CategoryBidding:          ColorPink,
		model.CategoryIssue:            ColorRed,
		model.CategoryInformation:      ColorGray,
		model.CategoryOther:            ColorDim,
	}
	if c, ok := colors[category]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(ColorDim)
}
