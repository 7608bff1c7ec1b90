package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/projectcompass/spyglass/internal/model"
)

// DepartmentsPanel charts per-department load with a legend of inquiry
// counts and response times.
type DepartmentsPanel struct {
	panelSource
	departments []model.DepartmentStat
	hasData     bool
}

// NewDepartmentsPanel creates an empty departments panel.
func NewDepartmentsPanel() *DepartmentsPanel { return &DepartmentsPanel{} }

func (p *DepartmentsPanel) ID() string    { return "departments" }
func (p *DepartmentsPanel) Title() string { return "Department Load" }

// SetData replaces the panel's payload.
func (p *DepartmentsPanel) SetData(stats model.DepartmentStats) {
	p.departments = append([]model.DepartmentStat(nil), stats.Departments...)
	p.hasData = true
}

func (p *DepartmentsPanel) ContentLines(_ ViewContext) int {
	return max(6, len(p.departments)+2)
}

func (p *DepartmentsPanel) ItemCount() int { return len(p.departments) }

func (p *DepartmentsPanel) Render(ctx ViewContext, width, height int, active bool) string {
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
	case len(p.departments) == 0:
		content = helpStyle.Render("No data available")
	default:
		content = p.renderContent(ctx, width-4, height-3)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (p *DepartmentsPanel) renderContent(ctx ViewContext, width, height int) string {
	legendWidth := 32
	if ctx.Compact {
		legendWidth = 0
	}

	chartHeight := height
	if chartHeight < 3 {
		chartHeight = 3
	}
	chartWidth := width - legendWidth - 2
	if chartWidth < 12 {
		chartWidth = 12
	}

	barWidth := chartWidth/max(len(p.departments), 1) - 1
	if barWidth < 1 {
		barWidth = 1
	}
	if barWidth > 6 {
		barWidth = 6
	}

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)

	remainderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("236")).
		Background(lipgloss.Color("236"))

	// Stack load against its remainder so every bar totals 100 and the
	// chart scales as an absolute percentage.
	for _, dept := range p.departments {
		color := loadStyle(dept.Load).GetForeground()
		barStyle := lipgloss.NewStyle().Foreground(color).Background(color)
		load := dept.Load
		if load < 0 {
			load = 0
		}
		if load > 100 {
			load = 100
		}
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: "LOAD", Value: float64(load), Style: barStyle},
				{Name: "FREE", Value: float64(100 - load), Style: remainderStyle},
			},
		})
	}

	bc.Draw()
	chartOutput := bc.View()

	if legendWidth == 0 {
		return chartOutput
	}

	dim := lipgloss.NewStyle().Foreground(ColorGray)
	var legendLines []string
	for _, dept := range p.departments {
		load := loadStyle(dept.Load).Render(fmt.Sprintf("%3d%%", dept.Load))
		legendLines = append(legendLines, fmt.Sprintf("%s %s %s",
			load,
			truncate(fmt.Sprintf("%-14s", dept.Name), 14),
			dim.Render(fmt.Sprintf("%3d inq %5.1fh", dept.InquiryCount, dept.AvgResponseHours)),
		))
	}
	for len(legendLines) < chartHeight {
		legendLines = append(legendLines, "")
	}

	separator := strings.Repeat(" ", 2)
	chartLines := strings.Split(chartOutput, "\n")
	for len(chartLines) < chartHeight {
		chartLines = append(chartLines, "")
	}

	var combinedLines []string
	for i := 0; i < chartHeight; i++ {
		chartLine := ""
		legendLine := ""
		if i < len(chartLines) {
			chartLine = chartLines[i]
		}
		if i < len(legendLines) {
			legendLine = legendLines[i]
		}
		if pad := chartWidth - lipgloss.Width(chartLine); pad > 0 {
			chartLine += strings.Repeat(" ", pad)
		}
		combinedLines = append(combinedLines, chartLine+separator+legendLine)
	}

	return strings.Join(combinedLines, "\n")
}
