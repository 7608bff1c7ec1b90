package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/projectcompass/spyglass/internal/fault"
	"github.com/projectcompass/spyglass/internal/fetch"
	"github.com/projectcompass/spyglass/internal/model"
)

func testViewContext() ViewContext {
	return ViewContext{ContentWidth: 120, ContentHeight: 40}
}

func TestStatusPanelRender(t *testing.T) {
	t.Parallel()

	p := NewStatusPanel()
	p.SetData(model.SystemStatus{
		Status:            "operational",
		ActiveInquiries:   3,
		TotalInquiries:    41,
		NotificationsSent: 17,
		Metrics: &model.PerformanceMetrics{
			UptimeSeconds: 93784,
			Performance: model.PerformanceStats{
				AvgResponseTime:        0.25,
				CategorizationAccuracy: 0.92,
				RoutingEfficiency:      0.88,
			},
			Queue: model.QueueMetrics{CurrentQueueSize: 3, AvgWaitTime: 2.5},
		},
	})

	out := p.Render(testViewContext(), 54, 12, false)
	for _, want := range []string{"System Status", "operational", "41", "1d2h", "0.25s", "92%"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestStatusPanelStates(t *testing.T) {
	t.Parallel()

	p := NewStatusPanel()

	out := p.Render(testViewContext(), 54, 12, false)
	if !strings.Contains(out, "No data available") {
		t.Error("empty panel should say no data")
	}

	p.setSource(fetch.SourceState{Name: sourceStatus, Phase: fetch.PhaseLoading})
	out = p.Render(testViewContext(), 54, 12, false)
	if !strings.Contains(out, "Loading") {
		t.Error("loading panel should show the placeholder")
	}

	p.setSource(fetch.SourceState{
		Name:  sourceStatus,
		Phase: fetch.PhaseError,
		Fault: &fault.Fault{Kind: fault.KindNetwork, Message: "no response received"},
	})
	out = p.Render(testViewContext(), 54, 12, false)
	if !strings.Contains(out, "no response received") {
		t.Error("failed panel should show the classified fault")
	}
}

func TestStatusPanelStaleKeepsData(t *testing.T) {
	t.Parallel()

	p := NewStatusPanel()
	p.SetData(model.SystemStatus{Status: "operational", TotalInquiries: 41})
	p.setSource(fetch.SourceState{
		Name:        sourceStatus,
		Phase:       fetch.PhaseError,
		Fault:       &fault.Fault{Kind: fault.KindRemote, StatusCode: 503, Message: "Service Unavailable"},
		LastSuccess: time.Now(),
	})

	out := p.Render(testViewContext(), 54, 14, false)
	if !strings.Contains(out, "stale") {
		t.Error("stale badge missing")
	}
	if !strings.Contains(out, "operational") {
		t.Error("stale panel dropped its last good payload")
	}
	if !strings.Contains(out, "503") {
		t.Error("stale panel should still surface the fault")
	}
}

func TestInquiriesPanelRender(t *testing.T) {
	t.Parallel()

	p := NewInquiriesPanel()
	p.SetData(model.RecentInquiries{
		Inquiries: []model.InquirySummary{
			{ID: "INQ-1", VendorName: "Acme Corp", Subject: "Invoice overdue", Priority: model.PriorityHigh, CreatedAt: time.Now().Add(-2 * time.Hour)},
			{ID: "INQ-2", VendorName: "Generic", Subject: "Contract terms", Priority: model.PriorityInformational, CreatedAt: time.Now()},
		},
		Total: 12,
	})

	out := p.Render(testViewContext(), 60, 10, true)
	for _, want := range []string{"Recent Inquiries (2 of 12)", "Invoice overdue", "Acme Corp", "high", "2h", "info", "▸"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	// Inactive panels render no cursor.
	out = p.Render(testViewContext(), 60, 10, false)
	if strings.Contains(out, "▸") {
		t.Error("inactive panel should not render a cursor")
	}
}

func TestInquiriesPanelScrollsToSelection(t *testing.T) {
	t.Parallel()

	var rows []model.InquirySummary
	for _, subject := range []string{"first", "second", "third", "fourth", "fifth"} {
		rows = append(rows, model.InquirySummary{Subject: subject, Priority: model.PriorityLow})
	}
	p := NewInquiriesPanel()
	p.SetData(model.RecentInquiries{Inquiries: rows, Total: 5})

	p.MoveSelection(4)

	// Room for two rows: title and borders eat the rest.
	out := p.Render(testViewContext(), 60, 5, true)
	if !strings.Contains(out, "fifth") {
		t.Error("selected row scrolled out of view")
	}
	if strings.Contains(out, "first") {
		t.Error("window did not move with the selection")
	}
}

func TestDepartmentsPanelRender(t *testing.T) {
	t.Parallel()

	p := NewDepartmentsPanel()
	p.SetData(model.DepartmentStats{Departments: []model.DepartmentStat{
		{Name: "Finance", InquiryCount: 12, AvgResponseHours: 4.5, Load: 62},
		{Name: "Legal", InquiryCount: 4, AvgResponseHours: 12.0, Load: 88},
	}})

	out := p.Render(testViewContext(), 70, 12, false)
	for _, want := range []string{"Department Load", "Finance", "Legal", "62%", "88%", "12 inq", "4.5h"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestCategoriesPanelRender(t *testing.T) {
	t.Parallel()

	p := NewCategoriesPanel()
	p.SetData(model.CategoryDistribution{Categories: []model.CategoryShare{
		{Name: model.CategoryFinance, Count: 25, Percentage: 25},
		{Name: model.CategoryContract, Count: 75, Percentage: 75},
	}})

	out := p.Render(testViewContext(), 60, 10, false)
	for _, want := range []string{"Categories (100 inquiries)", "finance", "contract", "75.0%", "25.0%", "(75)", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		seconds float64
		want    string
	}{
		{93784, "1d2h"},
		{3900, "1h05m"},
		{125, "2m05s"},
		{59, "0m59s"},
	}
	for _, tc := range cases {
		if got := formatUptime(tc.seconds); got != tc.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	now := time.Now()
	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Time{}, "-"},
		{now.Add(-30 * time.Second), "now"},
		{now.Add(-5 * time.Minute), "5m"},
		{now.Add(-3 * time.Hour), "3h"},
		{now.Add(-48 * time.Hour), "2d"},
	}
	for _, tc := range cases {
		if got := formatAge(tc.at); got != tc.want {
			t.Errorf("formatAge(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short, 10) = %q", got)
	}
	if got := truncate("a very long subject line", 10); got != "a very ..." {
		t.Errorf("truncate long = %q", got)
	}
	if got := truncate("abc", 3); got != "abc" {
		t.Errorf("truncate at width = %q", got)
	}
}
