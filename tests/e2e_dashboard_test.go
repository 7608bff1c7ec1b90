package tests

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/projectcompass/spyglass/internal/compassapi"
	"github.com/projectcompass/spyglass/internal/fault"
	"github.com/projectcompass/spyglass/internal/fetch"
	"github.com/projectcompass/spyglass/internal/model"
	"github.com/projectcompass/spyglass/internal/sim"
	"github.com/projectcompass/spyglass/internal/tui"
)

type e2eStack struct {
	server *sim.Server
	store  *sim.Store
	client *compassapi.Client
}

func startSimStack(t *testing.T) *e2eStack {
	t.Helper()

	store := sim.NewStore()
	server := sim.NewServer("127.0.0.1:0", store)
	if err := server.Start(); err != nil {
		t.Fatalf("sim Start: %v", err)
	}
	t.Cleanup(func() { _ = server.Stop() })

	baseURL := "http://" + server.Addr()
	client := compassapi.NewClient(baseURL, compassapi.Config{Timeout: 5 * time.Second})

	waitEventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		resp, err := http.Get(baseURL + "/")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, "simulator did not become ready")

	return &e2eStack{server: server, store: store, client: client}
}

func startSync(t *testing.T, stack *e2eStack, every time.Duration) *tui.DataSync {
	t.Helper()

	sync := tui.NewDataSync(stack.client, tui.SyncConfig{RefreshEvery: every})
	t.Cleanup(sync.Deactivate)
	sync.Activate(context.Background())
	settleSync(t, sync)
	return sync
}

func settleSync(t *testing.T, s *tui.DataSync) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.WaitSettled(ctx); err != nil {
		t.Fatalf("wait settled: %v", err)
	}
}

func waitEventually(t *testing.T, timeout, interval time.Duration, condition func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if condition() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("eventually timeout: %s", msg)
		}
		time.Sleep(interval)
	}
}

func TestE2E_DashboardSyncAgainstSim(t *testing.T) {
	stack := startSimStack(t)
	sync := startSync(t, stack, time.Hour)

	snap := sync.Snapshot()
	if snap.Group.Overall != fetch.PhaseSuccess {
		t.Fatalf("overall phase = %v, want success", snap.Group.Overall)
	}
	if len(snap.Group.Failing) != 0 {
		t.Fatalf("failing sources: %v", snap.Group.Failing)
	}
	if snap.Group.LastRefreshed.IsZero() {
		t.Fatal("last refreshed not recorded")
	}

	if snap.Status.Status != "operational" {
		t.Errorf("status = %q, want operational", snap.Status.Status)
	}
	if snap.Status.Metrics == nil {
		t.Error("status metrics missing")
	}
	if snap.Inquiries.Total != 2 {
		t.Errorf("inquiry total = %d, want 2", snap.Inquiries.Total)
	}
	if got := snap.Inquiries.Inquiries[0].VendorName; got != "Acme Corp" {
		t.Errorf("newest vendor = %q, want Acme Corp", got)
	}
	if got := len(snap.Departments.Departments); got != 4 {
		t.Errorf("departments = %d, want 4", got)
	}
	if got := len(snap.Categories.Categories); got != 6 {
		t.Errorf("categories = %d, want 6", got)
	}

	var pctSum float64
	for _, share := range snap.Categories.Categories {
		pctSum += share.Percentage
	}
	if pctSum < 99.0 || pctSum > 101.0 {
		t.Errorf("category percentages sum to %.1f, want ~100", pctSum)
	}

	// The limit parameter travels through the query string.
	one, err := stack.client.RecentInquiries(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecentInquiries(1): %v", err)
	}
	if len(one.Inquiries) != 1 || one.Total != 2 {
		t.Errorf("limited fetch = %d of %d, want 1 of 2", len(one.Inquiries), one.Total)
	}
}

func TestE2E_SubmitRoundTripReclassifies(t *testing.T) {
	stack := startSimStack(t)
	sync := startSync(t, stack, time.Hour)

	before := sync.Snapshot()

	receipt, err := stack.client.SubmitInquiry(context.Background(), model.InquirySubmission{
		FromEmail: "ops@vendorco.example",
		FromName:  "VendorCo",
		Subject:   "Urgent: invoice payment overdue",
		Content:   "Invoice INV-77 is past due. Please escalate to finance.",
	})
	if err != nil {
		t.Fatalf("SubmitInquiry: %v", err)
	}
	if receipt.Status != "success" {
		t.Fatalf("receipt status = %q", receipt.Status)
	}
	if !strings.HasPrefix(receipt.InquiryID, "INQ-") {
		t.Fatalf("receipt id = %q, want INQ- prefix", receipt.InquiryID)
	}

	if err := sync.TriggerNow(context.Background()); err != nil {
		t.Fatalf("TriggerNow: %v", err)
	}
	settleSync(t, sync)

	snap := sync.Snapshot()
	if snap.Inquiries.Total != before.Inquiries.Total+1 {
		t.Errorf("inquiry total = %d, want %d", snap.Inquiries.Total, before.Inquiries.Total+1)
	}

	newest := snap.Inquiries.Inquiries[0]
	if newest.ID != receipt.InquiryID {
		t.Errorf("newest inquiry id = %q, want %q", newest.ID, receipt.InquiryID)
	}
	if newest.VendorName != "VendorCo" {
		t.Errorf("vendor = %q, want VendorCo", newest.VendorName)
	}
	// The submission carried no category or priority, so the intake
	// classifier fills them from the text.
	if newest.Category != model.CategoryFinance {
		t.Errorf("category = %q, want %q", newest.Category, model.CategoryFinance)
	}
	if newest.Priority != model.PriorityCritical {
		t.Errorf("priority = %q, want %q", newest.Priority, model.PriorityCritical)
	}

	var beforeFinance, afterFinance int
	for _, share := range before.Categories.Categories {
		if share.Name == model.CategoryFinance {
			beforeFinance = share.Count
		}
	}
	for _, share := range snap.Categories.Categories {
		if share.Name == model.CategoryFinance {
			afterFinance = share.Count
		}
	}
	if afterFinance != beforeFinance+1 {
		t.Errorf("finance count = %d, want %d", afterFinance, beforeFinance+1)
	}
}

func TestE2E_PeriodicRefreshUpdatesTimestamp(t *testing.T) {
	stack := startSimStack(t)
	sync := startSync(t, stack, 50*time.Millisecond)

	first := sync.Snapshot().Group.LastRefreshed
	if first.IsZero() {
		t.Fatal("first cycle did not record a refresh time")
	}

	waitEventually(t, 3*time.Second, 10*time.Millisecond, func() bool {
		return sync.Snapshot().Group.LastRefreshed.After(first)
	}, "scheduler never completed a second cycle")
}

func TestE2E_FaultClassificationThroughStack(t *testing.T) {
	stack := startSimStack(t)
	ctx := context.Background()

	// Unknown category: the service answers 404 with a detail message.
	_, err := stack.client.UpdateCategory(ctx, "plumbing", map[string]any{"count": 1})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	f := fault.Classify(err)
	if f.Kind != fault.KindRemote || f.StatusCode != http.StatusNotFound {
		t.Fatalf("fault = %+v, want remote 404", f)
	}
	if !strings.Contains(f.Message, "not found") {
		t.Errorf("message = %q, want detail from response body", f.Message)
	}

	// Incomplete submission: the service rejects it with 422.
	_, err = stack.client.SubmitInquiry(ctx, model.InquirySubmission{FromEmail: "x@y.example"})
	if err == nil {
		t.Fatal("expected error for incomplete submission")
	}
	f = fault.Classify(err)
	if f.Kind != fault.KindRemote || f.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("fault = %+v, want remote 422", f)
	}
	if !strings.Contains(f.Message, "required") {
		t.Errorf("message = %q, want validation detail", f.Message)
	}

	// Nothing listening: the request never produces a response.
	dead := compassapi.NewClient("http://127.0.0.1:9", compassapi.Config{Timeout: 2 * time.Second})
	_, err = dead.SystemStatus(ctx)
	if err == nil {
		t.Fatal("expected error for dead endpoint")
	}
	if f := fault.Classify(err); f.Kind != fault.KindNetwork {
		t.Fatalf("fault = %+v, want network", f)
	}
}
