// Package sim is an in-memory stand-in for the ProjectCompass inquiry
// service. It serves the same five endpoints with the same payload
// shapes, so the dashboard runs end-to-end without the real backend.
package sim

import (
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/projectcompass/spyglass/internal/model"
)

const maxQueueSize = 25

// Store holds the simulated service state. All methods are safe for
// concurrent use.
type Store struct {
	mu sync.Mutex

	started           time.Time
	status            string
	queueSize         int
	processed         int
	notificationsSent int
	avgResponse       float64 // seconds
	errorCount        int

	inquiries   []model.InquirySummary // newest first
	departments []model.DepartmentStat
	categories  []model.CategoryShare

	rng *rand.Rand
}

// NewStore seeds a store with the given fixtures, falling back to the
// built-in demo data for anything the fixtures leave empty.
func NewStore(fix ...Fixtures) *Store {
	s := &Store{
		started:     time.Now(),
		status:      "operational",
		queueSize:   3,
		avgResponse: 0.42,
		rng:         rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	s.seedDemo()
	if len(fix) > 0 {
		s.applyFixtures(fix[0])
	}
	s.processed = s.totalInquiries()
	s.notificationsSent = s.processed
	s.recalcPercentages()
	return s
}

func (s *Store) seedDemo() {
	s.inquiries = []model.InquirySummary{
		{
			ID:         "INQ-12345ABC",
			VendorName: "Acme Corp",
			Subject:    "Prequalification Application Status",
			Category:   model.CategoryPrequalification,
			Priority:   model.PriorityMedium,
			Status:     model.StatusAssigned,
			AssignedTo: "registration.specialist@example.com",
			CreatedAt:  time.Now().Add(-4 * time.Hour),
		},
		{
			ID:         "INQ-67890DEF",
			VendorName: "TechSupplies Inc",
			Subject:    "Invoice Payment Issue",
			Category:   model.CategoryFinance,
			Priority:   model.PriorityHigh,
			Status:     model.StatusInProgress,
			AssignedTo: "finance.senior@example.com",
			CreatedAt:  time.Now().Add(-2 * time.Hour),
		},
	}
	s.departments = []model.DepartmentStat{
		{Name: "Registration", InquiryCount: 42, AvgResponseHours: 8.5, Load: 65},
		{Name: "Finance", InquiryCount: 27, AvgResponseHours: 12.3, Load: 45},
		{Name: "Contracts", InquiryCount: 19, AvgResponseHours: 24.7, Load: 35},
		{Name: "Technical Support", InquiryCount: 35, AvgResponseHours: 4.2, Load: 55},
	}
	s.categories = []model.CategoryShare{
		{Name: model.CategoryPrequalification, Count: 30},
		{Name: model.CategoryFinance, Count: 24},
		{Name: model.CategoryContract, Count: 18},
		{Name: model.CategoryBidding, Count: 12},
		{Name: model.CategoryIssue, Count: 24},
		{Name: model.CategoryInformation, Count: 12},
	}
}

func (s *Store) totalInquiries() int {
	total := 0
	for _, c := range s.categories {
		total += c.Count
	}
	return total
}

// SystemStatus reports the simulated health summary. Queue figures
// drift a little on every read so a polling dashboard shows movement.
func (s *Store) SystemStatus() model.SystemStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drift()

	return model.SystemStatus{
		Status:            s.status,
		ActiveInquiries:   s.queueSize,
		TotalInquiries:    s.processed,
		NotificationsSent: s.notificationsSent,
		Metrics: &model.PerformanceMetrics{
			Time:          time.Now().UTC().Format(time.RFC3339),
			UptimeSeconds: time.Since(s.started).Seconds(),
			System: model.SystemCounters{
				InquiriesProcessed: s.processed,
				AvgProcessingTime:  1.8,
				ErrorCount:         s.errorCount,
			},
			Performance: model.PerformanceStats{
				AvgResponseTime:        s.avgResponse,
				CategorizationAccuracy: 0.97,
				RoutingEfficiency:      0.99,
			},
			Queue: model.QueueMetrics{
				CurrentQueueSize: s.queueSize,
				AvgWaitTime:      float64(s.queueSize) * 2.5,
			},
		},
	}
}

func (s *Store) drift() {
	s.queueSize += s.rng.IntN(3) - 1
	if s.queueSize < 0 {
		s.queueSize = 0
	}
	if s.queueSize > maxQueueSize {
		s.queueSize = maxQueueSize
	}
	s.avgResponse *= 1 + (s.rng.Float64()-0.5)/20
	s.avgResponse = math.Round(s.avgResponse*1000) / 1000
}

// RecentInquiries returns up to limit of the newest inquiries.
func (s *Store) RecentInquiries(limit int) model.RecentInquiries {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.inquiries) {
		limit = len(s.inquiries)
	}
	out := make([]model.InquirySummary, limit)
	copy(out, s.inquiries[:limit])
	return model.RecentInquiries{Inquiries: out, Total: len(s.inquiries)}
}

// DepartmentStats returns the per-department workload figures.
func (s *Store) DepartmentStats() model.DepartmentStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.DepartmentStat, len(s.departments))
	copy(out, s.departments)
	return model.DepartmentStats{Departments: out}
}

// CategoryDistribution returns the inquiry mix by category.
func (s *Store) CategoryDistribution() model.CategoryDistribution {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CategoryShare, len(s.categories))
	copy(out, s.categories)
	return model.CategoryDistribution{Categories: out}
}

// Submit records a new inquiry: classifies it when the submission left
// category or priority empty, prepends it to the recent list, and
// bumps the counters the way the real intake pipeline would.
func (s *Store) Submit(sub model.InquirySubmission) model.SubmitReceipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := sub.Category
	priority := sub.Priority
	if category == "" {
		category = classifyCategory(sub.Subject + " " + sub.Content)
	}
	if priority == "" {
		priority = classifyPriority(sub.Subject + " " + sub.Content)
	}

	id := "INQ-" + strings.ToUpper(uuid.New().String()[:8])
	s.inquiries = append([]model.InquirySummary{{
		ID:         id,
		VendorName: vendorName(sub),
		Subject:    sub.Subject,
		Category:   category,
		Priority:   priority,
		Status:     model.StatusNew,
		CreatedAt:  time.Now().UTC(),
	}}, s.inquiries...)

	s.queueSize++
	s.processed++
	s.notificationsSent++
	s.bumpCategory(category)
	s.recalcPercentages()

	return model.SubmitReceipt{
		Status:    "success",
		InquiryID: id,
		Message:   "Inquiry received and being processed",
	}
}

// UpdateCategory patches one category's count by name. Reports whether
// the category exists; percentages are recalculated on success.
func (s *Store) UpdateCategory(name string, fields map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].Name != name {
			continue
		}
		if v, ok := numField(fields, "count"); ok {
			s.categories[i].Count = int(v)
		}
		s.recalcPercentages()
		return true
	}
	return false
}

// UpdateDepartment patches one department's figures by name.
func (s *Store) UpdateDepartment(name string, fields map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.departments {
		if s.departments[i].Name != name {
			continue
		}
		if v, ok := numField(fields, "inquiry_count"); ok {
			s.departments[i].InquiryCount = int(v)
		}
		if v, ok := numField(fields, "avg_response_time"); ok {
			s.departments[i].AvgResponseHours = v
		}
		if v, ok := numField(fields, "load"); ok {
			s.departments[i].Load = int(v)
		}
		return true
	}
	return false
}

func (s *Store) bumpCategory(name string) {
	for i := range s.categories {
		if s.categories[i].Name == name {
			s.categories[i].Count++
			return
		}
	}
	s.categories = append(s.categories, model.CategoryShare{Name: name, Count: 1})
}

// recalcPercentages redistributes the category percentages after any
// count change, one decimal place like the original service.
func (s *Store) recalcPercentages() {
	total := s.totalInquiries()
	for i := range s.categories {
		if total == 0 {
			s.categories[i].Percentage = 0
			continue
		}
		pct := float64(s.categories[i].Count) / float64(total) * 100
		s.categories[i].Percentage = math.Round(pct*10) / 10
	}
}

// numField reads a numeric JSON field, which decodes as float64.
func numField(fields map[string]any, key string) (float64, bool) {
	v, ok := fields[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func vendorName(sub model.InquirySubmission) string {
	if sub.FromName != "" {
		return sub.FromName
	}
	if at := strings.IndexByte(sub.FromEmail, '@'); at > 0 {
		return sub.FromEmail[:at]
	}
	return sub.FromEmail
}

// classifyCategory is the simulator's cheap stand-in for the analysis
// agent's categorization.
func classifyCategory(text string) string {
	text = strings.ToLower(text)
	switch {
	case containsAny(text, "prequalification", "prequalify", "register", "registration"):
		return model.CategoryPrequalification
	case containsAny(text, "invoice", "payment", "refund", "billing"):
		return model.CategoryFinance
	case containsAny(text, "contract", "agreement", "terms"):
		return model.CategoryContract
	case containsAny(text, "bid", "tender", "proposal", "rfp"):
		return model.CategoryBidding
	case containsAny(text, "issue", "problem", "error", "broken", "fail"):
		return model.CategoryIssue
	case containsAny(text, "information", "question", "how do", "what is"):
		return model.CategoryInformation
	default:
		return model.CategoryOther
	}
}

func classifyPriority(text string) string {
	text = strings.ToLower(text)
	switch {
	case containsAny(text, "urgent", "critical", "immediately", "emergency"):
		return model.PriorityCritical
	case containsAny(text, "asap", "overdue", "deadline", "escalate"):
		return model.PriorityHigh
	case containsAny(text, "whenever", "no rush", "fyi"):
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
