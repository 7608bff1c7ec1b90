package model

import "time"

// SystemStatus is the health summary served by GET /api/system/status.
// Metrics is nil when the remote has no monitoring agent attached.
type SystemStatus struct {
	Status            string              `json:"status"` // "operational", "degraded", ...
	ActiveInquiries   int                 `json:"active_inquiries"`
	TotalInquiries    int                 `json:"total_inquiries"`
	NotificationsSent int                 `json:"notifications_sent"`
	Metrics           *PerformanceMetrics `json:"performance_metrics,omitempty"`
}

// PerformanceMetrics is the monitoring snapshot nested inside SystemStatus.
type PerformanceMetrics struct {
	Time          string           `json:"time"`
	UptimeSeconds float64          `json:"uptime_seconds"`
	System        SystemCounters   `json:"system"`
	Performance   PerformanceStats `json:"performance"`
	Queue         QueueMetrics     `json:"queue"`
}

// SystemCounters holds lifetime processing totals.
type SystemCounters struct {
	InquiriesProcessed int     `json:"inquiries_processed"`
	AvgProcessingTime  float64 `json:"avg_processing_time"` // seconds
	ErrorCount         int     `json:"error_count"`
}

// PerformanceStats holds quality-of-service measurements.
type PerformanceStats struct {
	AvgResponseTime        float64 `json:"avg_response_time"` // seconds
	CategorizationAccuracy float64 `json:"categorization_accuracy"`
	RoutingEfficiency      float64 `json:"routing_efficiency"`
}

// QueueMetrics holds the current intake queue state.
type QueueMetrics struct {
	CurrentQueueSize int     `json:"current_queue_size"`
	AvgWaitTime      float64 `json:"avg_wait_time"` // seconds
}

// InquirySummary is one row of GET /api/inquiries/recent.
type InquirySummary struct {
	ID         string    `json:"id"` // "INQ-" + 8 uppercase hex
	VendorName string    `json:"vendor_name"`
	Subject    string    `json:"subject"`
	Category   string    `json:"category"`
	Priority   string    `json:"priority"`
	Status     string    `json:"status"`
	AssignedTo string    `json:"assigned_to"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecentInquiries is the envelope for GET /api/inquiries/recent.
type RecentInquiries struct {
	Inquiries []InquirySummary `json:"inquiries"`
	Total     int              `json:"total"`
}

// DepartmentStat is one row of GET /api/departments/stats.
type DepartmentStat struct {
	Name             string  `json:"name"`
	InquiryCount     int     `json:"inquiry_count"`
	AvgResponseHours float64 `json:"avg_response_time"`
	Load             int     `json:"load"` // percent, 0-100
}

// DepartmentStats is the envelope for GET /api/departments/stats.
type DepartmentStats struct {
	Departments []DepartmentStat `json:"departments"`
}

// CategoryShare is one row of GET /api/categories/distribution.
type CategoryShare struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoryDistribution is the envelope for GET /api/categories/distribution.
type CategoryDistribution struct {
	Categories []CategoryShare `json:"categories"`
}

// InquirySubmission is the request body for POST /api/inquiries/submit.
// Category and Priority are optional; the remote classifies when empty.
type InquirySubmission struct {
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name,omitempty"`
	Subject   string `json:"subject"`
	Content   string `json:"content"`
	Category  string `json:"category,omitempty"`
	Priority  string `json:"priority,omitempty"`
}

// SubmitReceipt is the acknowledgement for POST /api/inquiries/submit.
type SubmitReceipt struct {
	Status    string `json:"status"`
	InquiryID string `json:"inquiry_id"`
	Message   string `json:"message"`
}

// UpdateReceipt is the acknowledgement for the stats update endpoints.
type UpdateReceipt struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
