package model

import "context"

// InquiryReader provides the read-side queries the dashboard renders.
// Each method maps to one idempotent GET on the inquiry service.
type InquiryReader interface {
	SystemStatus(ctx context.Context) (SystemStatus, error)
	RecentInquiries(ctx context.Context, limit int) (RecentInquiries, error)
	DepartmentStats(ctx context.Context) (DepartmentStats, error)
	CategoryDistribution(ctx context.Context) (CategoryDistribution, error)
}

// InquiryWriter submits new inquiries for processing.
type InquiryWriter interface {
	SubmitInquiry(ctx context.Context, sub InquirySubmission) (SubmitReceipt, error)
}

// API is the full client contract against the inquiry service.
type API interface {
	InquiryReader
	InquiryWriter
}
