package model

// Inquiry categories understood by the remote classifier.
const (
	CategoryPrequalification = "prequalification"
	CategoryFinance          = "finance"
	CategoryContract         = "contract"
	CategoryBidding          = "bidding"
	CategoryIssue            = "issue"
	CategoryInformation      = "information"
	CategoryOther            = "other"
)

// Inquiry priorities, highest first.
const (
	PriorityCritical      = "critical"
	PriorityHigh          = "high"
	PriorityMedium        = "medium"
	PriorityLow           = "low"
	PriorityInformational = "informational"
)

// Inquiry lifecycle statuses.
const (
	StatusNew         = "new"
	StatusCategorized = "categorized"
	StatusPrioritized = "prioritized"
	StatusAssigned    = "assigned"
	StatusInProgress  = "in_progress"
	StatusPendingInfo = "pending_info"
	StatusResolved    = "resolved"
	StatusClosed      = "closed"
	StatusEscalated   = "escalated"
)

// Categories lists the submission categories in form display order.
func Categories() []string {
	return []string{
		CategoryPrequalification,
		CategoryFinance,
		CategoryContract,
		CategoryBidding,
		CategoryIssue,
		CategoryInformation,
		CategoryOther,
	}
}

// Priorities lists the submission priorities in form display order.
func Priorities() []string {
	return []string{
		PriorityCritical,
		PriorityHigh,
		PriorityMedium,
		PriorityLow,
		PriorityInformational,
	}
}
