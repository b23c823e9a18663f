package domain

import "strings"

// ApprovalStatus captures the back-office approval lifecycle of a restaurant.
type ApprovalStatus string

const (
	ApprovalStatusUnknown   ApprovalStatus = ""
	ApprovalStatusPending   ApprovalStatus = "PENDING"
	ApprovalStatusApproved  ApprovalStatus = "APPROVED"
	ApprovalStatusRejected  ApprovalStatus = "REJECTED"
	ApprovalStatusSuspended ApprovalStatus = "SUSPENDED"
)

var allowedApprovalStatuses = map[string]ApprovalStatus{
	string(ApprovalStatusPending):   ApprovalStatusPending,
	string(ApprovalStatusApproved):  ApprovalStatusApproved,
	"ACTIVE":                        ApprovalStatusApproved,
	string(ApprovalStatusRejected):  ApprovalStatusRejected,
	string(ApprovalStatusSuspended): ApprovalStatusSuspended,
	"INACTIVE":                      ApprovalStatusSuspended,
}

// NormalizeApprovalStatus converts wire values into a canonical status while preserving
// unexpected custom values coming from upstream.
func NormalizeApprovalStatus(raw string) ApprovalStatus {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return ApprovalStatusUnknown
	}
	if status, ok := allowedApprovalStatuses[trimmed]; ok {
		return status
	}
	return ApprovalStatus(trimmed)
}

// WireValue returns the lowercase form the REST API expects.
func (s ApprovalStatus) WireValue() string {
	return strings.ToLower(string(s))
}
