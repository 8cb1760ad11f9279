package models

import "time"

// IssueStatus is the maintenance workflow state. Transitions are strictly
// forward: pending -> inProgress -> completed.
type IssueStatus string

const (
	IssuePending    IssueStatus = "pending"
	IssueInProgress IssueStatus = "inProgress"
	IssueCompleted  IssueStatus = "completed"
)

// ValidIssueStatus reports whether s is a known workflow state.
func ValidIssueStatus(s IssueStatus) bool {
	switch s {
	case IssuePending, IssueInProgress, IssueCompleted:
		return true
	default:
		return false
	}
}

// IssueType classifies a reported defect.
type IssueType string

const (
	IssueMechanical IssueType = "mechanical"
	IssueElectrical IssueType = "electrical"
	IssueSoftware   IssueType = "software"
	IssueCosmetic   IssueType = "cosmetic"
	IssueOther      IssueType = "other"
)

// ValidIssueType reports whether t is a known issue type.
func ValidIssueType(t IssueType) bool {
	switch t {
	case IssueMechanical, IssueElectrical, IssueSoftware, IssueCosmetic, IssueOther:
		return true
	default:
		return false
	}
}

// IssuePriority ranks how urgently an issue needs attention.
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
)

// ValidIssuePriority reports whether p is a known priority.
func ValidIssuePriority(p IssuePriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// MaintenanceIssue is a reported defect tied to one scooter. IDs follow the
// ISSUE-### format. Resolution and ResolvedAt are set only when the issue
// reaches completed.
type MaintenanceIssue struct {
	ID          string        `json:"id"`
	ScooterID   string        `json:"scooter_id"`
	ScooterMake string        `json:"scooter_make"`
	ReportedBy  string        `json:"reported_by"`
	ReportedAt  time.Time     `json:"reported_at"`
	IssueType   IssueType     `json:"issue_type"`
	Priority    IssuePriority `json:"priority"`
	Description string        `json:"description"`
	Status      IssueStatus   `json:"status"`
	Resolution  string        `json:"resolution,omitempty"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty"`
}

// Open reports whether the issue still blocks its scooter.
func (i *MaintenanceIssue) Open() bool {
	return i.Status != IssueCompleted
}
