package service

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"scootershare/internal/catalog"
	errs "scootershare/internal/errors"
	"scootershare/internal/models"
	"scootershare/internal/repository"
)

// issueTransitions is the forward-only maintenance workflow. completed is
// terminal; pending may skip straight to completed when a resolution
// accompanies the jump.
var issueTransitions = map[models.IssueStatus]map[models.IssueStatus]struct{}{
	models.IssuePending: {
		models.IssueInProgress: {},
		models.IssueCompleted:  {},
	},
	models.IssueInProgress: {
		models.IssueCompleted: {},
	},
	models.IssueCompleted: {},
}

func canTransition(current, next models.IssueStatus) bool {
	allowed, ok := issueTransitions[current]
	if !ok {
		return false
	}
	_, ok = allowed[next]
	return ok
}

// MaintenanceService tracks reported defects and keeps scooter statuses
// coupled to their open issues: a scooter with an open issue is never
// Available.
type MaintenanceService struct {
	issues   repository.IssueRepository
	scooters repository.ScooterRepository
	bookings repository.BookingRepository
	locks    *entityLocks
}

func NewMaintenanceService(store *repository.Store) *MaintenanceService {
	return &MaintenanceService{
		issues:   store.Issues,
		scooters: store.Scooters,
		bookings: store.Bookings,
		locks:    newEntityLocks(),
	}
}

// ReportRequest is a new defect report from any role.
type ReportRequest struct {
	ScooterID   string
	ReportedBy  string
	IssueType   models.IssueType
	Priority    models.IssuePriority
	Description string
}

func (r ReportRequest) validate() error {
	if !models.ValidIssueType(r.IssueType) {
		return errs.Validation("unknown issue type " + string(r.IssueType))
	}
	if !models.ValidIssuePriority(r.Priority) {
		return errs.Validation("unknown priority " + string(r.Priority))
	}
	if strings.TrimSpace(r.Description) == "" {
		return errs.Validation("description is required")
	}
	return nil
}

// Report files a pending issue against the scooter and pulls an Available
// scooter out of circulation (To Be Repaired).
func (m *MaintenanceService) Report(req ReportRequest) (*models.MaintenanceIssue, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	unlock := m.locks.lock(req.ScooterID)
	defer unlock()

	scooter, err := m.scooters.Get(req.ScooterID)
	if err != nil {
		return nil, err
	}

	issue := &models.MaintenanceIssue{
		ScooterID:   scooter.ID,
		ScooterMake: scooter.Make,
		ReportedBy:  req.ReportedBy,
		ReportedAt:  time.Now().UTC(),
		IssueType:   req.IssueType,
		Priority:    req.Priority,
		Description: req.Description,
		Status:      models.IssuePending,
	}
	if err := m.issues.Create(issue); err != nil {
		return nil, err
	}

	if scooter.Status == models.ScooterAvailable {
		scooter.Status = models.ScooterToBeRepaired
		if err := m.scooters.Update(scooter); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{"issue": issue.ID, "scooter": scooter.ID, "type": issue.IssueType}).Info("issue reported")
	return issue, nil
}

// UpdateStatus moves an issue forward through the workflow. Completing
// requires a non-empty resolution, which also stamps ResolvedAt; any
// backward move is rejected. The scooter's status follows the issue.
func (m *MaintenanceService) UpdateStatus(issueID string, next models.IssueStatus, resolution string) (*models.MaintenanceIssue, error) {
	if !models.ValidIssueStatus(next) {
		return nil, errs.Validation("unknown issue status " + string(next))
	}

	unlock := m.locks.lock(issueID)
	defer unlock()

	issue, err := m.issues.Get(issueID)
	if err != nil {
		return nil, err
	}
	if !canTransition(issue.Status, next) {
		return nil, errs.InvalidTransition("issue " + issueID + " cannot move from " + string(issue.Status) + " to " + string(next))
	}

	if next == models.IssueCompleted {
		resolution = strings.TrimSpace(resolution)
		if resolution == "" {
			return nil, errs.InvalidTransition("completing issue " + issueID + " requires a resolution")
		}
		now := time.Now().UTC()
		issue.Resolution = resolution
		issue.ResolvedAt = &now
	}
	issue.Status = next
	if err := m.issues.Update(issue); err != nil {
		return nil, err
	}

	if err := m.syncScooter(issue); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"issue": issue.ID, "status": issue.Status}).Info("issue updated")
	return issue, nil
}

// syncScooter keeps the scooter's status in step with its issues. Issues
// may reference scooters retired from the fleet; those skip the coupling.
func (m *MaintenanceService) syncScooter(issue *models.MaintenanceIssue) error {
	scooter, err := m.scooters.Get(issue.ScooterID)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return nil
		}
		return err
	}

	switch issue.Status {
	case models.IssueInProgress:
		scooter.Status = models.ScooterUnderRepair
	case models.IssueCompleted:
		open, err := m.issues.ListOpenByScooter(scooter.ID)
		if err != nil {
			return err
		}
		if len(open) > 0 {
			return nil
		}
		active, err := m.bookings.ListActiveByScooter(scooter.ID)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			scooter.Status = models.ScooterBooked
		} else {
			scooter.Status = models.ScooterAvailable
		}
	default:
		return nil
	}
	return m.scooters.Update(scooter)
}

// List returns issues, optionally narrowed to one workflow status.
func (m *MaintenanceService) List(status models.IssueStatus) ([]models.MaintenanceIssue, error) {
	if status != "" && !models.ValidIssueStatus(status) {
		return nil, errs.Validation("unknown issue status " + string(status))
	}
	all, err := m.issues.List()
	if err != nil {
		return nil, err
	}
	return catalog.FilterIssues(all, status), nil
}

// Get returns one issue by id.
func (m *MaintenanceService) Get(issueID string) (*models.MaintenanceIssue, error) {
	return m.issues.Get(issueID)
}
