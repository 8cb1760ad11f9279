package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "scootershare/internal/errors"
	"scootershare/internal/models"
	"scootershare/internal/repository"
)

func newMaintenanceService() (*MaintenanceService, *repository.Store) {
	store := repository.NewSeededMemoryStore()
	return NewMaintenanceService(store), store
}

func TestReportPullsAvailableScooterFromCirculation(t *testing.T) {
	svc, store := newMaintenanceService()

	issue, err := svc.Report(ReportRequest{
		ScooterID: "SC-1002", ReportedBy: "customer",
		IssueType: models.IssueMechanical, Priority: models.PriorityHigh,
		Description: "brake lever unresponsive",
	})
	require.NoError(t, err)
	assert.Equal(t, models.IssuePending, issue.Status)
	assert.Equal(t, "SC-1002", issue.ScooterID)

	scooter, err := store.Scooters.Get("SC-1002")
	require.NoError(t, err)
	assert.Equal(t, models.ScooterToBeRepaired, scooter.Status)
}

func TestReportKeepsBookedScooterBooked(t *testing.T) {
	svc, store := newMaintenanceService()

	_, err := svc.Report(ReportRequest{
		ScooterID: "SC-1001", ReportedBy: "customer",
		IssueType: models.IssueCosmetic, Priority: models.PriorityLow,
		Description: "scratched deck",
	})
	require.NoError(t, err)

	scooter, err := store.Scooters.Get("SC-1001")
	require.NoError(t, err)
	assert.Equal(t, models.ScooterBooked, scooter.Status)
}

func TestReportValidation(t *testing.T) {
	svc, _ := newMaintenanceService()

	_, err := svc.Report(ReportRequest{
		ScooterID: "SC-1002", IssueType: "squeaky",
		Priority: models.PriorityLow, Description: "x",
	})
	assert.True(t, errs.Is(err, errs.KindValidation))

	_, err = svc.Report(ReportRequest{
		ScooterID: "SC-1002", IssueType: models.IssueMechanical,
		Priority: models.PriorityLow, Description: "   ",
	})
	assert.True(t, errs.Is(err, errs.KindValidation))

	_, err = svc.Report(ReportRequest{
		ScooterID: "SC-9999", IssueType: models.IssueMechanical,
		Priority: models.PriorityLow, Description: "ghost scooter",
	})
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestIssueMovesForwardThroughWorkflow(t *testing.T) {
	svc, store := newMaintenanceService()

	issue, err := svc.UpdateStatus("ISSUE-001", models.IssueInProgress, "")
	require.NoError(t, err)
	assert.Equal(t, models.IssueInProgress, issue.Status)

	// starting the repair flips the scooter to Under Repair
	scooter, err := store.Scooters.Get("SC-1004")
	require.NoError(t, err)
	assert.Equal(t, models.ScooterUnderRepair, scooter.Status)
}

func TestCompletingRequiresResolution(t *testing.T) {
	svc, _ := newMaintenanceService()

	_, err := svc.UpdateStatus("ISSUE-002", models.IssueCompleted, "")
	assert.True(t, errs.Is(err, errs.KindInvalidTransition))

	_, err = svc.UpdateStatus("ISSUE-002", models.IssueCompleted, "   ")
	assert.True(t, errs.Is(err, errs.KindInvalidTransition))
}

func TestCompletingStampsResolution(t *testing.T) {
	svc, store := newMaintenanceService()

	issue, err := svc.UpdateStatus("ISSUE-002", models.IssueCompleted, "Replaced battery pack")
	require.NoError(t, err)
	assert.Equal(t, models.IssueCompleted, issue.Status)
	assert.Equal(t, "Replaced battery pack", issue.Resolution)
	require.NotNil(t, issue.ResolvedAt)

	// SC-1005 has an active booking on file, so it returns to Booked
	scooter, err := store.Scooters.Get("SC-1005")
	require.NoError(t, err)
	assert.Equal(t, models.ScooterBooked, scooter.Status)
}

func TestCompletedScooterWithoutBookingsBecomesAvailable(t *testing.T) {
	svc, store := newMaintenanceService()

	// drop SC-1005's booking first
	_, err := store.Bookings.DeleteMany([]string{"BK-1003"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus("ISSUE-002", models.IssueCompleted, "Replaced battery pack")
	require.NoError(t, err)

	scooter, err := store.Scooters.Get("SC-1005")
	require.NoError(t, err)
	assert.Equal(t, models.ScooterAvailable, scooter.Status)
}

func TestPendingMayJumpToCompletedWithResolution(t *testing.T) {
	svc, _ := newMaintenanceService()

	issue, err := svc.UpdateStatus("ISSUE-001", models.IssueCompleted, "Tightened the folding latch")
	require.NoError(t, err)
	assert.Equal(t, models.IssueCompleted, issue.Status)
}

func TestCompletedIsTerminal(t *testing.T) {
	svc, _ := newMaintenanceService()

	_, err := svc.UpdateStatus("ISSUE-004", models.IssueInProgress, "")
	assert.True(t, errs.Is(err, errs.KindInvalidTransition))
	_, err = svc.UpdateStatus("ISSUE-004", models.IssuePending, "")
	assert.True(t, errs.Is(err, errs.KindInvalidTransition))
}

func TestBackwardMoveRejected(t *testing.T) {
	svc, _ := newMaintenanceService()

	_, err := svc.UpdateStatus("ISSUE-002", models.IssuePending, "")
	assert.True(t, errs.Is(err, errs.KindInvalidTransition))
}

func TestUpdateToleratesRetiredScooter(t *testing.T) {
	svc, _ := newMaintenanceService()

	// ISSUE-003 references a scooter no longer in the fleet
	issue, err := svc.UpdateStatus("ISSUE-003", models.IssueInProgress, "")
	require.NoError(t, err)
	assert.Equal(t, models.IssueInProgress, issue.Status)
}

func TestListIssuesByStatus(t *testing.T) {
	svc, _ := newMaintenanceService()

	pending, err := svc.List(models.IssuePending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	_, err = svc.List(models.IssueStatus("archived"))
	assert.True(t, errs.Is(err, errs.KindValidation))
}
