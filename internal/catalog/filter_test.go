package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "scootershare/internal/errors"
	"scootershare/internal/models"
)

func testFleet() []models.Scooter {
	return []models.Scooter{
		{ID: "SC-1", Make: "Xiaomi Pro 2", Location: "Central Park", Power: 85, Status: models.ScooterAvailable},
		{ID: "SC-2", Make: "Segway Ninebot", Location: "Harbor Front", Power: 60, Status: models.ScooterBooked},
		{ID: "SC-3", Make: "Razor E300", Location: "Downtown Station", Power: 92, Status: models.ScooterAvailable},
		{ID: "SC-4", Make: "Unagi Model One", Location: "Airport", Power: 45, Status: models.ScooterToBeRepaired},
		{ID: "SC-5", Make: "Apollo City", Location: "Central Park", Power: 80, Status: models.ScooterUnderRepair},
	}
}

func scooterIDs(items []models.Scooter) []string {
	ids := make([]string, len(items))
	for i, s := range items {
		ids[i] = s.ID
	}
	return ids
}

func TestFilterScootersAll(t *testing.T) {
	out, err := FilterScooters(testFleet(), ScooterAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"SC-1", "SC-2", "SC-3", "SC-4", "SC-5"}, scooterIDs(out))
}

func TestFilterScootersNearby(t *testing.T) {
	out, err := FilterScooters(testFleet(), ScooterNearby)
	require.NoError(t, err)
	assert.Equal(t, []string{"SC-1", "SC-3", "SC-5"}, scooterIDs(out))
}

func TestFilterScootersHighPower(t *testing.T) {
	// threshold is inclusive at 80
	out, err := FilterScooters(testFleet(), ScooterHighPower)
	require.NoError(t, err)
	assert.Equal(t, []string{"SC-1", "SC-3", "SC-5"}, scooterIDs(out))
}

func TestFilterScootersActive(t *testing.T) {
	out, err := FilterScooters(testFleet(), ScooterActive)
	require.NoError(t, err)
	assert.Equal(t, []string{"SC-1", "SC-3"}, scooterIDs(out))
}

func TestFilterScootersMaintenance(t *testing.T) {
	out, err := FilterScooters(testFleet(), ScooterMaintenance)
	require.NoError(t, err)
	assert.Equal(t, []string{"SC-4", "SC-5"}, scooterIDs(out))
}

func TestFilterScootersUnknownFilter(t *testing.T) {
	_, err := FilterScooters(testFleet(), ScooterFilter("cheap"))
	assert.True(t, errs.Is(err, errs.KindValidation))
}

func TestFilterScootersIdempotent(t *testing.T) {
	once, err := FilterScooters(testFleet(), ScooterNearby)
	require.NoError(t, err)
	twice, err := FilterScooters(once, ScooterNearby)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestFilterIssues(t *testing.T) {
	issues := []models.MaintenanceIssue{
		{ID: "I-1", Status: models.IssuePending},
		{ID: "I-2", Status: models.IssueInProgress},
		{ID: "I-3", Status: models.IssuePending},
	}
	out := FilterIssues(issues, models.IssuePending)
	require.Len(t, out, 2)
	assert.Equal(t, "I-1", out[0].ID)
	assert.Equal(t, "I-3", out[1].ID)

	assert.Len(t, FilterIssues(issues, ""), 3)
}

func TestSearchCustomers(t *testing.T) {
	customers := []models.Customer{
		{ID: "C001", FirstName: "John", LastName: "Doe", Email: "john.doe@email.com"},
		{ID: "C002", FirstName: "Jane", LastName: "Smith", Email: "jane.smith@email.com"},
		{ID: "C003", FirstName: "Mike", LastName: "Johnson", Email: "mike.j@email.com"},
	}

	out := SearchCustomers(customers, "jane")
	require.Len(t, out, 1)
	assert.Equal(t, "C002", out[0].ID)

	// matches id, case-insensitive
	out = SearchCustomers(customers, "c003")
	require.Len(t, out, 1)
	assert.Equal(t, "C003", out[0].ID)

	// "john" hits John Doe's name and Mike Johnson's last name
	assert.Len(t, SearchCustomers(customers, "john"), 2)
	assert.Empty(t, SearchCustomers(customers, "zzz"))
}

func usageFixture() []models.UsageRecord {
	day := func(d int) time.Time {
		return time.Date(2025, 5, d, 10, 0, 0, 0, time.UTC)
	}
	return []models.UsageRecord{
		{ID: "U1", CustomerID: "C001", CustomerName: "John Doe", ScooterID: "SC-1001", StartTime: day(1), DurationMinutes: 45, Cost: 11.25, StartLocation: "Central Park"},
		{ID: "U2", CustomerID: "C002", CustomerName: "Jane Smith", ScooterID: "SC-1002", StartTime: day(3), DurationMinutes: 30, Cost: 9.60, StartLocation: "Harbor Front"},
		{ID: "U3", CustomerID: "C001", CustomerName: "John Doe", ScooterID: "SC-1003", StartTime: day(5), DurationMinutes: 60, Cost: 12.00, StartLocation: "Downtown Station"},
	}
}

func TestSearchUsageByText(t *testing.T) {
	out := SearchUsage(usageFixture(), UsageQuery{Text: "harbor"})
	require.Len(t, out, 1)
	assert.Equal(t, "U2", out[0].ID)
}

func TestSearchUsageByCustomer(t *testing.T) {
	out := SearchUsage(usageFixture(), UsageQuery{CustomerID: "C001"})
	assert.Len(t, out, 2)

	// "all" is the select-everything sentinel
	assert.Len(t, SearchUsage(usageFixture(), UsageQuery{CustomerID: "all"}), 3)
}

func TestSearchUsageDateRangeInclusive(t *testing.T) {
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 3, 23, 59, 59, 0, time.UTC)
	out := SearchUsage(usageFixture(), UsageQuery{From: &from, To: &to})
	require.Len(t, out, 2)
	assert.Equal(t, "U1", out[0].ID)
	assert.Equal(t, "U2", out[1].ID)
}

func TestSearchUsageCombinesWithAnd(t *testing.T) {
	from := time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC)
	out := SearchUsage(usageFixture(), UsageQuery{Text: "john", CustomerID: "C001", From: &from})
	require.Len(t, out, 1)
	assert.Equal(t, "U3", out[0].ID)
}

func TestSortUsage(t *testing.T) {
	records := usageFixture()

	byDateDesc := SortUsage(records, SortDateDesc)
	assert.Equal(t, "U3", byDateDesc[0].ID)
	assert.Equal(t, "U1", byDateDesc[2].ID)

	byCostAsc := SortUsage(records, SortCostAsc)
	assert.Equal(t, "U2", byCostAsc[0].ID)
	assert.Equal(t, "U3", byCostAsc[2].ID)

	byDurationDesc := SortUsage(records, SortDurationDesc)
	assert.Equal(t, "U3", byDurationDesc[0].ID)

	// unknown key falls back to date-desc
	fallback := SortUsage(records, UsageSort("bogus"))
	assert.Equal(t, "U3", fallback[0].ID)

	// input order is untouched
	assert.Equal(t, "U1", records[0].ID)
}
