// Package catalog selects subsets of entity lists. Every function is a
// stable filter: relative order of the input survives, nothing is sorted
// unless the caller asks for it, and inputs are never mutated.
package catalog

import (
	"sort"
	"strings"
	"time"

	errs "scootershare/internal/errors"
	"scootershare/internal/models"
)

// ScooterFilter names a structural scooter predicate.
type ScooterFilter string

const (
	ScooterAll         ScooterFilter = "all"
	ScooterNearby      ScooterFilter = "nearby"
	ScooterHighPower   ScooterFilter = "highPower"
	ScooterActive      ScooterFilter = "active"
	ScooterMaintenance ScooterFilter = "maintenance"
)

const highPowerThreshold = 80

// nearbyLocations is the fixed allow-list behind the "nearby" predicate.
var nearbyLocations = map[string]bool{
	"Central Park":     true,
	"Downtown Station": true,
}

// FilterScooters returns the scooters matching f, in their original order.
// An unrecognized filter is a programmer error, reported as validation.
func FilterScooters(items []models.Scooter, f ScooterFilter) ([]models.Scooter, error) {
	if f == "" {
		f = ScooterAll
	}
	var match func(models.Scooter) bool
	switch f {
	case ScooterAll:
		match = func(models.Scooter) bool { return true }
	case ScooterNearby:
		match = func(s models.Scooter) bool { return nearbyLocations[s.Location] }
	case ScooterHighPower:
		match = func(s models.Scooter) bool { return s.Power >= highPowerThreshold }
	case ScooterActive:
		match = func(s models.Scooter) bool { return s.Status == models.ScooterAvailable }
	case ScooterMaintenance:
		match = func(s models.Scooter) bool { return s.Status.InMaintenance() }
	default:
		return nil, errs.Validation("unknown scooter filter " + string(f))
	}
	out := make([]models.Scooter, 0, len(items))
	for _, s := range items {
		if match(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

// FilterIssues returns the issues with the given status. An empty status
// matches everything.
func FilterIssues(items []models.MaintenanceIssue, status models.IssueStatus) []models.MaintenanceIssue {
	out := make([]models.MaintenanceIssue, 0, len(items))
	for _, issue := range items {
		if status == "" || issue.Status == status {
			out = append(out, issue)
		}
	}
	return out
}

// SearchCustomers matches query case-insensitively against first name,
// last name, email and id. A customer matches if any field matches; an
// empty query matches everyone.
func SearchCustomers(items []models.Customer, query string) []models.Customer {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Customer, 0, len(items))
	for _, c := range items {
		if q == "" ||
			strings.Contains(strings.ToLower(c.FirstName), q) ||
			strings.Contains(strings.ToLower(c.LastName), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.ID), q) {
			out = append(out, c)
		}
	}
	return out
}

// UsageQuery bounds a usage-history search. All supplied parts combine
// with AND: the text must match, the customer must match, and the ride's
// start time must fall inside the inclusive [From, To] range.
type UsageQuery struct {
	Text       string
	CustomerID string // "" or "all" matches every customer
	From       *time.Time
	To         *time.Time
}

func (q UsageQuery) matches(u models.UsageRecord) bool {
	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		if !strings.Contains(strings.ToLower(u.CustomerName), text) &&
			!strings.Contains(strings.ToLower(u.ScooterID), text) &&
			!strings.Contains(strings.ToLower(u.ScooterMake), text) &&
			!strings.Contains(strings.ToLower(u.StartLocation), text) &&
			!strings.Contains(strings.ToLower(u.EndLocation), text) {
			return false
		}
	}
	if q.CustomerID != "" && q.CustomerID != "all" && u.CustomerID != q.CustomerID {
		return false
	}
	if q.From != nil && u.StartTime.Before(*q.From) {
		return false
	}
	if q.To != nil && u.StartTime.After(*q.To) {
		return false
	}
	return true
}

// SearchUsage returns the usage records satisfying q, in original order.
func SearchUsage(items []models.UsageRecord, q UsageQuery) []models.UsageRecord {
	out := make([]models.UsageRecord, 0, len(items))
	for _, u := range items {
		if q.matches(u) {
			out = append(out, u)
		}
	}
	return out
}

// UsageSort names an ordering for usage history listings.
type UsageSort string

const (
	SortDateAsc      UsageSort = "date-asc"
	SortDateDesc     UsageSort = "date-desc"
	SortDurationAsc  UsageSort = "duration-asc"
	SortDurationDesc UsageSort = "duration-desc"
	SortCostAsc      UsageSort = "cost-asc"
	SortCostDesc     UsageSort = "cost-desc"
)

// SortUsage returns a sorted copy of items. Unknown keys fall back to
// date-desc, matching the history page default.
func SortUsage(items []models.UsageRecord, key UsageSort) []models.UsageRecord {
	out := make([]models.UsageRecord, len(items))
	copy(out, items)
	var less func(a, b models.UsageRecord) bool
	switch key {
	case SortDateAsc:
		less = func(a, b models.UsageRecord) bool { return a.StartTime.Before(b.StartTime) }
	case SortDurationAsc:
		less = func(a, b models.UsageRecord) bool { return a.DurationMinutes < b.DurationMinutes }
	case SortDurationDesc:
		less = func(a, b models.UsageRecord) bool { return a.DurationMinutes > b.DurationMinutes }
	case SortCostAsc:
		less = func(a, b models.UsageRecord) bool { return a.Cost < b.Cost }
	case SortCostDesc:
		less = func(a, b models.UsageRecord) bool { return a.Cost > b.Cost }
	default: // SortDateDesc
		less = func(a, b models.UsageRecord) bool { return a.StartTime.After(b.StartTime) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
