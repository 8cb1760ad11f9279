package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"scootershare/internal/catalog"
	errs "scootershare/internal/errors"
	"scootershare/internal/models"
	"scootershare/internal/pricing"
	"scootershare/internal/repository"
)

// UsageService serves ride history: per-customer listings for the rider
// views and the searchable, sortable history for the back office.
type UsageService struct {
	usage     repository.UsageRepository
	customers repository.CustomerRepository
}

func NewUsageService(store *repository.Store) *UsageService {
	return &UsageService{
		usage:     store.Usage,
		customers: store.Customers,
	}
}

// HistoryRequest is a back-office usage search. Dates are inclusive and
// use the DateFormat layout.
type HistoryRequest struct {
	Text       string
	CustomerID string
	FromDate   string
	ToDate     string
	Sort       catalog.UsageSort
}

func (r HistoryRequest) query() (catalog.UsageQuery, error) {
	q := catalog.UsageQuery{Text: r.Text, CustomerID: r.CustomerID}
	if r.FromDate != "" {
		t, err := time.Parse(models.DateFormat, r.FromDate)
		if err != nil {
			return q, errs.Validation("from date must be " + models.DateFormat)
		}
		q.From = &t
	}
	if r.ToDate != "" {
		t, err := time.Parse(models.DateFormat, r.ToDate)
		if err != nil {
			return q, errs.Validation("to date must be " + models.DateFormat)
		}
		// inclusive upper bound: last instant of the day
		end := t.Add(24*time.Hour - time.Nanosecond)
		q.To = &end
	}
	return q, nil
}

// History returns the matching rides in the requested order, together with
// the aggregate stats over the match set.
func (u *UsageService) History(req HistoryRequest) ([]models.UsageRecord, pricing.UsageStats, error) {
	q, err := req.query()
	if err != nil {
		return nil, pricing.UsageStats{}, err
	}
	all, err := u.usage.List()
	if err != nil {
		return nil, pricing.UsageStats{}, err
	}
	matched := catalog.SearchUsage(all, q)
	sorted := catalog.SortUsage(matched, req.Sort)
	return sorted, statsOf(sorted), nil
}

// ForCustomer returns one rider's history, newest first, with their stats.
func (u *UsageService) ForCustomer(customerID string) ([]models.UsageRecord, pricing.UsageStats, error) {
	if _, err := u.customers.Get(customerID); err != nil {
		return nil, pricing.UsageStats{}, err
	}
	records, err := u.usage.ListByCustomer(customerID)
	if err != nil {
		return nil, pricing.UsageStats{}, err
	}
	sorted := catalog.SortUsage(records, catalog.SortDateDesc)
	return sorted, statsOf(sorted), nil
}

// Record appends a completed ride and bumps the rider's counters.
func (u *UsageService) Record(record *models.UsageRecord) error {
	if record.DurationMinutes <= 0 {
		return errs.Validation("duration must be positive")
	}
	if err := u.usage.Create(record); err != nil {
		return err
	}
	customer, err := u.customers.Get(record.CustomerID)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return nil
		}
		return err
	}
	customer.TotalRides++
	return u.customers.Update(customer)
}

// WriteCSV streams the records as a CSV export, costs rounded for display.
func (u *UsageService) WriteCSV(w io.Writer, records []models.UsageRecord) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "customer", "scooter", "start_time", "end_time",
		"start_location", "end_location", "duration_minutes", "cost", "power_used"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.CustomerName,
			r.ScooterID,
			r.StartTime.UTC().Format(time.RFC3339),
			r.EndTime.UTC().Format(time.RFC3339),
			r.StartLocation,
			r.EndLocation,
			strconv.Itoa(r.DurationMinutes),
			fmt.Sprintf("%.2f", pricing.RoundMoney(r.Cost)),
			strconv.Itoa(r.PowerUsed),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func statsOf(records []models.UsageRecord) pricing.UsageStats {
	costs := make([]float64, len(records))
	durations := make([]int, len(records))
	for i, r := range records {
		costs[i] = r.Cost
		durations[i] = r.DurationMinutes
	}
	return pricing.Stats(costs, durations)
}
