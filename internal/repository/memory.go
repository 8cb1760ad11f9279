package repository

import (
	"fmt"
	"sync"
	"time"

	errs "scootershare/internal/errors"
	"scootershare/internal/models"
)

// The memory repositories keep entities in insertion-ordered slices behind
// a mutex. They back the tests and the no-database demo mode, replacing
// the mock arrays the product UI used to hold in component state.

type MemoryScooterRepository struct {
	mu       sync.RWMutex
	scooters []models.Scooter
}

func NewMemoryScooterRepository(seed []models.Scooter) *MemoryScooterRepository {
	r := &MemoryScooterRepository{}
	r.scooters = append(r.scooters, seed...)
	return r
}

func (r *MemoryScooterRepository) Get(id string) (*models.Scooter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.scooters {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, errs.NotFound("scooter " + id + " not found")
}

func (r *MemoryScooterRepository) List() ([]models.Scooter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Scooter, len(r.scooters))
	copy(out, r.scooters)
	return out, nil
}

func (r *MemoryScooterRepository) Create(s *models.Scooter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.scooters {
		if existing.ID == s.ID {
			return errs.Conflict("scooter " + s.ID + " already exists")
		}
	}
	r.scooters = append(r.scooters, *s)
	return nil
}

func (r *MemoryScooterRepository) Update(s *models.Scooter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.scooters {
		if existing.ID == s.ID {
			r.scooters[i] = *s
			return nil
		}
	}
	return errs.NotFound("scooter " + s.ID + " not found")
}

func (r *MemoryScooterRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.scooters {
		if existing.ID == id {
			r.scooters = append(r.scooters[:i], r.scooters[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("scooter " + id + " not found")
}

type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings []models.Booking
	nextSeq  int
}

func NewMemoryBookingRepository(seed []models.Booking, nextSeq int) *MemoryBookingRepository {
	r := &MemoryBookingRepository{nextSeq: nextSeq}
	r.bookings = append(r.bookings, seed...)
	return r
}

func (r *MemoryBookingRepository) Get(id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, errs.NotFound("booking " + id + " not found")
}

func (r *MemoryBookingRepository) List() ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *MemoryBookingRepository) ListByCustomer(customerID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *MemoryBookingRepository) ListActiveByScooter(scooterID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ScooterID == scooterID && b.Status == models.BookingActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *MemoryBookingRepository) Create(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = fmt.Sprintf("BK-%04d", r.nextSeq)
	r.nextSeq++
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *MemoryBookingRepository) Update(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.bookings {
		if existing.ID == b.ID {
			r.bookings[i] = *b
			return nil
		}
	}
	return errs.NotFound("booking " + b.ID + " not found")
}

func (r *MemoryBookingRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.bookings {
		if existing.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("booking " + id + " not found")
}

func (r *MemoryBookingRepository) DeleteMany(ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var kept []models.Booking
	var removed int64
	for _, b := range r.bookings {
		if drop[b.ID] {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	r.bookings = kept
	return removed, nil
}

func (r *MemoryBookingRepository) ExpiredActiveIDs(now time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for _, b := range r.bookings {
		if b.Status != models.BookingActive {
			continue
		}
		end, err := b.EndsAt()
		if err != nil {
			return nil, err
		}
		if end.Before(now) {
			ids = append(ids, b.ID)
		}
	}
	return ids, nil
}

type MemoryUsageRepository struct {
	mu      sync.RWMutex
	records []models.UsageRecord
	nextSeq int
}

func NewMemoryUsageRepository(seed []models.UsageRecord, nextSeq int) *MemoryUsageRepository {
	r := &MemoryUsageRepository{nextSeq: nextSeq}
	r.records = append(r.records, seed...)
	return r
}

func (r *MemoryUsageRepository) List() ([]models.UsageRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.UsageRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *MemoryUsageRepository) ListByCustomer(customerID string) ([]models.UsageRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.UsageRecord
	for _, u := range r.records {
		if u.CustomerID == customerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *MemoryUsageRepository) Create(u *models.UsageRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = fmt.Sprintf("U%03d", r.nextSeq)
	r.nextSeq++
	r.records = append(r.records, *u)
	return nil
}

type MemoryIssueRepository struct {
	mu      sync.RWMutex
	issues  []models.MaintenanceIssue
	nextSeq int
}

func NewMemoryIssueRepository(seed []models.MaintenanceIssue, nextSeq int) *MemoryIssueRepository {
	r := &MemoryIssueRepository{nextSeq: nextSeq}
	r.issues = append(r.issues, seed...)
	return r
}

func (r *MemoryIssueRepository) Get(id string) (*models.MaintenanceIssue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, issue := range r.issues {
		if issue.ID == id {
			out := issue
			return &out, nil
		}
	}
	return nil, errs.NotFound("issue " + id + " not found")
}

func (r *MemoryIssueRepository) List() ([]models.MaintenanceIssue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.MaintenanceIssue, len(r.issues))
	copy(out, r.issues)
	return out, nil
}

func (r *MemoryIssueRepository) ListOpenByScooter(scooterID string) ([]models.MaintenanceIssue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.MaintenanceIssue
	for _, issue := range r.issues {
		if issue.ScooterID == scooterID && issue.Open() {
			out = append(out, issue)
		}
	}
	return out, nil
}

func (r *MemoryIssueRepository) Create(i *models.MaintenanceIssue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i.ID = fmt.Sprintf("ISSUE-%03d", r.nextSeq)
	r.nextSeq++
	r.issues = append(r.issues, *i)
	return nil
}

func (r *MemoryIssueRepository) Update(i *models.MaintenanceIssue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, existing := range r.issues {
		if existing.ID == i.ID {
			r.issues[idx] = *i
			return nil
		}
	}
	return errs.NotFound("issue " + i.ID + " not found")
}

type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers []models.Customer
	nextSeq   int
}

func NewMemoryCustomerRepository(seed []models.Customer, nextSeq int) *MemoryCustomerRepository {
	r := &MemoryCustomerRepository{nextSeq: nextSeq}
	r.customers = append(r.customers, seed...)
	return r
}

func (r *MemoryCustomerRepository) Get(id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, errs.NotFound("customer " + id + " not found")
}

func (r *MemoryCustomerRepository) List() ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Customer, len(r.customers))
	copy(out, r.customers)
	return out, nil
}

func (r *MemoryCustomerRepository) Create(c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = fmt.Sprintf("C%03d", r.nextSeq)
	r.nextSeq++
	r.customers = append(r.customers, *c)
	return nil
}

func (r *MemoryCustomerRepository) Update(c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.customers {
		if existing.ID == c.ID {
			r.customers[i] = *c
			return nil
		}
	}
	return errs.NotFound("customer " + c.ID + " not found")
}

func (r *MemoryCustomerRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.customers {
		if existing.ID == id {
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("customer " + id + " not found")
}
