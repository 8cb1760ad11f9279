// Package repository defines per-entity storage interfaces and two
// implementations: a seeded in-memory store (tests, demo mode) and a
// Postgres store. Each call is assumed reliable and transactional; callers
// layer ordering guarantees on top.
package repository

import (
	"database/sql"
	"time"

	"scootershare/internal/models"
)

type ScooterRepository interface {
	Get(id string) (*models.Scooter, error)
	List() ([]models.Scooter, error)
	Create(s *models.Scooter) error
	Update(s *models.Scooter) error
	Delete(id string) error
}

type BookingRepository interface {
	Get(id string) (*models.Booking, error)
	List() ([]models.Booking, error)
	ListByCustomer(customerID string) ([]models.Booking, error)
	// ListActiveByScooter returns confirmed bookings holding the scooter.
	ListActiveByScooter(scooterID string) ([]models.Booking, error)
	// Create assigns the next BK-#### id.
	Create(b *models.Booking) error
	Update(b *models.Booking) error
	Delete(id string) error
	// DeleteMany removes a batch of bookings and returns how many went away.
	DeleteMany(ids []string) (int64, error)
	// ExpiredActiveIDs lists confirmed bookings whose window ended before now.
	ExpiredActiveIDs(now time.Time) ([]string, error)
}

type UsageRepository interface {
	List() ([]models.UsageRecord, error)
	ListByCustomer(customerID string) ([]models.UsageRecord, error)
	// Create assigns the next U### id. Records are never updated or deleted.
	Create(u *models.UsageRecord) error
}

type IssueRepository interface {
	Get(id string) (*models.MaintenanceIssue, error)
	List() ([]models.MaintenanceIssue, error)
	// ListOpenByScooter returns the scooter's non-completed issues.
	ListOpenByScooter(scooterID string) ([]models.MaintenanceIssue, error)
	// Create assigns the next ISSUE-### id.
	Create(i *models.MaintenanceIssue) error
	Update(i *models.MaintenanceIssue) error
}

type CustomerRepository interface {
	Get(id string) (*models.Customer, error)
	List() ([]models.Customer, error)
	// Create assigns the next C### id.
	Create(c *models.Customer) error
	Update(c *models.Customer) error
	Delete(id string) error
}

// Store bundles the per-entity repositories for wiring.
type Store struct {
	Scooters  ScooterRepository
	Bookings  BookingRepository
	Usage     UsageRepository
	Issues    IssueRepository
	Customers CustomerRepository
}

// NewPostgresStore wires every repository onto one database handle.
func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		Scooters:  NewPostgresScooterRepository(db),
		Bookings:  NewPostgresBookingRepository(db),
		Usage:     NewPostgresUsageRepository(db),
		Issues:    NewPostgresIssueRepository(db),
		Customers: NewPostgresCustomerRepository(db),
	}
}
