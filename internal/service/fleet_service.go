package service

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"scootershare/internal/catalog"
	errs "scootershare/internal/errors"
	"scootershare/internal/models"
	"scootershare/internal/repository"
)

// FleetService manages the scooter inventory for the back office.
type FleetService struct {
	scooters repository.ScooterRepository
	bookings repository.BookingRepository
	issues   repository.IssueRepository
	locks    *entityLocks
}

func NewFleetService(store *repository.Store) *FleetService {
	return &FleetService{
		scooters: store.Scooters,
		bookings: store.Bookings,
		issues:   store.Issues,
		locks:    newEntityLocks(),
	}
}

// List returns the fleet through the named filter. An empty filter means
// everything.
func (f *FleetService) List(filter catalog.ScooterFilter) ([]models.Scooter, error) {
	all, err := f.scooters.List()
	if err != nil {
		return nil, err
	}
	if filter == "" {
		filter = catalog.ScooterAll
	}
	return catalog.FilterScooters(all, filter)
}

func (f *FleetService) Get(id string) (*models.Scooter, error) {
	return f.scooters.Get(id)
}

// ScooterRequest carries the writable fields of a fleet entry.
type ScooterRequest struct {
	Make          string  `json:"make"`
	Color         string  `json:"color"`
	Location      string  `json:"location"`
	Power         int     `json:"power"`
	CostPerMinute float64 `json:"cost_per_minute"`
	Status        string  `json:"status"`
}

func (r ScooterRequest) validate() error {
	if strings.TrimSpace(r.Make) == "" {
		return errs.Validation("make is required")
	}
	if r.Power < 0 || r.Power > 100 {
		return errs.Validation("power must be between 0 and 100")
	}
	if r.CostPerMinute < 0 {
		return errs.Validation("cost per minute cannot be negative")
	}
	if r.Status != "" && !models.ValidScooterStatus(models.ScooterStatus(r.Status)) {
		return errs.Validation("unknown scooter status " + r.Status)
	}
	return nil
}

// nextScooterID picks the next SC-#### id after the highest in the fleet.
func (f *FleetService) nextScooterID() (string, error) {
	all, err := f.scooters.List()
	if err != nil {
		return "", err
	}
	max := 1000
	for _, s := range all {
		var n int
		if _, err := fmt.Sscanf(s.ID, "SC-%d", &n); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("SC-%d", max+1), nil
}

func (f *FleetService) Create(req ScooterRequest) (*models.Scooter, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	id, err := f.nextScooterID()
	if err != nil {
		return nil, err
	}
	status := models.ScooterStatus(req.Status)
	if req.Status == "" {
		status = models.ScooterAvailable
	}
	scooter := &models.Scooter{
		ID:            id,
		Make:          strings.TrimSpace(req.Make),
		Color:         strings.TrimSpace(req.Color),
		Location:      strings.TrimSpace(req.Location),
		Power:         req.Power,
		CostPerMinute: req.CostPerMinute,
		Status:        status,
	}
	if err := f.scooters.Create(scooter); err != nil {
		return nil, err
	}
	log.WithField("scooter", scooter.ID).Info("scooter added to fleet")
	return scooter, nil
}

func (f *FleetService) Update(id string, req ScooterRequest) (*models.Scooter, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	unlock := f.locks.lock(id)
	defer unlock()

	scooter, err := f.scooters.Get(id)
	if err != nil {
		return nil, err
	}
	scooter.Make = strings.TrimSpace(req.Make)
	scooter.Color = strings.TrimSpace(req.Color)
	scooter.Location = strings.TrimSpace(req.Location)
	scooter.Power = req.Power
	scooter.CostPerMinute = req.CostPerMinute
	if req.Status != "" {
		next := models.ScooterStatus(req.Status)
		if !next.InMaintenance() && scooter.Status != next {
			open, err := f.issues.ListOpenByScooter(id)
			if err != nil {
				return nil, err
			}
			if len(open) > 0 {
				return nil, errs.Conflict("scooter " + id + " has open maintenance issues")
			}
		}
		scooter.Status = next
	}
	if err := f.scooters.Update(scooter); err != nil {
		return nil, err
	}
	return scooter, nil
}

// Delete retires a scooter. Scooters with active bookings stay in the
// fleet until the booking ends.
func (f *FleetService) Delete(id string) error {
	unlock := f.locks.lock(id)
	defer unlock()

	if _, err := f.scooters.Get(id); err != nil {
		return err
	}
	active, err := f.bookings.ListActiveByScooter(id)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return errs.Conflict("scooter " + id + " has active bookings")
	}
	return f.scooters.Delete(id)
}
