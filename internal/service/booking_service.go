package service

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"scootershare/internal/catalog"
	errs "scootershare/internal/errors"
	"scootershare/internal/models"
	"scootershare/internal/pricing"
	"scootershare/internal/repository"
)

// BookingService drives the booking lifecycle: search -> hold (pending
// confirmation) -> confirm (active), and cancellation from either state.
// Mutations that touch a scooter are serialized per scooter id.
type BookingService struct {
	scooters  repository.ScooterRepository
	bookings  repository.BookingRepository
	issues    repository.IssueRepository
	customers repository.CustomerRepository
	sender    *SenderService
	locks     *entityLocks
}

func NewBookingService(store *repository.Store, sender *SenderService) *BookingService {
	return &BookingService{
		scooters:  store.Scooters,
		bookings:  store.Bookings,
		issues:    store.Issues,
		customers: store.Customers,
		sender:    sender,
		locks:     newEntityLocks(),
	}
}

// SearchRequest is a customer's availability query.
type SearchRequest struct {
	Date            string
	StartTime       string
	DurationMinutes int
	Filter          catalog.ScooterFilter
}

func (r SearchRequest) validate() error {
	if _, err := time.Parse(models.DateFormat, r.Date); err != nil {
		return errs.Validation(fmt.Sprintf("malformed date %q, want YYYY-MM-DD", r.Date))
	}
	minutes, err := pricing.ParseClock(r.StartTime)
	if err != nil {
		return errs.Validation(err.Error())
	}
	if minutes%30 != 0 {
		return errs.Validation(fmt.Sprintf("start time %q is not on the half-hour grid", r.StartTime))
	}
	if !models.ValidDuration(r.DurationMinutes) {
		return errs.Validation(fmt.Sprintf("duration %d is not a bookable duration", r.DurationMinutes))
	}
	return nil
}

// Search returns the Available scooters matching the filter that have no
// confirmed booking overlapping the requested window.
func (s *BookingService) Search(req SearchRequest) ([]models.Scooter, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	all, err := s.scooters.List()
	if err != nil {
		return nil, err
	}
	filtered, err := catalog.FilterScooters(all, req.Filter)
	if err != nil {
		return nil, err
	}

	want := models.Booking{Date: req.Date, StartTime: req.StartTime, DurationMinutes: req.DurationMinutes}
	wantStart, _ := want.StartsAt()
	wantEnd, _ := want.EndsAt()

	var available []models.Scooter
	for _, scooter := range filtered {
		if scooter.Status != models.ScooterAvailable {
			continue
		}
		taken, err := s.scooterTaken(scooter.ID, wantStart, wantEnd)
		if err != nil {
			return nil, err
		}
		if !taken {
			available = append(available, scooter)
		}
	}
	return available, nil
}

func (s *BookingService) scooterTaken(scooterID string, start, end time.Time) (bool, error) {
	active, err := s.bookings.ListActiveByScooter(scooterID)
	if err != nil {
		return false, err
	}
	for _, b := range active {
		bStart, err := b.StartsAt()
		if err != nil {
			return false, err
		}
		bEnd, err := b.EndsAt()
		if err != nil {
			return false, err
		}
		if bStart.Before(end) && bEnd.After(start) {
			return true, nil
		}
	}
	return false, nil
}

// HoldRequest asks to reserve a scooter pending confirmation.
type HoldRequest struct {
	ScooterID       string
	CustomerID      string
	Date            string
	StartTime       string
	DurationMinutes int
}

// Hold creates a pending booking for the scooter. The scooter must be
// Available; its status does not change until the booking is confirmed.
func (s *BookingService) Hold(req HoldRequest) (*models.Booking, error) {
	if err := (SearchRequest{Date: req.Date, StartTime: req.StartTime, DurationMinutes: req.DurationMinutes}).validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(req.ScooterID)
	defer unlock()

	scooter, err := s.scooters.Get(req.ScooterID)
	if err != nil {
		return nil, err
	}
	if scooter.Status != models.ScooterAvailable {
		return nil, errs.Conflict("scooter " + scooter.ID + " is not available")
	}
	if _, err := s.customers.Get(req.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ScooterID:       req.ScooterID,
		CustomerID:      req.CustomerID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Cost:            pricing.Cost(scooter.CostPerMinute, req.DurationMinutes),
		Status:          models.BookingPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"booking": booking.ID, "scooter": booking.ScooterID}).Info("booking held")
	return booking, nil
}

// Confirm promotes a pending booking to active. The scooter must still be
// Available at confirmation time; if another booking won the scooter in
// the interim the caller gets a conflict and must re-search.
func (s *BookingService) Confirm(bookingID string) (*models.Booking, error) {
	booking, err := s.bookings.Get(bookingID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(booking.ScooterID)
	defer unlock()

	// Re-read under the lock: another confirm may have raced us here.
	booking, err = s.bookings.Get(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return nil, errs.InvalidTransition("booking " + bookingID + " is not pending confirmation")
	}
	scooter, err := s.scooters.Get(booking.ScooterID)
	if err != nil {
		return nil, err
	}
	if scooter.Status != models.ScooterAvailable {
		return nil, errs.Conflict("scooter " + scooter.ID + " is no longer available")
	}

	scooter.Status = models.ScooterBooked
	if err := s.scooters.Update(scooter); err != nil {
		return nil, err
	}
	booking.Status = models.BookingActive
	booking.UpdatedAt = time.Now().UTC()
	if err := s.bookings.Update(booking); err != nil {
		// Roll the scooter back so a failed confirm leaves no partial state.
		scooter.Status = models.ScooterAvailable
		if rbErr := s.scooters.Update(scooter); rbErr != nil {
			log.WithError(rbErr).WithField("scooter", scooter.ID).Error("rollback after failed confirm")
		}
		return nil, err
	}

	log.WithFields(log.Fields{"booking": booking.ID, "scooter": scooter.ID}).Info("booking confirmed")
	s.notify(booking, scooter, statusConfirmed)
	return booking, nil
}

// Cancel removes a booking from the active set. The scooter returns to
// Available unless an open maintenance issue holds it in a repair status;
// cancellation never overrides the maintenance lock and never touches the
// customer's balance. Unknown ids report not found and change nothing, so
// cancelling twice is harmless.
func (s *BookingService) Cancel(bookingID string) error {
	booking, err := s.bookings.Get(bookingID)
	if err != nil {
		return err
	}

	unlock := s.locks.lock(booking.ScooterID)
	defer unlock()

	booking, err = s.bookings.Get(bookingID)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(booking.ID); err != nil {
		return err
	}
	scooter, err := s.releaseScooter(booking.ScooterID)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"booking": booking.ID, "scooter": booking.ScooterID}).Info("booking cancelled")
	s.notify(booking, scooter, statusCancelled)
	return nil
}

// List returns bookings, or just one customer's when customerID is set.
func (s *BookingService) List(customerID string) ([]models.Booking, error) {
	if customerID != "" {
		return s.bookings.ListByCustomer(customerID)
	}
	return s.bookings.List()
}

// releaseScooter frees a scooter after its booking goes away, keeping the
// maintenance lock intact when the scooter has open issues.
func (s *BookingService) releaseScooter(scooterID string) (*models.Scooter, error) {
	scooter, err := s.scooters.Get(scooterID)
	if err != nil {
		return nil, err
	}
	open, err := s.issues.ListOpenByScooter(scooterID)
	if err != nil {
		return nil, err
	}
	if len(open) > 0 || scooter.Status.InMaintenance() {
		return scooter, nil
	}
	active, err := s.bookings.ListActiveByScooter(scooterID)
	if err != nil {
		return nil, err
	}
	if len(active) > 0 {
		// Another customer still holds this scooter.
		if scooter.Status != models.ScooterBooked {
			scooter.Status = models.ScooterBooked
			if err := s.scooters.Update(scooter); err != nil {
				return nil, err
			}
		}
		return scooter, nil
	}
	if scooter.Status != models.ScooterAvailable {
		scooter.Status = models.ScooterAvailable
		if err := s.scooters.Update(scooter); err != nil {
			return nil, err
		}
	}
	return scooter, nil
}

func (s *BookingService) notify(booking *models.Booking, scooter *models.Scooter, status string) {
	if s.sender == nil {
		return
	}
	customer, err := s.customers.Get(booking.CustomerID)
	if err != nil {
		log.WithError(err).WithField("booking", booking.ID).Warn("skipping booking notification")
		return
	}
	s.sender.SendBookingEmail(booking, scooter, customer, status)
	s.sender.SendBookingSMS(booking, customer, status)
}
