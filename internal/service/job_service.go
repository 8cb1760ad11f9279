package service

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	errs "scootershare/internal/errors"
	"scootershare/internal/models"
	"scootershare/internal/repository"
)

// holdTTL is how long an unconfirmed hold survives before the sweep
// reclaims it.
const holdTTL = 15 * time.Minute

// JobService runs the periodic cleanup passes: expired confirmed bookings
// release their scooters, and stale unconfirmed holds are dropped.
type JobService struct {
	bookings repository.BookingRepository
	scooters repository.ScooterRepository
	issues   repository.IssueRepository
}

func NewJobService(store *repository.Store) *JobService {
	return &JobService{
		bookings: store.Bookings,
		scooters: store.Scooters,
		issues:   store.Issues,
	}
}

// ReleaseExpiredBookings finds confirmed bookings whose window has passed,
// returns their scooters to circulation (unless an open issue holds them in
// maintenance) and removes the bookings.
func (s *JobService) ReleaseExpiredBookings(now time.Time) error {
	log.Info("cron: checking for expired bookings")

	ids, err := s.bookings.ExpiredActiveIDs(now)
	if err != nil {
		return fmt.Errorf("cron: listing expired bookings: %w", err)
	}
	if len(ids) == 0 {
		log.Info("cron: no expired bookings found")
		return nil
	}
	log.WithFields(log.Fields{"count": len(ids), "ids": ids}).Info("cron: releasing expired bookings")

	scooterIDs := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		booking, err := s.bookings.Get(id)
		if err != nil {
			if errs.Is(err, errs.KindNotFound) {
				continue
			}
			return fmt.Errorf("cron: loading booking %s: %w", id, err)
		}
		scooterIDs[booking.ScooterID] = struct{}{}
	}

	// Delete first so the release pass sees only bookings that survive the
	// sweep when it checks whether a scooter is still held.
	deleted, err := s.bookings.DeleteMany(ids)
	if err != nil {
		return fmt.Errorf("cron: deleting expired bookings: %w", err)
	}
	for scooterID := range scooterIDs {
		if err := s.releaseScooter(scooterID); err != nil {
			return fmt.Errorf("cron: releasing scooter %s: %w", scooterID, err)
		}
	}
	log.WithField("count", deleted).Info("cron: expired bookings released")
	return nil
}

// DeleteStaleHolds drops unconfirmed holds created before the given time.
func (s *JobService) DeleteStaleHolds(before time.Time) (int64, error) {
	all, err := s.bookings.List()
	if err != nil {
		return 0, err
	}
	var ids []string
	for _, b := range all {
		if b.Status == models.BookingPending && b.CreatedAt.Before(before) {
			ids = append(ids, b.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return s.bookings.DeleteMany(ids)
}

// Sweep is the cron entry point.
func (s *JobService) Sweep() {
	now := time.Now().UTC()
	if err := s.ReleaseExpiredBookings(now); err != nil {
		log.WithError(err).Error("cron: release pass failed")
	}
	if n, err := s.DeleteStaleHolds(now.Add(-holdTTL)); err != nil {
		log.WithError(err).Error("cron: stale hold pass failed")
	} else if n > 0 {
		log.WithField("count", n).Info("cron: stale holds dropped")
	}
}

// releaseScooter mirrors the booking cancellation rule: a scooter with an
// open maintenance issue stays off the street.
func (s *JobService) releaseScooter(scooterID string) error {
	scooter, err := s.scooters.Get(scooterID)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return nil
		}
		return err
	}
	open, err := s.issues.ListOpenByScooter(scooterID)
	if err != nil {
		return err
	}
	if len(open) > 0 || scooter.Status.InMaintenance() {
		return nil
	}
	active, err := s.bookings.ListActiveByScooter(scooterID)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return nil
	}
	if scooter.Status != models.ScooterAvailable {
		scooter.Status = models.ScooterAvailable
		if err := s.scooters.Update(scooter); err != nil {
			return err
		}
	}
	return nil
}
