package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scootershare/internal/models"
	"scootershare/internal/repository"
)

func TestReleaseExpiredBookings(t *testing.T) {
	store := repository.NewSeededMemoryStore()
	svc := NewJobService(store)

	// every seeded booking ended well before June 2025
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.ReleaseExpiredBookings(now))

	remaining, err := store.Bookings.List()
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// SC-1001 and SC-1003 go back on the street
	for _, id := range []string{"SC-1001", "SC-1003"} {
		scooter, err := store.Scooters.Get(id)
		require.NoError(t, err)
		assert.Equal(t, models.ScooterAvailable, scooter.Status, id)
	}

	// SC-1005 stays locked behind its open issue
	scooter, err := store.Scooters.Get("SC-1005")
	require.NoError(t, err)
	assert.Equal(t, models.ScooterUnderRepair, scooter.Status)
}

func TestReleaseExpiredBookingsKeepsScooterWithLiveBooking(t *testing.T) {
	store := repository.NewSeededMemoryStore()
	svc := NewJobService(store)

	// SC-1001 already carries the expired BK-1001; give it a second booking
	// whose window is still ahead of the sweep.
	upcoming := &models.Booking{
		ScooterID: "SC-1001", CustomerID: "C002",
		Date: "2025-06-02", StartTime: "09:00", DurationMinutes: 30,
		Status:    models.BookingActive,
		CreatedAt: time.Date(2025, 5, 31, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Bookings.Create(upcoming))

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.ReleaseExpiredBookings(now))

	_, err := store.Bookings.Get("BK-1001")
	assert.Error(t, err)
	_, err = store.Bookings.Get(upcoming.ID)
	require.NoError(t, err)

	scooter, err := store.Scooters.Get("SC-1001")
	require.NoError(t, err)
	assert.Equal(t, models.ScooterBooked, scooter.Status)
}

func TestReleaseExpiredBookingsNoop(t *testing.T) {
	store := repository.NewSeededMemoryStore()
	svc := NewJobService(store)

	before := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.ReleaseExpiredBookings(before))

	remaining, err := store.Bookings.List()
	require.NoError(t, err)
	assert.Len(t, remaining, 3)
}

func TestDeleteStaleHolds(t *testing.T) {
	store := repository.NewSeededMemoryStore()
	svc := NewJobService(store)

	old := &models.Booking{
		ScooterID: "SC-1002", CustomerID: "C001",
		Date: "2025-06-01", StartTime: "10:00", DurationMinutes: 30,
		Status:    models.BookingPending,
		CreatedAt: time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Bookings.Create(old))

	fresh := &models.Booking{
		ScooterID: "SC-1002", CustomerID: "C002",
		Date: "2025-06-01", StartTime: "11:00", DurationMinutes: 30,
		Status:    models.BookingPending,
		CreatedAt: time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Bookings.Create(fresh))

	cutoff := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	removed, err := svc.DeleteStaleHolds(cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.Bookings.Get(fresh.ID)
	assert.NoError(t, err)
}
