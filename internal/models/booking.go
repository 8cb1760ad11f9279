package models

import "time"

// BookingStatus tracks a booking through the hold/confirm flow. A booking
// disappears from the store on cancellation, so there is no cancelled state.
type BookingStatus string

const (
	// BookingPending is a hold awaiting confirmation.
	BookingPending BookingStatus = "pending"
	// BookingActive is a confirmed booking.
	BookingActive BookingStatus = "active"
)

const (
	DateFormat  = "2006-01-02"
	ClockFormat = "15:04"
)

// DurationOptions is the enumerated set of bookable durations in minutes.
var DurationOptions = []int{15, 30, 45, 60, 90, 120, 180}

// ValidDuration reports whether d is one of the bookable durations.
func ValidDuration(d int) bool {
	for _, opt := range DurationOptions {
		if d == opt {
			return true
		}
	}
	return false
}

// Booking reserves a scooter for a future time window. IDs follow the
// BK-#### format. Cost is the raw rate x duration product; rounding happens
// at the display edge only.
type Booking struct {
	ID              string        `json:"id"`
	ScooterID       string        `json:"scooter_id"`
	CustomerID      string        `json:"customer_id"`
	Date            string        `json:"date"`       // DateFormat
	StartTime       string        `json:"start_time"` // ClockFormat, 30-minute grid
	DurationMinutes int           `json:"duration_minutes"`
	Cost            float64       `json:"cost"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// StartsAt resolves the booking's date and start time to an instant (UTC).
func (b *Booking) StartsAt() (time.Time, error) {
	return time.Parse(DateFormat+" "+ClockFormat, b.Date+" "+b.StartTime)
}

// EndsAt is StartsAt plus the booked duration. Windows that cross midnight
// end on the following day.
func (b *Booking) EndsAt() (time.Time, error) {
	start, err := b.StartsAt()
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(b.DurationMinutes) * time.Minute), nil
}
