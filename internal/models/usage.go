package models

import "time"

// UsageRecord is an immutable record of a completed ride. Records are
// append-only; nothing in the system mutates one after creation.
type UsageRecord struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	ScooterID     string    `json:"scooter_id"`
	ScooterMake   string    `json:"scooter_make"`
	ScooterColor  string    `json:"scooter_color"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	StartLocation string    `json:"start_location"`
	EndLocation   string    `json:"end_location"`
	DurationMinutes int     `json:"duration_minutes"`
	Cost          float64   `json:"cost"`
	PowerUsed     int       `json:"power_used"` // battery percent consumed
}
