package models

// ScooterStatus is the operational state of a scooter. The string values
// are the labels the product surfaces, so they travel on the wire as-is.
type ScooterStatus string

const (
	ScooterAvailable    ScooterStatus = "Available"
	ScooterBooked       ScooterStatus = "Booked"
	ScooterOccupying    ScooterStatus = "Occupying"
	ScooterToBeRepaired ScooterStatus = "To Be Repaired"
	ScooterUnderRepair  ScooterStatus = "Under Repair"
)

// ValidScooterStatus reports whether s is one of the known statuses.
func ValidScooterStatus(s ScooterStatus) bool {
	switch s {
	case ScooterAvailable, ScooterBooked, ScooterOccupying, ScooterToBeRepaired, ScooterUnderRepair:
		return true
	default:
		return false
	}
}

// InMaintenance reports whether the status is one of the two repair states.
func (s ScooterStatus) InMaintenance() bool {
	return s == ScooterToBeRepaired || s == ScooterUnderRepair
}

// Scooter is a rentable vehicle. IDs follow the SC-#### format.
type Scooter struct {
	ID            string        `json:"id"`
	Make          string        `json:"make"`
	Color         string        `json:"color"`
	Location      string        `json:"location"`
	Power         int           `json:"power"` // battery percent, 0-100
	CostPerMinute float64       `json:"cost_per_minute"`
	Status        ScooterStatus `json:"status"`
}
