package models

// Customer is a registered rider. Balance never goes negative and
// TotalRides only ever grows (incremented by completed rides).
type Customer struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Balance        float64 `json:"balance"`
	RegisteredDate string  `json:"registered_date"` // DateFormat
	TotalRides     int     `json:"total_rides"`
}
