package api

import (
	"scootershare/internal/models"
	"scootershare/internal/pricing"
)

// searchRequest is the rider's availability query.
type searchRequest struct {
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Filter          string `json:"filter"`
}

// holdRequest asks for a pending booking on one scooter.
type holdRequest struct {
	ScooterID       string `json:"scooter_id"`
	CustomerID      string `json:"customer_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// bookingResponse is a booking enriched with the derived end time and the
// display-rounded cost. The stored cost stays raw.
type bookingResponse struct {
	models.Booking
	EndTime     string  `json:"end_time"`
	DisplayCost float64 `json:"display_cost"`
}

func toBookingResponse(b *models.Booking) bookingResponse {
	end, err := pricing.EndTime(b.StartTime, b.DurationMinutes)
	if err != nil {
		end = b.StartTime
	}
	return bookingResponse{
		Booking:     *b,
		EndTime:     end,
		DisplayCost: pricing.RoundMoney(b.Cost),
	}
}

func toBookingResponses(bookings []models.Booking) []bookingResponse {
	out := make([]bookingResponse, len(bookings))
	for i := range bookings {
		out[i] = toBookingResponse(&bookings[i])
	}
	return out
}

// reportRequest files a maintenance issue.
type reportRequest struct {
	ScooterID   string `json:"scooter_id"`
	ReportedBy  string `json:"reported_by"`
	IssueType   string `json:"issue_type"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// issueStatusRequest advances an issue through the workflow.
type issueStatusRequest struct {
	Status     string `json:"status"`
	Resolution string `json:"resolution"`
}

// topUpRequest adds funds to a customer balance.
type topUpRequest struct {
	Amount float64 `json:"amount"`
}

// usageResponse wraps a history page with its aggregate stats.
type usageResponse struct {
	Records []models.UsageRecord `json:"records"`
	Stats   pricing.UsageStats   `json:"stats"`
}
