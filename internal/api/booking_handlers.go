package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"scootershare/internal/catalog"
	errs "scootershare/internal/errors"
	"scootershare/internal/service"
)

// BookingHandler serves the rider-facing search and booking lifecycle.
type BookingHandler struct {
	Service *service.BookingService
	Fleet   *service.FleetService
}

func NewBookingHandler(svc *service.BookingService, fleet *service.FleetService) *BookingHandler {
	return &BookingHandler{Service: svc, Fleet: fleet}
}

// ListScooters returns the fleet through the catalog filter, without any
// availability window. GET /api/scooters?filter=nearby
func (h *BookingHandler) ListScooters(w http.ResponseWriter, r *http.Request) {
	filter := catalog.ScooterFilter(r.URL.Query().Get("filter"))
	scooters, err := h.Fleet.List(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scooters)
}

// SearchScooters returns the scooters bookable for a concrete window.
// POST /api/scooters/search
func (h *BookingHandler) SearchScooters(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	filter := catalog.ScooterFilter(req.Filter)
	if filter == "" {
		filter = catalog.ScooterAll
	}
	scooters, err := h.Service.Search(service.SearchRequest{
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Filter:          filter,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scooters)
}

// CreateBooking places a hold. POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req holdRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.Service.Hold(service.HoldRequest{
		ScooterID:       req.ScooterID,
		CustomerID:      req.CustomerID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

// ConfirmBooking promotes a hold to an active booking.
// POST /api/bookings/{id}/confirm
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	booking, err := h.Service.Confirm(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// CancelBooking removes a booking and frees its scooter. Cancelling an
// unknown booking succeeds, so retries are safe.
// DELETE /api/bookings/{id}
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.Cancel(id); err != nil && !errs.Is(err, errs.KindNotFound) {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "booking cancelled"})
}

// ListBookings returns every booking, optionally one customer's.
// GET /api/bookings?customer_id=C001
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	bookings, err := h.Service.List(customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}
