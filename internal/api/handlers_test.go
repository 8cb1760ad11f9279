package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scootershare/internal/models"
	"scootershare/internal/repository"
	"scootershare/internal/service"
)

func testRouter() *mux.Router {
	store := repository.NewSeededMemoryStore()

	bookingSvc := service.NewBookingService(store, nil)
	maintenanceSvc := service.NewMaintenanceService(store)
	fleetSvc := service.NewFleetService(store)
	customerSvc := service.NewCustomerService(store)
	usageSvc := service.NewUsageService(store)

	bookingHandler := NewBookingHandler(bookingSvc, fleetSvc)
	maintenanceHandler := NewMaintenanceHandler(maintenanceSvc)
	adminHandler := NewAdminHandler(fleetSvc, customerSvc, usageSvc)

	r := mux.NewRouter()
	r.HandleFunc("/api/scooters", bookingHandler.ListScooters).Methods("GET")
	r.HandleFunc("/api/scooters/search", bookingHandler.SearchScooters).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.ListBookings).Methods("GET")
	r.HandleFunc("/api/bookings/{id}/confirm", bookingHandler.ConfirmBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{id}", bookingHandler.CancelBooking).Methods("DELETE")
	r.HandleFunc("/api/customers/{id}/history", adminHandler.CustomerHistory).Methods("GET")
	r.HandleFunc("/api/issues", maintenanceHandler.ReportIssue).Methods("POST")
	r.HandleFunc("/api/issues", maintenanceHandler.ListIssues).Methods("GET")
	r.HandleFunc("/api/issues/{id}/status", maintenanceHandler.UpdateIssueStatus).Methods("PUT")
	r.HandleFunc("/admin/usage", adminHandler.SearchUsage).Methods("GET")
	r.HandleFunc("/admin/usage", adminHandler.RecordUsage).Methods("POST")
	r.HandleFunc("/admin/usage/export", adminHandler.ExportUsage).Methods("GET")
	r.HandleFunc("/admin/customers/{id}/topup", adminHandler.TopUpCustomer).Methods("POST")
	return r
}

func doJSON(t *testing.T, r *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListScooters(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodGet, "/api/scooters?filter=maintenance", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var scooters []models.Scooter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scooters))
	assert.Len(t, scooters, 2)
}

func TestListScootersUnknownFilter(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodGet, "/api/scooters?filter=cheap", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body["error"])
}

func TestSearchScooters(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodPost, "/api/scooters/search", searchRequest{
		Date: "2025-06-01", StartTime: "10:00", DurationMinutes: 30,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var scooters []models.Scooter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scooters))
	require.Len(t, scooters, 1)
	assert.Equal(t, "SC-1002", scooters[0].ID)
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	r := testRouter()

	w := doJSON(t, r, http.MethodPost, "/api/bookings", holdRequest{
		ScooterID: "SC-1002", CustomerID: "C001",
		Date: "2025-06-01", StartTime: "10:00", DurationMinutes: 45,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var held bookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &held))
	assert.Equal(t, models.BookingPending, held.Status)
	assert.Equal(t, "10:45", held.EndTime)
	assert.Equal(t, 13.5, held.DisplayCost)

	w = doJSON(t, r, http.MethodPost, "/api/bookings/"+held.ID+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var confirmed bookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirmed))
	assert.Equal(t, models.BookingActive, confirmed.Status)

	// confirming again is a workflow violation
	w = doJSON(t, r, http.MethodPost, "/api/bookings/"+held.ID+"/confirm", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/bookings/"+held.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// cancel is safe to retry
	w = doJSON(t, r, http.MethodDelete, "/api/bookings/"+held.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHoldConflictOverHTTP(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodPost, "/api/bookings", holdRequest{
		ScooterID: "SC-1004", CustomerID: "C001",
		Date: "2025-06-01", StartTime: "10:00", DurationMinutes: 30,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHoldMalformedBody(t *testing.T) {
	r := testRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueWorkflowOverHTTP(t *testing.T) {
	r := testRouter()

	w := doJSON(t, r, http.MethodPost, "/api/issues", reportRequest{
		ScooterID: "SC-1002", ReportedBy: "customer",
		IssueType: "mechanical", Priority: "high",
		Description: "brake lever unresponsive",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var issue models.MaintenanceIssue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
	assert.Equal(t, models.IssuePending, issue.Status)

	// completing without a resolution is rejected
	w = doJSON(t, r, http.MethodPut, "/api/issues/"+issue.ID+"/status", issueStatusRequest{
		Status: "completed",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/issues/"+issue.ID+"/status", issueStatusRequest{
		Status: "completed", Resolution: "Replaced brake cable",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
	assert.Equal(t, models.IssueCompleted, issue.Status)
	assert.NotNil(t, issue.ResolvedAt)
}

func TestCustomerHistoryOverHTTP(t *testing.T) {
	r := testRouter()
	w := doJSON(t, r, http.MethodGet, "/api/customers/C001/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body usageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, len(body.Records), body.Stats.Rides)
	assert.NotEmpty(t, body.Records)

	w = doJSON(t, r, http.MethodGet, "/api/customers/C999/history", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsageSearchAndExport(t *testing.T) {
	r := testRouter()

	w := doJSON(t, r, http.MethodGet, "/admin/usage?customer_id=C001&sort=cost-desc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body usageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Records)
	for i := 1; i < len(body.Records); i++ {
		assert.GreaterOrEqual(t, body.Records[i-1].Cost, body.Records[i].Cost)
	}

	w = doJSON(t, r, http.MethodGet, "/admin/usage/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "id,customer,scooter"))
}

func TestRecordUsageOverHTTP(t *testing.T) {
	r := testRouter()

	w := doJSON(t, r, http.MethodPost, "/admin/usage", models.UsageRecord{
		CustomerID: "C002", CustomerName: "Jane Smith",
		ScooterID:       "SC-1002",
		StartTime:       time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		StartLocation:   "Downtown Station",
		EndLocation:     "Central Park",
		DurationMinutes: 30, Cost: 9, PowerUsed: 12,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.UsageRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	w = doJSON(t, r, http.MethodPost, "/admin/usage", models.UsageRecord{
		CustomerID: "C002", ScooterID: "SC-1002",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTopUpOverHTTP(t *testing.T) {
	r := testRouter()

	w := doJSON(t, r, http.MethodPost, "/admin/customers/C001/topup", topUpRequest{Amount: 10})
	require.Equal(t, http.StatusOK, w.Code)

	var customer models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))
	assert.InDelta(t, 35.50, customer.Balance, 1e-9)

	w = doJSON(t, r, http.MethodPost, "/admin/customers/C001/topup", topUpRequest{Amount: -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
