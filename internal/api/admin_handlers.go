package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"scootershare/internal/catalog"
	"scootershare/internal/models"
	"scootershare/internal/service"
)

// AdminHandler serves the back-office surface: fleet and customer CRUD,
// balance top-ups, and the searchable usage history with CSV export.
type AdminHandler struct {
	Fleet     *service.FleetService
	Customers *service.CustomerService
	Usage     *service.UsageService
}

func NewAdminHandler(fleet *service.FleetService, customers *service.CustomerService, usage *service.UsageService) *AdminHandler {
	return &AdminHandler{Fleet: fleet, Customers: customers, Usage: usage}
}

// ListScooters returns the fleet through the catalog filter.
// GET /admin/scooters?filter=maintenance
func (h *AdminHandler) ListScooters(w http.ResponseWriter, r *http.Request) {
	filter := catalog.ScooterFilter(r.URL.Query().Get("filter"))
	scooters, err := h.Fleet.List(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scooters)
}

func (h *AdminHandler) GetScooter(w http.ResponseWriter, r *http.Request) {
	scooter, err := h.Fleet.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scooter)
}

func (h *AdminHandler) CreateScooter(w http.ResponseWriter, r *http.Request) {
	var req service.ScooterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	scooter, err := h.Fleet.Create(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scooter)
}

func (h *AdminHandler) UpdateScooter(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req service.ScooterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	scooter, err := h.Fleet.Update(id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scooter)
}

func (h *AdminHandler) DeleteScooter(w http.ResponseWriter, r *http.Request) {
	if err := h.Fleet.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "scooter removed"})
}

// ListCustomers returns customers, optionally filtered by a search query.
// GET /admin/customers?q=jane
func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.List(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *AdminHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.Customers.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *AdminHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req service.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.Customers.Create(req, time.Now().UTC().Format(models.DateFormat))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *AdminHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req service.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.Customers.Update(id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *AdminHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.Customers.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "customer removed"})
}

// TopUpCustomer adds funds to a balance. POST /admin/customers/{id}/topup
func (h *AdminHandler) TopUpCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req topUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.Customers.TopUp(id, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func historyRequest(r *http.Request) service.HistoryRequest {
	q := r.URL.Query()
	return service.HistoryRequest{
		Text:       q.Get("q"),
		CustomerID: q.Get("customer_id"),
		FromDate:   q.Get("from"),
		ToDate:     q.Get("to"),
		Sort:       catalog.UsageSort(q.Get("sort")),
	}
}

// SearchUsage returns matching rides plus aggregate stats.
// GET /admin/usage?q=&customer_id=&from=&to=&sort=
func (h *AdminHandler) SearchUsage(w http.ResponseWriter, r *http.Request) {
	records, stats, err := h.Usage.History(historyRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usageResponse{Records: records, Stats: stats})
}

// RecordUsage ingests a completed ride reported by an external collector.
// POST /admin/usage
func (h *AdminHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	var record models.UsageRecord
	if err := decodeJSON(r, &record); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Usage.Record(&record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// ExportUsage streams the matching rides as CSV, same query surface as
// SearchUsage. GET /admin/usage/export
func (h *AdminHandler) ExportUsage(w http.ResponseWriter, r *http.Request) {
	records, _, err := h.Usage.History(historyRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="usage-history.csv"`)
	if err := h.Usage.WriteCSV(w, records); err != nil {
		writeError(w, err)
	}
}

// CustomerHistory returns one rider's history with stats.
// GET /api/customers/{id}/history
func (h *AdminHandler) CustomerHistory(w http.ResponseWriter, r *http.Request) {
	records, stats, err := h.Usage.ForCustomer(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usageResponse{Records: records, Stats: stats})
}
