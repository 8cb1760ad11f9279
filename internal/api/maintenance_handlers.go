package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"scootershare/internal/models"
	"scootershare/internal/service"
)

// MaintenanceHandler serves the defect-report workflow.
type MaintenanceHandler struct {
	Service *service.MaintenanceService
}

func NewMaintenanceHandler(svc *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{Service: svc}
}

// ReportIssue files a new defect. POST /api/issues
func (h *MaintenanceHandler) ReportIssue(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	issue, err := h.Service.Report(service.ReportRequest{
		ScooterID:   req.ScooterID,
		ReportedBy:  req.ReportedBy,
		IssueType:   models.IssueType(req.IssueType),
		Priority:    models.IssuePriority(req.Priority),
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, issue)
}

// ListIssues returns issues, optionally by workflow status.
// GET /api/issues?status=pending
func (h *MaintenanceHandler) ListIssues(w http.ResponseWriter, r *http.Request) {
	status := models.IssueStatus(r.URL.Query().Get("status"))
	issues, err := h.Service.List(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

// GetIssue returns one issue. GET /api/issues/{id}
func (h *MaintenanceHandler) GetIssue(w http.ResponseWriter, r *http.Request) {
	issue, err := h.Service.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

// UpdateIssueStatus advances an issue. Completing requires a resolution.
// PUT /api/issues/{id}/status
func (h *MaintenanceHandler) UpdateIssueStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req issueStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	issue, err := h.Service.UpdateStatus(id, models.IssueStatus(req.Status), req.Resolution)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}
