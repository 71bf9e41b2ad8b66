package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-transport/internal/db"
)

// EmployeeHandler serves the eligible-passenger lookup used by the task
// planning UI.
type EmployeeHandler struct {
	lookup db.LookupCollection
}

// NewEmployeeHandler creates an employee handler over the lookup gateway.
func NewEmployeeHandler(lookup db.LookupCollection) *EmployeeHandler {
	return &EmployeeHandler{lookup: lookup}
}

// ListWorkers handles GET /employees/company/{companyId}/workers.
func (h *EmployeeHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	companyID, ok := pathID(w, r, "companyId")
	if !ok {
		return
	}
	workers, err := h.lookup.FindWorkersByCompany(r.Context(), companyID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, workers)
}
