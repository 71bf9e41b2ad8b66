package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ukydev/fleet-transport/internal/models"
)

// PassengerHandler serves the passenger assignment endpoints.
type PassengerHandler struct {
	manager TaskService
}

// NewPassengerHandler creates a passenger handler over the lifecycle manager.
func NewPassengerHandler(manager TaskService) *PassengerHandler {
	return &PassengerHandler{manager: manager}
}

// CreatePassenger handles POST /fleet-task-passengers.
func (h *PassengerHandler) CreatePassenger(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.FleetTaskID == 0 || req.EmployeeCode == "" || req.EmployeeName == "" {
		http.Error(w, "fleet_task_id, employee_code and employee_name are required", http.StatusBadRequest)
		return
	}
	assignment, err := h.manager.AddPassenger(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, assignment)
}

// ListByTask handles GET /fleet-task-passengers/task/{taskId}.
func (h *PassengerHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}
	passengers, err := h.manager.ListPassengers(r.Context(), taskID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, passengers)
}

// DeletePassenger handles DELETE /fleet-task-passengers/{id}.
func (h *PassengerHandler) DeletePassenger(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.manager.RemovePassenger(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Passenger removed"})
}

// DeleteByTask handles DELETE /fleet-task-passengers/task/{taskId}.
func (h *PassengerHandler) DeleteByTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}
	deleted, err := h.manager.ClearPassengers(r.Context(), taskID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
