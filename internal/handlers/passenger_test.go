package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/models"
)

func passengerRouter(service TaskService) *chi.Mux {
	handler := NewPassengerHandler(service)
	r := chi.NewRouter()
	r.Post("/fleet-task-passengers", handler.CreatePassenger)
	r.Get("/fleet-task-passengers/task/{taskId}", handler.ListByTask)
	r.Delete("/fleet-task-passengers/{id}", handler.DeletePassenger)
	r.Delete("/fleet-task-passengers/task/{taskId}", handler.DeleteByTask)
	return r
}

func TestPassengerHandler_CreatePassenger(t *testing.T) {
	service := new(MockTaskService)
	assignment := &models.PassengerAssignment{ID: 11, FleetTaskID: 7, EmployeeCode: "E1", EmployeeName: "Alice"}
	service.On("AddPassenger", mock.Anything, mock.Anything).Return(assignment, nil)

	body, _ := json.Marshal(models.CreatePassengerRequest{
		FleetTaskID:  7,
		EmployeeCode: "E1",
		EmployeeName: "Alice",
	})
	req := httptest.NewRequest("POST", "/fleet-task-passengers", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	passengerRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.PassengerAssignment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(11), got.ID)
}

func TestPassengerHandler_CreatePassenger_MissingFields(t *testing.T) {
	service := new(MockTaskService)

	req := httptest.NewRequest("POST", "/fleet-task-passengers", bytes.NewBufferString(`{"fleet_task_id":7}`))
	w := httptest.NewRecorder()
	passengerRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "AddPassenger")
}

func TestPassengerHandler_CreatePassenger_DuplicateConflict(t *testing.T) {
	service := new(MockTaskService)
	service.On("AddPassenger", mock.Anything, mock.Anything).Return(nil, db.ErrDuplicateAssignment)

	body, _ := json.Marshal(models.CreatePassengerRequest{
		FleetTaskID:  7,
		EmployeeCode: "E1",
		EmployeeName: "Alice",
	})
	req := httptest.NewRequest("POST", "/fleet-task-passengers", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	passengerRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPassengerHandler_ListByTask(t *testing.T) {
	service := new(MockTaskService)
	service.On("ListPassengers", mock.Anything, int64(7)).Return([]models.PassengerAssignment{
		{ID: 11, FleetTaskID: 7},
		{ID: 12, FleetTaskID: 7},
	}, nil)

	req := httptest.NewRequest("GET", "/fleet-task-passengers/task/7", nil)
	w := httptest.NewRecorder()
	passengerRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []models.PassengerAssignment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestPassengerHandler_DeletePassenger_NotFound(t *testing.T) {
	service := new(MockTaskService)
	service.On("RemovePassenger", mock.Anything, int64(99)).Return(db.ErrNotFound)

	req := httptest.NewRequest("DELETE", "/fleet-task-passengers/99", nil)
	w := httptest.NewRecorder()
	passengerRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPassengerHandler_DeleteByTask(t *testing.T) {
	service := new(MockTaskService)
	service.On("ClearPassengers", mock.Anything, int64(7)).Return(int64(3), nil)

	req := httptest.NewRequest("DELETE", "/fleet-task-passengers/task/7", nil)
	w := httptest.NewRecorder()
	passengerRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp["deleted"])
}
