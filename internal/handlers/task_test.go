package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/fleet"
	"github.com/ukydev/fleet-transport/internal/models"
)

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.FleetTask, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FleetTask), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, taskID int64, req models.UpdateTaskRequest) (*models.FleetTask, error) {
	args := m.Called(ctx, taskID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FleetTask), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTaskService) SetStatus(ctx context.Context, taskID int64, requested models.TaskStatus) (*models.FleetTask, error) {
	args := m.Called(ctx, taskID, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FleetTask), args.Error(1)
}

func (m *MockTaskService) GetTask(ctx context.Context, taskID int64) (*models.FleetTask, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FleetTask), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context, filter db.TaskFilter) ([]models.FleetTask, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FleetTask), args.Error(1)
}

func (m *MockTaskService) AddPassenger(ctx context.Context, req models.CreatePassengerRequest) (*models.PassengerAssignment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PassengerAssignment), args.Error(1)
}

func (m *MockTaskService) ListPassengers(ctx context.Context, taskID int64) ([]models.PassengerAssignment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PassengerAssignment), args.Error(1)
}

func (m *MockTaskService) RemovePassenger(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskService) ClearPassengers(ctx context.Context, taskID int64) (int64, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(int64), args.Error(1)
}

// taskRouter mounts the task routes without the auth stack.
func taskRouter(service TaskService) *chi.Mux {
	handler := NewTaskHandler(service)
	r := chi.NewRouter()
	r.Post("/fleet-tasks", handler.CreateTask)
	r.Get("/fleet-tasks", handler.ListTasks)
	r.Get("/fleet-tasks/{id}", handler.GetTask)
	r.Put("/fleet-tasks/{id}", handler.UpdateTask)
	r.Patch("/fleet-tasks/{id}/status", handler.SetStatus)
	r.Delete("/fleet-tasks/{id}", handler.DeleteTask)
	return r
}

func TestTaskHandler_CreateTask(t *testing.T) {
	service := new(MockTaskService)
	task := &models.FleetTask{ID: 1, CompanyID: 1, Status: models.StatusPlanned}
	service.On("CreateTask", mock.Anything, mock.Anything).Return(task, nil)

	body, _ := json.Marshal(models.CreateTaskRequest{CompanyID: 1, TaskDate: "2026-09-01"})
	req := httptest.NewRequest("POST", "/fleet-tasks", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	taskRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.FleetTask
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, models.StatusPlanned, got.Status)
}

func TestTaskHandler_CreateTask_ValidationError(t *testing.T) {
	service := new(MockTaskService)
	service.On("CreateTask", mock.Anything, mock.Anything).Return(nil, &fleet.ValidationError{
		MissingDriver:    true,
		MissingEmployees: []int64{22},
	})

	req := httptest.NewRequest("POST", "/fleet-tasks", bytes.NewBufferString(`{"company_id":1}`))
	w := httptest.NewRecorder()
	taskRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Error            string  `json:"error"`
		MissingEmployees []int64 `json:"missing_employees"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "driver")
	assert.Equal(t, []int64{22}, resp.MissingEmployees)
}

func TestTaskHandler_CreateTask_InvalidJSON(t *testing.T) {
	service := new(MockTaskService)
	req := httptest.NewRequest("POST", "/fleet-tasks", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	taskRouter(service).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	service := new(MockTaskService)
	service.On("GetTask", mock.Anything, int64(99)).Return(nil, db.ErrNotFound)

	req := httptest.NewRequest("GET", "/fleet-tasks/99", nil)
	w := httptest.NewRecorder()
	taskRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_GetTask_InvalidID(t *testing.T) {
	service := new(MockTaskService)
	req := httptest.NewRequest("GET", "/fleet-tasks/abc", nil)
	w := httptest.NewRecorder()
	taskRouter(service).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_ListTasks_ParsesFilter(t *testing.T) {
	service := new(MockTaskService)
	service.On("ListTasks", mock.Anything, db.TaskFilter{CompanyID: 3, Limit: 10, Offset: 20}).
		Return([]models.FleetTask{{ID: 1}}, nil)

	req := httptest.NewRequest("GET", "/fleet-tasks?company_id=3&limit=10&offset=20", nil)
	w := httptest.NewRecorder()
	taskRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestTaskHandler_SetStatus_InvalidTransition(t *testing.T) {
	service := new(MockTaskService)
	service.On("SetStatus", mock.Anything, int64(7), models.StatusOngoing).
		Return(nil, &fleet.InvalidTransitionError{From: models.StatusCancelled, To: models.StatusOngoing})

	req := httptest.NewRequest("PATCH", "/fleet-tasks/7/status", bytes.NewBufferString(`{"status":"in progress"}`))
	w := httptest.NewRecorder()
	taskRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTaskHandler_SetStatus_NormalizesInput(t *testing.T) {
	service := new(MockTaskService)
	task := &models.FleetTask{ID: 7, Status: models.StatusCancelled}
	service.On("SetStatus", mock.Anything, int64(7), models.StatusCancelled).Return(task, nil)

	req := httptest.NewRequest("PATCH", "/fleet-tasks/7/status", bytes.NewBufferString(`{"status":"canceled"}`))
	w := httptest.NewRecorder()
	taskRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_StaleVersion(t *testing.T) {
	service := new(MockTaskService)
	service.On("UpdateTask", mock.Anything, int64(7), mock.Anything).Return(nil, db.ErrStaleVersion)

	req := httptest.NewRequest("PUT", "/fleet-tasks/7", bytes.NewBufferString(`{"company_id":1,"version":3}`))
	w := httptest.NewRecorder()
	taskRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTaskHandler_UpdateTask_PartialFailure(t *testing.T) {
	service := new(MockTaskService)
	service.On("UpdateTask", mock.Anything, int64(7), mock.Anything).Return(nil, &fleet.PartialFailureError{
		Step:  "reconcile passengers",
		Cause: assert.AnError,
	})

	req := httptest.NewRequest("PUT", "/fleet-tasks/7", bytes.NewBufferString(`{"company_id":1}`))
	w := httptest.NewRecorder()
	taskRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp struct {
		FailedStep string `json:"failed_step"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "reconcile passengers", resp.FailedStep)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	service := new(MockTaskService)
	service.On("DeleteTask", mock.Anything, int64(7)).Return(nil)

	req := httptest.NewRequest("DELETE", "/fleet-tasks/7", nil)
	w := httptest.NewRecorder()
	taskRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}
