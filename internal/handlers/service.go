package handlers

import (
	"context"

	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/models"
)

// TaskService is the slice of the task lifecycle manager the HTTP layer
// consumes.
type TaskService interface {
	CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.FleetTask, error)
	UpdateTask(ctx context.Context, taskID int64, req models.UpdateTaskRequest) (*models.FleetTask, error)
	DeleteTask(ctx context.Context, taskID int64) error
	SetStatus(ctx context.Context, taskID int64, requested models.TaskStatus) (*models.FleetTask, error)
	GetTask(ctx context.Context, taskID int64) (*models.FleetTask, error)
	ListTasks(ctx context.Context, filter db.TaskFilter) ([]models.FleetTask, error)
	AddPassenger(ctx context.Context, req models.CreatePassengerRequest) (*models.PassengerAssignment, error)
	ListPassengers(ctx context.Context, taskID int64) ([]models.PassengerAssignment, error)
	RemovePassenger(ctx context.Context, id int64) error
	ClearPassengers(ctx context.Context, taskID int64) (int64, error)
}
