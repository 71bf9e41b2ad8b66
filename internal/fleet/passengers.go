package fleet

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/models"
)

// AddPassenger creates a single assignment outside a full reconciliation,
// backing the standalone passenger endpoint. The same referential checks
// and per-task serialization apply, and the task's derived passenger count
// is resynced afterwards.
func (m *Manager) AddPassenger(ctx context.Context, req models.CreatePassengerRequest) (*models.PassengerAssignment, error) {
	lock := m.lockTask(req.FleetTaskID)
	defer lock.Unlock()

	if _, err := m.tasks.FindTaskByID(ctx, req.FleetTaskID); err != nil {
		return nil, err
	}
	refs := TaskRefs{CompanyID: req.CompanyID}
	if req.WorkerEmployeeID != 0 {
		refs.EmployeeIDs = []int64{req.WorkerEmployeeID}
	}
	if err := m.validator.Validate(ctx, refs); err != nil {
		return nil, err
	}

	id, err := m.sequences.Next(ctx, db.PassengerSequence)
	if err != nil {
		return nil, fmt.Errorf("allocate passenger id: %w", err)
	}
	assignment := models.PassengerAssignment{
		ID:               id,
		FleetTaskID:      req.FleetTaskID,
		CompanyID:        req.CompanyID,
		WorkerEmployeeID: req.WorkerEmployeeID,
		EmployeeName:     req.EmployeeName,
		EmployeeCode:     req.EmployeeCode,
		Department:       req.Department,
		PickupLocation:   req.PickupLocation,
		DropLocation:     req.DropLocation,
		Status:           "assigned",
		IdentityKey:      IdentityKey(req.EmployeeCode, req.EmployeeName),
		CreatedAt:        time.Now(),
	}
	if err := m.passengers.InsertPassenger(ctx, assignment); err != nil {
		return nil, err
	}
	m.syncExpectedPassengers(ctx, req.FleetTaskID)
	return &assignment, nil
}

// ListPassengers returns every assignment owned by a task.
func (m *Manager) ListPassengers(ctx context.Context, taskID int64) ([]models.PassengerAssignment, error) {
	return m.passengers.FindPassengersByTask(ctx, taskID)
}

// RemovePassenger deletes one assignment by id.
func (m *Manager) RemovePassenger(ctx context.Context, id int64) error {
	assignment, err := m.passengers.FindPassengerByID(ctx, id)
	if err != nil {
		return err
	}
	lock := m.lockTask(assignment.FleetTaskID)
	defer lock.Unlock()

	if err := m.passengers.DeletePassenger(ctx, id); err != nil {
		return err
	}
	m.syncExpectedPassengers(ctx, assignment.FleetTaskID)
	return nil
}

// ClearPassengers deletes every assignment owned by a task and returns the
// number removed.
func (m *Manager) ClearPassengers(ctx context.Context, taskID int64) (int64, error) {
	lock := m.lockTask(taskID)
	defer lock.Unlock()

	deleted, err := m.passengers.DeletePassengersByTask(ctx, taskID)
	if err != nil {
		return 0, err
	}
	m.syncExpectedPassengers(ctx, taskID)
	return deleted, nil
}

func (m *Manager) syncExpectedPassengers(ctx context.Context, taskID int64) {
	current, err := m.passengers.FindPassengersByTask(ctx, taskID)
	if err != nil {
		log.WithError(err).WithField("task_id", taskID).Warn("Failed to count passengers")
		return
	}
	if err := m.tasks.SetExpectedPassengers(ctx, taskID, len(current)); err != nil {
		log.WithError(err).WithField("task_id", taskID).Warn("Failed to sync expected passenger count")
	}
}
