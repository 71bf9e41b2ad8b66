package fleet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/models"
)

// Notifier dispatches a task change event to the external notification
// channel. The returned flag reports dispatch success; the manager never
// lets it influence the outcome of the task operation.
type Notifier interface {
	Notify(event models.TaskEvent) bool
}

// Manager orchestrates the task lifecycle: referential validation, task
// persistence, passenger reconciliation, status transitions and change
// notification.
type Manager struct {
	tasks      db.TaskCollection
	passengers db.PassengerCollection
	sequences  db.SequenceCollection
	lookup     db.LookupCollection
	validator  *ReferentialValidator
	reconciler *PassengerReconciler
	notifier   Notifier

	// Reconciliation for one task must not interleave with another write
	// to the same task: two racing reconciliations reading the same
	// snapshot would compute overlapping delete/create sets. The version
	// token on the task document guards field updates across processes;
	// this keyed mutex serializes the passenger writes within one.
	mu        sync.Mutex
	taskLocks map[int64]*sync.Mutex
}

// NewManager wires a task lifecycle manager.
func NewManager(
	tasks db.TaskCollection,
	passengers db.PassengerCollection,
	sequences db.SequenceCollection,
	lookup db.LookupCollection,
	notifier Notifier,
) *Manager {
	return &Manager{
		tasks:      tasks,
		passengers: passengers,
		sequences:  sequences,
		lookup:     lookup,
		validator:  NewReferentialValidator(lookup),
		reconciler: NewPassengerReconciler(passengers, sequences),
		notifier:   notifier,
		taskLocks:  make(map[int64]*sync.Mutex),
	}
}

func (m *Manager) lockTask(id int64) *sync.Mutex {
	m.mu.Lock()
	lock, ok := m.taskLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		m.taskLocks[id] = lock
	}
	m.mu.Unlock()
	lock.Lock()
	return lock
}

// CreateTask validates every reference the payload carries, persists the
// task in PLANNED, seeds the desired passenger set and dispatches a
// created event. If seeding fails after the task row was written, the
// task and any seeded assignments are deleted best-effort and the failure
// surfaces as a PartialFailureError.
func (m *Manager) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.FleetTask, error) {
	if req.CompanyID == 0 {
		return nil, &ValidationError{MissingCompany: true}
	}
	refs := TaskRefs{
		CompanyID:   req.CompanyID,
		ProjectID:   req.ProjectID,
		DriverID:    req.DriverID,
		VehicleID:   req.VehicleID,
		EmployeeIDs: employeeIDs(req.Passengers),
	}
	if err := m.validator.Validate(ctx, refs); err != nil {
		return nil, err
	}

	id, err := m.sequences.Next(ctx, db.TaskSequence)
	if err != nil {
		return nil, fmt.Errorf("allocate task id: %w", err)
	}
	task := models.FleetTask{
		ID:                id,
		CompanyID:         req.CompanyID,
		ProjectID:         req.ProjectID,
		DriverID:          req.DriverID,
		VehicleID:         req.VehicleID,
		TaskDate:          req.TaskDate,
		PlannedPickupTime: req.PlannedPickupTime,
		PlannedDropTime:   req.PlannedDropTime,
		PickupLocation:    req.PickupLocation,
		DropLocation:      req.DropLocation,
		PickupAddress:     req.PickupAddress,
		DropAddress:       req.DropAddress,
		Status:            models.StatusPlanned,
		Notes:             req.Notes,
		CreatedBy:         req.CreatedBy,
	}
	if err := m.tasks.InsertTask(ctx, task); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	plan, err := m.reconciler.Reconcile(ctx, id, req.CompanyID, req.Passengers)
	if err != nil {
		return nil, m.compensateCreate(ctx, id, err)
	}
	if err := m.tasks.SetExpectedPassengers(ctx, id, plan.ResultSize()); err != nil {
		log.WithError(err).WithField("task_id", id).Warn("Failed to sync expected passenger count")
	}

	created, err := m.tasks.FindTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.dispatch(ctx, models.EventCreated, created)
	return created, nil
}

// compensateCreate tears down a half-created task. Best effort only: the
// store offers no cross-collection transaction, so a failing cleanup is
// reported to the caller for manual follow-up.
func (m *Manager) compensateCreate(ctx context.Context, taskID int64, cause error) error {
	compensated := true
	if _, err := m.passengers.DeletePassengersByTask(ctx, taskID); err != nil {
		log.WithError(err).WithField("task_id", taskID).Error("Compensating passenger cleanup failed")
		compensated = false
	}
	if err := m.tasks.DeleteTask(ctx, taskID); err != nil {
		log.WithError(err).WithField("task_id", taskID).Error("Compensating task delete failed")
		compensated = false
	}
	return &PartialFailureError{Step: "seed passengers", Cause: cause, Compensated: compensated}
}

// UpdateTask re-validates referential integrity, applies the field update
// under the task's version token and, when a passenger set was submitted,
// reconciles it against the persisted one. A nil passenger set leaves the
// assignments untouched; an empty one clears them.
func (m *Manager) UpdateTask(ctx context.Context, taskID int64, req models.UpdateTaskRequest) (*models.FleetTask, error) {
	lock := m.lockTask(taskID)
	defer lock.Unlock()

	existing, err := m.tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	refs := TaskRefs{
		CompanyID: req.CompanyID,
		ProjectID: req.ProjectID,
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
	}
	if req.Passengers != nil {
		refs.EmployeeIDs = employeeIDs(*req.Passengers)
	}
	if err := m.validator.Validate(ctx, refs); err != nil {
		return nil, err
	}

	task := *existing
	task.CompanyID = req.CompanyID
	task.ProjectID = req.ProjectID
	task.DriverID = req.DriverID
	task.VehicleID = req.VehicleID
	task.TaskDate = req.TaskDate
	task.PlannedPickupTime = req.PlannedPickupTime
	task.PlannedDropTime = req.PlannedDropTime
	task.PickupLocation = req.PickupLocation
	task.DropLocation = req.DropLocation
	task.PickupAddress = req.PickupAddress
	task.DropAddress = req.DropAddress
	task.Notes = req.Notes
	if req.Version != 0 {
		task.Version = req.Version
	}

	updated, err := m.tasks.UpdateTask(ctx, task)
	if err != nil {
		return nil, err
	}

	if req.Passengers != nil {
		plan, err := m.reconciler.Reconcile(ctx, taskID, req.CompanyID, *req.Passengers)
		if err != nil {
			// No automatic compensation on update: the old set is already
			// partially gone and recreating it could race the caller's
			// retry. Surface the failed step instead.
			return nil, &PartialFailureError{Step: "reconcile passengers", Cause: err, Compensated: false}
		}
		if err := m.tasks.SetExpectedPassengers(ctx, taskID, plan.ResultSize()); err != nil {
			log.WithError(err).WithField("task_id", taskID).Warn("Failed to sync expected passenger count")
		}
		updated, err = m.tasks.FindTaskByID(ctx, taskID)
		if err != nil {
			return nil, err
		}
	}

	m.dispatch(ctx, models.EventUpdated, updated)
	return updated, nil
}

// DeleteTask removes the task and every assignment it owns. Assignments
// go first: if the task delete then fails, a retry finds an intact task
// with zero assignments rather than orphaned assignment rows.
func (m *Manager) DeleteTask(ctx context.Context, taskID int64) error {
	lock := m.lockTask(taskID)
	defer lock.Unlock()

	task, err := m.tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return err
	}
	if _, err := m.passengers.DeletePassengersByTask(ctx, taskID); err != nil {
		return fmt.Errorf("delete passengers for task %d: %w", taskID, err)
	}
	if err := m.tasks.DeleteTask(ctx, taskID); err != nil {
		return &PartialFailureError{Step: "delete task", Cause: err, Compensated: false}
	}
	m.dispatch(ctx, models.EventDeleted, task)
	return nil
}

// SetStatus applies a status transition gated by the lifecycle machine.
// Nothing is persisted when the transition is rejected.
func (m *Manager) SetStatus(ctx context.Context, taskID int64, requested models.TaskStatus) (*models.FleetTask, error) {
	lock := m.lockTask(taskID)
	defer lock.Unlock()

	task, err := m.tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	next, err := Transition(task.Status, requested)
	if err != nil {
		return nil, err
	}
	if err := m.tasks.SetTaskStatus(ctx, taskID, next); err != nil {
		return nil, err
	}
	task.Status = next
	m.dispatch(ctx, models.EventStatusChanged, task)
	return task, nil
}

// GetTask reads one task.
func (m *Manager) GetTask(ctx context.Context, taskID int64) (*models.FleetTask, error) {
	return m.tasks.FindTaskByID(ctx, taskID)
}

// ListTasks reads tasks matching the filter.
func (m *Manager) ListTasks(ctx context.Context, filter db.TaskFilter) ([]models.FleetTask, error) {
	return m.tasks.FindTasks(ctx, filter)
}

// dispatch assembles and fires a task event. Name lookups and delivery are
// both best effort; a failure is logged and swallowed.
func (m *Manager) dispatch(ctx context.Context, kind models.EventKind, task *models.FleetTask) {
	event := models.TaskEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		TaskID:     task.ID,
		TaskDate:   task.TaskDate,
		Status:     task.Status,
		OccurredAt: time.Now(),
	}
	if company, err := m.lookup.FindCompanyByID(ctx, task.CompanyID); err == nil {
		event.CompanyName = company.Name
	}
	if task.ProjectID != 0 {
		if project, err := m.lookup.FindProjectByID(ctx, task.ProjectID); err == nil {
			event.ProjectName = project.Name
		}
	}
	taskID := task.ID
	go func() {
		if ok := m.notifier.Notify(event); !ok {
			log.WithFields(log.Fields{
				"task_id": taskID,
				"kind":    kind,
			}).Warn("Task event dispatch failed")
		}
	}()
}

func employeeIDs(passengers []models.PassengerInput) []int64 {
	ids := make([]int64, 0, len(passengers))
	for _, p := range passengers {
		if p.WorkerEmployeeID != 0 {
			ids = append(ids, p.WorkerEmployeeID)
		}
	}
	return ids
}
