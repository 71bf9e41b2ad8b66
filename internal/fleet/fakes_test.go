package fleet

import (
	"context"
	"sync"
	"time"

	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/models"
)

// In-memory collection fakes used across the engine tests.

type memTasks struct {
	mu         sync.Mutex
	tasks      map[int64]models.FleetTask
	insertErr  error
	deleteErr  error
	insertions int
}

func newMemTasks() *memTasks {
	return &memTasks{tasks: map[int64]models.FleetTask{}}
}

func (m *memTasks) InsertTask(_ context.Context, task models.FleetTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	task.Version = 1
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	m.tasks[task.ID] = task
	m.insertions++
	return nil
}

func (m *memTasks) FindTaskByID(_ context.Context, id int64) (*models.FleetTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := task
	return &copied, nil
}

func (m *memTasks) FindTasks(_ context.Context, filter db.TaskFilter) ([]models.FleetTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.FleetTask{}
	for _, task := range m.tasks {
		if filter.CompanyID != 0 && task.CompanyID != filter.CompanyID {
			continue
		}
		result = append(result, task)
	}
	return result, nil
}

func (m *memTasks) UpdateTask(_ context.Context, task models.FleetTask) (*models.FleetTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.tasks[task.ID]
	if !ok {
		return nil, db.ErrNotFound
	}
	if stored.Version != task.Version {
		return nil, db.ErrStaleVersion
	}
	task.Status = stored.Status
	task.ExpectedPassengers = stored.ExpectedPassengers
	task.Version = stored.Version + 1
	task.UpdatedAt = time.Now()
	m.tasks[task.ID] = task
	copied := task
	return &copied, nil
}

func (m *memTasks) SetTaskStatus(_ context.Context, id int64, status models.TaskStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return db.ErrNotFound
	}
	task.Status = status
	task.Version++
	m.tasks[id] = task
	return nil
}

func (m *memTasks) SetExpectedPassengers(_ context.Context, id int64, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return db.ErrNotFound
	}
	task.ExpectedPassengers = count
	m.tasks[id] = task
	return nil
}

func (m *memTasks) DeleteTask(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.tasks, id)
	return nil
}

type memPassengers struct {
	mu          sync.Mutex
	assignments map[int64]models.PassengerAssignment
	// failOnInsert makes the nth insert (1-based) fail.
	failOnInsert int
	insertCalls  int
	insertErr    error
}

func newMemPassengers() *memPassengers {
	return &memPassengers{assignments: map[int64]models.PassengerAssignment{}}
}

func (m *memPassengers) InsertPassenger(_ context.Context, passenger models.PassengerAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls++
	if m.failOnInsert != 0 && m.insertCalls >= m.failOnInsert {
		return m.insertErr
	}
	for _, existing := range m.assignments {
		if existing.FleetTaskID == passenger.FleetTaskID && existing.IdentityKey == passenger.IdentityKey {
			return db.ErrDuplicateAssignment
		}
	}
	m.assignments[passenger.ID] = passenger
	return nil
}

func (m *memPassengers) FindPassengerByID(_ context.Context, id int64) (*models.PassengerAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	passenger, ok := m.assignments[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := passenger
	return &copied, nil
}

func (m *memPassengers) FindPassengersByTask(_ context.Context, taskID int64) ([]models.PassengerAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.PassengerAssignment{}
	for _, passenger := range m.assignments {
		if passenger.FleetTaskID == taskID {
			result = append(result, passenger)
		}
	}
	return result, nil
}

func (m *memPassengers) DeletePassenger(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assignments[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.assignments, id)
	return nil
}

func (m *memPassengers) DeletePassengersByTask(_ context.Context, taskID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, passenger := range m.assignments {
		if passenger.FleetTaskID == taskID {
			delete(m.assignments, id)
			deleted++
		}
	}
	return deleted, nil
}

type memSequences struct {
	mu sync.Mutex
	n  int64
}

func (m *memSequences) Next(_ context.Context, _ string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return m.n, nil
}

type memLookup struct {
	companies map[int64]models.Company
	projects  map[int64]models.Project
	employees map[int64]models.Employee
	vehicles  map[int64]models.Vehicle
	drivers   map[int64]models.Driver
}

func newMemLookup() *memLookup {
	return &memLookup{
		companies: map[int64]models.Company{},
		projects:  map[int64]models.Project{},
		employees: map[int64]models.Employee{},
		vehicles:  map[int64]models.Vehicle{},
		drivers:   map[int64]models.Driver{},
	}
}

func (m *memLookup) FindCompanyByID(_ context.Context, id int64) (*models.Company, error) {
	if company, ok := m.companies[id]; ok {
		return &company, nil
	}
	return nil, db.ErrNotFound
}

func (m *memLookup) FindProjectByID(_ context.Context, id int64) (*models.Project, error) {
	if project, ok := m.projects[id]; ok {
		return &project, nil
	}
	return nil, db.ErrNotFound
}

func (m *memLookup) FindEmployeeByID(_ context.Context, id int64) (*models.Employee, error) {
	if employee, ok := m.employees[id]; ok {
		return &employee, nil
	}
	return nil, db.ErrNotFound
}

func (m *memLookup) FindVehicleByID(_ context.Context, id int64) (*models.Vehicle, error) {
	if vehicle, ok := m.vehicles[id]; ok {
		return &vehicle, nil
	}
	return nil, db.ErrNotFound
}

func (m *memLookup) FindDriverByID(_ context.Context, id int64) (*models.Driver, error) {
	if driver, ok := m.drivers[id]; ok {
		return &driver, nil
	}
	return nil, db.ErrNotFound
}

func (m *memLookup) FindWorkersByCompany(_ context.Context, companyID int64) ([]models.Employee, error) {
	workers := []models.Employee{}
	for _, employee := range m.employees {
		if employee.CompanyID == companyID && employee.Status != "inactive" {
			workers = append(workers, employee)
		}
	}
	return workers, nil
}

// fakeNotifier records dispatched events; events land on a channel so
// tests can wait for the async dispatch.
type fakeNotifier struct {
	events chan models.TaskEvent
	ok     bool
}

func newFakeNotifier(ok bool) *fakeNotifier {
	return &fakeNotifier{events: make(chan models.TaskEvent, 16), ok: ok}
}

func (f *fakeNotifier) Notify(event models.TaskEvent) bool {
	f.events <- event
	return f.ok
}
