package models

// PassengerInput is a desired passenger as submitted by a caller. Callers
// may not hold stable assignment ids, so reconciliation matches inputs
// against persisted rows by (employee_code, employee_name) only.
type PassengerInput struct {
	WorkerEmployeeID int64  `json:"worker_employee_id"`
	EmployeeName     string `json:"employee_name"`
	EmployeeCode     string `json:"employee_code"`
	Department       string `json:"department"`
	PickupLocation   string `json:"pickup_location"`
	DropLocation     string `json:"drop_location"`
}

// CreateTaskRequest is the body of POST /fleet-tasks.
type CreateTaskRequest struct {
	CompanyID         int64            `json:"company_id"`
	ProjectID         int64            `json:"project_id,omitempty"`
	DriverID          int64            `json:"driver_id,omitempty"`
	VehicleID         int64            `json:"vehicle_id,omitempty"`
	TaskDate          string           `json:"task_date"`
	PlannedPickupTime string           `json:"planned_pickup_time"`
	PlannedDropTime   string           `json:"planned_drop_time"`
	PickupLocation    string           `json:"pickup_location"`
	DropLocation      string           `json:"drop_location"`
	PickupAddress     string           `json:"pickup_address"`
	DropAddress       string           `json:"drop_address"`
	Notes             string           `json:"notes"`
	CreatedBy         string           `json:"created_by"`
	Passengers        []PassengerInput `json:"passengers,omitempty"`
}

// UpdateTaskRequest is the body of PUT /fleet-tasks/{id}. Passengers is a
// pointer on purpose: nil leaves the assignment set untouched, an empty
// slice clears it.
type UpdateTaskRequest struct {
	CompanyID         int64             `json:"company_id"`
	ProjectID         int64             `json:"project_id,omitempty"`
	DriverID          int64             `json:"driver_id,omitempty"`
	VehicleID         int64             `json:"vehicle_id,omitempty"`
	TaskDate          string            `json:"task_date"`
	PlannedPickupTime string            `json:"planned_pickup_time"`
	PlannedDropTime   string            `json:"planned_drop_time"`
	PickupLocation    string            `json:"pickup_location"`
	DropLocation      string            `json:"drop_location"`
	PickupAddress     string            `json:"pickup_address"`
	DropAddress       string            `json:"drop_address"`
	Notes             string            `json:"notes"`
	Version           int64             `json:"version"`
	Passengers        *[]PassengerInput `json:"passengers,omitempty"`
}

// StatusRequest is the body of PATCH /fleet-tasks/{id}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// CreatePassengerRequest is the body of POST /fleet-task-passengers.
type CreatePassengerRequest struct {
	FleetTaskID      int64  `json:"fleet_task_id"`
	CompanyID        int64  `json:"company_id"`
	WorkerEmployeeID int64  `json:"worker_employee_id"`
	EmployeeName     string `json:"employee_name"`
	EmployeeCode     string `json:"employee_code"`
	Department       string `json:"department"`
	PickupLocation   string `json:"pickup_location"`
	DropLocation     string `json:"drop_location"`
}
