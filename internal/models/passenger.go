package models

import "time"

// PassengerAssignment links an employee to a fleet task. Assignments are
// owned exclusively by their task: deleting the task deletes them, and
// reconciliation only ever inserts new rows or deletes stale ones, never
// updates in place.
type PassengerAssignment struct {
	ID               int64     `bson:"_id" json:"id"`
	FleetTaskID      int64     `bson:"fleet_task_id" json:"fleet_task_id"`
	CompanyID        int64     `bson:"company_id" json:"company_id"`
	WorkerEmployeeID int64     `bson:"worker_employee_id" json:"worker_employee_id"`
	EmployeeName     string    `bson:"employee_name" json:"employee_name"`
	EmployeeCode     string    `bson:"employee_code" json:"employee_code"`
	Department       string    `bson:"department" json:"department"`
	PickupLocation   string    `bson:"pickup_location" json:"pickup_location"`
	DropLocation     string    `bson:"drop_location" json:"drop_location"`
	Status           string    `bson:"status" json:"status"`
	IdentityKey      string    `bson:"identity_key" json:"-"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}
