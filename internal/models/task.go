package models

import (
	"strings"
	"time"
)

// TaskStatus represents the lifecycle state of a fleet task.
type TaskStatus string

const (
	StatusPlanned   TaskStatus = "PLANNED"
	StatusOngoing   TaskStatus = "ONGOING"
	StatusCompleted TaskStatus = "COMPLETED"
	StatusCancelled TaskStatus = "CANCELLED"
)

// ParseTaskStatus normalizes free-text status input into one of the four
// canonical values. Unrecognized input falls back to PLANNED.
func ParseTaskStatus(s string) TaskStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "planned", "scheduled", "pending":
		return StatusPlanned
	case "ongoing", "in progress", "in_progress", "started":
		return StatusOngoing
	case "completed", "done", "finished":
		return StatusCompleted
	case "cancelled", "canceled", "void":
		return StatusCancelled
	default:
		return StatusPlanned
	}
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// FleetTask represents a scheduled transport job: a driver and vehicle
// carrying a set of passengers along a route within a time window.
type FleetTask struct {
	ID                 int64      `bson:"_id" json:"id"`
	CompanyID          int64      `bson:"company_id" json:"company_id"`
	ProjectID          int64      `bson:"project_id,omitempty" json:"project_id,omitempty"`
	DriverID           int64      `bson:"driver_id,omitempty" json:"driver_id,omitempty"`
	VehicleID          int64      `bson:"vehicle_id,omitempty" json:"vehicle_id,omitempty"`
	TaskDate           string     `bson:"task_date" json:"task_date"`
	PlannedPickupTime  string     `bson:"planned_pickup_time" json:"planned_pickup_time"`
	PlannedDropTime    string     `bson:"planned_drop_time" json:"planned_drop_time"`
	PickupLocation     string     `bson:"pickup_location" json:"pickup_location"`
	DropLocation       string     `bson:"drop_location" json:"drop_location"`
	PickupAddress      string     `bson:"pickup_address" json:"pickup_address"`
	DropAddress        string     `bson:"drop_address" json:"drop_address"`
	ExpectedPassengers int        `bson:"expected_passengers" json:"expected_passengers"`
	Status             TaskStatus `bson:"status" json:"status"`
	Notes              string     `bson:"notes" json:"notes"`
	CreatedBy          string     `bson:"created_by" json:"created_by"`
	Version            int64      `bson:"version" json:"version"`
	CreatedAt          time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `bson:"updated_at" json:"updated_at"`
}
