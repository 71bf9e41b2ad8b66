package models

import "time"

// EventKind classifies a task change notification.
type EventKind string

const (
	EventCreated       EventKind = "created"
	EventUpdated       EventKind = "updated"
	EventDeleted       EventKind = "deleted"
	EventStatusChanged EventKind = "status_changed"
)

// TaskEvent is the payload dispatched to the external notifier whenever a
// fleet task changes. Delivery is best effort and never affects the
// outcome of the task operation itself.
type TaskEvent struct {
	EventID     string     `json:"event_id"`
	Kind        EventKind  `json:"kind"`
	TaskID      int64      `json:"task_id"`
	CompanyName string     `json:"company_name"`
	ProjectName string     `json:"project_name,omitempty"`
	TaskDate    string     `json:"task_date"`
	Status      TaskStatus `json:"status,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}
