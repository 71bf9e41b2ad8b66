package fleet

import (
	"fmt"
	"strings"

	"github.com/ukydev/fleet-transport/internal/models"
)

// ValidationError reports referential integrity failures detected before
// any write. The slices carry every unresolved id so the caller can fix
// a whole batch in one round trip.
type ValidationError struct {
	MissingCompany   bool
	MissingProject   bool
	MissingDriver    bool
	MissingVehicle   bool
	MissingEmployees []int64
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.MissingCompany {
		parts = append(parts, "company not found")
	}
	if e.MissingProject {
		parts = append(parts, "project not found")
	}
	if e.MissingDriver {
		parts = append(parts, "driver not found or not in company")
	}
	if e.MissingVehicle {
		parts = append(parts, "vehicle not found or not in company")
	}
	if len(e.MissingEmployees) > 0 {
		parts = append(parts, fmt.Sprintf("employees not found: %v", e.MissingEmployees))
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsEmpty reports whether no failure was recorded.
func (e *ValidationError) IsEmpty() bool {
	return !e.MissingCompany && !e.MissingProject && !e.MissingDriver &&
		!e.MissingVehicle && len(e.MissingEmployees) == 0
}

// InvalidTransitionError reports a status change rejected by the task
// status machine. No side effects have occurred.
type InvalidTransitionError struct {
	From models.TaskStatus
	To   models.TaskStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// DuplicateIdentityError reports that a desired passenger set resolves one
// (employee_code, employee_name) identity key to more than one employee.
// Reconciliation matches passengers by that key, so letting the set
// through would silently collapse two people into one assignment.
type DuplicateIdentityError struct {
	IdentityKey string
	EmployeeIDs []int64
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("duplicate passenger identity %q shared by employees %v", e.IdentityKey, e.EmployeeIDs)
}

// PartialFailureError reports a multi-step operation that failed after
// some sub-writes committed. Compensation is best effort; when it also
// fails, manual cleanup may be needed and the operator must be told which
// step to look at.
type PartialFailureError struct {
	Step        string
	Cause       error
	Compensated bool
}

func (e *PartialFailureError) Error() string {
	outcome := "compensating cleanup succeeded"
	if !e.Compensated {
		outcome = "compensating cleanup FAILED, manual cleanup may be required"
	}
	return fmt.Sprintf("partial failure at step %q: %v (%s)", e.Step, e.Cause, outcome)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}
