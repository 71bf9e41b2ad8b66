package fleet

import (
	"strings"

	"github.com/ukydev/fleet-transport/internal/models"
)

// IdentityKey builds the composite key that identifies the same logical
// passenger across a desired snapshot and a persisted one. Matching is by
// (employee_code, employee_name), not by id: callers assembling a desired
// set may not hold the persisted ids. Case-sensitive; only surrounding
// whitespace is trimmed.
func IdentityKey(employeeCode, employeeName string) string {
	return strings.TrimSpace(employeeCode) + "::" + strings.TrimSpace(employeeName)
}

// InputIdentityKey returns the identity key of a desired passenger.
func InputIdentityKey(p models.PassengerInput) string {
	return IdentityKey(p.EmployeeCode, p.EmployeeName)
}

// AssignmentIdentityKey returns the identity key of a persisted assignment.
func AssignmentIdentityKey(p models.PassengerAssignment) string {
	return IdentityKey(p.EmployeeCode, p.EmployeeName)
}

// SameIdentity reports whether a desired passenger and a persisted
// assignment refer to the same logical passenger.
func SameIdentity(in models.PassengerInput, stored models.PassengerAssignment) bool {
	return InputIdentityKey(in) == AssignmentIdentityKey(stored)
}
