package fleet

import (
	"context"

	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/models"
)

// TaskRefs collects the cross-entity references a task write carries.
// Zero-valued optional ids are treated as absent.
type TaskRefs struct {
	CompanyID   int64
	ProjectID   int64
	DriverID    int64
	VehicleID   int64
	EmployeeIDs []int64
}

// ReferentialValidator confirms that every entity a task references exists
// and belongs to the task's company before any write is accepted. It is
// read-only and always runs ahead of the persisting call.
type ReferentialValidator struct {
	lookup db.LookupCollection
}

// NewReferentialValidator creates a validator over the lookup gateway.
func NewReferentialValidator(lookup db.LookupCollection) *ReferentialValidator {
	return &ReferentialValidator{lookup: lookup}
}

// Validate resolves every reference in refs. All failures are collected
// into a single ValidationError so a caller can fix a batch in one pass.
// When the references resolve, the desired passenger roster is also
// checked for identity-key collisions: two distinct employees sharing an
// (employee_code, employee_name) pair would be indistinguishable to the
// reconciler, so the set is rejected with DuplicateIdentityError instead
// of colliding silently.
func (v *ReferentialValidator) Validate(ctx context.Context, refs TaskRefs) error {
	verr := &ValidationError{}

	company, err := v.lookup.FindCompanyByID(ctx, refs.CompanyID)
	if err != nil {
		verr.MissingCompany = true
	}

	if refs.ProjectID != 0 {
		project, err := v.lookup.FindProjectByID(ctx, refs.ProjectID)
		if err != nil || (company != nil && project.CompanyID != refs.CompanyID) {
			verr.MissingProject = true
		}
	}

	if refs.DriverID != 0 {
		driver, err := v.lookup.FindDriverByID(ctx, refs.DriverID)
		if err != nil || driver.CompanyID != refs.CompanyID {
			verr.MissingDriver = true
		}
	}

	if refs.VehicleID != 0 {
		vehicle, err := v.lookup.FindVehicleByID(ctx, refs.VehicleID)
		if err != nil || vehicle.CompanyID != refs.CompanyID {
			verr.MissingVehicle = true
		}
	}

	resolved := make([]*models.Employee, 0, len(refs.EmployeeIDs))
	for _, id := range refs.EmployeeIDs {
		employee, err := v.lookup.FindEmployeeByID(ctx, id)
		if err != nil || employee.CompanyID != refs.CompanyID {
			verr.MissingEmployees = append(verr.MissingEmployees, id)
			continue
		}
		resolved = append(resolved, employee)
	}

	if !verr.IsEmpty() {
		return verr
	}

	if err := checkIdentityCollisions(resolved); err != nil {
		return err
	}
	return nil
}

// checkIdentityCollisions rejects rosters where one identity key maps to
// more than one employee id.
func checkIdentityCollisions(employees []*models.Employee) error {
	byKey := make(map[string][]int64, len(employees))
	for _, e := range employees {
		key := IdentityKey(e.EmployeeCode, e.EmployeeName)
		ids := byKey[key]
		seen := false
		for _, id := range ids {
			if id == e.ID {
				seen = true
				break
			}
		}
		if !seen {
			byKey[key] = append(ids, e.ID)
		}
	}
	for key, ids := range byKey {
		if len(ids) > 1 {
			return &DuplicateIdentityError{IdentityKey: key, EmployeeIDs: ids}
		}
	}
	return nil
}
