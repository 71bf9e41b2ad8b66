package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/models"
)

// ReconciliationPlan is the computed difference between a desired passenger
// set and the currently persisted one.
type ReconciliationPlan struct {
	ToCreate  []models.PassengerInput
	ToDelete  []models.PassengerAssignment
	Unchanged []models.PassengerAssignment
}

// BuildPlan diffs desired against current by identity key. Desired entries
// are deduplicated first, first occurrence winning, so a form submitting
// the same employee twice yields one assignment. Entries present on both
// sides are left untouched even if other fields drifted: an unchanged
// identity means an unchanged record, by contract.
func BuildPlan(desired []models.PassengerInput, current []models.PassengerAssignment) ReconciliationPlan {
	deduped := make([]models.PassengerInput, 0, len(desired))
	desiredKeys := make(map[string]struct{}, len(desired))
	for _, p := range desired {
		key := InputIdentityKey(p)
		if _, ok := desiredKeys[key]; ok {
			continue
		}
		desiredKeys[key] = struct{}{}
		deduped = append(deduped, p)
	}

	currentKeys := make(map[string]struct{}, len(current))
	plan := ReconciliationPlan{}
	for _, p := range current {
		key := AssignmentIdentityKey(p)
		currentKeys[key] = struct{}{}
		if _, wanted := desiredKeys[key]; wanted {
			plan.Unchanged = append(plan.Unchanged, p)
		} else {
			plan.ToDelete = append(plan.ToDelete, p)
		}
	}
	for _, p := range deduped {
		if _, exists := currentKeys[InputIdentityKey(p)]; !exists {
			plan.ToCreate = append(plan.ToCreate, p)
		}
	}
	return plan
}

// ResultSize is the number of assignments persisted after the plan runs.
func (p ReconciliationPlan) ResultSize() int {
	return len(p.Unchanged) + len(p.ToCreate)
}

// PassengerReconciler applies reconciliation plans against the store.
type PassengerReconciler struct {
	passengers db.PassengerCollection
	sequences  db.SequenceCollection
}

// NewPassengerReconciler creates a reconciler over the assignment store.
func NewPassengerReconciler(passengers db.PassengerCollection, sequences db.SequenceCollection) *PassengerReconciler {
	return &PassengerReconciler{passengers: passengers, sequences: sequences}
}

// Reconcile fetches the current assignment set for a task, diffs it
// against desired and executes the plan: deletions run to completion
// before the first creation so a concurrent reader can at worst observe
// fewer passengers than either snapshot, never duplicates. An empty
// desired set deletes every current assignment. After a successful run the
// persisted set's identity-key projection equals the deduplicated desired
// set's projection exactly.
func (r *PassengerReconciler) Reconcile(ctx context.Context, taskID, companyID int64, desired []models.PassengerInput) (ReconciliationPlan, error) {
	current, err := r.passengers.FindPassengersByTask(ctx, taskID)
	if err != nil {
		return ReconciliationPlan{}, fmt.Errorf("fetch current passengers: %w", err)
	}
	plan := BuildPlan(desired, current)

	for _, stale := range plan.ToDelete {
		if err := r.passengers.DeletePassenger(ctx, stale.ID); err != nil {
			return plan, fmt.Errorf("delete passenger %d: %w", stale.ID, err)
		}
	}
	for _, in := range plan.ToCreate {
		id, err := r.sequences.Next(ctx, db.PassengerSequence)
		if err != nil {
			return plan, fmt.Errorf("allocate passenger id: %w", err)
		}
		assignment := models.PassengerAssignment{
			ID:               id,
			FleetTaskID:      taskID,
			CompanyID:        companyID,
			WorkerEmployeeID: in.WorkerEmployeeID,
			EmployeeName:     in.EmployeeName,
			EmployeeCode:     in.EmployeeCode,
			Department:       in.Department,
			PickupLocation:   in.PickupLocation,
			DropLocation:     in.DropLocation,
			Status:           "assigned",
			IdentityKey:      InputIdentityKey(in),
			CreatedAt:        time.Now(),
		}
		if err := r.passengers.InsertPassenger(ctx, assignment); err != nil {
			return plan, fmt.Errorf("create passenger %q: %w", assignment.IdentityKey, err)
		}
	}
	return plan, nil
}
