package fleet

import "github.com/ukydev/fleet-transport/internal/models"

// allowedTransitions encodes the task lifecycle: PLANNED is the initial
// state, COMPLETED and CANCELLED are terminal. Same-state transitions and
// any exit from a terminal state are rejected.
var allowedTransitions = map[models.TaskStatus][]models.TaskStatus{
	models.StatusPlanned: {models.StatusOngoing, models.StatusCancelled},
	models.StatusOngoing: {models.StatusCompleted, models.StatusCancelled},
}

// Transition validates a requested status change against the lifecycle and
// returns the resulting status.
func Transition(current, requested models.TaskStatus) (models.TaskStatus, error) {
	for _, next := range allowedTransitions[current] {
		if next == requested {
			return requested, nil
		}
	}
	return current, &InvalidTransitionError{From: current, To: requested}
}

// CanTransition reports whether the status change is permitted.
func CanTransition(current, requested models.TaskStatus) bool {
	_, err := Transition(current, requested)
	return err == nil
}
