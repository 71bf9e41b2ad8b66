package fleet

import (
	"testing"

	"github.com/ukydev/fleet-transport/internal/models"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.TaskStatus
		to      models.TaskStatus
		allowed bool
	}{
		{"planned to ongoing", models.StatusPlanned, models.StatusOngoing, true},
		{"planned to cancelled", models.StatusPlanned, models.StatusCancelled, true},
		{"ongoing to completed", models.StatusOngoing, models.StatusCompleted, true},
		{"ongoing to cancelled", models.StatusOngoing, models.StatusCancelled, true},
		{"planned to completed skips ongoing", models.StatusPlanned, models.StatusCompleted, false},
		{"completed back to ongoing", models.StatusCompleted, models.StatusOngoing, false},
		{"cancelled back to planned", models.StatusCancelled, models.StatusPlanned, false},
		{"cancelled to completed", models.StatusCancelled, models.StatusCompleted, false},
		{"same state planned", models.StatusPlanned, models.StatusPlanned, false},
		{"same state ongoing", models.StatusOngoing, models.StatusOngoing, false},
		{"same state completed", models.StatusCompleted, models.StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Transition(tt.from, tt.to)
			if tt.allowed {
				if err != nil {
					t.Fatalf("Transition(%s, %s) unexpected error: %v", tt.from, tt.to, err)
				}
				if next != tt.to {
					t.Errorf("Transition(%s, %s) = %s, want %s", tt.from, tt.to, next, tt.to)
				}
				return
			}
			if err == nil {
				t.Fatalf("Transition(%s, %s) expected error, got nil", tt.from, tt.to)
			}
			terr, ok := err.(*InvalidTransitionError)
			if !ok {
				t.Fatalf("expected *InvalidTransitionError, got %T", err)
			}
			if terr.From != tt.from || terr.To != tt.to {
				t.Errorf("error carries %s -> %s, want %s -> %s", terr.From, terr.To, tt.from, tt.to)
			}
			if next != tt.from {
				t.Errorf("rejected transition changed status to %s", next)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(models.StatusPlanned, models.StatusOngoing) {
		t.Error("expected PLANNED -> ONGOING to be allowed")
	}
	if CanTransition(models.StatusCompleted, models.StatusOngoing) {
		t.Error("expected COMPLETED -> ONGOING to be rejected")
	}
}
