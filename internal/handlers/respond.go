package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-transport/internal/db"
	"github.com/ukydev/fleet-transport/internal/fleet"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error            string  `json:"error"`
	MissingEmployees []int64 `json:"missing_employees,omitempty"`
	FailedStep       string  `json:"failed_step,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
// Validation failures are rejected before any write (400); conflicts that
// a caller can resolve by re-reading get 409; partial failures carry the
// failed step so an operator knows where to look.
func respondError(w http.ResponseWriter, err error) {
	var verr *fleet.ValidationError
	var terr *fleet.InvalidTransitionError
	var derr *fleet.DuplicateIdentityError
	var perr *fleet.PartialFailureError

	switch {
	// PartialFailureError unwraps to its cause, so it must win over the
	// sentinel checks below.
	case errors.As(err, &perr):
		log.WithError(perr.Cause).WithField("step", perr.Step).Error("Partial write failure")
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error:      perr.Error(),
			FailedStep: perr.Step,
		})
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:            verr.Error(),
			MissingEmployees: verr.MissingEmployees,
		})
	case errors.As(err, &terr):
		respondJSON(w, http.StatusConflict, errorResponse{Error: terr.Error()})
	case errors.As(err, &derr):
		respondJSON(w, http.StatusConflict, errorResponse{Error: derr.Error()})
	case errors.Is(err, db.ErrStaleVersion):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "task was modified concurrently, re-read and retry"})
	case errors.Is(err, db.ErrDuplicateAssignment):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, db.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		log.WithError(err).Error("Unhandled error")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
