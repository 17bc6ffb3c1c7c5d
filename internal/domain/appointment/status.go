package appointment

import "github.com/BruksfildServices01/salon-backoffice/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanTransition reports whether an appointment may move from current to next.
func CanTransition(current, next Status) error {
	if !next.Valid() {
		return httperr.Validation("status", "unknown status")
	}
	if current == next {
		return nil
	}

	switch current {
	case StatusScheduled:
		return nil
	case StatusConfirmed:
		if next == StatusCompleted || next == StatusCancelled {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

func InitialStatus() Status {
	return StatusScheduled
}
