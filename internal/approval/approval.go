// Package approval encodes the allowed status transitions for staged
// catalog changes. It knows nothing about who is deciding; callers are
// expected to have checked the decision-maker's capability already.
package approval

import (
	"errors"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
)

var (
	ErrTerminalStatus = errors.New("status is terminal, decision not allowed")
	ErrOutstanding    = errors.New("a change is already awaiting a decision")
	ErrUnknownStatus  = errors.New("unknown status")
)

// Next returns the status an entity moves to when a decision lands on it.
// Only the two pending states accept a decision.
func Next(current models.Status, approve bool) (models.Status, error) {
	switch current {
	case models.StatusPending:
		if approve {
			return models.StatusLive, nil
		}
		return models.StatusRejected, nil
	case models.StatusUpdatePending:
		if approve {
			return models.StatusLive, nil
		}
		return models.StatusUpdateRejected, nil
	case models.StatusLive, models.StatusRejected, models.StatusUpdateRejected:
		return current, ErrTerminalStatus
	default:
		return current, ErrUnknownStatus
	}
}

// Resubmit returns the pending status a fresh submission puts an entity
// into. A first-time rejection re-enters PENDING; anything that was live
// re-enters UPDATE_PENDING keeping its last-good snapshot.
func Resubmit(current models.Status) (models.Status, error) {
	switch current {
	case models.StatusLive, models.StatusUpdateRejected:
		return models.StatusUpdatePending, nil
	case models.StatusRejected:
		return models.StatusPending, nil
	case models.StatusPending, models.StatusUpdatePending:
		return current, ErrOutstanding
	default:
		return current, ErrUnknownStatus
	}
}

// Terminal reports whether no further decision may be applied.
func Terminal(s models.Status) bool {
	switch s {
	case models.StatusLive, models.StatusRejected, models.StatusUpdateRejected:
		return true
	}
	return false
}
