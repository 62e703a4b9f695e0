package services

import (
	"fmt"
	"strings"

	"shelter-grants-api/models"
)

// statusTransitions is the fixed table of legal status moves, keyed by the
// current status. Draft has no table entry: its only exit is the submission
// gate in SubmitApplication. Approved and Declined are terminal.
//
// MoreInfoRequired deliberately has no direct path to Approved or Declined;
// a reviewer must return the application to UnderReview first.
var statusTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.StatusSubmitted:        {models.StatusUnderReview},
	models.StatusUnderReview:      {models.StatusMoreInfoRequired, models.StatusApproved, models.StatusDeclined},
	models.StatusMoreInfoRequired: {models.StatusUnderReview},
}

// AllowedTransitions returns the statuses reachable from the given status,
// in table order. The returned slice is a copy; it is empty for Draft and
// the terminal statuses.
func AllowedTransitions(from models.ApplicationStatus) []models.ApplicationStatus {
	allowed := statusTransitions[from]
	out := make([]models.ApplicationStatus, len(allowed))
	copy(out, allowed)
	return out
}

// TransitionError reports a status move the table does not permit. Allowed
// carries the legal next statuses so callers can render an actionable
// message.
type TransitionError struct {
	From    models.ApplicationStatus
	To      models.ApplicationStatus
	Allowed []models.ApplicationStatus
}

func (e *TransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("status transition from %s to %s is not permitted: %s is terminal, no transitions allowed", e.From, e.To, e.From)
	}
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("status transition from %s to %s is not permitted; valid transitions from %s are: %s",
		e.From, e.To, e.From, strings.Join(names, ", "))
}

// ValidateTransition accepts iff requested is in the table's allowed set for
// current. Both values must be members of the status enumeration. Pure
// check, no side effects.
func ValidateTransition(current, requested models.ApplicationStatus) error {
	if !current.IsValid() {
		return fmt.Errorf("unknown status %q", current)
	}
	if !requested.IsValid() {
		return fmt.Errorf("unknown status %q", requested)
	}
	for _, allowed := range statusTransitions[current] {
		if requested == allowed {
			return nil
		}
	}
	return &TransitionError{From: current, To: requested, Allowed: AllowedTransitions(current)}
}
