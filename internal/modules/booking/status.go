package booking

import "studioreserve/internal/domain"

// Decision is the outcome of evaluating a requested status change.
type Decision int

const (
	DecisionAllowed Decision = iota
	DecisionForbidden
	DecisionInvalidTransition
)

func (d Decision) String() string {
	switch d {
	case DecisionAllowed:
		return "allowed"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "invalid_transition"
	}
}

// allowedTransitions is the full lifecycle table. Rejected, completed and
// cancelled are terminal.
var allowedTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingPending:   {domain.BookingAccepted, domain.BookingRejected, domain.BookingCancelled},
	domain.BookingAccepted:  {domain.BookingCompleted, domain.BookingCancelled},
	domain.BookingRejected:  {},
	domain.BookingCompleted: {},
	domain.BookingCancelled: {},
}

// StatusContext carries what the decision depends on besides the actor.
type StatusContext struct {
	Current        domain.BookingStatus
	PhotographerID int64
	StudioOwnerID  int64
}

// EvaluateStatusChange decides whether an actor may move a booking to
// target. The transition table is consulted first, so a table-illegal
// target reports DecisionInvalidTransition regardless of who asks. Admins
// may perform any table-legal transition, studio owners only on bookings in
// their own studios, and photographers may only cancel their own bookings.
func EvaluateStatusChange(
	role domain.UserRole,
	requesterID int64,
	sc StatusContext,
	target domain.BookingStatus,
) Decision {
	legal := false
	for _, t := range allowedTransitions[sc.Current] {
		if t == target {
			legal = true
			break
		}
	}
	if !legal {
		return DecisionInvalidTransition
	}

	switch role {
	case domain.RoleAdmin:
		return DecisionAllowed
	case domain.RoleStudioOwner:
		if sc.StudioOwnerID == requesterID {
			return DecisionAllowed
		}
		return DecisionForbidden
	case domain.RolePhotographer:
		if sc.PhotographerID != requesterID {
			return DecisionForbidden
		}
		if target == domain.BookingCancelled {
			return DecisionAllowed
		}
		return DecisionForbidden
	default:
		return DecisionForbidden
	}
}
