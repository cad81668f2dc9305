package booking

import (
	"strings"
	"time"

	"github.com/shareit-market/shareit/pkg/domain"
)

// State is the persisted lifecycle state of a booking.
//
// WAITING and REJECTED are hard facts. CURRENT, PAST and FUTURE are
// time-relative labels fixed at approval time; they can go stale, so reads
// always re-derive the time bucket instead of trusting the stored value.
type State string

const (
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
)

// validTransitions defines the lifecycle state machine. WAITING is the only
// state with outgoing transitions; every decision is terminal.
var validTransitions = map[State][]State{
	StateWaiting:  {StateRejected, StateCurrent, StatePast, StateFuture},
	StateRejected: {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
}

// IsValid returns true if the state is a recognized lifecycle state.
func (s State) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// IsDecided returns true once the owner has acted on the booking.
func (s State) IsDecided() bool {
	allowed, exists := validTransitions[s]
	return exists && len(allowed) == 0
}

// CanTransitionTo returns true if a transition from this state to the
// target is allowed.
func (s State) CanTransitionTo(target State) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// Status is the presentation status exposed on the API. The three approved
// time buckets all collapse to APPROVED.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// DisplayStatus projects a lifecycle state to its presentation status.
func DisplayStatus(s State) Status {
	switch s {
	case StateWaiting:
		return StatusWaiting
	case StateRejected:
		return StatusRejected
	default:
		return StatusApproved
	}
}

// DeriveTimeState buckets an approved window relative to now. It is the
// single derivation used both when an approval is persisted and when query
// predicates are built, so the two can never disagree.
func DeriveTimeState(start, end, now time.Time) State {
	if end.Before(now) {
		return StatePast
	}
	if start.After(now) {
		return StateFuture
	}
	return StateCurrent
}

// StateFilter selects a lifecycle bucket in list queries. It extends State
// with the catch-all ALL value.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter converts a query string into a StateFilter,
// case-insensitively. Unknown values yield the unsupported-state error so
// callers can tell them apart from plain validation failures.
func ParseStateFilter(s string) (StateFilter, error) {
	switch StateFilter(strings.ToUpper(s)) {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return StateFilter(strings.ToUpper(s)), nil
	}
	return "", domain.NewUnsupportedStateError("Unknown state: " + s)
}
