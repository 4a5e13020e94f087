// Package order implements the repair-order status workflow: a closed set
// of states and an explicit transition table stating which moves are
// allowed and whether they need an engineer on the order.
package order

import "errors"

// Status is one of the five defined order states.
type Status string

const (
	StatusRequested  Status = "Requested"
	StatusAccepted   Status = "Accepted"
	StatusRejected   Status = "Rejected"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

var (
	ErrInvalidStatus        = errors.New("invalid status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrTerminalState        = errors.New("order is in a terminal state")
	ErrEngineerRequired     = errors.New("an engineer must be assigned")
)

type rule struct {
	// requiresEngineer means the order must carry an engineer after the
	// move, either newly supplied or already assigned.
	requiresEngineer bool
}

// transitions is the full workflow: Requested -> Accepted -> InProgress ->
// Completed, with Rejected reachable only from Requested. Completed and
// Rejected have no outgoing edges.
var transitions = map[Status]map[Status]rule{
	StatusRequested: {
		StatusAccepted: {requiresEngineer: true},
		StatusRejected: {},
	},
	StatusAccepted: {
		StatusInProgress: {requiresEngineer: true},
	},
	StatusInProgress: {
		StatusCompleted: {requiresEngineer: true},
	},
}

// ParseStatus validates a raw status value from a request.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusRequested, StatusAccepted, StatusRejected, StatusInProgress, StatusCompleted:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether moving from s to the target is in the table.
func (s Status) CanTransition(to Status) bool {
	_, ok := transitions[s][to]
	return ok
}

// Decision is the outcome of a successful transition check.
type Decision int

const (
	// Apply means the new status (and any engineer assignment) must be
	// persisted.
	Apply Decision = iota
	// NoOp means the requested state equals the current one; the caller
	// reports success without writing.
	NoOp
)

// Transition validates a requested status change. hasEngineer must be true
// when an engineer id was supplied with the request or is already present
// on the order.
//
// Re-submitting the state the order is already in is treated as an
// idempotent success so that a retried request has no second side effect.
func Transition(current, requested Status, hasEngineer bool) (Decision, error) {
	if _, err := ParseStatus(string(requested)); err != nil {
		return 0, err
	}

	if requested == current {
		return NoOp, nil
	}

	if current.Terminal() {
		return 0, ErrTerminalState
	}

	r, ok := transitions[current][requested]
	if !ok {
		return 0, ErrTransitionNotAllowed
	}

	if r.requiresEngineer && !hasEngineer {
		return 0, ErrEngineerRequired
	}

	return Apply, nil
}
