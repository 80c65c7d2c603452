package reservation

import (
	"fmt"

	"github.com/morada-homes/service-reservation/internal/domain"
)

// Action names a lifecycle operation. The vocabulary is closed.
type Action string

const (
	ActionConfirm   Action = "confirm"
	ActionCancel    Action = "cancel"
	ActionStartStay Action = "startStay"
	ActionFinish    Action = "finish"
)

// ParseAction validates an action name from the outside world.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionConfirm, ActionCancel, ActionStartStay, ActionFinish:
		return Action(s), nil
	default:
		return "", domain.NewValidationError(fmt.Sprintf("unknown action %q", s))
	}
}

// TransitionResult reports the outcome of a lifecycle operation. A rejected
// transition is a normal domain outcome: Changed is false and Message explains
// why, the reservation is left untouched.
type TransitionResult struct {
	Changed bool
	Message string
}

// State holds the lifecycle policy for one status value. Each operation either
// mutates the reservation's status or refuses with a message.
type State interface {
	Confirm(r *Reservation) TransitionResult
	Cancel(r *Reservation) TransitionResult
	StartStay(r *Reservation) TransitionResult
	Finish(r *Reservation) TransitionResult

	Status() Status
	AvailableActions() []Action
}

func changed(r *Reservation, to Status, format string, args ...interface{}) TransitionResult {
	r.setStatus(to)
	return TransitionResult{Changed: true, Message: fmt.Sprintf(format, args...)}
}

func rejected(format string, args ...interface{}) TransitionResult {
	return TransitionResult{Changed: false, Message: fmt.Sprintf(format, args...)}
}

// --- pendente ---

type pendingState struct{}

func (pendingState) Confirm(r *Reservation) TransitionResult {
	return changed(r, StatusConfirmed, "reservation %s confirmed", r.ID())
}

func (pendingState) Cancel(r *Reservation) TransitionResult {
	return changed(r, StatusCancelled, "reservation %s cancelled", r.ID())
}

func (pendingState) StartStay(*Reservation) TransitionResult {
	return rejected("cannot start stay: reservation is still pending")
}

func (pendingState) Finish(*Reservation) TransitionResult {
	return rejected("cannot finish: reservation is still pending")
}

func (pendingState) Status() Status { return StatusPending }

func (pendingState) AvailableActions() []Action {
	return []Action{ActionConfirm, ActionCancel}
}

// --- confirmada ---

type confirmedState struct{}

func (confirmedState) Confirm(r *Reservation) TransitionResult {
	return rejected("reservation %s is already confirmed", r.ID())
}

func (confirmedState) Cancel(r *Reservation) TransitionResult {
	return changed(r, StatusCancelled, "reservation %s cancelled", r.ID())
}

func (confirmedState) StartStay(r *Reservation) TransitionResult {
	return changed(r, StatusInProgress, "stay for reservation %s started", r.ID())
}

func (confirmedState) Finish(*Reservation) TransitionResult {
	return rejected("cannot finish: the stay has not started yet")
}

func (confirmedState) Status() Status { return StatusConfirmed }

func (confirmedState) AvailableActions() []Action {
	return []Action{ActionCancel, ActionStartStay}
}

// --- cancelada ---

type cancelledState struct{}

func (cancelledState) Confirm(*Reservation) TransitionResult {
	return rejected("cannot confirm: reservation was cancelled")
}

func (cancelledState) Cancel(r *Reservation) TransitionResult {
	return rejected("reservation %s is already cancelled", r.ID())
}

func (cancelledState) StartStay(*Reservation) TransitionResult {
	return rejected("cannot start stay: reservation was cancelled")
}

func (cancelledState) Finish(*Reservation) TransitionResult {
	return rejected("cannot finish: reservation was cancelled")
}

func (cancelledState) Status() Status { return StatusCancelled }

func (cancelledState) AvailableActions() []Action { return []Action{} }

// --- em_andamento ---

type inProgressState struct{}

func (inProgressState) Confirm(r *Reservation) TransitionResult {
	return rejected("reservation %s is already in progress", r.ID())
}

func (inProgressState) Cancel(*Reservation) TransitionResult {
	return rejected("cannot cancel: the stay is already in progress")
}

func (inProgressState) StartStay(r *Reservation) TransitionResult {
	return rejected("stay for reservation %s is already in progress", r.ID())
}

func (inProgressState) Finish(r *Reservation) TransitionResult {
	return changed(r, StatusCompleted, "stay for reservation %s finished", r.ID())
}

func (inProgressState) Status() Status { return StatusInProgress }

func (inProgressState) AvailableActions() []Action {
	return []Action{ActionFinish}
}

// --- finalizada ---

type completedState struct{}

func (completedState) Confirm(r *Reservation) TransitionResult {
	return rejected("reservation %s is already completed", r.ID())
}

func (completedState) Cancel(*Reservation) TransitionResult {
	return rejected("cannot cancel: reservation is already completed")
}

func (completedState) StartStay(*Reservation) TransitionResult {
	return rejected("cannot start stay: reservation is already completed")
}

func (completedState) Finish(r *Reservation) TransitionResult {
	return rejected("reservation %s is already completed", r.ID())
}

func (completedState) Status() Status { return StatusCompleted }

func (completedState) AvailableActions() []Action { return []Action{} }

// StateRegistry holds one State per status value and dispatches lifecycle
// operations. It is stateless apart from its immutable registration map and
// safe for concurrent use.
type StateRegistry struct {
	states map[Status]State
}

// NewStateRegistry registers the five lifecycle states.
func NewStateRegistry() *StateRegistry {
	registry := &StateRegistry{states: make(map[Status]State)}
	for _, s := range []State{
		pendingState{},
		confirmedState{},
		cancelledState{},
		inProgressState{},
		completedState{},
	} {
		registry.states[s.Status()] = s
	}
	return registry
}

// StateFor returns the behavior for the given status. A miss means the status
// domain was extended without registering a state, which is a configuration
// bug rather than user error.
func (sr *StateRegistry) StateFor(status Status) (State, error) {
	state, ok := sr.states[status]
	if !ok {
		return nil, domain.NewInvalidStateError(string(status))
	}
	return state, nil
}

// Apply runs the requested action against the reservation's current state.
func (sr *StateRegistry) Apply(action Action, r *Reservation) (TransitionResult, error) {
	state, err := sr.StateFor(r.Status())
	if err != nil {
		return TransitionResult{}, err
	}

	switch action {
	case ActionConfirm:
		return state.Confirm(r), nil
	case ActionCancel:
		return state.Cancel(r), nil
	case ActionStartStay:
		return state.StartStay(r), nil
	case ActionFinish:
		return state.Finish(r), nil
	default:
		return TransitionResult{}, domain.NewValidationError(fmt.Sprintf("unknown action %q", action))
	}
}
