package order

import (
	"fmt"
	"strings"

	"bakery/internal/pkg/errs"
)

// State represents the lifecycle state of an order.
//
// The usual flow is:
//
//	New ──> Confirmed ──> Ready ──> Delivered
//	 │          │           │
//	 └──────────┴───────────┴────> Problem / Cancelled
//
// Only the history rule is structural: a transition is recorded when the old
// and new states differ and are both defined. Legality of a particular
// transition is a caller-side policy.
type State int

const (
	// Undefined catches uninitialized State values. It is not a valid
	// state for a persisted order.
	Undefined State = iota

	// New is the state every order is created in.
	New

	// Confirmed means the bakery accepted the order.
	Confirmed

	// Ready means the order is baked and waiting at the pickup location.
	Ready

	// Delivered means the customer picked the order up.
	Delivered

	// Problem flags an order that needs attention.
	Problem

	// Cancelled means the order will not be fulfilled.
	Cancelled
)

func stateNames() map[State]string {
	return map[State]string{
		New:       "NEW",
		Confirmed: "CONFIRMED",
		Ready:     "READY",
		Delivered: "DELIVERED",
		Problem:   "PROBLEM",
		Cancelled: "CANCELLED",
	}
}

// AllStates returns every defined state in declaration order.
func AllStates() []State {
	return []State{New, Confirmed, Ready, Delivered, Problem, Cancelled}
}

// IsDefined reports whether s is one of the defined states.
func (s State) IsDefined() bool {
	_, ok := stateNames()[s]
	return ok
}

// Validate returns an error if s is not a defined state.
func (s State) Validate() error {
	if !s.IsDefined() {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid order state", s))
	}
	return nil
}

// String returns the storage name of the state, e.g. "CONFIRMED".
// Undefined values format as "UNDEFINED".
func (s State) String() string {
	if name, ok := stateNames()[s]; ok {
		return name
	}
	return "UNDEFINED"
}

// DisplayName returns the user-facing form of the state name, e.g.
// "Confirmed".
func (s State) DisplayName() string {
	name := s.String()
	return name[:1] + strings.ToLower(name[1:])
}

// StateFromString maps a storage name back to its State. Unknown names map
// to Undefined with an error.
func StateFromString(name string) (State, error) {
	for state, n := range stateNames() {
		if n == name {
			return state, nil
		}
	}
	return Undefined, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid order state", name))
}
