package model

import "fmt"

// State is the lifecycle state of a bridge.
//
// Both kinds share the same shape: Idle on creation, then a one way move to the
// kind specific active state (Listening for a sender, Receiving for a receiver).
// Removal is not a state; the bridge simply ceases to exist.
type State int

const (
	Idle State = iota
	Listening
	Receiving
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Listening:
		return "listening"
	case Receiving:
		return "receiving"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{Idle, Listening, Receiving} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return &ValidationError{Field: "state", Reason: fmt.Sprintf("unknown state %q", text)}
}

// ActiveState returns the active state for kind.
func ActiveState(kind Kind) State {
	if kind == Receiver {
		return Receiving
	}
	return Listening
}

// ValidState reports whether state belongs to the state machine of kind.
func ValidState(kind Kind, state State) bool {
	return state == Idle || state == ActiveState(kind)
}

// CanTransition reports whether from -> to is a legal move for kind.
// Active -> Active is allowed and re-confirms the state.
func CanTransition(kind Kind, from, to State) bool {
	if !ValidState(kind, from) {
		return false
	}
	return to == ActiveState(kind)
}
