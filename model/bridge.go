package model

import (
	"github.com/misteriaud/passeri/identifier"
)

// Bridge is a named endpoint bound to a network address. Values are copied in
// and out of the registry, so holding a Bridge never aliases registry state.
type Bridge struct {
	ID      identifier.ID `json:"id" yaml:"id"`
	Kind    Kind          `json:"kind" yaml:"kind"`
	Address string        `json:"address" yaml:"address"`
	// Label names the MIDI port on the backend side; may be empty.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	State State  `json:"state" yaml:"state"`
}

// NewBridge returns an Idle bridge for a backend-assigned identifier.
func NewBridge(id identifier.ID, kind Kind, address, label string) (Bridge, error) {
	if id.IsZero() {
		return Bridge{}, &ValidationError{Field: "id", Reason: "nil identifier"}
	}
	if !kind.IsValid() {
		return Bridge{}, &ValidationError{Field: "kind", Reason: kind.String()}
	}
	if address == "" {
		return Bridge{}, &ValidationError{Field: "address", Reason: "empty"}
	}
	return Bridge{ID: id, Kind: kind, Address: address, Label: label, State: Idle}, nil
}

// IsActive reports whether the bridge reached its kind specific active state.
func (b Bridge) IsActive() bool {
	return b.State == ActiveState(b.Kind)
}

// Activated returns a copy of b in its active state.
func (b Bridge) Activated() (Bridge, error) {
	to := ActiveState(b.Kind)
	if !CanTransition(b.Kind, b.State, to) {
		return b, &TransitionError{Kind: b.Kind, ID: b.ID, From: b.State, To: to}
	}
	b.State = to
	return b, nil
}
