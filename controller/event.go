package controller

import (
	"github.com/misteriaud/passeri/model"
)

// EventType classifies an intent outcome.
type EventType string

const (
	Created   EventType = "created"
	Removed   EventType = "removed"
	Activated EventType = "activated"
	Failed    EventType = "failed"
)

// Intent names the user action an event results from.
type Intent string

const (
	IntentCreate   Intent = "create"
	IntentRemove   Intent = "remove"
	IntentActivate Intent = "activate"
)

// Event reports the outcome of one intent. Bridge is the registry value after
// the mutation, or the last known value when the intent failed.
type Event struct {
	Type   EventType
	Intent Intent
	Bridge model.Bridge
	Err    error
}

// Listener observes intent outcomes. It is called synchronously after the
// registry mutation and must not block.
type Listener func(event Event)
