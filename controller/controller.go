package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/misteriaud/passeri/identifier"
	"github.com/misteriaud/passeri/internal/collection"
	"github.com/misteriaud/passeri/internal/logging"
	"github.com/misteriaud/passeri/model"
	"github.com/misteriaud/passeri/registry"
)

// Commands is the backend command set the controller drives.
type Commands interface {
	CreateBridge(ctx context.Context, kind model.Kind, address, label string) (identifier.ID, string, error)
	RemoveBridge(ctx context.Context, kind model.Kind, id identifier.ID) error
	ActivateSender(ctx context.Context, id identifier.ID) error
	ActivateReceiver(ctx context.Context, id identifier.ID) error
}

// Controller sequences backend commands and registry mutations.
type Controller struct {
	commands     Commands
	registry     *registry.Registry
	locks        *collection.KeyedMutex[identifier.ID]
	reactivation ReactivationPolicy
	listeners    []Listener
	logger       *slog.Logger
}

// Create asks the backend for a new bridge and registers it as Idle once the
// backend returns its identifier and confirmed address.
func (c *Controller) Create(ctx context.Context, kind model.Kind, address, label string) (model.Bridge, error) {
	requested := model.Bridge{Kind: kind, Address: address, Label: label}
	if !kind.IsValid() {
		return requested, c.fail(IntentCreate, requested, &model.ValidationError{Field: "kind", Reason: kind.String()})
	}
	if strings.TrimSpace(address) == "" {
		return requested, c.fail(IntentCreate, requested, &model.ValidationError{Field: "address", Reason: "empty"})
	}
	id, confirmed, err := c.commands.CreateBridge(ctx, kind, address, label)
	if err != nil {
		return requested, c.fail(IntentCreate, requested, err)
	}
	bridge, err := model.NewBridge(id, kind, confirmed, label)
	if err != nil {
		return requested, c.fail(IntentCreate, requested, err)
	}
	if err = c.registry.Insert(bridge); err != nil {
		return bridge, c.fail(IntentCreate, bridge, err)
	}
	c.logger.Info("bridge created", "kind", kind, "id", id, "address", confirmed)
	c.notify(Event{Type: Created, Intent: IntentCreate, Bridge: bridge})
	return bridge, nil
}

// Submit creates a bridge from draft and clears the draft only when the bridge
// was created; on failure the inputs are kept for correction.
func (c *Controller) Submit(ctx context.Context, kind model.Kind, draft *Draft) (model.Bridge, error) {
	if draft == nil {
		return model.Bridge{Kind: kind}, &model.ValidationError{Field: "draft", Reason: "nil"}
	}
	bridge, err := c.Create(ctx, kind, draft.Address, draft.Label)
	if err != nil {
		return bridge, err
	}
	draft.Clear()
	return bridge, nil
}

// Remove asks the backend to tear the bridge down and forgets it once acknowledged.
func (c *Controller) Remove(ctx context.Context, kind model.Kind, id identifier.ID) (model.Bridge, error) {
	target := model.Bridge{ID: id, Kind: kind}
	unlock, err := c.locks.Lock(ctx, id)
	if err != nil {
		return target, c.fail(IntentRemove, target, fmt.Errorf("failed to acquire %v %v: %w", kind, id, err))
	}
	defer unlock()
	if known, ok := c.registry.Get(kind, id); ok {
		target = known
	}
	if err = c.commands.RemoveBridge(ctx, kind, id); err != nil {
		return target, c.fail(IntentRemove, target, err)
	}
	removed, err := c.registry.Remove(kind, id)
	if err != nil {
		return target, c.fail(IntentRemove, target, err)
	}
	c.logger.Info("bridge removed", "kind", kind, "id", id)
	c.notify(Event{Type: Removed, Intent: IntentRemove, Bridge: removed})
	return removed, nil
}

// Activate starts a registered bridge and moves it to its active state once
// the backend acknowledges.
func (c *Controller) Activate(ctx context.Context, kind model.Kind, id identifier.ID) (model.Bridge, error) {
	target := model.Bridge{ID: id, Kind: kind}
	unlock, err := c.locks.Lock(ctx, id)
	if err != nil {
		return target, c.fail(IntentActivate, target, fmt.Errorf("failed to acquire %v %v: %w", kind, id, err))
	}
	defer unlock()
	current, ok := c.registry.Get(kind, id)
	if !ok {
		return target, c.fail(IntentActivate, target, &model.NotFoundError{Kind: kind, ID: id})
	}
	if current.IsActive() {
		switch c.reactivation {
		case ReactivateSkip:
			return current, nil
		case ReactivateReject:
			return current, c.fail(IntentActivate, current, &model.TransitionError{Kind: kind, ID: id, From: current.State, To: model.ActiveState(kind)})
		}
	}
	next, err := current.Activated()
	if err != nil {
		return current, c.fail(IntentActivate, current, err)
	}
	if err = c.activate(ctx, kind, id); err != nil {
		return current, c.fail(IntentActivate, current, err)
	}
	updated, err := c.registry.UpdateState(kind, id, next.State)
	if err != nil {
		return current, c.fail(IntentActivate, current, err)
	}
	c.logger.Info("bridge activated", "kind", kind, "id", id, "state", updated.State)
	c.notify(Event{Type: Activated, Intent: IntentActivate, Bridge: updated})
	return updated, nil
}

func (c *Controller) activate(ctx context.Context, kind model.Kind, id identifier.ID) error {
	if kind == model.Receiver {
		return c.commands.ActivateReceiver(ctx, id)
	}
	return c.commands.ActivateSender(ctx, id)
}

// List returns the registered bridges of kind in creation order.
func (c *Controller) List(kind model.Kind) []model.Bridge {
	return c.registry.List(kind)
}

// Lookup finds a registered bridge regardless of kind.
func (c *Controller) Lookup(id identifier.ID) (model.Bridge, bool) {
	return c.registry.Lookup(id)
}

func (c *Controller) fail(intent Intent, bridge model.Bridge, err error) error {
	c.logger.Warn("intent failed", "intent", intent, "kind", bridge.Kind, "id", bridge.ID, "address", bridge.Address, "error", err)
	c.notify(Event{Type: Failed, Intent: intent, Bridge: bridge, Err: err})
	return err
}

func (c *Controller) notify(event Event) {
	for _, listener := range c.listeners {
		listener(event)
	}
}

// New creates a controller over commands and registry.
func New(commands Commands, registry *registry.Registry, options ...Option) *Controller {
	ret := &Controller{
		commands: commands,
		registry: registry,
		locks:    collection.NewKeyedMutex[identifier.ID](),
		logger:   logging.Nop(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}
