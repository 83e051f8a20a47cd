// Package registry holds the authoritative in-process collection of known
// bridges, split by kind and keyed by the binary identifier.
//
// The registry is the read model for observers and is safe for concurrent
// use. It never validates state transitions; that is the controller's job.
package registry

import (
	"sync"

	"github.com/misteriaud/passeri/identifier"
	"github.com/misteriaud/passeri/internal/collection"
	"github.com/misteriaud/passeri/model"
)

// Registry stores bridges per kind in insertion order.
type Registry struct {
	mu    sync.RWMutex
	kinds map[model.Kind]*collection.OrderedMap[identifier.ID, model.Bridge]
}

// New creates an empty registry.
func New() *Registry {
	ret := &Registry{kinds: make(map[model.Kind]*collection.OrderedMap[identifier.ID, model.Bridge], len(model.Kinds))}
	for _, kind := range model.Kinds {
		ret.kinds[kind] = collection.NewOrderedMap[identifier.ID, model.Bridge]()
	}
	return ret
}

// Insert adds bridge under its kind. It fails with *model.DuplicateIDError when
// the identifier is present under any kind, leaving the registry unchanged.
func (r *Registry) Insert(bridge model.Bridge) error {
	if !bridge.Kind.IsValid() {
		return &model.ValidationError{Field: "kind", Reason: bridge.Kind.String()}
	}
	if bridge.ID.IsZero() {
		return &model.ValidationError{Field: "id", Reason: "nil identifier"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, kind := range model.Kinds {
		if r.kinds[kind].Has(bridge.ID) {
			return &model.DuplicateIDError{Kind: bridge.Kind, ID: bridge.ID, Existing: kind}
		}
	}
	r.kinds[bridge.Kind].Put(bridge.ID, bridge)
	return nil
}

// Remove deletes the bridge of the given kind and returns it.
func (r *Registry) Remove(kind model.Kind, id identifier.ID) (model.Bridge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bridges, ok := r.kinds[kind]
	if !ok {
		return model.Bridge{}, &model.NotFoundError{Kind: kind, ID: id}
	}
	removed, ok := bridges.Delete(id)
	if !ok {
		return model.Bridge{}, &model.NotFoundError{Kind: kind, ID: id}
	}
	return removed, nil
}

// UpdateState replaces the state of an existing bridge in place and returns
// the updated value. The transition itself is not validated.
func (r *Registry) UpdateState(kind model.Kind, id identifier.ID, state model.State) (model.Bridge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bridges, ok := r.kinds[kind]
	if !ok {
		return model.Bridge{}, &model.NotFoundError{Kind: kind, ID: id}
	}
	bridge, ok := bridges.Get(id)
	if !ok {
		return model.Bridge{}, &model.NotFoundError{Kind: kind, ID: id}
	}
	bridge.State = state
	bridges.Put(id, bridge)
	return bridge, nil
}

// Get returns the bridge of the given kind.
func (r *Registry) Get(kind model.Kind, id identifier.ID) (model.Bridge, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bridges, ok := r.kinds[kind]
	if !ok {
		return model.Bridge{}, false
	}
	return bridges.Get(id)
}

// Lookup finds a bridge by identifier regardless of kind.
func (r *Registry) Lookup(id identifier.ID) (model.Bridge, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, kind := range model.Kinds {
		if bridge, ok := r.kinds[kind].Get(id); ok {
			return bridge, true
		}
	}
	return model.Bridge{}, false
}

// List returns the bridges of kind in insertion order. The slice is a copy.
func (r *Registry) List(kind model.Kind) []model.Bridge {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bridges, ok := r.kinds[kind]
	if !ok {
		return nil
	}
	return bridges.Values()
}

// Len returns the number of bridges of kind.
func (r *Registry) Len(kind model.Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if bridges, ok := r.kinds[kind]; ok {
		return bridges.Len()
	}
	return 0
}

// Snapshot returns every kind's bridges in insertion order.
func (r *Registry) Snapshot() map[model.Kind][]model.Bridge {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make(map[model.Kind][]model.Bridge, len(r.kinds))
	for kind, bridges := range r.kinds {
		ret[kind] = bridges.Values()
	}
	return ret
}
