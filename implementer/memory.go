package implementer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"

	"github.com/misteriaud/passeri/identifier"
	"github.com/misteriaud/passeri/internal/collection"
	"github.com/misteriaud/passeri/model"
	"github.com/misteriaud/passeri/schema"
	"github.com/misteriaud/passeri/server"
)

type entry struct {
	kind    model.Kind
	address string
	label   string
	active  bool
}

// Memory holds backend state shared by every connection.
type Memory struct {
	bridges map[model.Kind]*collection.SyncMap[identifier.ID, entry]
	faults  *collection.SyncMap[string, string]
	latency time.Duration

	mu  sync.Mutex
	ids []identifier.ID
}

// Option configures Memory.
type Option func(m *Memory)

// WithIDs makes Memory assign the given identifiers, in order, before falling
// back to random ones.
func WithIDs(ids ...identifier.ID) Option {
	return func(m *Memory) {
		m.ids = append(m.ids, ids...)
	}
}

// WithLatency delays every bridge command by d, or until the request is cancelled.
func WithLatency(d time.Duration) Option {
	return func(m *Memory) {
		m.latency = d
	}
}

// New creates an empty in-memory backend.
func New(options ...Option) *Memory {
	ret := &Memory{
		bridges: make(map[model.Kind]*collection.SyncMap[identifier.ID, entry], len(model.Kinds)),
		faults:  collection.NewSyncMap[string, string](),
	}
	for _, kind := range model.Kinds {
		ret.bridges[kind] = collection.NewSyncMap[identifier.ID, entry]()
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Fail makes every subsequent call of method fail with a backend fault carrying message.
func (m *Memory) Fail(method, message string) {
	m.faults.Put(method, message)
}

// Restore clears a fault injected with Fail.
func (m *Memory) Restore(method string) {
	m.faults.Delete(method)
}

// Len returns the number of bridges of kind.
func (m *Memory) Len(kind model.Kind) int {
	if bridges, ok := m.bridges[kind]; ok {
		return bridges.Len()
	}
	return 0
}

// Active reports whether the bridge was started.
func (m *Memory) Active(kind model.Kind, id identifier.ID) bool {
	bridges, ok := m.bridges[kind]
	if !ok {
		return false
	}
	item, ok := bridges.Get(id)
	return ok && item.active
}

// NewImplementer returns a server.NewImplementer serving this backend.
func (m *Memory) NewImplementer(_ context.Context, _ transport.Notifier, logger *server.Logger) (server.Implementer, error) {
	return &session{Memory: m, logger: logger.Logger("memory")}, nil
}

func (m *Memory) nextID() identifier.ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.ids) > 0 {
		id := m.ids[0]
		m.ids = m.ids[1:]
		if !m.exists(id) {
			return id
		}
	}
	for {
		if id := identifier.New(); !m.exists(id) {
			return id
		}
	}
}

func (m *Memory) exists(id identifier.ID) bool {
	for _, bridges := range m.bridges {
		if _, ok := bridges.Get(id); ok {
			return true
		}
	}
	return false
}

func (m *Memory) fault(method string) *jsonrpc.Error {
	if message, ok := m.faults.Get(method); ok {
		return schema.NewBackendFault(message)
	}
	return nil
}

func (m *Memory) wait(ctx context.Context) *jsonrpc.Error {
	if m.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(m.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return schema.NewBackendFault(fmt.Sprintf("request abandoned: %v", ctx.Err()))
	}
}
