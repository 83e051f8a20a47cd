package controller_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misteriaud/passeri/client"
	"github.com/misteriaud/passeri/controller"
	"github.com/misteriaud/passeri/identifier"
	"github.com/misteriaud/passeri/implementer"
	"github.com/misteriaud/passeri/model"
	"github.com/misteriaud/passeri/registry"
	"github.com/misteriaud/passeri/schema"
	"github.com/misteriaud/passeri/server"
)

// fakeCommands records calls and answers them in-process.
type fakeCommands struct {
	mux         sync.Mutex
	calls       []string
	addresses   []string
	createErr   error
	removeErr   error
	activateErr error
	activating  chan struct{}
	release     chan struct{}
}

func (f *fakeCommands) record(call string) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCommands) recorded() []string {
	f.mux.Lock()
	defer f.mux.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCommands) CreateBridge(ctx context.Context, kind model.Kind, address, label string) (identifier.ID, string, error) {
	f.record("create")
	f.mux.Lock()
	f.addresses = append(f.addresses, address)
	f.mux.Unlock()
	if f.createErr != nil {
		return identifier.Nil, "", f.createErr
	}
	return identifier.New(), address, nil
}

func (f *fakeCommands) RemoveBridge(ctx context.Context, kind model.Kind, id identifier.ID) error {
	f.record("remove")
	return f.removeErr
}

func (f *fakeCommands) ActivateSender(ctx context.Context, id identifier.ID) error {
	f.record("listen")
	return f.block()
}

func (f *fakeCommands) ActivateReceiver(ctx context.Context, id identifier.ID) error {
	f.record("receive")
	return f.block()
}

func (f *fakeCommands) block() error {
	if f.activating != nil {
		f.activating <- struct{}{}
		<-f.release
	}
	return f.activateErr
}

func newMemoryController(t *testing.T, memory *implementer.Memory, options ...controller.Option) (*controller.Controller, *registry.Registry) {
	t.Helper()
	srv, err := server.New(server.WithNewImplementer(memory.NewImplementer))
	require.NoError(t, err)
	reg := registry.New()
	cli := client.New(srv.Loopback(context.Background(), nil), client.WithTimeout(5*time.Second))
	return controller.New(cli, reg, options...), reg
}

func TestController_EndToEnd(t *testing.T) {
	ctx := context.Background()
	id := identifier.MustParse("a1b2c3d4-0000-0000-0000-000000000001")
	ctrl, _ := newMemoryController(t, implementer.New(implementer.WithIDs(id)))

	created, err := ctrl.Create(ctx, model.Sender, "10.0.0.5:5004", "")
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	senders := ctrl.List(model.Sender)
	require.Len(t, senders, 1)
	assert.Equal(t, model.Idle, senders[0].State)
	assert.Equal(t, "10.0.0.5:5004", senders[0].Address)
	assert.Empty(t, ctrl.List(model.Receiver))

	activated, err := ctrl.Activate(ctx, model.Sender, id)
	require.NoError(t, err)
	assert.Equal(t, model.Listening, activated.State)
	assert.Equal(t, model.Listening, ctrl.List(model.Sender)[0].State)

	removed, err := ctrl.Remove(ctx, model.Sender, id)
	require.NoError(t, err)
	assert.Equal(t, id, removed.ID)
	assert.Empty(t, ctrl.List(model.Sender))

	_, err = ctrl.Remove(ctx, model.Sender, id)
	assert.True(t, model.IsNotFound(err))
}

func TestController_AddressIsForwardedVerbatim(t *testing.T) {
	commands := &fakeCommands{}
	ctrl := controller.New(commands, registry.New())

	_, err := ctrl.Create(context.Background(), model.Receiver, " \t ", "")
	var validationErr *model.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "address", validationErr.Field)
	assert.Empty(t, commands.recorded(), "blank address never reaches the backend")

	bridge, err := ctrl.Create(context.Background(), model.Receiver, " 10.0.0.5:5004 ", "")
	require.NoError(t, err)
	assert.Equal(t, []string{" 10.0.0.5:5004 "}, commands.addresses)
	assert.Equal(t, " 10.0.0.5:5004 ", bridge.Address, "the confirmed address is whatever the backend returned")
}

func TestController_NoMutationOnFailure(t *testing.T) {
	ctx := context.Background()
	var testCases = []struct {
		description string
		method      string
		intent      func(ctrl *controller.Controller, existing model.Bridge) error
	}{
		{
			description: "create",
			method:      schema.MethodBridgeCreate,
			intent: func(ctrl *controller.Controller, existing model.Bridge) error {
				_, err := ctrl.Create(ctx, model.Receiver, "10.0.0.9:5004", "port")
				return err
			},
		},
		{
			description: "remove",
			method:      schema.MethodBridgeRemove,
			intent: func(ctrl *controller.Controller, existing model.Bridge) error {
				_, err := ctrl.Remove(ctx, existing.Kind, existing.ID)
				return err
			},
		},
		{
			description: "activate",
			method:      schema.MethodSenderListen,
			intent: func(ctrl *controller.Controller, existing model.Bridge) error {
				_, err := ctrl.Activate(ctx, existing.Kind, existing.ID)
				return err
			},
		},
	}
	for _, testCase := range testCases {
		memory := implementer.New()
		ctrl, reg := newMemoryController(t, memory)
		existing, err := ctrl.Create(ctx, model.Sender, "10.0.0.5:5004", "")
		require.NoError(t, err, testCase.description)
		before := reg.Snapshot()

		memory.Fail(testCase.method, "simulated fault")
		err = testCase.intent(ctrl, existing)
		require.True(t, model.IsBackend(err), testCase.description)
		assert.Equal(t, before, reg.Snapshot(), testCase.description)
	}
}

func TestController_Submit(t *testing.T) {
	ctx := context.Background()
	memory := implementer.New()
	ctrl, _ := newMemoryController(t, memory)

	draft := &controller.Draft{Address: "10.0.0.5:5004", Label: "IAC Bus 1"}
	memory.Fail(schema.MethodBridgeCreate, "busy")
	_, err := ctrl.Submit(ctx, model.Receiver, draft)
	require.Error(t, err)
	assert.Equal(t, controller.Draft{Address: "10.0.0.5:5004", Label: "IAC Bus 1"}, *draft, "failed submit keeps inputs")

	memory.Restore(schema.MethodBridgeCreate)
	bridge, err := ctrl.Submit(ctx, model.Receiver, draft)
	require.NoError(t, err)
	assert.Equal(t, "IAC Bus 1", bridge.Label)
	assert.True(t, draft.IsEmpty())
	assert.Equal(t, controller.Draft{}, *draft)

	_, err = ctrl.Submit(ctx, model.Receiver, draft)
	var validationErr *model.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "address", validationErr.Field)
}

func TestController_Reactivation(t *testing.T) {
	ctx := context.Background()
	var testCases = []struct {
		description string
		policy      controller.ReactivationPolicy
		expectCalls []string
		expectErr   bool
	}{
		{description: "forward", policy: controller.ReactivateForward, expectCalls: []string{"create", "receive", "receive"}},
		{description: "skip", policy: controller.ReactivateSkip, expectCalls: []string{"create", "receive"}},
		{description: "reject", policy: controller.ReactivateReject, expectCalls: []string{"create", "receive"}, expectErr: true},
	}
	for _, testCase := range testCases {
		commands := &fakeCommands{}
		ctrl := controller.New(commands, registry.New(), controller.WithReactivationPolicy(testCase.policy))
		bridge, err := ctrl.Create(ctx, model.Receiver, "10.0.0.5:5004", "")
		require.NoError(t, err, testCase.description)
		_, err = ctrl.Activate(ctx, model.Receiver, bridge.ID)
		require.NoError(t, err, testCase.description)

		again, err := ctrl.Activate(ctx, model.Receiver, bridge.ID)
		if testCase.expectErr {
			var transitionErr *model.TransitionError
			require.True(t, errors.As(err, &transitionErr), testCase.description)
			assert.Equal(t, model.Receiving, transitionErr.From, testCase.description)
		} else {
			require.NoError(t, err, testCase.description)
		}
		assert.Equal(t, model.Receiving, again.State, testCase.description)
		assert.Equal(t, testCase.expectCalls, commands.recorded(), testCase.description)
	}
}

func TestController_ActivateUnknown(t *testing.T) {
	commands := &fakeCommands{}
	reg := registry.New()
	ctrl := controller.New(commands, reg)
	receiver, err := ctrl.Create(context.Background(), model.Receiver, "10.0.0.5:5004", "")
	require.NoError(t, err)

	_, err = ctrl.Activate(context.Background(), model.Sender, receiver.ID)
	assert.True(t, model.IsNotFound(err))
	_, err = ctrl.Activate(context.Background(), model.Sender, identifier.New())
	assert.True(t, model.IsNotFound(err))
	assert.Equal(t, []string{"create"}, commands.recorded())
	assert.Equal(t, []model.Bridge{receiver}, reg.List(model.Receiver))
}

func TestController_SerializesPerID(t *testing.T) {
	ctx := context.Background()
	commands := &fakeCommands{activating: make(chan struct{}), release: make(chan struct{})}
	ctrl := controller.New(commands, registry.New())
	bridge, err := ctrl.Create(ctx, model.Sender, "10.0.0.5:5004", "")
	require.NoError(t, err)

	activated := make(chan error, 1)
	go func() {
		_, err := ctrl.Activate(ctx, model.Sender, bridge.ID)
		activated <- err
	}()
	<-commands.activating

	removed := make(chan error, 1)
	go func() {
		_, err := ctrl.Remove(ctx, model.Sender, bridge.ID)
		removed <- err
	}()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"create", "listen"}, commands.recorded(), "remove waits for the activation")

	close(commands.release)
	require.NoError(t, <-activated)
	require.NoError(t, <-removed)
	assert.Equal(t, []string{"create", "listen", "remove"}, commands.recorded())
	assert.Empty(t, ctrl.List(model.Sender))
}

func TestController_LockHonoursContext(t *testing.T) {
	commands := &fakeCommands{activating: make(chan struct{}), release: make(chan struct{})}
	ctrl := controller.New(commands, registry.New())
	bridge, err := ctrl.Create(context.Background(), model.Sender, "10.0.0.5:5004", "")
	require.NoError(t, err)

	go func() { _, _ = ctrl.Activate(context.Background(), model.Sender, bridge.ID) }()
	<-commands.activating
	defer close(commands.release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = ctrl.Remove(ctx, model.Sender, bridge.ID)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Len(t, ctrl.List(model.Sender), 1)
}

func TestController_ConcurrentIntents(t *testing.T) {
	ctx := context.Background()
	ctrl, reg := newMemoryController(t, implementer.New())
	var wg sync.WaitGroup
	for i := 1; i <= 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := model.Kinds[i%2]
			bridge, err := ctrl.Create(ctx, kind, fmt.Sprintf("10.0.2.%d:5004", i), "")
			if !assert.NoError(t, err) {
				return
			}
			if i%4 < 2 {
				_, err = ctrl.Activate(ctx, kind, bridge.ID)
				assert.NoError(t, err)
			}
			if i%5 == 0 {
				_, err = ctrl.Remove(ctx, kind, bridge.ID)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 32, reg.Len(model.Sender)+reg.Len(model.Receiver))
	for _, kind := range model.Kinds {
		for _, bridge := range reg.List(kind) {
			assert.True(t, model.ValidState(kind, bridge.State))
		}
	}
}

func TestController_Listener(t *testing.T) {
	ctx := context.Background()
	var events []controller.Event
	commands := &fakeCommands{}
	ctrl := controller.New(commands, registry.New(), controller.WithListener(func(event controller.Event) {
		events = append(events, event)
	}))

	bridge, err := ctrl.Create(ctx, model.Sender, "10.0.0.5:5004", "")
	require.NoError(t, err)
	_, err = ctrl.Activate(ctx, model.Sender, bridge.ID)
	require.NoError(t, err)
	commands.removeErr = &model.BackendError{Method: schema.MethodBridgeRemove, Message: "busy"}
	_, err = ctrl.Remove(ctx, model.Sender, bridge.ID)
	require.Error(t, err)
	commands.removeErr = nil
	_, err = ctrl.Remove(ctx, model.Sender, bridge.ID)
	require.NoError(t, err)

	require.Len(t, events, 4)
	assert.Equal(t, controller.Created, events[0].Type)
	assert.Equal(t, controller.Activated, events[1].Type)
	assert.Equal(t, model.Listening, events[1].Bridge.State)
	assert.Equal(t, controller.Failed, events[2].Type)
	assert.Equal(t, controller.IntentRemove, events[2].Intent)
	assert.Equal(t, bridge.ID, events[2].Bridge.ID)
	assert.True(t, model.IsBackend(events[2].Err))
	assert.Equal(t, controller.Removed, events[3].Type)
}
