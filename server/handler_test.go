package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"

	"github.com/misteriaud/passeri/identifier"
	"github.com/misteriaud/passeri/implementer"
	"github.com/misteriaud/passeri/model"
	"github.com/misteriaud/passeri/schema"
	"github.com/misteriaud/passeri/server"
)

// recorder is a client transport that keeps the notifications the server sent.
type recorder struct {
	mux           sync.Mutex
	notifications []*jsonrpc.Notification
}

func (r *recorder) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	return &jsonrpc.Response{Id: request.Id}, nil
}

func (r *recorder) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *recorder) methods() []string {
	r.mux.Lock()
	defer r.mux.Unlock()
	var result []string
	for _, notification := range r.notifications {
		result = append(result, notification.Method)
	}
	return result
}

func newRequest(id int, method string, params string) *jsonrpc.Request {
	request := &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Id: id, Method: method}
	if params != "" {
		request.Params = []byte(params)
	}
	return request
}

func TestNew_RequiresImplementer(t *testing.T) {
	_, err := server.New()
	assert.Error(t, err)
	_, err = server.New(server.WithNewImplementer(implementer.New().NewImplementer), server.WithLoggingLevel("verbose"))
	assert.Error(t, err)
}

func TestHandler_Serve(t *testing.T) {
	id := identifier.MustParse("a1b2c3d4-0000-0000-0000-000000000001")
	srv, err := server.New(server.WithNewImplementer(implementer.New(implementer.WithIDs(id)).NewImplementer))
	require.NoError(t, err)
	handler := srv.NewHandler(context.Background(), &recorder{})

	var testCases = []struct {
		description  string
		request      *jsonrpc.Request
		expectCode   int
		expectResult string
	}{
		{
			description: "wrong version",
			request:     &jsonrpc.Request{Jsonrpc: "1.0", Id: 1, Method: schema.MethodPing},
			expectCode:  -32600,
		},
		{
			description: "unknown method",
			request:     newRequest(2, "bridge/list", ""),
			expectCode:  -32601,
		},
		{
			description:  "ping",
			request:      newRequest(3, schema.MethodPing, ""),
			expectResult: `{}`,
		},
		{
			description: "missing params",
			request:     newRequest(4, schema.MethodBridgeCreate, ""),
			expectCode:  int(jsonrpc.InvalidParams),
		},
		{
			description: "invalid address",
			request:     newRequest(5, schema.MethodBridgeCreate, `{"kind":"sender","address":"10.0.0.5"}`),
			expectCode:  int(jsonrpc.InvalidParams),
		},
		{
			description: "create without kind",
			request:     newRequest(5, schema.MethodBridgeCreate, `{"address":"10.0.0.5:5004"}`),
			expectCode:  int(jsonrpc.InvalidParams),
		},
		{
			description: "remove with null kind",
			request:     newRequest(5, schema.MethodBridgeRemove, `{"kind":null,"id":"a1b2c3d4-0000-0000-0000-000000000001"}`),
			expectCode:  int(jsonrpc.InvalidParams),
		},
		{
			description:  "create with legacy numeric kind",
			request:      newRequest(6, schema.MethodBridgeCreate, `{"kind":1,"address":"10.0.0.5:5004","label":"IAC Bus 1"}`),
			expectResult: `["a1b2c3d4-0000-0000-0000-000000000001","10.0.0.5:5004"]`,
		},
		{
			description: "receive wrong kind",
			request:     newRequest(7, schema.MethodSenderListen, `{"id":"a1b2c3d4-0000-0000-0000-000000000001"}`),
			expectCode:  schema.BridgeNotFound,
		},
		{
			description:  "receive",
			request:      newRequest(8, schema.MethodReceiverReceive, `{"id":"a1b2c3d4-0000-0000-0000-000000000001"}`),
			expectResult: `{}`,
		},
		{
			description: "malformed id",
			request:     newRequest(9, schema.MethodBridgeRemove, `{"kind":"receiver","id":"a1b2c3d4"}`),
			expectCode:  int(jsonrpc.InvalidParams),
		},
		{
			description:  "remove",
			request:      newRequest(10, schema.MethodBridgeRemove, `{"kind":"receiver","id":"a1b2c3d4-0000-0000-0000-000000000001"}`),
			expectResult: `{}`,
		},
		{
			description: "remove twice",
			request:     newRequest(11, schema.MethodBridgeRemove, `{"kind":"receiver","id":"a1b2c3d4-0000-0000-0000-000000000001"}`),
			expectCode:  schema.BridgeNotFound,
		},
	}
	for _, testCase := range testCases {
		response := &jsonrpc.Response{Id: testCase.request.Id}
		handler.Serve(context.Background(), testCase.request, response)
		if testCase.expectCode != 0 {
			require.NotNil(t, response.Error, testCase.description)
			assert.EqualValues(t, testCase.expectCode, response.Error.Code, testCase.description)
			continue
		}
		require.Nil(t, response.Error, testCase.description)
		assert.JSONEq(t, testCase.expectResult, string(response.Result), testCase.description)
	}
}

func TestHandler_Cancel(t *testing.T) {
	memory := implementer.New(implementer.WithLatency(time.Minute))
	srv, err := server.New(server.WithNewImplementer(memory.NewImplementer))
	require.NoError(t, err)
	handler := srv.NewHandler(context.Background(), &recorder{})

	done := make(chan *jsonrpc.Response)
	go func() {
		response := &jsonrpc.Response{}
		handler.Serve(context.Background(), newRequest(42, schema.MethodBridgeCreate, `{"kind":"sender","address":"10.0.0.5:5004"}`), response)
		done <- response
	}()

	notification, err := jsonrpc.NewNotification(schema.MethodNotificationCancel, &schema.CancelledNotificationParams{RequestId: 42, Reason: "timeout"})
	require.NoError(t, err)
	var response *jsonrpc.Response
	require.Eventually(t, func() bool {
		handler.OnNotification(context.Background(), notification)
		select {
		case response = <-done:
			return true
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	require.NotNil(t, response.Error)
	assert.EqualValues(t, schema.BackendFault, response.Error.Code)
}

func TestHandler_LogNotifications(t *testing.T) {
	client := &recorder{}
	srv, err := server.New(server.WithNewImplementer(implementer.New().NewImplementer), server.WithLoggingLevel(schema.LoggingLevelInfo))
	require.NoError(t, err)
	handler := srv.NewHandler(context.Background(), client)

	create := `{"kind":"sender","address":"10.0.0.5:5004"}`
	handler.Serve(context.Background(), newRequest(1, schema.MethodBridgeCreate, create), &jsonrpc.Response{})
	assert.Equal(t, []string{schema.MethodNotificationMessage}, client.methods())

	params, err := json.Marshal(&schema.SetLevelRequestParams{Level: schema.LoggingLevelError})
	require.NoError(t, err)
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), newRequest(2, schema.MethodLoggingSetLevel, string(params)), response)
	require.Nil(t, response.Error)

	handler.Serve(context.Background(), newRequest(3, schema.MethodBridgeCreate, create), &jsonrpc.Response{})
	assert.Len(t, client.methods(), 1, "info is below the error threshold")
}

func TestHandler_RequestIdsArePerConnection(t *testing.T) {
	memory := implementer.New(implementer.WithLatency(300 * time.Millisecond))
	srv, err := server.New(server.WithNewImplementer(memory.NewImplementer))
	require.NoError(t, err)
	first := srv.NewHandler(context.Background(), &recorder{})
	second := srv.NewHandler(context.Background(), &recorder{})

	create := func(handler transport.Handler, address string) <-chan *jsonrpc.Response {
		done := make(chan *jsonrpc.Response, 1)
		go func() {
			response := &jsonrpc.Response{}
			handler.Serve(context.Background(), newRequest(1, schema.MethodBridgeCreate, `{"kind":"sender","address":"`+address+`"}`), response)
			done <- response
		}()
		return done
	}

	firstDone := create(first, "10.0.0.5:5004")
	time.Sleep(100 * time.Millisecond)
	secondDone := create(second, "10.0.0.6:5004")
	time.Sleep(20 * time.Millisecond)

	notification, err := jsonrpc.NewNotification(schema.MethodNotificationCancel, &schema.CancelledNotificationParams{RequestId: 1})
	require.NoError(t, err)
	first.OnNotification(context.Background(), notification)

	response := <-firstDone
	require.NotNil(t, response.Error, "the cancelled connection gives up")
	assert.EqualValues(t, schema.BackendFault, response.Error.Code)

	response = <-secondDone
	assert.Nil(t, response.Error, "the other connection reusing id 1 is untouched")
	assert.Equal(t, 1, memory.Len(model.Sender))
}

func TestHandler_SetLevel(t *testing.T) {
	client := &recorder{}
	srv, err := server.New(server.WithNewImplementer(implementer.New().NewImplementer))
	require.NoError(t, err)
	handler := srv.NewHandler(context.Background(), client)

	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), newRequest(1, schema.MethodLoggingSetLevel, `{"level":"verbose"}`), response)
	require.NotNil(t, response.Error)
	assert.EqualValues(t, jsonrpc.InvalidParams, response.Error.Code)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			level := schema.LoggingLevelDebug
			if i%2 == 0 {
				level = schema.LoggingLevelError
			}
			params, _ := json.Marshal(&schema.SetLevelRequestParams{Level: level})
			handler.Serve(context.Background(), newRequest(100+i, schema.MethodLoggingSetLevel, string(params)), &jsonrpc.Response{})
		}(i)
		go func(i int) {
			defer wg.Done()
			address := fmt.Sprintf(`{"kind":"receiver","address":"127.0.0.1:%d"}`, 5000+i)
			handler.Serve(context.Background(), newRequest(200+i, schema.MethodBridgeCreate, address), &jsonrpc.Response{})
		}(i)
	}
	wg.Wait()

	response = &jsonrpc.Response{}
	handler.Serve(context.Background(), newRequest(2, schema.MethodLoggingSetLevel, `{"level":"error"}`), response)
	require.Nil(t, response.Error)
	before := len(client.methods())
	handler.Serve(context.Background(), newRequest(3, schema.MethodBridgeCreate, `{"kind":"sender","address":"10.0.0.5:5004"}`), &jsonrpc.Response{})
	assert.Len(t, client.methods(), before)
}
