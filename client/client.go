package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"

	"github.com/misteriaud/passeri/identifier"
	"github.com/misteriaud/passeri/internal/logging"
	"github.com/misteriaud/passeri/model"
	"github.com/misteriaud/passeri/schema"
)

// cancelNotifyTimeout bounds the cancel notification sent after the caller context ended.
const cancelNotifyTimeout = time.Second

type Client struct {
	transport transport.Transport
	timeout   time.Duration
	attempts  int
	backoff   time.Duration
	logger    *slog.Logger
	seq       atomic.Uint64
}

// Ping checks the backend is reachable
func (c *Client) Ping(ctx context.Context) error {
	_, err := send[schema.PingRequestParams, schema.Ack](ctx, c, schema.MethodPing, &schema.PingRequestParams{}, true)
	return err
}

// SetLevel sets the minimum level of backend log notifications
func (c *Client) SetLevel(ctx context.Context, level schema.LoggingLevel) error {
	_, err := send[schema.SetLevelRequestParams, schema.Ack](ctx, c, schema.MethodLoggingSetLevel, &schema.SetLevelRequestParams{Level: level}, true)
	return err
}

// CreateBridge binds a new bridge. It is never retried since the backend may
// have created the bridge even when the response was lost.
func (c *Client) CreateBridge(ctx context.Context, kind model.Kind, address, label string) (identifier.ID, string, error) {
	if !kind.IsValid() {
		return identifier.Nil, "", &model.ValidationError{Field: "kind", Reason: kind.String()}
	}
	if strings.TrimSpace(address) == "" {
		return identifier.Nil, "", &model.ValidationError{Field: "address", Reason: "empty"}
	}
	params := &schema.CreateBridgeRequestParams{Kind: kind, Address: address, Label: label}
	result, err := send[schema.CreateBridgeRequestParams, schema.CreateBridgeResult](ctx, c, schema.MethodBridgeCreate, params, false)
	if err != nil {
		return identifier.Nil, "", err
	}
	id, err := identifier.Parse(result.Id)
	if err != nil {
		return identifier.Nil, "", &model.BackendError{Method: schema.MethodBridgeCreate, Message: "invalid bridge id", Err: err}
	}
	if id.IsZero() {
		return identifier.Nil, "", &model.BackendError{Method: schema.MethodBridgeCreate, Message: "nil bridge id"}
	}
	if result.Address == "" {
		return identifier.Nil, "", &model.BackendError{Method: schema.MethodBridgeCreate, Message: "empty confirmed address"}
	}
	return id, result.Address, nil
}

// RemoveBridge tears a bridge down
func (c *Client) RemoveBridge(ctx context.Context, kind model.Kind, id identifier.ID) error {
	if err := validateTarget(kind, id); err != nil {
		return err
	}
	params := &schema.RemoveBridgeRequestParams{Kind: kind, Id: id.String()}
	_, err := send[schema.RemoveBridgeRequestParams, schema.Ack](ctx, c, schema.MethodBridgeRemove, params, true)
	return asNotFound(err, kind, id)
}

// ActivateSender makes a sender start listening
func (c *Client) ActivateSender(ctx context.Context, id identifier.ID) error {
	return c.activate(ctx, schema.MethodSenderListen, model.Sender, id)
}

// ActivateReceiver makes a receiver start receiving
func (c *Client) ActivateReceiver(ctx context.Context, id identifier.ID) error {
	return c.activate(ctx, schema.MethodReceiverReceive, model.Receiver, id)
}

// Activate dispatches to ActivateSender or ActivateReceiver according to kind.
func (c *Client) Activate(ctx context.Context, kind model.Kind, id identifier.ID) error {
	switch kind {
	case model.Sender:
		return c.ActivateSender(ctx, id)
	case model.Receiver:
		return c.ActivateReceiver(ctx, id)
	}
	return &model.ValidationError{Field: "kind", Reason: kind.String()}
}

func (c *Client) activate(ctx context.Context, method string, kind model.Kind, id identifier.ID) error {
	if err := validateTarget(kind, id); err != nil {
		return err
	}
	params := &schema.ActivateRequestParams{Id: id.String()}
	_, err := send[schema.ActivateRequestParams, schema.Ack](ctx, c, method, params, true)
	return asNotFound(err, kind, id)
}

func validateTarget(kind model.Kind, id identifier.ID) error {
	if !kind.IsValid() {
		return &model.ValidationError{Field: "kind", Reason: kind.String()}
	}
	if id.IsZero() {
		return &model.ValidationError{Field: "id", Reason: "nil identifier"}
	}
	return nil
}

// asNotFound maps a BridgeNotFound fault onto *model.NotFoundError.
func asNotFound(err error, kind model.Kind, id identifier.ID) error {
	var backendErr *model.BackendError
	if errors.As(err, &backendErr) && backendErr.Code == schema.BridgeNotFound {
		return &model.NotFoundError{Kind: kind, ID: id, Err: backendErr}
	}
	return err
}

type roundTrip struct {
	response *jsonrpc.Response
	err      error
}

// send marshals parameters, sends the request and unmarshals the result.
func send[P any, R any](ctx context.Context, client *Client, method string, parameters *P, retryable bool) (*R, error) {
	if client.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}
	attempts := 1
	if retryable {
		attempts = client.attempts
	}
	var response *jsonrpc.Response
	var err error
	for attempt := 1; ; attempt++ {
		response, err = client.sendOnce(ctx, method, parameters)
		if err == nil {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &model.BackendError{Method: method, Message: ctxErr.Error(), Err: ctxErr}
		}
		if attempt >= attempts {
			return nil, &model.BackendError{Method: method, Message: err.Error(), Err: err}
		}
		client.logger.Warn("retrying request", "method", method, "attempt", attempt, "error", err)
		if waitErr := sleep(ctx, client.backoff); waitErr != nil {
			return nil, &model.BackendError{Method: method, Message: waitErr.Error(), Err: waitErr}
		}
	}
	if response.Error != nil {
		return nil, &model.BackendError{Method: method, Code: int(response.Error.Code), Message: response.Error.Message, Err: response.Error}
	}
	var result R
	if len(response.Result) > 0 {
		if err = json.Unmarshal(response.Result, &result); err != nil {
			return nil, &model.BackendError{Method: method, Message: fmt.Sprintf("failed to decode result: %v", err), Err: err}
		}
	}
	return &result, nil
}

// sendOnce issues a single request and waits for its response or the end of ctx.
// When ctx ends first the backend is told to abandon the request.
func (c *Client) sendOnce(ctx context.Context, method string, parameters interface{}) (*jsonrpc.Response, error) {
	req, err := jsonrpc.NewRequest(method, parameters)
	if err != nil {
		return nil, err
	}
	id := c.seq.Add(1)
	req.Id = id

	done := make(chan roundTrip, 1)
	go func() {
		response, err := c.transport.Send(ctx, req)
		done <- roundTrip{response: response, err: err}
	}()
	select {
	case ret := <-done:
		if ret.err == nil && ret.response == nil {
			ret.err = errors.New("empty response")
		}
		return ret.response, ret.err
	case <-ctx.Done():
		c.cancelRequest(ctx, method, id)
		return nil, ctx.Err()
	}
}

func (c *Client) cancelRequest(ctx context.Context, method string, id uint64) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cancelNotifyTimeout)
	defer cancel()
	notification, err := jsonrpc.NewNotification(schema.MethodNotificationCancel, &schema.CancelledNotificationParams{
		RequestId: int(id),
		Reason:    ctx.Err().Error(),
	})
	if err == nil {
		err = c.transport.Notify(notifyCtx, notification)
	}
	if err != nil {
		c.logger.Debug("failed to cancel request", "method", method, "id", id, "error", err)
		return
	}
	c.logger.Debug("cancelled request", "method", method, "id", id, "reason", ctx.Err())
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// New creates a command client over transport.
func New(transport transport.Transport, options ...Option) *Client {
	ret := &Client{
		transport: transport,
		timeout:   DefaultTimeout,
		attempts:  1,
		logger:    logging.Nop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
