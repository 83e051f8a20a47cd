package implementer

import (
	"context"
	"net/netip"

	"github.com/viant/jsonrpc"

	"github.com/misteriaud/passeri/identifier"
	"github.com/misteriaud/passeri/model"
	"github.com/misteriaud/passeri/schema"
	"github.com/misteriaud/passeri/server"
)

// session serves one client connection against the shared Memory state.
type session struct {
	*Memory
	logger *server.Logger
}

func (s *session) begin(ctx context.Context, method string) *jsonrpc.Error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.fault(method)
}

// CreateBridge binds a new bridge and returns its identifier with the normalized address.
func (s *session) CreateBridge(ctx context.Context, params *schema.CreateBridgeRequestParams) (*schema.CreateBridgeResult, *jsonrpc.Error) {
	if !params.Kind.IsValid() {
		return nil, schema.NewInvalidField("kind", params.Kind.String())
	}
	addrPort, err := netip.ParseAddrPort(params.Address)
	if err != nil {
		return nil, schema.NewInvalidField("address", err.Error())
	}
	if rpcErr := s.begin(ctx, schema.MethodBridgeCreate); rpcErr != nil {
		return nil, rpcErr
	}
	id := s.nextID()
	item := entry{kind: params.Kind, address: addrPort.String(), label: params.Label}
	s.bridges[params.Kind].Put(id, item)
	_ = s.logger.Info(ctx, map[string]interface{}{"event": "created", "kind": params.Kind.String(), "id": id.String(), "address": item.address})
	return &schema.CreateBridgeResult{Id: id.String(), Address: item.address}, nil
}

// RemoveBridge tears down a bridge of the given kind.
func (s *session) RemoveBridge(ctx context.Context, params *schema.RemoveBridgeRequestParams) (*schema.Ack, *jsonrpc.Error) {
	if !params.Kind.IsValid() {
		return nil, schema.NewInvalidField("kind", params.Kind.String())
	}
	id, rpcErr := parseID(params.Id)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if rpcErr = s.begin(ctx, schema.MethodBridgeRemove); rpcErr != nil {
		return nil, rpcErr
	}
	if _, ok := s.bridges[params.Kind].Delete(id); !ok {
		return nil, schema.NewBridgeNotFound(params.Kind.String(), params.Id)
	}
	_ = s.logger.Info(ctx, map[string]interface{}{"event": "removed", "kind": params.Kind.String(), "id": id.String()})
	return &schema.Ack{}, nil
}

// SenderListen starts a sender.
func (s *session) SenderListen(ctx context.Context, params *schema.ActivateRequestParams) (*schema.Ack, *jsonrpc.Error) {
	return s.activate(ctx, schema.MethodSenderListen, model.Sender, params)
}

// ReceiverReceive starts a receiver.
func (s *session) ReceiverReceive(ctx context.Context, params *schema.ActivateRequestParams) (*schema.Ack, *jsonrpc.Error) {
	return s.activate(ctx, schema.MethodReceiverReceive, model.Receiver, params)
}

// activate marks the bridge active. Activating an already active bridge is acknowledged.
func (s *session) activate(ctx context.Context, method string, kind model.Kind, params *schema.ActivateRequestParams) (*schema.Ack, *jsonrpc.Error) {
	id, rpcErr := parseID(params.Id)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if rpcErr = s.begin(ctx, method); rpcErr != nil {
		return nil, rpcErr
	}
	found := false
	s.bridges[kind].Update(id, func(item entry, ok bool) (entry, bool) {
		if !ok {
			return item, false
		}
		found = true
		item.active = true
		return item, true
	})
	if !found {
		return nil, schema.NewBridgeNotFound(kind.String(), params.Id)
	}
	_ = s.logger.Info(ctx, map[string]interface{}{"event": "started", "kind": kind.String(), "id": id.String()})
	return &schema.Ack{}, nil
}

func parseID(text string) (identifier.ID, *jsonrpc.Error) {
	id, err := identifier.Parse(text)
	if err != nil {
		return identifier.Nil, schema.NewInvalidField("id", err.Error())
	}
	return id, nil
}
