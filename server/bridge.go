package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"

	"github.com/misteriaud/passeri/schema"
)

func decodeParams[P any](request *jsonrpc.Request) (*P, *jsonrpc.Error) {
	params := new(P)
	if len(request.Params) == 0 {
		return nil, jsonrpc.NewInvalidParamsError("missing params", nil)
	}
	if err := json.Unmarshal(request.Params, params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), nil)
	}
	return params, nil
}

// CreateBridge handles the bridge/create method
func (h *Handler) CreateBridge(ctx context.Context, request *jsonrpc.Request) (*schema.CreateBridgeResult, *jsonrpc.Error) {
	params, rpcErr := decodeParams[schema.CreateBridgeRequestParams](request)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return h.implementer.CreateBridge(ctx, params)
}

// RemoveBridge handles the bridge/remove method
func (h *Handler) RemoveBridge(ctx context.Context, request *jsonrpc.Request) (*schema.Ack, *jsonrpc.Error) {
	params, rpcErr := decodeParams[schema.RemoveBridgeRequestParams](request)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return h.implementer.RemoveBridge(ctx, params)
}

// SenderListen handles the sender/listen method
func (h *Handler) SenderListen(ctx context.Context, request *jsonrpc.Request) (*schema.Ack, *jsonrpc.Error) {
	params, rpcErr := decodeParams[schema.ActivateRequestParams](request)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return h.implementer.SenderListen(ctx, params)
}

// ReceiverReceive handles the receiver/receive method
func (h *Handler) ReceiverReceive(ctx context.Context, request *jsonrpc.Request) (*schema.Ack, *jsonrpc.Error) {
	params, rpcErr := decodeParams[schema.ActivateRequestParams](request)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return h.implementer.ReceiverReceive(ctx, params)
}
