package server

import (
	"context"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"

	"github.com/misteriaud/passeri/schema"
)

// Implementer executes bridge commands on behalf of a connected client.
type Implementer interface {
	CreateBridge(ctx context.Context, params *schema.CreateBridgeRequestParams) (*schema.CreateBridgeResult, *jsonrpc.Error)
	RemoveBridge(ctx context.Context, params *schema.RemoveBridgeRequestParams) (*schema.Ack, *jsonrpc.Error)
	SenderListen(ctx context.Context, params *schema.ActivateRequestParams) (*schema.Ack, *jsonrpc.Error)
	ReceiverReceive(ctx context.Context, params *schema.ActivateRequestParams) (*schema.Ack, *jsonrpc.Error)
}

// NewImplementer creates an implementer for a single client connection.
type NewImplementer func(ctx context.Context, notifier transport.Notifier, logger *Logger) (Implementer, error)
