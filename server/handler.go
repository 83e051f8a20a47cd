package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/syncmap"

	"github.com/misteriaud/passeri/internal/conv"
	"github.com/misteriaud/passeri/schema"
)

// Handler serves one client connection. Request ids are only unique per
// connection, so in-flight requests are tracked here rather than on Server.
type Handler struct {
	transport.Notifier
	*Logger
	*Server
	implementer    Implementer
	activeContexts *syncmap.Map[int, *activeContext]
	loggingLevel   *levelVar
	err            error
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(parent context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	if h.err != nil {
		response.Error = jsonrpc.NewInternalError(h.err.Error(), nil)
		return
	}
	if !h.implements(request.Method) {
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), nil)
		return
	}

	id := conv.AsInt(request.Id)
	ctx, cancel := context.WithCancel(parent)
	active, ctx := newActiveContext(ctx, cancel, request.Method)
	h.activeContexts.Put(id, active)
	defer h.release(id, active)

	h.logger.Debug("serving request", "id", id, "method", request.Method)
	switch request.Method {
	case schema.MethodPing:
		h.setResponse(response, &schema.Ack{}, nil)
	case schema.MethodLoggingSetLevel:
		result, err := h.SetLevel(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodBridgeCreate:
		result, err := h.CreateBridge(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodBridgeRemove:
		result, err := h.RemoveBridge(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodSenderListen:
		result, err := h.SenderListen(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodReceiverReceive:
		result, err := h.ReceiverReceive(ctx, request)
		h.setResponse(response, result, err)
	}
	if response.Error != nil {
		h.logger.Debug("request failed", "id", id, "method", request.Method, "code", response.Error.Code, slog.String("error", response.Error.Message))
	}
}

// cancelOperation cancels the in-flight request id of this connection.
func (h *Handler) cancelOperation(id int) {
	if active, ok := h.activeContexts.Get(id); ok {
		active.CancelFunc()
		h.activeContexts.Delete(id)
	}
}

// release ends a served request, leaving a newer request reusing id untouched.
func (h *Handler) release(id int, served *activeContext) {
	served.CancelFunc()
	if active, ok := h.activeContexts.Get(id); ok && active == served {
		h.activeContexts.Delete(id)
	}
}

func (h *Handler) implements(method string) bool {
	switch method {
	case schema.MethodPing, schema.MethodLoggingSetLevel:
		return true
	}
	for _, candidate := range schema.Methods {
		if candidate == method {
			return true
		}
	}
	return false
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), nil)
	}
}

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationCancel:
		if err := h.Cancel(ctx, notification); err != nil {
			h.logger.Warn("invalid cancel notification", "error", err.Message)
		}
	default:
		h.logger.Debug("ignored notification", "method", notification.Method)
	}
}
