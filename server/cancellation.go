package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"

	"github.com/misteriaud/passeri/schema"
)

// Cancel abandons the in-flight request named by a cancelled notification.
func (h *Handler) Cancel(ctx context.Context, notification *jsonrpc.Notification) *jsonrpc.Error {
	var params schema.CancelledNotificationParams
	if err := json.Unmarshal(notification.Params, &params); err != nil {
		return jsonrpc.NewParsingError(fmt.Sprintf("failed to parse notification: %v", err), nil)
	}
	if params.RequestId == 0 {
		return jsonrpc.NewInvalidParamsError("invalid requestId", nil)
	}
	if active, ok := h.activeContexts.Get(params.RequestId); ok {
		h.logger.Debug("cancelling request", "id", params.RequestId, "method", active.method, "reason", params.Reason)
	}
	h.cancelOperation(params.RequestId)
	return nil
}
