package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/viant/jsonrpc"

	"github.com/misteriaud/passeri/internal/logging"
	"github.com/misteriaud/passeri/schema"
)

// Handler serves backend initiated traffic: it forwards log notifications and
// rejects requests, since the client exposes no methods to the backend.
type Handler struct {
	logger   *slog.Logger
	listener func(ctx context.Context, message *schema.LoggingMessageNotificationParams)
}

// Serve handles backend requests
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = request.Jsonrpc
	response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method %s not found", request.Method), nil)
}

// OnNotification handles notification
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	if notification.Method != schema.MethodNotificationMessage {
		h.logger.Debug("ignored notification", "method", notification.Method)
		return
	}
	message := &schema.LoggingMessageNotificationParams{}
	if err := json.Unmarshal(notification.Params, message); err != nil {
		h.logger.Warn("invalid log notification", "error", err)
		return
	}
	h.logger.Log(ctx, slogLevel(message.Level), "backend", "logger", message.Logger, "data", message.Data)
	if h.listener != nil {
		h.listener(ctx, message)
	}
}

func slogLevel(level schema.LoggingLevel) slog.Level {
	switch level.Ordinal() {
	case schema.LoggingLevelDebug.Ordinal():
		return slog.LevelDebug
	case schema.LoggingLevelWarning.Ordinal():
		return slog.LevelWarn
	case schema.LoggingLevelError.Ordinal():
		return slog.LevelError
	}
	return slog.LevelInfo
}

// HandlerOption configures Handler.
type HandlerOption func(h *Handler)

// WithHandlerLogger sets the logger backend log notifications are written to.
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithLogListener registers a callback invoked for every backend log notification.
func WithLogListener(listener func(ctx context.Context, message *schema.LoggingMessageNotificationParams)) HandlerOption {
	return func(h *Handler) {
		h.listener = listener
	}
}

// NewHandler creates a handler for backend initiated traffic
func NewHandler(options ...HandlerOption) *Handler {
	ret := &Handler{logger: logging.Nop()}
	for _, option := range options {
		option(ret)
	}
	return ret
}
