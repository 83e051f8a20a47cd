package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"

	"github.com/misteriaud/passeri/schema"
)

// SetLevel handles the logging/setLevel method
func (h *Handler) SetLevel(ctx context.Context, request *jsonrpc.Request) (*schema.Ack, *jsonrpc.Error) {
	var params schema.SetLevelRequestParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), nil)
	}
	if !params.Level.IsValid() {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("unsupported level: %q", params.Level), nil)
	}
	h.loggingLevel.Set(params.Level)
	return &schema.Ack{}, nil
}
