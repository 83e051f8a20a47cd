package schema

import (
	"github.com/viant/jsonrpc"
)

const (
	// BackendFault is returned for any backend side failure not covered by a more specific code.
	BackendFault = -32000
	// BridgeNotFound is returned when a request names an identifier unknown to the backend.
	BridgeNotFound = -32002
)

// NewBridgeNotFound creates a bridge not found error
func NewBridgeNotFound(kind, id string) *jsonrpc.Error {
	return jsonrpc.NewError(BridgeNotFound, kind+" not found: "+id, map[string]interface{}{"kind": kind, "id": id})
}

// NewBackendFault creates a generic backend failure
func NewBackendFault(message string) *jsonrpc.Error {
	return jsonrpc.NewError(BackendFault, message, nil)
}

// NewInvalidField creates an invalid params error naming the offending field
func NewInvalidField(field, reason string) *jsonrpc.Error {
	return jsonrpc.NewError(jsonrpc.InvalidParams, "invalid "+field+": "+reason, map[string]interface{}{"field": field})
}
