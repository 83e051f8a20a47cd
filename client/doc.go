// Package client implements the bridge command client.
//
// It wraps a JSON-RPC transport and adds:
//   - One typed method per backend command (create, remove, listen, receive).
//   - A per-call timeout and cancellation forwarded to the backend as
//     notifications/cancelled.
//   - An explicit, bounded retry policy for transport failures (off by default).
//   - Mapping of backend faults onto model errors.
//
// The package is transport-agnostic; callers supply any implementation that satisfies
// the jsonrpc/transport.Transport interface.
//
// Example:
//
//	sseTransport, _ := sse.New(ctx, "http://127.0.0.1:5000/sse")
//	cli := client.New(sseTransport, client.WithTimeout(5*time.Second))
//	id, address, err := cli.CreateBridge(ctx, model.Sender, "10.0.0.5:5004", "")
package client
