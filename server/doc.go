// Package server exposes a bridge backend over JSON-RPC.
//
// It dispatches bridge commands to an Implementer created per connection and
// adds the plumbing every backend needs:
//   - Transport (HTTP-SSE, Streamable HTTP, STDIO, in-process loopback)
//   - Request cancellation via notifications/cancelled
//   - Log forwarding via notifications/message
//   - CORS handling
//
// Callers typically construct a server via `server.New` and then expose it over
// HTTP or stdio:
//
//	s, _ := server.New(server.WithNewImplementer(memory.NewImplementer))
//	log.Fatal(s.HTTP(ctx, ":5000").ListenAndServe())
package server
