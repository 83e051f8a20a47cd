package server

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"

	"github.com/misteriaud/passeri/internal/conv"
)

// Loopback is an in-process client transport bound directly to a server
// handler. Requests are served on the caller goroutine; notifications flow
// both ways so cancellation and log forwarding behave as over a real wire.
type Loopback struct {
	server transport.Handler
	client transport.Handler
	seq    atomic.Uint64
}

// Loopback connects an in-process client. client receives backend
// notifications and requests; it may be nil.
func (s *Server) Loopback(ctx context.Context, client transport.Handler) *Loopback {
	ret := &Loopback{client: client}
	ret.server = s.NewHandler(ctx, &loopbackPeer{loopback: ret})
	return ret
}

// Send serves request with the bound server handler.
func (l *Loopback) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if request.Jsonrpc == "" {
		request.Jsonrpc = jsonrpc.Version
	}
	if conv.AsInt(request.Id) == 0 {
		request.Id = l.seq.Add(1)
	}
	response := &jsonrpc.Response{Id: request.Id, Jsonrpc: jsonrpc.Version}
	l.server.Serve(ctx, request, response)
	return response, nil
}

// Notify delivers notification to the bound server handler.
func (l *Loopback) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	l.server.OnNotification(ctx, notification)
	return nil
}

// loopbackPeer is the server side view of the loopback client.
type loopbackPeer struct {
	loopback *Loopback
}

func (p *loopbackPeer) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	if p.loopback.client == nil {
		return nil, fmt.Errorf("loopback client does not serve %v", request.Method)
	}
	response := &jsonrpc.Response{Id: request.Id, Jsonrpc: jsonrpc.Version}
	p.loopback.client.Serve(ctx, request, response)
	return response, nil
}

func (p *loopbackPeer) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	if p.loopback.client != nil {
		p.loopback.client.OnNotification(ctx, notification)
	}
	return nil
}
