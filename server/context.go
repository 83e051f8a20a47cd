package server

import (
	"context"
	"time"
)

type activeContext struct {
	context.Context
	context.CancelFunc
	method  string
	started time.Time
}

func newActiveContext(ctx context.Context, cancel context.CancelFunc, method string) (*activeContext, context.Context) {
	return &activeContext{
		Context:    ctx,
		CancelFunc: cancel,
		method:     method,
		started:    time.Now(),
	}, ctx
}
