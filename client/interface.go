package client

import (
	"context"

	"github.com/misteriaud/passeri/identifier"
	"github.com/misteriaud/passeri/model"
	"github.com/misteriaud/passeri/schema"
)

// Interface defines the command client operations
type Interface interface {
	// Ping checks the backend is reachable
	Ping(ctx context.Context) error

	// SetLevel sets the minimum level of backend log notifications
	SetLevel(ctx context.Context, level schema.LoggingLevel) error

	// CreateBridge binds a new bridge and returns the backend assigned id with the confirmed address
	CreateBridge(ctx context.Context, kind model.Kind, address, label string) (identifier.ID, string, error)

	// RemoveBridge tears a bridge down
	RemoveBridge(ctx context.Context, kind model.Kind, id identifier.ID) error

	// ActivateSender makes a sender start listening
	ActivateSender(ctx context.Context, id identifier.ID) error

	// ActivateReceiver makes a receiver start receiving
	ActivateReceiver(ctx context.Context, id identifier.ID) error
}

// Ensure Client implements Interface
var _ Interface = (*Client)(nil)
