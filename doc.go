// Package passeri provides high-level helpers for driving a network MIDI bridge
// backend.
//
// It glues the command client, controller and server packages to concrete
// JSON-RPC transports and configuration structures. It exposes two primary
// entry points:
//  1. NewClient – returns a command client connected to a backend and
//  2. NewServer – returns a backend server for a given implementer.
//
// Both constructors accept option structures that can be populated from CLI
// flags, YAML files (LoadClientOptions, LoadServerOptions) or PASSERI_*
// environment variables.
//
// Example:
//
//	options, _ := passeri.LoadClientOptions(ctx, "passeri.yaml")
//	cli, _ := passeri.NewClient(ctx, options, nil)
//	ctrl := controller.New(cli, registry.New())
package passeri
