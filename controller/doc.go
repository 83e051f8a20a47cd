// Package controller turns user intents into backend commands and registry
// mutations.
//
// Each intent issues exactly one backend command and, only when the backend
// acknowledges it, applies exactly one registry mutation. Remove and Activate
// on the same identifier are serialized; intents on distinct identifiers run
// concurrently.
package controller
