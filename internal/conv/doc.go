// Package conv collects tiny helper functions that are not part of the public API
// but aid internal conversions.
//
// At the moment it only exposes `AsInt` which attempts to coerce the various
// representations of a JSON-RPC request id into a plain `int`.
package conv
