// Package implementer provides an in-memory bridge backend. It validates and
// normalizes addresses, assigns identifiers and tracks activation, without
// touching the network or MIDI devices. It backs tests, demos and the
// passeri-backend binary.
package implementer
