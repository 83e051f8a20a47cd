// Package backend runs the in-memory bridge backend as a standalone process.
//
// The backend speaks the bridge command protocol over stdio, SSE or streamable
// HTTP. It keeps bridges in memory and is meant for development, demos and
// integration tests of clients.
package backend
