// Package shell is an interactive console over the bridge controller. It
// reads one intent per line, forwards it to the controller and renders the
// registry as a table. Rendering is a projection of the registry only; the
// console never mutates bridges itself.
package shell
