// Package live streams reconciliation operations over WebSocket.
//
// A Session is an rdom.Container whose mutations travel to a remote client
// as JSON frames instead of touching a local tree: bind a list or swap to
// the session and every flush's operations are batched into one frame. The
// Server upgrades HTTP connections, runs one runtime per session, and
// mounts the application via a user-supplied callback.
package live
