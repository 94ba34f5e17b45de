// Package feed turns engine change notifications into something other parts
// of the system can consume: an in-memory log for tooling and tests, and a
// mirror that pushes every change to a socket.io server for UI sync.
package feed
