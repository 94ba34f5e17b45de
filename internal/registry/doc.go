// Package registry provides name-based storage for the stats of one
// dependency graph and the typed edges between them.
//
// A Connections value maps every stat name to its stat instance and every
// source name to the ordered list of its outgoing edges. It has no behavior
// beyond storage: recomputation lives in package engine, and cloning (see
// Clone) treats a Connections value as a plain, inspectable container.
//
// A registry is owned by a single game-state value and is not safe for
// concurrent use. Hypothetical previews work on a second, independent
// registry produced by Clone.
package registry
