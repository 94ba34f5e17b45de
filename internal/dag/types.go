package dag

import (
	"errors"
	"sync"
)

// ErrCycle is returned by DetectCycles.
var ErrCycle = errors.New("cycle detected")

// Graph is a collection of nodes and directed edges between them. All
// operations on the graph are concurrency-safe.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
	// order records insertion order so traversals are deterministic.
	order []string
}

// node is a single vertex. Interaction goes through the Graph API by ID.
type node struct {
	id string
	// deps holds the nodes with an edge into this one (predecessors).
	deps map[string]*node
	// dependents holds the nodes this one has an edge to (successors).
	dependents map[string]*node
}
