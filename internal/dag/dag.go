package dag

import (
	"fmt"
	"slices"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a node with the given ID. Adding an existing ID does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.addNodeLocked(id)
}

func (g *Graph) addNodeLocked(id string) *node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// AddEdge creates a directed edge from fromID to toID. Both nodes must
// exist and must differ. Parallel edges collapse into one.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// Dependencies returns the sorted IDs with an edge into id.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedIDs(n.deps), nil
}

// Dependents returns the sorted IDs id has an edge to.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedIDs(n.dependents), nil
}

// Downstream returns every ID reachable from id, sorted.
func (g *Graph) Downstream(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	start, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	seen := make(map[string]*node)
	stack := []*node{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for depID, dep := range n.dependents {
			if _, ok := seen[depID]; !ok {
				seen[depID] = dep
				stack = append(stack, dep)
			}
		}
	}
	delete(seen, id)
	return sortedIDs(seen), nil
}

// DetectCycles returns an error wrapping ErrCycle that names the nodes of the
// first cycle found, in edge order. Nodes are visited in insertion order and
// successors in sorted order, so the result is deterministic.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: fully visited and not part of a cycle.
	// temporary: on the current recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var stack []string

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			start := slices.Index(stack, n.id)
			cycle := append(slices.Clone(stack[start:]), n.id)
			return fmt.Errorf("%w: %s", ErrCycle, strings.Join(cycle, " -> "))
		}

		temporary[n.id] = true
		stack = append(stack, n.id)

		for _, id := range sortedIDs(n.dependents) {
			if err := visit(n.dependents[id]); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}

func sortedIDs(m map[string]*node) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
