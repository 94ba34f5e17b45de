package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/statgridgo/internal/stat"
)

var (
	// ErrDuplicateStat is returned when a stat name is registered twice.
	ErrDuplicateStat = errors.New("stat already registered")
	// ErrStatNotFound is returned when a required stat does not exist.
	ErrStatNotFound = errors.New("stat not found")
)

// Connections holds all live stat instances of one graph by name and the
// directed edges between them.
type Connections struct {
	stats map[string]stat.Stat
	order []string          // registration order of stat names
	edges map[string][]Edge // Key: source name, Value: outgoing edges in insertion order
}

// New creates a new, empty registry.
func New() *Connections {
	return &Connections{
		stats: make(map[string]stat.Stat),
		edges: make(map[string][]Edge),
	}
}

// Register stores a stat under its name. It fails without mutating the
// registry if the name is already taken.
func (c *Connections) Register(s stat.Stat) error {
	name := s.Name()
	if _, exists := c.stats[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStat, name)
	}
	c.stats[name] = s
	c.order = append(c.order, name)
	return nil
}

// Lookup retrieves a stat by name.
func (c *Connections) Lookup(name string) (stat.Stat, bool) {
	s, ok := c.stats[name]
	return s, ok
}

// LookupOrFail retrieves a stat that the caller expects to exist. A missing
// stat indicates a broken initialization order and is reported as
// ErrStatNotFound.
func (c *Connections) LookupOrFail(name string) (stat.Stat, error) {
	s, ok := c.stats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStatNotFound, name)
	}
	return s, nil
}

// AddEdge appends an edge to the source's outgoing list. It returns false and
// leaves the list unchanged if an identical edge already exists.
func (c *Connections) AddEdge(source string, e Edge) bool {
	if c.HasEdge(source, e) {
		return false
	}
	c.edges[source] = append(c.edges[source], e)
	return true
}

// HasEdge reports whether the exact edge is already filed under source.
func (c *Connections) HasEdge(source string, e Edge) bool {
	return slices.Contains(c.edges[source], e)
}

// Edges returns a copy of the source's outgoing edges in insertion order.
func (c *Connections) Edges(source string) []Edge {
	return slices.Clone(c.edges[source])
}

// Names returns all stat names in registration order.
func (c *Connections) Names() []string {
	return slices.Clone(c.order)
}

// Len returns the number of registered stats.
func (c *Connections) Len() int {
	return len(c.stats)
}

// EdgeCount returns the total number of edges.
func (c *Connections) EdgeCount() int {
	n := 0
	for _, out := range c.edges {
		n += len(out)
	}
	return n
}

// Values returns a snapshot of every stat's current value.
func (c *Connections) Values() map[string]float64 {
	values := make(map[string]float64, len(c.stats))
	for name, s := range c.stats {
		values[name] = s.Value()
	}
	return values
}
