package config

import (
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
)

// Model is a whole graph definition.
type Model struct {
	Stats       []*Stat
	Connections []*Connection
}

// Stat describes one stat to create. Only the fields relevant to Kind are
// used.
type Stat struct {
	Kind stat.Kind
	Name string
	// Owner is the `<prefix>_<entity>` part of an entity-scoped name, empty
	// for global stats.
	Owner string
	// Origin is a human readable source location, e.g. "graph.hcl:3,1-25".
	Origin string

	// Independent.
	Value float64

	// Formula and FormulaParameter. FormulaSource is kept for diagnostics.
	FormulaSource string
	Argument      stat.Formula
	InputsFormula stat.InputsFormula
	Inputs        stat.Inputs

	// Gate.
	BaseValue      float64
	AboveThreshold bool
}

// Connection describes one edge to replay, in declaration order.
type Connection struct {
	Source string
	Target string
	Kind   registry.Kind
	Input  string
	Origin string
}

// StatNames returns the names of every stat in declaration order.
func (m *Model) StatNames() []string {
	names := make([]string, 0, len(m.Stats))
	for _, s := range m.Stats {
		names = append(names, s.Name)
	}
	return names
}

// Merge appends the stats and connections of other.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Stats = append(m.Stats, other.Stats...)
	m.Connections = append(m.Connections, other.Connections...)
}
