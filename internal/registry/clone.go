package registry

import (
	"slices"

	"github.com/specialistvlad/statgridgo/internal/stat"
)

// Clone creates a deep copy of the registry for hypothetical evaluation.
// Every stat is copied through stat.Stat.Clone and every edge slice is
// duplicated, so mutating the clone never affects src.
func Clone(src *Connections) *Connections {
	clone := &Connections{
		stats: make(map[string]stat.Stat, len(src.stats)),
		order: slices.Clone(src.order),
		edges: make(map[string][]Edge, len(src.edges)),
	}

	for name, s := range src.stats {
		clone.stats[name] = s.Clone()
	}
	for source, out := range src.edges {
		clone.edges[source] = slices.Clone(out)
	}

	return clone
}
