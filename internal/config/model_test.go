package config

import (
	"testing"

	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
	"github.com/stretchr/testify/require"
)

func TestModel_MergeKeepsOrder(t *testing.T) {
	a := &Model{
		Stats:       []*Stat{{Kind: stat.KindIndependent, Name: "gold"}},
		Connections: []*Connection{{Source: "gold", Target: "income", Kind: registry.KindAdd}},
	}
	b := &Model{
		Stats: []*Stat{{Kind: stat.KindParameter, Name: "income"}, {Kind: stat.KindGate, Name: "unlock"}},
	}

	a.Merge(b)
	a.Merge(nil)

	require.Equal(t, []string{"gold", "income", "unlock"}, a.StatNames())
	require.Len(t, a.Connections, 1)
}
