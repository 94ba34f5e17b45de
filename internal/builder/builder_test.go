package builder

import (
	"context"
	"testing"

	"github.com/specialistvlad/statgridgo/internal/config"
	"github.com/specialistvlad/statgridgo/internal/dag"
	"github.com/specialistvlad/statgridgo/internal/engine"
	"github.com/specialistvlad/statgridgo/internal/hcl_adapter"
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, src string) *config.Model {
	t.Helper()
	m, err := hcl_adapter.NewLoader().LoadSource(context.Background(), []byte(src), "graph.hcl")
	require.NoError(t, err)
	return m
}

func TestBuild_DocumentedGraph(t *testing.T) {
	m := load(t, `
stat "independent" "gold" { value = 25 }
stat "independent" "str" { value = 4 }
stat "independent" "agi" { value = 3 }
stat "independent" "multiplier" { value = 2 }
stat "parameter" "income" {}
stat "formula" "tier" { formula = "floor(x / 10)" }
stat "formula_parameter" "power" {
  formula = "input.str * 2 + input.agi"
  inputs  = { str = 0, agi = 0 }
}
stat "gate" "unlock" {
  base_value      = 0
  above_threshold = true
}
stat "independent" "unlock_at" { value = 40 }

connect "gold" "income" { kind = "add" }
connect "multiplier" "income" { kind = "multy" }
connect "gold" "tier" { kind = "formula" }
connect "str" "power" {
  kind  = "named_input"
  input = "str"
}
connect "agi" "power" {
  kind  = "named_input"
  input = "agi"
}
connect "unlock_at" "unlock" { kind = "gate_threshold" }
connect "income" "unlock" { kind = "gate_value" }
`)
	eng := engine.New()
	reg, topo, err := Build(context.Background(), eng, m)
	require.NoError(t, err)
	require.NotNil(t, reg)
	require.Equal(t, 9, topo.Len())
	affected, err := topo.Downstream("gold")
	require.NoError(t, err)
	assert.Equal(t, []string{"income", "tier", "unlock"}, affected)

	assert.Equal(t, map[string]float64{
		"gold":       25,
		"str":        4,
		"agi":        3,
		"multiplier": 2,
		"income":     50,
		"tier":       2,
		"power":      11,
		"unlock":     50,
		"unlock_at":  40,
	}, reg.Values())
	assert.Equal(t, 7, reg.EdgeCount())

	ctx := context.Background()
	require.NoError(t, eng.SetIndependentByName(ctx, reg, "gold", 10))
	income, _ := reg.Lookup("income")
	assert.Equal(t, 20.0, income.Value())
	unlock, _ := reg.Lookup("unlock")
	assert.Equal(t, 50.0, unlock.Value(), "gate closed below 40 and holds")
	tier, _ := reg.Lookup("tier")
	assert.Equal(t, 1.0, tier.Value())
}

func TestBuild_ConfigErrorsAreCollected(t *testing.T) {
	m := load(t, `
stat "independent" "a" { value = 1 }
stat "parameter" "a" {}
stat "parameter" "p" {}
stat "formula" "f" { formula = "x" }
stat "independent" "b" {}

connect "a" "p" { kind = "add" }
connect "p" "b" { kind = "add" }
connect "a" "f" { kind = "add" }
connect "a" "p" { kind = "add" }
`)
	reg, _, err := Build(context.Background(), engine.New(), m)
	require.NotNil(t, reg, "configuration errors do not abort the build")
	require.Error(t, err)

	require.ErrorIs(t, err, registry.ErrDuplicateStat)
	require.ErrorIs(t, err, engine.ErrIndependentTarget)
	require.ErrorIs(t, err, engine.ErrIncompatibleTarget)
	assert.Contains(t, err.Error(), "graph.hcl:3")

	a, _ := reg.Lookup("a")
	assert.Equal(t, stat.KindIndependent, a.Kind(), "first declaration wins")
	p, _ := reg.Lookup("p")
	assert.Equal(t, 1.0, p.Value(), "duplicate edge applied once")
	assert.Equal(t, 1, reg.EdgeCount())
}

func TestBuild_UnknownStatAborts(t *testing.T) {
	m := load(t, `
stat "parameter" "p" {}
connect "ghost" "p" { kind = "add" }
`)
	reg, topo, err := Build(context.Background(), engine.New(), m)
	require.ErrorIs(t, err, registry.ErrStatNotFound)
	assert.Nil(t, reg)
	assert.Nil(t, topo)
}

func TestBuild_CycleRejected(t *testing.T) {
	m := load(t, `
stat "independent" "seed" {}
stat "parameter" "a" {}
stat "parameter" "b" {}
connect "seed" "a" { kind = "add" }
connect "a" "b" { kind = "add" }
connect "b" "a" { kind = "multy" }
`)
	reg, _, err := Build(context.Background(), engine.New(), m)
	require.ErrorIs(t, err, dag.ErrCycle)
	assert.Contains(t, err.Error(), "a -> b -> a")
	assert.Nil(t, reg)
}

func TestTopology(t *testing.T) {
	m := &config.Model{
		Stats: []*config.Stat{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		Connections: []*config.Connection{
			{Source: "a", Target: "b", Kind: registry.KindAdd},
			{Source: "a", Target: "a", Kind: registry.KindAdd},
			{Source: "b", Target: "c", Kind: registry.KindMulty},
			{Source: "ghost", Target: "c", Kind: registry.KindAdd},
		},
	}
	g, err := Topology(m)
	require.NoError(t, err)
	down, err := g.Downstream("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, down)

	deps, err := g.Dependencies("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, deps, "connections from undeclared stats are left out")
	dependents, err := g.Dependents("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, dependents, "self connections are left out")
}
