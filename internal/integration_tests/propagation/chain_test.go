package integration_tests

import (
	"testing"

	"github.com/specialistvlad/statgridgo/internal/app"
	"github.com/specialistvlad/statgridgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Test for: a change walks through every variant in a chain.
func TestPropagation_ChainAcrossVariants(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"main.hcl": `
stat "independent" "gold" { value = 10 }
stat "parameter" "income" {}
stat "formula" "tier" { formula = "x * 2" }
stat "parameter" "score" {}

connect "gold" "income" { kind = "add" }
connect "income" "tier" { kind = "formula" }
connect "tier" "score" { kind = "add" }
`}

	// --- Act ---
	result := testutil.RunGraph(t, files, app.Mutation{Op: app.OpSet, Name: "gold", Value: 20})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertValues(t, result, map[string]float64{
		"gold":   20,
		"income": 20,
		"tier":   40,
		"score":  40,
	})
	require.Equal(t, 4, result.App.Recorder().Count(), "one change per stat")
}

// Test for: multiplicative and divisor sources, with a zero divisor ignored.
func TestPropagation_MultiplicativeCache(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"main.hcl": `
stat "independent" "base" { value = 6 }
stat "independent" "crit" { value = 3 }
stat "independent" "armor" { value = 0 }
stat "parameter" "damage" {}

connect "base" "damage" { kind = "add" }
connect "crit" "damage" { kind = "multy" }
connect "armor" "damage" { kind = "div" }
`}

	// --- Act ---
	before := testutil.RunGraph(t, files)
	after := testutil.RunGraph(t, files, app.Mutation{Op: app.OpSet, Name: "armor", Value: 2})

	// --- Assert ---
	require.NoError(t, before.Err)
	testutil.AssertValue(t, before, "damage", 18)
	require.NoError(t, after.Err)
	testutil.AssertValue(t, after, "damage", 9)
}

// Test for: named inputs feed a formula parameter.
func TestPropagation_NamedInputs(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"main.hcl": `
stat "independent" "str" { value = 4 }
stat "independent" "agi" { value = 3 }
stat "formula_parameter" "power" {
  formula = "input.str * 2 + input.agi"
}

connect "str" "power" {
  kind  = "named_input"
  input = "str"
}
connect "agi" "power" {
  kind  = "named_input"
  input = "agi"
}
`}

	// --- Act ---
	result := testutil.RunGraph(t, files, app.Mutation{Op: app.OpModify, Name: "str", Value: 1})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertValue(t, result, "power", 13)
}

// Test for: a gate passes its input only while the condition holds.
func TestPropagation_GateHoldsWhenClosed(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"main.hcl": `
stat "independent" "gold" { value = 25 }
stat "independent" "multiplier" { value = 2 }
stat "independent" "unlock_at" { value = 40 }
stat "parameter" "income" {}
stat "gate" "unlock" {}

connect "gold" "income" { kind = "add" }
connect "multiplier" "income" { kind = "multy" }
connect "unlock_at" "unlock" { kind = "gate_threshold" }
connect "income" "unlock" { kind = "gate_value" }
`}

	// --- Act ---
	result := testutil.RunGraph(t, files,
		app.Mutation{Op: app.OpSet, Name: "gold", Value: 30},
		app.Mutation{Op: app.OpSet, Name: "gold", Value: 10},
	)

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertValues(t, result, map[string]float64{
		"income": 20,
		"unlock": 60,
	})
}

// Test for: a diamond converges on the sum of both paths.
func TestPropagation_Diamond(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"main.hcl": `
stat "independent" "root" { value = 1 }
stat "parameter" "left" {}
stat "parameter" "right" {}
stat "parameter" "sink" {}

connect "root" "left" { kind = "add" }
connect "root" "right" { kind = "add" }
connect "left" "sink" { kind = "add" }
connect "right" "sink" { kind = "add" }
`}

	// --- Act ---
	result := testutil.RunGraph(t, files, app.Mutation{Op: app.OpSet, Name: "root", Value: 5})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertValue(t, result, "sink", 10)
	testutil.AssertOutputLine(t, result, "sink = 10")
}

// Test for: additive changes on a parameter reach its dependents.
func TestPropagation_ParameterAdditive(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"main.hcl": `
stat "independent" "factor" { value = 3 }
stat "parameter" "base" {}
stat "parameter" "total" {}

connect "factor" "total" { kind = "multy" }
connect "base" "total" { kind = "add" }
`}

	// --- Act ---
	result := testutil.RunGraph(t, files, app.Mutation{Op: app.OpAdd, Name: "base", Value: 2})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertValues(t, result, map[string]float64{"base": 2, "total": 6})
}
