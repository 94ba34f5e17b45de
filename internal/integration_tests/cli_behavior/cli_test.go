package integration_tests

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/statgridgo/internal/app"
	"github.com/specialistvlad/statgridgo/internal/cli"
	"github.com/specialistvlad/statgridgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

const shopGraph = `
stat "independent" "gold" { value = 10 }
stat "parameter" "income" {}
connect "gold" "income" { kind = "add" }
`

// Test for: command-line flags reach the running app in order.
func TestCLI_FlagsDriveMutations(t *testing.T) {
	// --- Arrange ---
	var usage bytes.Buffer
	cfg, exit, err := cli.Parse([]string{
		"-set", "gold=3",
		"-modify", "gold=4",
		"-add", "income=1.5",
		"-g", "ignored-by-harness",
	}, &usage)
	require.NoError(t, err)
	require.False(t, exit)

	// --- Act ---
	result := testutil.RunGraphWithConfig(context.Background(), t, map[string]string{"shop.hcl": shopGraph}, app.Config{
		Mutations: cfg.Mutations,
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertValues(t, result, map[string]float64{"gold": 7, "income": 8.5})
	testutil.AssertOutputLine(t, result, "income = 8.5")
}

// Test for: -preview prints a diff and leaves the live graph untouched.
func TestCLI_PreviewPrintsDiff(t *testing.T) {
	// --- Arrange ---
	mutations := []app.Mutation{{Op: app.OpSet, Name: "gold", Value: 25}}

	// --- Act ---
	result := testutil.RunGraphWithConfig(context.Background(), t, map[string]string{"shop.hcl": shopGraph}, app.Config{
		Mutations: mutations,
		Preview:   true,
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Equal(t, "gold: 10 -> 25\nincome: 10 -> 25\n", result.Output)
	testutil.AssertValues(t, result, map[string]float64{"gold": 10, "income": 10})
}

// Test for: graph files are discovered recursively and merged.
func TestCLI_LoadsDirectoryTree(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"stats/base.hcl":    `stat "independent" "gold" { value = 2 }`,
		"stats/derived.hcl": `stat "parameter" "income" {}`,
		"links/all.hcl":     `connect "gold" "income" { kind = "add" }`,
		"README.md":         "not a graph file",
	}

	// --- Act ---
	result := testutil.RunGraph(t, files, app.Mutation{Op: app.OpModify, Name: "gold", Value: 1})

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Equal(t, "gold = 3\nincome = 3\n", result.Output)
}

// Test for: the binary-level entrypoint rejects a missing graph path.
func TestCLI_MissingGraphPath(t *testing.T) {
	// --- Arrange ---
	missing := filepath.Join(t.TempDir(), "nope.hcl")
	_, err := os.Stat(missing)
	require.True(t, os.IsNotExist(err))

	cfg, exit, err := cli.Parse([]string{missing}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	// --- Act ---
	cfg.LogFormat = "text"
	testApp, _, _ := app.SetupAppTest(t, cfg)
	runErr := testApp.Run(context.Background())

	// --- Assert ---
	require.ErrorContains(t, runErr, "failed to load graph definition")
}
