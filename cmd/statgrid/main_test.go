package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/statgridgo/internal/cli"
	"github.com/stretchr/testify/require"
)

func writeGraph(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600), "failed to set up test file")
	return path
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	path := writeGraph(t, `
stat "independent" "bld_1__workers" { value = 3 }
stat "independent" "bld_1__efficiency" { value = 2 }
stat "parameter" "bld_1__output" {}
connect "bld_1__workers" "bld_1__output" { kind = "add" }
connect "bld_1__efficiency" "bld_1__output" { kind = "multy" }
`)
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	err := run(context.Background(), out, logs, []string{"-modify", "bld_1__workers=2", path})

	require.NoError(t, err)
	require.Equal(t, "bld_1__efficiency = 2\nbld_1__output = 10\nbld_1__workers = 5\n", out.String())
}

func TestRun_Preview(t *testing.T) {
	t.Parallel()

	path := writeGraph(t, `
stat "independent" "a" { value = 1 }
stat "parameter" "b" {}
connect "a" "b" { kind = "sub" }
`)
	out := &bytes.Buffer{}

	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-preview", "-set", "a=4", path})

	require.NoError(t, err)
	require.Equal(t, "a: 1 -> 4\nb: -1 -> -4\n", out.String())
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	invalidHCL := `
		stat "independent" "a" {
		// Missing closing brace here
	`
	path := writeGraph(t, invalidHCL)

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{path})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
