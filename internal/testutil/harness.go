package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/statgridgo/internal/app"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunGraph writes files (relative path -> content) into a temporary
// directory and runs the application on it with the given mutations.
func RunGraph(t *testing.T, files map[string]string, mutations ...app.Mutation) *HarnessResult {
	t.Helper()
	return RunGraphWithConfig(context.Background(), t, files, app.Config{Mutations: mutations})
}

// RunGraphWithConfig is RunGraph with full control over the app config.
// GraphPaths is always replaced by the temporary directory.
func RunGraphWithConfig(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg.GraphPaths = []string{root}
	cfg.LogFormat = "text"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	testApp, out, logs := app.SetupAppTest(t, appConfig)

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application panicked | %v", r)
			}
		}()
		runErr = testApp.Run(ctx)
	}()

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       testApp,
	}
}
