package engine

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
	"github.com/stretchr/testify/require"
)

// testContext returns a context whose logger writes to the returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("--- log output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), &buf
}

// counter records every change reported by the engine.
type counter struct {
	changes []Change
}

func (c *counter) StatChanged(ch Change) { c.changes = append(c.changes, ch) }

func (c *counter) touched(name string) int {
	n := 0
	for _, ch := range c.changes {
		if ch.Name == name {
			n++
		}
	}
	return n
}

func mustIndependent(t *testing.T, ctx context.Context, e *Engine, reg *registry.Connections, name string, v float64) *stat.Independent {
	t.Helper()
	s, err := e.CreateIndependent(ctx, reg, name, v)
	require.NoError(t, err)
	return s
}

func mustParameter(t *testing.T, ctx context.Context, e *Engine, reg *registry.Connections, name string) *stat.Parameter {
	t.Helper()
	p, err := e.CreateParameter(ctx, reg, name)
	require.NoError(t, err)
	return p
}

func mustConnect(t *testing.T, ctx context.Context, e *Engine, reg *registry.Connections, src, dst string, kind registry.Kind) {
	t.Helper()
	require.NoError(t, e.Connect(ctx, reg, src, dst, kind, ""))
}

// requireParameterConsistent checks value == add * cache exactly.
func requireParameterConsistent(t *testing.T, p *stat.Parameter) {
	t.Helper()
	require.Equal(t, p.Add()*p.MultiplicativeCache(), p.Value(), "parameter %s is inconsistent", p.Name())
}
