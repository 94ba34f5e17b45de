package hypothetical

import (
	"context"
	"math"
	"testing"

	"github.com/specialistvlad/statgridgo/internal/engine"
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type liveGraph struct {
	reg   *registry.Connections
	eng   *engine.Engine
	gold  *stat.Independent
	bonus *stat.Independent
	total *stat.Parameter
	other *stat.Parameter
}

// newLiveGraph builds gold -ADD-> total <-MULTY- bonus, plus an unrelated
// parameter that previews must leave alone.
func newLiveGraph(t *testing.T, observers ...engine.Observer) *liveGraph {
	t.Helper()
	ctx := context.Background()
	var opts []engine.Option
	for _, o := range observers {
		opts = append(opts, engine.WithObserver(o))
	}
	g := &liveGraph{reg: registry.New(), eng: engine.New(opts...)}

	var err error
	g.gold, err = g.eng.CreateIndependent(ctx, g.reg, "gold", 10)
	require.NoError(t, err)
	g.bonus, err = g.eng.CreateIndependent(ctx, g.reg, "bonus", 2)
	require.NoError(t, err)
	g.total, err = g.eng.CreateParameter(ctx, g.reg, "total")
	require.NoError(t, err)
	g.other, err = g.eng.CreateParameter(ctx, g.reg, "other")
	require.NoError(t, err)
	require.NoError(t, g.eng.Connect(ctx, g.reg, "gold", "total", registry.KindAdd, ""))
	require.NoError(t, g.eng.Connect(ctx, g.reg, "bonus", "total", registry.KindMulty, ""))
	require.Equal(t, 20.0, g.total.Value())
	return g
}

func TestPreview_DiffAndIsolation(t *testing.T) {
	ctx := context.Background()
	var liveChanges int
	g := newLiveGraph(t, engine.ObserverFunc(func(engine.Change) { liveChanges++ }))
	liveChanges = 0

	p := Begin(ctx, g.reg)
	require.NoError(t, p.SetIndependent(ctx, g.gold, 15))
	require.NoError(t, p.ModifyIndependentByName(ctx, "bonus", 1))

	v, err := p.Value("total")
	require.NoError(t, err)
	assert.Equal(t, 45.0, v)

	diff, err := p.Diff()
	require.NoError(t, err)
	assert.Equal(t, []Delta{
		{Name: "bonus", Live: 2, Hypothetical: 3},
		{Name: "gold", Live: 10, Hypothetical: 15},
		{Name: "total", Live: 20, Hypothetical: 45},
	}, diff)

	assert.Equal(t, 10.0, g.gold.Value(), "live graph must be untouched")
	assert.Equal(t, 20.0, g.total.Value())
	assert.Zero(t, liveChanges, "live observers must not see preview changes")
}

func TestPreview_NoChangesMeansEmptyDiff(t *testing.T) {
	ctx := context.Background()
	g := newLiveGraph(t)
	p := Begin(ctx, g.reg)

	require.NoError(t, p.SetIndependent(ctx, g.gold, 10))
	diff, err := p.Diff()
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestPreview_ParameterAdditive(t *testing.T) {
	ctx := context.Background()
	g := newLiveGraph(t)
	p := Begin(ctx, g.reg)

	require.NoError(t, p.ModifyParameterAdditive(ctx, g.total, 5))
	v, err := p.Value("total")
	require.NoError(t, err)
	assert.Equal(t, 30.0, v)
	assert.Equal(t, 10.0, g.total.Add())
}

func TestPreview_AddedStats(t *testing.T) {
	ctx := context.Background()
	g := newLiveGraph(t)
	p := Begin(ctx, g.reg)

	_, err := p.Engine().CreateIndependent(ctx, p.Registry(), "extra", 1)
	require.NoError(t, err)

	diff, err := p.Diff()
	require.NoError(t, err)
	require.Len(t, diff, 1)
	assert.Equal(t, Delta{Name: "extra", Hypothetical: 1, Added: true}, diff[0])
	_, ok := g.reg.Lookup("extra")
	assert.False(t, ok)
}

func TestPreview_LiveOnlyStats(t *testing.T) {
	ctx := context.Background()
	g := newLiveGraph(t)
	p := Begin(ctx, g.reg)

	_, err := g.eng.CreateIndependent(ctx, g.reg, "late", 4)
	require.NoError(t, err)

	diff, err := p.Diff()
	require.NoError(t, err)
	assert.Equal(t, []Delta{{Name: "late", Live: 4, LiveOnly: true}}, diff)
}

func TestPreview_NaNIsUnchanged(t *testing.T) {
	ctx := context.Background()
	g := newLiveGraph(t)
	require.NoError(t, g.eng.SetIndependent(ctx, g.reg, g.gold, math.NaN()))
	p := Begin(ctx, g.reg)

	diff, err := p.Diff()
	require.NoError(t, err)
	assert.Empty(t, diff)

	require.NoError(t, p.SetIndependentByName(ctx, "gold", 3))
	diff, err = p.Diff()
	require.NoError(t, err)
	names := make([]string, 0, len(diff))
	for _, d := range diff {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "gold")
}

func TestPreview_Errors(t *testing.T) {
	ctx := context.Background()
	g := newLiveGraph(t)
	p := Begin(ctx, g.reg)

	err := p.SetIndependentByName(ctx, "missing", 1)
	require.ErrorIs(t, err, registry.ErrStatNotFound)
	_, err = p.Value("missing")
	require.ErrorIs(t, err, registry.ErrStatNotFound)
	err = p.ModifyParameterAdditiveByName(ctx, "gold", 1)
	require.ErrorIs(t, err, engine.ErrWrongVariant)
}

func TestPreview_Clear(t *testing.T) {
	ctx := context.Background()
	g := newLiveGraph(t)
	p := Begin(ctx, g.reg)
	require.NoError(t, p.SetIndependent(ctx, g.gold, 99))

	p.Clear(ctx)
	p.Clear(ctx)

	assert.True(t, p.Cleared())
	assert.Nil(t, p.Registry())
	require.ErrorIs(t, p.SetIndependent(ctx, g.gold, 1), ErrCleared)
	require.ErrorIs(t, p.ModifyIndependent(ctx, g.gold, 1), ErrCleared)
	require.ErrorIs(t, p.ModifyParameterAdditive(ctx, g.total, 1), ErrCleared)
	_, err := p.Value("gold")
	require.ErrorIs(t, err, ErrCleared)
	_, err = p.Diff()
	require.ErrorIs(t, err, ErrCleared)
	assert.Equal(t, 10.0, g.gold.Value())
}

func TestPreview_EngineOptions(t *testing.T) {
	ctx := context.Background()
	g := newLiveGraph(t)
	var seen []string
	p := Begin(ctx, g.reg, engine.WithObserver(engine.ObserverFunc(func(c engine.Change) {
		seen = append(seen, c.Name)
	})))

	require.NoError(t, p.SetIndependentByName(ctx, "gold", 11))
	assert.Equal(t, []string{"gold", "total"}, seen)
}
