package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/statgridgo/internal/builder"
	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/specialistvlad/statgridgo/internal/dag"
	"github.com/specialistvlad/statgridgo/internal/engine"
	"github.com/specialistvlad/statgridgo/internal/feed"
	"github.com/specialistvlad/statgridgo/internal/hypothetical"
	"github.com/specialistvlad/statgridgo/internal/registry"
)

// Run loads and builds the graph, applies the configured mutations and writes
// the result. With a healthcheck port configured it then keeps serving until
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.GraphPaths...)
	if err != nil {
		return fmt.Errorf("failed to load graph definition: %w", err)
	}
	a.logger.Debug("Graph definition loaded.", "stats", len(model.Stats), "connections", len(model.Connections))

	opts := []engine.Option{
		engine.WithMaxDepth(a.config.MaxDepth),
		engine.WithObserver(a.recorder),
	}
	if a.config.MirrorURL != "" {
		em, err := a.dial(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect change mirror: %w", err)
		}
		defer em.Close()
		opts = append(opts, engine.WithObserver(feed.NewMirror(em, a.logger)))
	}
	eng := engine.New(opts...)

	reg, topo, err := builder.Build(ctx, eng, model)
	if reg == nil {
		return fmt.Errorf("failed to build stat graph: %w", err)
	}
	if err != nil {
		a.logConfigErrors(err)
	}
	a.registry = reg
	// Only changes caused by mutations are of interest from here on.
	a.recorder.Reset()

	if a.config.Preview {
		err = a.runPreview(ctx, reg, topo)
	} else {
		err = a.runLive(ctx, eng, reg, topo)
	}
	if err != nil {
		return err
	}
	a.snapshot.Store(newSnapshot(reg, topo, a.recorder))

	if a.config.HealthcheckPort > 0 {
		if err := a.startHealthcheckServer(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return a.closeHealthCheckServer(context.WithoutCancel(ctx))
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) dial(ctx context.Context) (mirrorEmitter, error) {
	if a.dialMirror != nil {
		return a.dialMirror(a.config.MirrorURL, a.config.MirrorNamespace)
	}
	em, err := feed.DialSocketIO(ctx, a.config.MirrorURL, a.config.MirrorNamespace, feed.DialOptions{})
	if err != nil {
		return nil, err
	}
	return em, nil
}

func (a *App) logConfigErrors(err error) {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		a.logger.Warn("Graph definition entry skipped.", "error", e)
	}
}

func (a *App) runLive(ctx context.Context, eng *engine.Engine, reg *registry.Connections, topo *dag.Graph) error {
	if err := applyMutations(ctx, liveMutator{eng: eng, reg: reg}, topo, a.config.Mutations); err != nil {
		return err
	}
	a.logger.Info("Mutations applied.", "mutations", len(a.config.Mutations), "changes", a.recorder.Count())
	return writeValues(a.outW, reg)
}

func (a *App) runPreview(ctx context.Context, reg *registry.Connections, topo *dag.Graph) error {
	p := hypothetical.Begin(ctx, reg, engine.WithMaxDepth(a.config.MaxDepth))
	defer p.Clear(ctx)

	if err := applyMutations(ctx, p, topo, a.config.Mutations); err != nil {
		return err
	}
	deltas, err := p.Diff()
	if err != nil {
		return err
	}
	a.logger.Info("Hypothetical mutations applied.", "mutations", len(a.config.Mutations), "changed", len(deltas))
	return writeDiff(a.outW, deltas)
}

// mutator is what applyMutations needs from either a live engine or a
// hypothetical preview.
type mutator interface {
	SetIndependentByName(ctx context.Context, name string, value float64) error
	ModifyIndependentByName(ctx context.Context, name string, delta float64) error
	ModifyParameterAdditiveByName(ctx context.Context, name string, delta float64) error
}

type liveMutator struct {
	eng *engine.Engine
	reg *registry.Connections
}

func (m liveMutator) SetIndependentByName(ctx context.Context, name string, value float64) error {
	return m.eng.SetIndependentByName(ctx, m.reg, name, value)
}

func (m liveMutator) ModifyIndependentByName(ctx context.Context, name string, delta float64) error {
	return m.eng.ModifyIndependentByName(ctx, m.reg, name, delta)
}

func (m liveMutator) ModifyParameterAdditiveByName(ctx context.Context, name string, delta float64) error {
	return m.eng.ModifyParameterAdditiveByName(ctx, m.reg, name, delta)
}

// applyMutations runs mutations in order. Before each one it logs the stats
// the declared topology says it can reach.
func applyMutations(ctx context.Context, m mutator, topo *dag.Graph, mutations []Mutation) error {
	logger := ctxlog.FromContext(ctx)
	for i, mu := range mutations {
		if affected, err := topo.Downstream(mu.Name); err == nil {
			logger.Debug("Applying mutation.", "op", mu.Op.String(), "stat", mu.Name, "reaches", affected)
		}

		var err error
		switch mu.Op {
		case OpSet:
			err = m.SetIndependentByName(ctx, mu.Name, mu.Value)
		case OpModify:
			err = m.ModifyIndependentByName(ctx, mu.Name, mu.Value)
		case OpAdd:
			err = m.ModifyParameterAdditiveByName(ctx, mu.Name, mu.Value)
		default:
			err = errors.New("unknown mutation")
		}
		if err != nil {
			return fmt.Errorf("mutation %d (%s %s=%g) failed: %w", i+1, mu.Op, mu.Name, mu.Value, err)
		}
		logger.Debug("Mutation applied.", "op", mu.Op.String(), "stat", mu.Name, "value", mu.Value)
	}
	return nil
}
