package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/statgridgo/internal/config"
	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/specialistvlad/statgridgo/internal/dag"
	"github.com/specialistvlad/statgridgo/internal/engine"
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
)

// Build creates every stat in model and replays every connection through
// eng. It also returns the declared topology. A non-nil registry is returned
// whenever construction completed; err then holds only the joined
// configuration errors, which callers may treat as warnings. A nil registry
// means construction was aborted.
func Build(ctx context.Context, eng *engine.Engine, model *config.Model) (*registry.Connections, *dag.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "stats", len(model.Stats), "connections", len(model.Connections))

	topo, err := Topology(model)
	if err != nil {
		return nil, nil, fmt.Errorf("error validating graph definition: %w", err)
	}
	logger.Debug("Build: Topology validation passed.", "nodes", topo.Len())

	reg := registry.New()
	var configErrs []error

	for _, s := range model.Stats {
		if err := createStat(ctx, eng, reg, s); err != nil {
			if !engine.IsConfigError(err) {
				return nil, nil, fmt.Errorf("creating stat %q (%s): %w", s.Name, s.Origin, err)
			}
			configErrs = append(configErrs, fmt.Errorf("%s: %w", s.Origin, err))
			continue
		}
		logger.Debug("Build: Stat created.", "stat", s.Name, "kind", s.Kind.String(), "owner", s.Owner)
	}
	logger.Debug("Build: Stat creation complete.", "stats", reg.Len())

	for _, c := range model.Connections {
		if err := eng.Connect(ctx, reg, c.Source, c.Target, c.Kind, c.Input); err != nil {
			if !engine.IsConfigError(err) {
				return nil, nil, fmt.Errorf("replaying connection %s -> %s (%s): %w", c.Source, c.Target, c.Origin, err)
			}
			configErrs = append(configErrs, fmt.Errorf("%s: %w", c.Origin, err))
		}
	}
	logger.Debug("Build: Connection replay complete.", "edges", reg.EdgeCount())

	if len(configErrs) > 0 {
		logger.Warn("Build: Graph constructed with configuration errors.", "count", len(configErrs))
		return reg, topo, errors.Join(configErrs...)
	}
	logger.Info("Build: Graph construction successful.", "stats", reg.Len(), "edges", reg.EdgeCount())
	return reg, topo, nil
}

func createStat(ctx context.Context, eng *engine.Engine, reg *registry.Connections, s *config.Stat) error {
	var err error
	switch s.Kind {
	case stat.KindIndependent:
		_, err = eng.CreateIndependent(ctx, reg, s.Name, s.Value)
	case stat.KindParameter:
		_, err = eng.CreateParameter(ctx, reg, s.Name)
	case stat.KindFormula:
		_, err = eng.CreateFormulaStat(ctx, reg, s.Name, s.Argument)
	case stat.KindFormulaParameter:
		_, err = eng.CreateFormulaParameter(ctx, reg, s.Name, s.InputsFormula, s.Inputs)
	case stat.KindGate:
		_, err = eng.CreateGateParameter(ctx, reg, s.Name, s.BaseValue, s.AboveThreshold)
	default:
		err = fmt.Errorf("unsupported stat kind %s", s.Kind)
	}
	return err
}

// Topology builds the dependency graph described by model and checks it for
// cycles. Connections whose endpoints are undeclared or identical are left
// out; Build reports those when replaying them.
func Topology(model *config.Model) (*dag.Graph, error) {
	g := dag.New()
	for _, s := range model.Stats {
		g.AddNode(s.Name)
	}
	for _, c := range model.Connections {
		if c.Source == c.Target {
			continue
		}
		// Missing endpoints are reported by the engine during replay.
		_ = g.AddEdge(c.Source, c.Target)
	}
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}
	return g, nil
}
