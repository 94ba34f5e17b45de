package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
)

// Connect records an edge of the given kind from source to target and
// applies it immediately, so the target reflects the source's current value
// without waiting for the next change.
//
// input names the FormulaParameter input for KindNamedInput edges and must
// be empty for every other kind. Invalid requests are logged, skipped and
// returned as *ConfigError. Duplicate edges are logged and ignored. Missing
// stats return registry.ErrStatNotFound.
func (e *Engine) Connect(ctx context.Context, reg *registry.Connections, source, target string, kind registry.Kind, input string) error {
	logger := ctxlog.FromContext(ctx)

	src, err := reg.LookupOrFail(source)
	if err != nil {
		return fmt.Errorf("connect %s -> %s: %w", source, target, err)
	}
	dst, err := reg.LookupOrFail(target)
	if err != nil {
		return fmt.Errorf("connect %s -> %s: %w", source, target, err)
	}

	edge := registry.Edge{Target: target, Kind: kind, Input: input}
	if err := validateConnection(src, dst, edge); err != nil {
		logger.Warn("Connection rejected, skipping.", "source", source, "target", target, "kind", kind.String(), "input", input, "error", err)
		return err
	}

	if !reg.AddEdge(source, edge) {
		logger.Warn("Duplicate connection ignored.", "source", source, "target", target, "kind", kind.String(), "input", input)
		return nil
	}
	logger.Debug("Connection added.", "source", source, "target", target, "kind", kind.String(), "input", input)

	prev, cur, err := e.applyOnConnect(reg, src, dst, edge)
	if err != nil {
		return fmt.Errorf("connect %s -> %s: %w", source, target, err)
	}
	if prev == cur {
		return nil
	}
	return e.propagate(ctx, reg, dst, prev, cur)
}

// ConnectStats is Connect for callers that already hold the stat values.
// Both stats must belong to reg.
func (e *Engine) ConnectStats(ctx context.Context, reg *registry.Connections, source, target stat.Stat, kind registry.Kind, input string) error {
	for _, s := range []stat.Stat{source, target} {
		if err := owned(reg, s); err != nil {
			return fmt.Errorf("connect %s -> %s: %w", source.Name(), target.Name(), err)
		}
	}
	return e.Connect(ctx, reg, source.Name(), target.Name(), kind, input)
}

func validateConnection(src, dst stat.Stat, edge registry.Edge) error {
	reject := func(err error) error {
		return &ConfigError{Op: "connect", Source: src.Name(), Target: dst.Name(), Err: err}
	}

	if !edge.Kind.Valid() {
		return reject(fmt.Errorf("%w: %d", ErrUnknownKind, uint8(edge.Kind)))
	}
	if src.Name() == dst.Name() {
		return reject(ErrSelfConnection)
	}
	if dst.Kind() == stat.KindIndependent {
		return reject(ErrIndependentTarget)
	}
	if edge.Kind == registry.KindNamedInput && edge.Input == "" {
		return reject(ErrMissingInput)
	}
	if edge.Kind != registry.KindNamedInput && edge.Input != "" {
		return reject(ErrUnexpectedInput)
	}
	if want := edge.Kind.TargetKind(); dst.Kind() != want {
		return reject(fmt.Errorf("%w: %s edges need a %s target, %s is a %s",
			ErrIncompatibleTarget, edge.Kind, want, dst.Name(), dst.Kind()))
	}
	return nil
}

// applyOnConnect folds a freshly recorded edge into its target. Multiplicative
// and divisor edges extend the target's source lists; named inputs are seeded
// from the source's current value; every other kind is applied once as if the
// source had just changed from 0.
func (e *Engine) applyOnConnect(reg *registry.Connections, src, dst stat.Stat, edge registry.Edge) (float64, float64, error) {
	switch edge.Kind {
	case registry.KindMulty, registry.KindDiv:
		p, err := targetAs[*stat.Parameter](edge, dst)
		if err != nil {
			return 0, 0, err
		}
		if edge.Kind == registry.KindMulty {
			return p.AddMultiplicativeSource(src.Name(), valueOf(reg))
		}
		return p.AddDivisorSource(src.Name(), valueOf(reg))
	case registry.KindNamedInput:
		fp, err := targetAs[*stat.FormulaParameter](edge, dst)
		if err != nil {
			return 0, 0, err
		}
		prev, cur := fp.SetInput(edge.Input, src.Value())
		return prev, cur, nil
	default:
		return applyEdge(reg, edge, dst, 0, src.Value())
	}
}
