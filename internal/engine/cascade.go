package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
)

// cascade carries the state of one propagation: the stats on the current
// recursion path, used to detect cycles.
type cascade struct {
	engine *Engine
	reg    *registry.Connections
	logger *slog.Logger
	path   []string
	onPath map[string]bool
}

// propagate reports the change of s and walks everything downstream of it.
func (e *Engine) propagate(ctx context.Context, reg *registry.Connections, s stat.Stat, prev, cur float64) error {
	c := &cascade{
		engine: e,
		reg:    reg,
		logger: ctxlog.FromContext(ctx),
		onPath: make(map[string]bool),
	}
	return c.changed(s, prev, cur, 0)
}

func (c *cascade) changed(s stat.Stat, prev, cur float64, depth int) error {
	c.logger.Debug("Stat changed.", "stat", s.Name(), "prev", prev, "cur", cur, "depth", depth)
	c.engine.notify(Change{Name: s.Name(), Kind: s.Kind(), Prev: prev, Cur: cur, Depth: depth})

	edges := c.reg.Edges(s.Name())
	if len(edges) == 0 {
		return nil
	}

	name := s.Name()
	if c.onPath[name] {
		return fmt.Errorf("%w: %s -> %s", ErrCycle, strings.Join(c.path, " -> "), name)
	}
	if depth >= c.engine.maxDepth {
		return fmt.Errorf("%w (%d) at %q", ErrCascadeTooDeep, c.engine.maxDepth, name)
	}

	c.onPath[name] = true
	c.path = append(c.path, name)
	defer func() {
		delete(c.onPath, name)
		c.path = c.path[:len(c.path)-1]
	}()

	for _, edge := range edges {
		target, err := c.reg.LookupOrFail(edge.Target)
		if err != nil {
			return fmt.Errorf("cascade from %q: %w", name, err)
		}

		tPrev, tCur, err := applyEdge(c.reg, edge, target, prev, cur)
		if err != nil {
			return fmt.Errorf("cascade from %q: %w", name, err)
		}
		if tPrev == tCur {
			continue
		}
		if err := c.changed(target, tPrev, tCur, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// applyEdge updates target for a source change prev -> cur according to the
// edge kind and reports the target's old and new value.
func applyEdge(reg *registry.Connections, edge registry.Edge, target stat.Stat, prev, cur float64) (float64, float64, error) {
	switch edge.Kind {
	case registry.KindAdd, registry.KindSub:
		p, err := targetAs[*stat.Parameter](edge, target)
		if err != nil {
			return 0, 0, err
		}
		delta := cur - prev
		if edge.Kind == registry.KindSub {
			delta = -delta
		}
		tPrev, tCur := p.AdjustAdd(delta)
		return tPrev, tCur, nil

	case registry.KindMulty, registry.KindDiv:
		p, err := targetAs[*stat.Parameter](edge, target)
		if err != nil {
			return 0, 0, err
		}
		return recomputeCache(reg, p)

	case registry.KindFormula:
		f, err := targetAs[*stat.FormulaStat](edge, target)
		if err != nil {
			return 0, 0, err
		}
		tPrev, tCur := f.SetArgument(cur)
		return tPrev, tCur, nil

	case registry.KindNamedInput:
		fp, err := targetAs[*stat.FormulaParameter](edge, target)
		if err != nil {
			return 0, 0, err
		}
		tPrev, tCur := fp.SetInput(edge.Input, cur)
		return tPrev, tCur, nil

	case registry.KindGateThreshold:
		g, err := targetAs[*stat.GateParameter](edge, target)
		if err != nil {
			return 0, 0, err
		}
		tPrev, tCur := g.SetThreshold(cur)
		return tPrev, tCur, nil

	case registry.KindGateValue:
		g, err := targetAs[*stat.GateParameter](edge, target)
		if err != nil {
			return 0, 0, err
		}
		tPrev, tCur := g.SetInputValue(cur)
		return tPrev, tCur, nil

	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(edge.Kind))
	}
}

// recomputeCache rebuilds a parameter's multiplicative cache from the current
// values of all of its sources.
func recomputeCache(reg *registry.Connections, p *stat.Parameter) (float64, float64, error) {
	return p.UpdateCache(valueOf(reg))
}

// valueOf resolves source values through reg.
func valueOf(reg *registry.Connections) stat.ValueOf {
	return func(name string) (float64, error) {
		s, err := reg.LookupOrFail(name)
		if err != nil {
			return 0, err
		}
		return s.Value(), nil
	}
}

func targetAs[T stat.Stat](edge registry.Edge, target stat.Stat) (T, error) {
	t, ok := target.(T)
	if !ok {
		var zero T
		return zero, &ConfigError{
			Op:     "apply",
			Target: target.Name(),
			Err:    fmt.Errorf("%w: %s edge cannot update a %s", ErrIncompatibleTarget, edge.Kind, target.Kind()),
		}
	}
	return t, nil
}
