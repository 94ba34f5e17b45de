package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
)

// SetIndependent sets an independent stat to value and cascades the change.
// Setting the current value is a no-op.
func (e *Engine) SetIndependent(ctx context.Context, reg *registry.Connections, s *stat.Independent, value float64) error {
	if err := owned(reg, s); err != nil {
		return err
	}
	return e.setStat(ctx, reg, s, value)
}

// ModifyIndependent adds delta to an independent stat and cascades the change.
func (e *Engine) ModifyIndependent(ctx context.Context, reg *registry.Connections, s *stat.Independent, delta float64) error {
	if err := owned(reg, s); err != nil {
		return err
	}
	return e.setStat(ctx, reg, s, s.Value()+delta)
}

// ModifyParameterAdditive adds delta to a parameter's additive part and
// cascades the change if its value moved.
func (e *Engine) ModifyParameterAdditive(ctx context.Context, reg *registry.Connections, p *stat.Parameter, delta float64) error {
	if err := owned(reg, p); err != nil {
		return err
	}
	prev, cur := p.AdjustAdd(delta)
	if prev == cur {
		ctxlog.FromContext(ctx).Debug("Parameter unchanged, nothing to propagate.", "stat", p.Name(), "add", p.Add())
		return nil
	}
	return e.propagate(ctx, reg, p, prev, cur)
}

// SetIndependentByName resolves name and calls SetIndependent.
func (e *Engine) SetIndependentByName(ctx context.Context, reg *registry.Connections, name string, value float64) error {
	s, err := lookupAs[*stat.Independent](reg, name)
	if err != nil {
		return err
	}
	return e.SetIndependent(ctx, reg, s, value)
}

// ModifyIndependentByName resolves name and calls ModifyIndependent.
func (e *Engine) ModifyIndependentByName(ctx context.Context, reg *registry.Connections, name string, delta float64) error {
	s, err := lookupAs[*stat.Independent](reg, name)
	if err != nil {
		return err
	}
	return e.ModifyIndependent(ctx, reg, s, delta)
}

// ModifyParameterAdditiveByName resolves name and calls ModifyParameterAdditive.
func (e *Engine) ModifyParameterAdditiveByName(ctx context.Context, reg *registry.Connections, name string, delta float64) error {
	p, err := lookupAs[*stat.Parameter](reg, name)
	if err != nil {
		return err
	}
	return e.ModifyParameterAdditive(ctx, reg, p, delta)
}

// setStat is the single path through which independent values change. The
// exact-equality check is what stops most cascades from going anywhere.
func (e *Engine) setStat(ctx context.Context, reg *registry.Connections, s *stat.Independent, value float64) error {
	if value == s.Value() {
		ctxlog.FromContext(ctx).Debug("Stat unchanged, nothing to propagate.", "stat", s.Name(), "value", value)
		return nil
	}
	prev, cur := s.Set(value)
	return e.propagate(ctx, reg, s, prev, cur)
}

// owned guards against mutating a stat through the wrong registry, e.g. a
// live stat passed to a hypothetical clone.
func owned(reg *registry.Connections, s stat.Stat) error {
	got, ok := reg.Lookup(s.Name())
	if !ok {
		return fmt.Errorf("%w: %q", registry.ErrStatNotFound, s.Name())
	}
	if got != s {
		return fmt.Errorf("%w: %q", ErrForeignStat, s.Name())
	}
	return nil
}

func lookupAs[T stat.Stat](reg *registry.Connections, name string) (T, error) {
	var zero T
	s, err := reg.LookupOrFail(name)
	if err != nil {
		return zero, err
	}
	t, ok := s.(T)
	if !ok {
		return zero, &ConfigError{Op: "mutate", Target: name, Err: fmt.Errorf("%w: %s is a %s", ErrWrongVariant, name, s.Kind())}
	}
	return t, nil
}
