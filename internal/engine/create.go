package engine

import (
	"context"

	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
)

// CreateIndependent registers a new independent stat holding value.
func (e *Engine) CreateIndependent(ctx context.Context, reg *registry.Connections, name string, value float64) (*stat.Independent, error) {
	s := stat.NewIndependent(name, value)
	return s, register(ctx, reg, s)
}

// CreateParameter registers a new parameter with add=0 and cache=1.
func (e *Engine) CreateParameter(ctx context.Context, reg *registry.Connections, name string) (*stat.Parameter, error) {
	s := stat.NewParameter(name)
	return s, register(ctx, reg, s)
}

// CreateFormulaStat registers a new formula stat. Its value starts at formula(0).
func (e *Engine) CreateFormulaStat(ctx context.Context, reg *registry.Connections, name string, formula stat.Formula) (*stat.FormulaStat, error) {
	s := stat.NewFormulaStat(name, formula)
	return s, register(ctx, reg, s)
}

// CreateFormulaParameter registers a new formula parameter seeded with the
// given inputs, which may be nil.
func (e *Engine) CreateFormulaParameter(ctx context.Context, reg *registry.Connections, name string, formula stat.InputsFormula, inputs stat.Inputs) (*stat.FormulaParameter, error) {
	s := stat.NewFormulaParameter(name, formula, inputs)
	return s, register(ctx, reg, s)
}

// CreateGateParameter registers a new gate whose value starts at baseValue.
func (e *Engine) CreateGateParameter(ctx context.Context, reg *registry.Connections, name string, baseValue float64, aboveThreshold bool) (*stat.GateParameter, error) {
	s := stat.NewGateParameter(name, baseValue, aboveThreshold)
	return s, register(ctx, reg, s)
}

// register stores s. A duplicate name is a programmer error: it is logged
// and returned, and the registry keeps the original stat.
func register(ctx context.Context, reg *registry.Connections, s stat.Stat) error {
	logger := ctxlog.FromContext(ctx)
	if err := reg.Register(s); err != nil {
		logger.Error("Stat registration rejected.", "stat", s.Name(), "kind", s.Kind().String(), "error", err)
		return &ConfigError{Op: "create", Target: s.Name(), Err: err}
	}
	logger.Debug("Stat created.", "stat", s.Name(), "kind", s.Kind().String(), "value", s.Value())
	return nil
}
