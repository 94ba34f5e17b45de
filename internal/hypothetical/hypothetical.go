// Package hypothetical runs mutations against a throwaway copy of a live
// registry so their effect can be inspected before committing to them.
package hypothetical

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/specialistvlad/statgridgo/internal/engine"
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
)

// ErrCleared is returned by every operation on a preview after Clear.
var ErrCleared = errors.New("hypothetical preview has been cleared")

// Delta is one stat whose hypothetical value differs from the live one.
type Delta struct {
	Name         string
	Live         float64
	Hypothetical float64
	// Added is set for stats that only exist in the preview.
	Added bool
	// LiveOnly is set for stats registered in the live registry after Begin.
	// The preview has no value for them.
	LiveOnly bool
}

// Preview owns a clone of a live registry and a private engine. Observers of
// the live engine never see hypothetical changes.
type Preview struct {
	live *registry.Connections
	reg  *registry.Connections
	eng  *engine.Engine
}

// Begin clones live and returns a preview over the copy. opts configure the
// preview's own engine.
func Begin(ctx context.Context, live *registry.Connections, opts ...engine.Option) *Preview {
	reg := registry.Clone(live)
	ctxlog.FromContext(ctx).Debug("Hypothetical preview started.", "stats", reg.Len(), "edges", reg.EdgeCount())
	return &Preview{
		live: live,
		reg:  reg,
		eng:  engine.New(opts...),
	}
}

// Registry returns the cloned registry, or nil after Clear.
func (p *Preview) Registry() *registry.Connections { return p.reg }

// Engine returns the preview's engine.
func (p *Preview) Engine() *engine.Engine { return p.eng }

// Cleared reports whether Clear has been called.
func (p *Preview) Cleared() bool { return p.reg == nil }

// SetIndependent sets the clone counterpart of s. s may belong to the live
// registry; only its name is used.
func (p *Preview) SetIndependent(ctx context.Context, s *stat.Independent, value float64) error {
	return p.SetIndependentByName(ctx, s.Name(), value)
}

// ModifyIndependent adds delta to the clone counterpart of s.
func (p *Preview) ModifyIndependent(ctx context.Context, s *stat.Independent, delta float64) error {
	return p.ModifyIndependentByName(ctx, s.Name(), delta)
}

// ModifyParameterAdditive adds delta to the additive part of the clone
// counterpart of s.
func (p *Preview) ModifyParameterAdditive(ctx context.Context, s *stat.Parameter, delta float64) error {
	return p.ModifyParameterAdditiveByName(ctx, s.Name(), delta)
}

func (p *Preview) SetIndependentByName(ctx context.Context, name string, value float64) error {
	if p.Cleared() {
		return ErrCleared
	}
	return p.eng.SetIndependentByName(ctx, p.reg, name, value)
}

func (p *Preview) ModifyIndependentByName(ctx context.Context, name string, delta float64) error {
	if p.Cleared() {
		return ErrCleared
	}
	return p.eng.ModifyIndependentByName(ctx, p.reg, name, delta)
}

func (p *Preview) ModifyParameterAdditiveByName(ctx context.Context, name string, delta float64) error {
	if p.Cleared() {
		return ErrCleared
	}
	return p.eng.ModifyParameterAdditiveByName(ctx, p.reg, name, delta)
}

// Value reads a stat from the clone.
func (p *Preview) Value(name string) (float64, error) {
	if p.Cleared() {
		return 0, ErrCleared
	}
	s, err := p.reg.LookupOrFail(name)
	if err != nil {
		return 0, fmt.Errorf("hypothetical value: %w", err)
	}
	return s.Value(), nil
}

// Diff lists every stat whose hypothetical value differs from the live one,
// sorted by name. Stats that exist on only one side are always listed. Two
// NaN values count as equal.
func (p *Preview) Diff() ([]Delta, error) {
	if p.Cleared() {
		return nil, ErrCleared
	}

	var deltas []Delta
	for name, hv := range p.reg.Values() {
		s, ok := p.live.Lookup(name)
		if !ok {
			deltas = append(deltas, Delta{Name: name, Hypothetical: hv, Added: true})
			continue
		}
		if !sameValue(s.Value(), hv) {
			deltas = append(deltas, Delta{Name: name, Live: s.Value(), Hypothetical: hv})
		}
	}
	for name, lv := range p.live.Values() {
		if _, ok := p.reg.Lookup(name); !ok {
			deltas = append(deltas, Delta{Name: name, Live: lv, LiveOnly: true})
		}
	}
	slices.SortFunc(deltas, func(a, b Delta) int { return strings.Compare(a.Name, b.Name) })
	return deltas, nil
}

func sameValue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// Clear drops the clone. It is safe to call more than once.
func (p *Preview) Clear(ctx context.Context) {
	if p.Cleared() {
		return
	}
	ctxlog.FromContext(ctx).Debug("Hypothetical preview cleared.", "stats", p.reg.Len())
	p.reg = nil
}
