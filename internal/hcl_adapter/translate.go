package hcl_adapter

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/statgridgo/internal/config"
	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/specialistvlad/statgridgo/internal/formula"
	"github.com/specialistvlad/statgridgo/internal/registry"
	"github.com/specialistvlad/statgridgo/internal/stat"
	"github.com/specialistvlad/statgridgo/internal/statid"
	"github.com/zclconf/go-cty/cty"
)

// allowedAttributes lists, per stat kind, the attributes its block may set.
var allowedAttributes = map[stat.Kind][]string{
	stat.KindIndependent:      {"value"},
	stat.KindParameter:        {},
	stat.KindFormula:          {"formula"},
	stat.KindFormulaParameter: {"formula", "inputs"},
	stat.KindGate:             {"base_value", "above_threshold"},
}

// translateStat decodes a stat block into its config form.
func translateStat(ctx context.Context, block *hcl.Block) (*config.Stat, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	kindLabel, name := block.Labels[0], block.Labels[1]
	subject := block.DefRange.Ptr()

	kind, err := stat.ParseKind(kindLabel)
	if err != nil {
		return nil, hcl.Diagnostics{errorDiag("Unknown stat kind", err.Error(), block.LabelRanges[0].Ptr())}
	}
	id, err := statid.Parse(name)
	if err != nil {
		return nil, hcl.Diagnostics{errorDiag("Invalid stat name", err.Error(), block.LabelRanges[1].Ptr())}
	}

	var body statBody
	diags := gohcl.DecodeBody(block.Body, nil, &body)
	if diags.HasErrors() {
		return nil, diags
	}

	allowed := allowedAttributes[kind]
	for attr, expr := range body.attributes() {
		if isExprDefined(expr) && !slices.Contains(allowed, attr) {
			diags = append(diags, errorDiag(
				"Unsupported argument",
				fmt.Sprintf("A %s stat does not take %q.", kind, attr),
				expr.Range().Ptr(),
			))
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	s := &config.Stat{Kind: kind, Name: name, Owner: id.Owner(), Origin: block.DefRange.String(), AboveThreshold: true}

	switch kind {
	case stat.KindIndependent:
		if isExprDefined(body.Value) {
			diags = append(diags, decodeValue(body.Value, "value", cty.Number, &s.Value)...)
		}

	case stat.KindFormula:
		expr, src, fdiags := parseFormula(body.Formula, subject)
		diags = append(diags, fdiags...)
		if expr == nil {
			break
		}
		s.FormulaSource = src
		s.Argument, err = formula.CompileArgument(expr)
		if err != nil {
			diags = append(diags, errorDiag("Invalid formula", err.Error(), body.Formula.Range().Ptr()))
		}

	case stat.KindFormulaParameter:
		if isExprDefined(body.Inputs) {
			diags = append(diags, decodeValue(body.Inputs, "inputs", cty.Map(cty.Number), &s.Inputs)...)
		}
		expr, src, fdiags := parseFormula(body.Formula, subject)
		diags = append(diags, fdiags...)
		if expr == nil {
			break
		}
		s.FormulaSource = src
		var used []string
		s.InputsFormula, used, err = formula.CompileInputs(expr)
		if err != nil {
			diags = append(diags, errorDiag("Invalid formula", err.Error(), body.Formula.Range().Ptr()))
			break
		}
		if s.Inputs == nil {
			s.Inputs = make(stat.Inputs, len(used))
		}
		for _, in := range used {
			if _, ok := s.Inputs[in]; !ok {
				s.Inputs[in] = 0
			}
		}

	case stat.KindGate:
		if isExprDefined(body.BaseValue) {
			diags = append(diags, decodeValue(body.BaseValue, "base_value", cty.Number, &s.BaseValue)...)
		}
		if isExprDefined(body.AboveThreshold) {
			diags = append(diags, decodeValue(body.AboveThreshold, "above_threshold", cty.Bool, &s.AboveThreshold)...)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	logger.Debug("Translated stat block.", "kind", kind.String(), "name", name, "origin", s.Origin)
	return s, diags
}

// parseFormula reads the required formula attribute as a string and parses
// it as an expression positioned at the attribute in the source file.
func parseFormula(expr hcl.Expression, block *hcl.Range) (hcl.Expression, string, hcl.Diagnostics) {
	if !isExprDefined(expr) {
		return nil, "", hcl.Diagnostics{errorDiag("Missing formula", "This stat kind requires a formula attribute.", block)}
	}
	var src string
	if diags := decodeValue(expr, "formula", cty.String, &src); diags.HasErrors() {
		return nil, "", diags
	}
	r := expr.Range()
	// Skip the opening quote so positions point into the formula text.
	start := r.Start
	start.Column++
	start.Byte++
	parsed, err := formula.Parse(src, r.Filename, start)
	if err != nil {
		if diags, ok := err.(hcl.Diagnostics); ok {
			return nil, "", diags
		}
		return nil, "", hcl.Diagnostics{errorDiag("Invalid formula", err.Error(), r.Ptr())}
	}
	return parsed, strings.TrimSpace(src), nil
}

// translateConnection decodes a connect block into its config form.
func translateConnection(ctx context.Context, block *hcl.Block) (*config.Connection, hcl.Diagnostics) {
	var body connectBody
	diags := gohcl.DecodeBody(block.Body, nil, &body)
	if diags.HasErrors() {
		return nil, diags
	}

	kind, err := registry.ParseKind(body.Kind)
	if err != nil {
		return nil, hcl.Diagnostics{errorDiag("Unknown connection kind", err.Error(), block.DefRange.Ptr())}
	}

	c := &config.Connection{
		Source: block.Labels[0],
		Target: block.Labels[1],
		Kind:   kind,
		Input:  body.Input,
		Origin: block.DefRange.String(),
	}
	ctxlog.FromContext(ctx).Debug("Translated connect block.", "source", c.Source, "target", c.Target, "kind", kind.String(), "origin", c.Origin)
	return c, diags
}
