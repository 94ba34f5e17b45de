package formula

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/statgridgo/internal/stat"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

const (
	// ArgumentVar is the only variable a formula stat may reference.
	ArgumentVar = "x"
	// InputsVar is the object holding a formula parameter's named inputs.
	InputsVar = "input"
)

var (
	ErrUnknownVariable = errors.New("formula references an unknown variable")
	ErrUnknownFunction = errors.New("formula calls an unknown function")
)

var functions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"log":    stdlib.LogFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"pow":    stdlib.PowFunc,
	"signum": stdlib.SignumFunc,
}

// Functions returns the sorted names of the functions formulas may call.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Parse parses formula source text. filename and start are used for
// diagnostics only.
func Parse(src, filename string, start hcl.Pos) (hcl.Expression, error) {
	if start.Line == 0 {
		start = hcl.Pos{Line: 1, Column: 1}
	}
	expr, diags := hclsyntax.ParseExpression([]byte(src), filename, start)
	if diags.HasErrors() {
		return nil, diags
	}
	return expr, nil
}

// CompileArgument turns expr into a stat.Formula. The expression may only
// reference x.
func CompileArgument(expr hcl.Expression) (stat.Formula, error) {
	c := NewContainer()
	c.Add(expr)
	if err := checkFunctions(c); err != nil {
		return nil, err
	}
	for _, ref := range c.References() {
		if len(ref) != 1 || ref.RootName() != ArgumentVar {
			return nil, fmt.Errorf("%w: %s (only %s is available)", ErrUnknownVariable, TraversalKey(ref), ArgumentVar)
		}
	}

	return func(x float64) float64 {
		return evaluate(expr, map[string]cty.Value{ArgumentVar: numberVal(x)})
	}, nil
}

// CompileInputs turns expr into a stat.InputsFormula. The expression may only
// reference input.<name>. The sorted input names it uses are returned too.
func CompileInputs(expr hcl.Expression) (stat.InputsFormula, []string, error) {
	c := NewContainer()
	c.Add(expr)
	if err := checkFunctions(c); err != nil {
		return nil, nil, err
	}

	var names []string
	for _, ref := range c.References() {
		name, ok := inputName(ref)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s (use %s.<name>)", ErrUnknownVariable, TraversalKey(ref), InputsVar)
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return func(in stat.Inputs) float64 {
		attrs := make(map[string]cty.Value, len(in))
		for k, v := range in {
			attrs[k] = numberVal(v)
		}
		return evaluate(expr, map[string]cty.Value{InputsVar: cty.ObjectVal(attrs)})
	}, names, nil
}

func inputName(ref hcl.Traversal) (string, bool) {
	if len(ref) != 2 || ref.RootName() != InputsVar {
		return "", false
	}
	attr, ok := ref[1].(hcl.TraverseAttr)
	if !ok {
		return "", false
	}
	return attr.Name, true
}

func checkFunctions(c *Container) error {
	var unknown []string
	for _, name := range c.CalledFunctions() {
		if _, ok := functions[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s (available: %s)", ErrUnknownFunction,
			strings.Join(unknown, ", "), strings.Join(Functions(), ", "))
	}
	return nil
}

// numberVal converts v for use in an evaluation context. cty cannot hold NaN,
// so non-finite inputs enter a formula as 0.
func numberVal(v float64) cty.Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return cty.Zero
	}
	return cty.NumberFloatVal(v)
}

// evaluate runs expr and converts the result to a float64. Evaluation errors,
// panics, non-numeric results and non-finite numbers all yield 0.
func evaluate(expr hcl.Expression, vars map[string]cty.Value) (result float64) {
	defer func() {
		if r := recover(); r != nil {
			result = 0
		}
	}()

	ctx := &hcl.EvalContext{Variables: vars, Functions: functions}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() || !val.IsWhollyKnown() || val.IsNull() {
		return 0
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0
	}
	var f float64
	if err := gocty.FromCtyValue(num, &f); err != nil {
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
