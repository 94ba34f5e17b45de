package stat

import "maps"

// Formula derives a FormulaStat value from its single argument. It must be
// pure: the engine may call it several times per logical mutation.
type Formula func(argument float64) float64

// Inputs maps input names to their latest values.
type Inputs map[string]float64

// InputsFormula derives a FormulaParameter value from its named inputs. It
// must be pure and must not retain or modify the map it is given.
type InputsFormula func(inputs Inputs) float64

func zeroFormula(float64) float64      { return 0 }
func zeroInputsFormula(Inputs) float64 { return 0 }

// FormulaStat is a derived stat whose value is formula(argument).
type FormulaStat struct {
	base
	argument float64
	formula  Formula
}

// NewFormulaStat creates a formula stat with argument 0 and value formula(0).
func NewFormulaStat(name string, formula Formula) *FormulaStat {
	if formula == nil {
		formula = zeroFormula
	}
	s := &FormulaStat{base: base{name: name}, formula: formula}
	s.value = formula(0)
	return s
}

func (s *FormulaStat) Kind() Kind { return KindFormula }

// Argument returns the latest argument.
func (s *FormulaStat) Argument() float64 { return s.argument }

// Clone implements Stat. The formula is shared since it is pure.
func (s *FormulaStat) Clone() Stat {
	c := *s
	return &c
}

// SetArgument stores the argument and recomputes the value.
func (s *FormulaStat) SetArgument(v float64) (prev, cur float64) {
	s.argument = v
	return s.commit(s.formula(v))
}

// FormulaParameter is a derived stat whose value is formula(inputs).
type FormulaParameter struct {
	base
	inputs  Inputs
	formula InputsFormula
}

// NewFormulaParameter creates a formula parameter. The initial inputs are
// copied; a nil map starts with no inputs.
func NewFormulaParameter(name string, formula InputsFormula, initial Inputs) *FormulaParameter {
	if formula == nil {
		formula = zeroInputsFormula
	}
	inputs := make(Inputs, len(initial))
	maps.Copy(inputs, initial)

	s := &FormulaParameter{base: base{name: name}, inputs: inputs, formula: formula}
	s.value = formula(inputs)
	return s
}

func (s *FormulaParameter) Kind() Kind { return KindFormulaParameter }

// Input returns the value of a single named input.
func (s *FormulaParameter) Input(name string) (float64, bool) {
	v, ok := s.inputs[name]
	return v, ok
}

// Inputs returns a copy of all inputs.
func (s *FormulaParameter) Inputs() Inputs {
	return maps.Clone(s.inputs)
}

// Clone implements Stat.
func (s *FormulaParameter) Clone() Stat {
	c := *s
	c.inputs = maps.Clone(s.inputs)
	if c.inputs == nil {
		c.inputs = make(Inputs)
	}
	return &c
}

// SetInput stores a named input and recomputes the value.
func (s *FormulaParameter) SetInput(name string, v float64) (prev, cur float64) {
	s.inputs[name] = v
	return s.commit(s.formula(s.inputs))
}
