package stat

// GateParameter holds its last committed value until the gate condition
// allows the incoming input value through. The condition is
//
//	aboveThreshold == (baseValue + inputValue >= threshold)
//
// and is re-evaluated every time the threshold or the input changes.
type GateParameter struct {
	base
	baseValue      float64
	aboveThreshold bool
	threshold      float64
	inputValue     float64
}

// NewGateParameter creates a gate whose initial value is baseValue.
func NewGateParameter(name string, baseValue float64, aboveThreshold bool) *GateParameter {
	return &GateParameter{
		base:           base{name: name, value: baseValue},
		baseValue:      baseValue,
		aboveThreshold: aboveThreshold,
	}
}

func (g *GateParameter) Kind() Kind { return KindGate }

func (g *GateParameter) BaseValue() float64   { return g.baseValue }
func (g *GateParameter) AboveThreshold() bool { return g.aboveThreshold }
func (g *GateParameter) Threshold() float64   { return g.threshold }
func (g *GateParameter) InputValue() float64  { return g.inputValue }

// Open reports whether the gate currently lets the input value through.
func (g *GateParameter) Open() bool {
	return g.aboveThreshold == (g.baseValue+g.inputValue >= g.threshold)
}

// Clone implements Stat.
func (g *GateParameter) Clone() Stat {
	c := *g
	return &c
}

// SetThreshold stores a new threshold and re-evaluates the gate.
func (g *GateParameter) SetThreshold(v float64) (prev, cur float64) {
	g.threshold = v
	return g.evaluate()
}

// SetInputValue stores a new input value and re-evaluates the gate.
func (g *GateParameter) SetInputValue(v float64) (prev, cur float64) {
	g.inputValue = v
	return g.evaluate()
}

func (g *GateParameter) evaluate() (prev, cur float64) {
	if !g.Open() {
		return g.value, g.value
	}
	return g.commit(g.inputValue)
}
