package stat

import "fmt"

// Kind tags the concrete variant behind a Stat.
type Kind uint8

const (
	KindIndependent Kind = iota
	KindParameter
	KindFormula
	KindFormulaParameter
	KindGate
)

var kindNames = [...]string{
	KindIndependent:      "independent",
	KindParameter:        "parameter",
	KindFormula:          "formula",
	KindFormulaParameter: "formula_parameter",
	KindGate:             "gate",
}

// String returns the lowercase name used in graph files and logs.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind converts the textual form back into a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown stat kind %q", s)
}

// Stat is a named node in the dependency graph holding a current numeric value.
type Stat interface {
	// Name returns the registry-unique, immutable name of the stat.
	Name() string
	// Value returns the current value.
	Value() float64
	// Kind reports which variant this stat is.
	Kind() Kind
	// Clone returns an independent copy sharing no mutable state.
	Clone() Stat

	sealed()
}

// base holds the fields shared by every variant.
type base struct {
	name  string
	value float64
}

func (b *base) Name() string   { return b.name }
func (b *base) Value() float64 { return b.value }
func (b *base) sealed()        {}

// commit stores v and reports the previous value.
func (b *base) commit(v float64) (prev, cur float64) {
	prev = b.value
	b.value = v
	return prev, v
}
