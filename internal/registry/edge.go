package registry

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/statgridgo/internal/stat"
)

// Kind is the type of a connection between two stats. It decides how a
// change in the source updates the target.
type Kind uint8

const (
	KindAdd Kind = iota
	KindSub
	KindMulty
	KindDiv
	KindFormula
	KindNamedInput
	KindGateThreshold
	KindGateValue
)

var kindNames = [...]string{
	KindAdd:           "add",
	KindSub:           "sub",
	KindMulty:         "multy",
	KindDiv:           "div",
	KindFormula:       "formula",
	KindNamedInput:    "named_input",
	KindGateThreshold: "gate_threshold",
	KindGateValue:     "gate_value",
}

// String returns the lowercase text form of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// ParseKind converts the text form of a kind, case-insensitively. "mul" is
// accepted as an alias of "multy".
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "mul" {
		return KindMulty, nil
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown connection kind %q", s)
}

// TargetKind returns the only stat variant an edge of this kind may target.
func (k Kind) TargetKind() stat.Kind {
	switch k {
	case KindAdd, KindSub, KindMulty, KindDiv:
		return stat.KindParameter
	case KindFormula:
		return stat.KindFormula
	case KindNamedInput:
		return stat.KindFormulaParameter
	case KindGateThreshold, KindGateValue:
		return stat.KindGate
	default:
		panic(fmt.Sprintf("registry: unhandled connection kind %d", uint8(k)))
	}
}

// Edge is a directed, typed link to a target stat. The source is implicit:
// it is the name the edge is filed under in the registry.
type Edge struct {
	Target string
	Kind   Kind
	Input  string // required for KindNamedInput, empty otherwise
}

// Validate checks the Input/Kind rule.
func (e Edge) Validate() error {
	if e.Target == "" {
		return fmt.Errorf("edge has no target")
	}
	if e.Kind == KindNamedInput && e.Input == "" {
		return fmt.Errorf("edge %s -> %s requires an input name", e.Kind, e.Target)
	}
	if e.Kind != KindNamedInput && e.Input != "" {
		return fmt.Errorf("edge %s -> %s must not carry an input name (got %q)", e.Kind, e.Target, e.Input)
	}
	return nil
}

func (e Edge) String() string {
	if e.Input != "" {
		return fmt.Sprintf("%s[%s] -> %s", e.Kind, e.Input, e.Target)
	}
	return fmt.Sprintf("%s -> %s", e.Kind, e.Target)
}
