// Package stat defines the five node variants of the stat dependency graph.
//
// Every variant carries a unique name and a current value. Beyond that each
// variant holds exactly the state needed to recompute its value:
//
//   - Independent: set directly by callers, never derived.
//   - Parameter: value = add * multiplicative cache.
//   - FormulaStat: value = formula(argument).
//   - FormulaParameter: value = formula(inputs).
//   - GateParameter: value follows its input only while the gate condition holds.
//
// Variants never propagate changes themselves. The mutating methods defined
// here recompute a single node and report the old and new value; walking the
// graph is the job of package engine, which is the only caller of those
// methods. Consumers read values through Value and never mutate directly.
//
// The set of variants is closed: Stat has an unexported method, so code that
// switches over the concrete types can rely on these five being the only ones.
package stat
