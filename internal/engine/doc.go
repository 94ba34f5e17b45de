// Package engine is the propagation engine of the stat dependency graph. It
// is the only component allowed to change a stat's value.
//
// Callers create stats and edges through an Engine and mutate independent
// stats (or a parameter's additive part) through its entry points. Every
// mutation is applied to completion before the call returns: the engine
// walks the changed stat's outgoing edges in insertion order, applies the
// edge-specific rule to each target, and recursively cascades from every
// target whose value changed. A stat whose new value equals its old value
// stops the cascade on that path.
//
// # Edge rules
//
// Given a source change old -> new:
//
//	add             target.add += new-old
//	sub             target.add -= new-old
//	multy, div      target cache recomputed from all source values
//	formula         target.argument = new
//	named_input     target.inputs[input] = new
//	gate_threshold  target.threshold = new, then the gate is evaluated
//	gate_value      target.inputValue = new, then the gate is evaluated
//
// # Errors
//
// Malformed connection requests are configuration errors: they are logged as
// warnings through the context logger, the request is skipped, and a
// *ConfigError is returned for callers that care. Duplicate edges are only
// logged. Referencing a stat that was never registered returns
// registry.ErrStatNotFound and aborts the call. A cascade that re-enters a
// stat on its own path returns ErrCycle, and one that nests deeper than the
// configured limit returns ErrCascadeTooDeep; values updated before the
// failure are kept.
//
// # Concurrency
//
// An Engine holds no graph state and may be shared, but the registry it
// operates on is single-writer: callers must serialize all mutations of one
// registry.
package engine
