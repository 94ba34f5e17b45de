package engine

import (
	"github.com/specialistvlad/statgridgo/internal/stat"
)

// DefaultMaxDepth bounds how deep a single cascade may nest.
const DefaultMaxDepth = 1024

// Change describes one committed value change.
type Change struct {
	Name  string
	Kind  stat.Kind
	Prev  float64
	Cur   float64
	Depth int // 0 for the stat the caller mutated
}

// Observer is notified of every committed value change, in cascade order.
// Observers must not mutate the registry.
type Observer interface {
	StatChanged(Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Change)

// StatChanged implements Observer.
func (f ObserverFunc) StatChanged(c Change) { f(c) }

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithObserver registers an observer. It may be given more than once.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// Engine applies mutations to a registry and keeps every derived stat
// consistent. It holds configuration only; the registry is passed to every
// call.
type Engine struct {
	maxDepth  int
	observers []Observer
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDepth returns the configured cascade depth limit.
func (e *Engine) MaxDepth() int { return e.maxDepth }

func (e *Engine) notify(c Change) {
	for _, o := range e.observers {
		o.StatChanged(c)
	}
}
