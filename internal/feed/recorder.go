package feed

import (
	"slices"

	"github.com/specialistvlad/statgridgo/internal/engine"
)

// Recorder is an engine.Observer that keeps every change in memory.
type Recorder struct {
	changes []engine.Change
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// StatChanged implements engine.Observer.
func (r *Recorder) StatChanged(c engine.Change) {
	r.changes = append(r.changes, c)
}

// Changes returns a copy of the recorded changes in notification order.
func (r *Recorder) Changes() []engine.Change { return slices.Clone(r.changes) }

// Count returns how many changes have been recorded.
func (r *Recorder) Count() int { return len(r.changes) }

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() { r.changes = nil }

// Latest collapses the log to the last value seen for each stat.
func (r *Recorder) Latest() map[string]float64 {
	latest := make(map[string]float64, len(r.changes))
	for _, c := range r.changes {
		latest[c.Name] = c.Cur
	}
	return latest
}
