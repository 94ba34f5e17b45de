package feed

import (
	"log/slog"

	"github.com/specialistvlad/statgridgo/internal/engine"
)

// EventStatChanged is the event name used for every mirrored change.
const EventStatChanged = "stat_changed"

// Event is the payload sent for each change.
type Event struct {
	Name string  `json:"name"`
	Kind string  `json:"kind"`
	Old  float64 `json:"old"`
	New  float64 `json:"new"`
}

// Emitter sends a named event to a remote peer.
type Emitter interface {
	Emit(event string, payload any) error
}

// Mirror is an engine.Observer that forwards every change to an Emitter.
// Emit failures are logged and counted; they never interrupt a cascade.
type Mirror struct {
	emitter Emitter
	logger  *slog.Logger
	sent    int
	failed  int
}

// NewMirror creates a mirror. A nil logger means slog.Default().
func NewMirror(emitter Emitter, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{emitter: emitter, logger: logger.With("component", "mirror")}
}

// StatChanged implements engine.Observer.
func (m *Mirror) StatChanged(c engine.Change) {
	ev := Event{Name: c.Name, Kind: c.Kind.String(), Old: c.Prev, New: c.Cur}
	if err := m.emitter.Emit(EventStatChanged, ev); err != nil {
		m.failed++
		m.logger.Warn("Failed to mirror stat change.", "stat", c.Name, "error", err)
		return
	}
	m.sent++
}

// Sent returns how many changes were emitted successfully.
func (m *Mirror) Sent() int { return m.sent }

// Failed returns how many changes could not be emitted.
func (m *Mirror) Failed() int { return m.failed }
