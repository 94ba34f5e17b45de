package app

import (
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/specialistvlad/statgridgo/internal/config"
	"github.com/specialistvlad/statgridgo/internal/feed"
	"github.com/specialistvlad/statgridgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	recorder *feed.Recorder
	registry *registry.Connections

	// dialMirror is swapped in tests to avoid a real socket.io server.
	dialMirror func(url, namespace string) (mirrorEmitter, error)

	httpServer *http.Server
	snapshot   atomic.Pointer[Snapshot]
}

// mirrorEmitter is a feed.Emitter that can be closed.
type mirrorEmitter interface {
	feed.Emitter
	Close()
}

// NewApp creates an App. Results are written to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		recorder: feed.NewRecorder(),
	}
}

// Registry returns the live registry once Run has built it. This is
// primarily for testing.
func (a *App) Registry() *registry.Connections {
	return a.registry
}

// Recorder returns the change log of the live engine.
func (a *App) Recorder() *feed.Recorder {
	return a.recorder
}
