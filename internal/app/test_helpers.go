package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/statgridgo/internal/hcl_adapter"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an app backed by the HCL loader whose output and logs
// are captured in separate buffers. Logs are printed on failure or when
// STATGRID_TEST_LOGS=true.
func SetupAppTest(t *testing.T, cfg *Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(out, logs, cfg, hcl_adapter.NewLoader())

	t.Cleanup(func() {
		if t.Failed() || os.Getenv("STATGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
