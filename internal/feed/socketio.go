package feed

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ConnectTimeout bounds how long DialSocketIO waits for the handshake.
const ConnectTimeout = 15 * time.Second

var ErrNotConnected = errors.New("socket.io client is not connected")

// DialOptions tunes DialSocketIO.
type DialOptions struct {
	InsecureSkipVerify bool
}

// SocketEmitter is an Emitter backed by a connected socket.io client.
type SocketEmitter struct {
	io *socket.Socket
}

// DialSocketIO connects to a socket.io server over WebSocket and waits for
// either connect or connect_error.
func DialSocketIO(ctx context.Context, rawURL, namespace string, dialOpts DialOptions) (*SocketEmitter, error) {
	logger := ctxlog.FromContext(ctx).With("url", rawURL, "namespace", namespace)

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mirror URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("mirror URL %q needs a scheme and host", rawURL)
	}
	if namespace == "" {
		namespace = "/"
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsed.Path)
	if dialOpts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connected := make(chan error, 1)
	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Mirror connected.", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Mirror connect_error.", "error", err)
		connected <- err
	})

	logger.Debug("Connecting mirror...")
	io.Connect()

	timer := time.NewTimer(ConnectTimeout)
	defer timer.Stop()

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketEmitter{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("waiting for socket.io connection: %w", ctx.Err())
	case <-timer.C:
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", ConnectTimeout)
	}
}

// Emit implements Emitter.
func (e *SocketEmitter) Emit(event string, payload any) error {
	if !e.io.Connected() {
		return ErrNotConnected
	}
	e.io.Emit(event, payload)
	return nil
}

// Close disconnects the client.
func (e *SocketEmitter) Close() {
	e.io.Disconnect()
}
