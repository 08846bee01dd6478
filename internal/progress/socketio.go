package progress

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/graphsolver/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ProgressEvent is the socket.io event every update is emitted as.
const ProgressEvent = "progress"

// SocketIOOptions configures a SocketIOReporter.
type SocketIOOptions struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// SocketIOReporter streams updates to a socket.io server so a dashboard can
// follow a search live.
type SocketIOReporter struct {
	client *socket.Socket
}

// NewSocketIOReporter connects to the server and waits for the connection to
// be established.
func NewSocketIOReporter(ctx context.Context, opts SocketIOOptions) (*SocketIOReporter, error) {
	logger := ctxlog.FromContext(ctx).With("reporter", "socketio", "url", opts.URL)

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("progress URL %q must be absolute", opts.URL)
	}
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	sOpts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		sOpts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sOpts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sOpts)
	io := manager.Socket(opts.Namespace, sOpts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Progress reporter connected", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		if err == nil {
			err = fmt.Errorf("connect error: %v", errs[0])
		}
		connected <- err
	})
	io.Connect()

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketIOReporter{client: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// Report implements Reporter.
func (r *SocketIOReporter) Report(ctx context.Context, u Update) error {
	if !r.client.Connected() {
		return fmt.Errorf("socket.io client is not connected")
	}
	return r.client.Emit(ProgressEvent, u.Payload())
}

// Close implements Reporter.
func (r *SocketIOReporter) Close() error {
	r.client.Disconnect()
	return nil
}
