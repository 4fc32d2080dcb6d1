package httpmock

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/netstub/netstub/pkg/logging"
	"github.com/netstub/netstub/pkg/netmock"
)

// Option configures an HTTPListener using the functional-options
// pattern.
type Option func(*HTTPListener)

// WithPort binds the listener to a specific port instead of an
// ephemeral one.
func WithPort(port int) Option {
	return func(l *HTTPListener) { l.requestedPort = port }
}

// WithLogger sets the operational logger for connection-lifecycle
// diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(l *HTTPListener) {
		if log != nil {
			l.log = log
		}
	}
}

// ResetOption configures a Reset call.
type ResetOption func(*resetConfig)

type resetConfig struct {
	throwOnPending bool
}

// ThrowOnPending controls whether Reset raises netmock.PendingMockError
// for mocks that never matched. Defaults to true.
func ThrowOnPending(throw bool) ResetOption {
	return func(c *resetConfig) { c.throwOnPending = throw }
}

// HTTPListener is a real HTTP server backed by an ordered mock set.
type HTTPListener struct {
	requestedPort int
	log           *slog.Logger

	mocks    *netmock.Set
	ln       net.Listener
	srv      *http.Server
	serveErr chan error

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// HTTPServer opens a new HTTP listener, applying opts in order.
func HTTPServer(opts ...Option) (*HTTPListener, error) {
	l := &HTTPListener{
		log:   logging.Nop(),
		mocks: netmock.NewSet(),
		conns: make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.requestedPort))
	if err != nil {
		return nil, fmt.Errorf("httpmock: listen: %w", err)
	}
	l.ln = ln

	h := newHandler(l.mocks)
	l.srv = &http.Server{
		Handler:   h,
		ConnState: l.trackConnState,
	}
	l.serveErr = make(chan error, 1)

	go func() {
		err := l.srv.Serve(ln)
		if err != nil && err != http.ErrServerClosed {
			l.log.Error("http server error", "error", err)
		}
		l.serveErr <- err
	}()

	l.log.Info("http listener started", "port", l.Port())
	return l, nil
}

// trackConnState records every connection's lifetime so Teardown can
// force-close whatever is still open instead of waiting it out,
// mirroring pkg/tcpmock's own tracked-conn map.
func (l *HTTPListener) trackConnState(conn net.Conn, state http.ConnState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch state {
	case http.StateNew:
		l.conns[conn] = struct{}{}
	case http.StateClosed, http.StateHijacked:
		delete(l.conns, conn)
	}
}

// Port returns the bound TCP port.
func (l *HTTPListener) Port() int {
	tcpAddr, ok := l.ln.Addr().(*net.TCPAddr)
	if !ok {
		return 0
	}
	return tcpAddr.Port
}

// Mock registers a new mock and returns a handle to it. opts is
// validated first; see HTTPMockOptions.validate for what a statically
// typed declaration still needs checking at registration time.
func (l *HTTPListener) Mock(opts HTTPMockOptions) (*HTTPMockHandle, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	m := newHTTPMock(opts)
	l.mocks.Register(m)
	return &HTTPMockHandle{mock: m}, nil
}

// Reset drains the mock set. By default it raises
// netmock.PendingMockError naming any mock that never matched; pass
// ThrowOnPending(false) to discard pending mocks without an error
// instead (they are logged on the general debug stream).
func (l *HTTPListener) Reset(opts ...ResetOption) error {
	cfg := resetConfig{throwOnPending: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	err := l.mocks.Reset(cfg.throwOnPending)
	if err != nil {
		l.log.Warn("reset found pending mocks", "error", err)
	}
	return err
}

// Teardown stops accepting new connections, destroys any still-open
// ones so a stalled client can't hold up shutdown, then waits for the
// accept loop to finish.
func (l *HTTPListener) Teardown(ctx context.Context) error {
	l.mu.Lock()
	for conn := range l.conns {
		_ = conn.Close()
	}
	l.mu.Unlock()

	if err := l.srv.Shutdown(ctx); err != nil {
		if closeErr := l.srv.Close(); closeErr != nil {
			return closeErr
		}
	}
	select {
	case <-l.serveErr:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
