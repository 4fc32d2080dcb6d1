package tcpmock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/netstub/netstub/pkg/logging"
	"github.com/netstub/netstub/pkg/netmock"
)

// Option configures a TCPListener, using the same functional-options
// pattern pkg/httpmock uses.
type Option func(*TCPListener)

// WithPort binds the listener to a specific port instead of an
// ephemeral one.
func WithPort(port int) Option {
	return func(l *TCPListener) { l.requestedPort = port }
}

// WithLogger sets the operational logger for connection-lifecycle
// diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(l *TCPListener) {
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

// TCPListener is a raw TCP acceptor backed by an ordered mock set.
type TCPListener struct {
	requestedPort int
	log           *slog.Logger

	mocks *netmock.Set
	ln    net.Listener

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

// TCPServer opens a new raw TCP listener, applying opts in order. Each
// accepted connection has Nagle's algorithm disabled.
func TCPServer(opts ...Option) (*TCPListener, error) {
	l := &TCPListener{
		log:   logging.Nop(),
		mocks: netmock.NewSet(),
		conns: make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.requestedPort))
	if err != nil {
		return nil, fmt.Errorf("tcpmock: listen: %w", err)
	}
	l.ln = ln

	l.wg.Add(1)
	go l.acceptLoop()

	l.log.Info("tcp listener started", "port", l.Port())
	return l, nil
}

func (l *TCPListener) acceptLoop() {
	defer l.wg.Done()
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			l.log.Error("tcp accept error", "error", err)
			return
		}
		if tcp, ok := conn.(*net.TCPConn); ok {
			_ = tcp.SetNoDelay(true)
		}
		l.track(conn)
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.handleConn(conn)
		}()
	}
}

func (l *TCPListener) track(conn net.Conn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.conns[conn] = struct{}{}
}

func (l *TCPListener) untrack(conn net.Conn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.conns, conn)
}

// Port returns the bound TCP port.
func (l *TCPListener) Port() int {
	tcpAddr, ok := l.ln.Addr().(*net.TCPAddr)
	if !ok {
		return 0
	}
	return tcpAddr.Port
}

// Mock registers a new head mock and returns a handle to it. The
// handle can itself be used to register pinned child mocks sharing
// its connection.
func (l *TCPListener) Mock(opts TCPMockOptions) (*TCPMockHandle, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	m := newTCPMock(opts, newPinGroup(), true)
	l.mocks.Register(m)
	return &TCPMockHandle{listener: l, mock: m}, nil
}

// Reset drains the mock set. By default it raises
// netmock.PendingMockError naming any mock that never matched; pass
// ThrowOnPending(false) to discard pending mocks without an error
// instead (they are logged on the general debug stream).
func (l *TCPListener) Reset(opts ...ResetOption) error {
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

// Teardown stops accepting new connections, forcibly closes any still
// open, and waits for their handler goroutines to finish.
func (l *TCPListener) Teardown(ctx context.Context) error {
	if err := l.ln.Close(); err != nil {
		l.log.Warn("tcp listener close error", "error", err)
	}

	l.mu.Lock()
	for conn := range l.conns {
		_ = conn.Close()
	}
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
