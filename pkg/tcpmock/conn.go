package tcpmock

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/netstub/netstub/pkg/logging"
	"github.com/netstub/netstub/pkg/netmock"
	"github.com/netstub/netstub/pkg/predicate"
	"github.com/netstub/netstub/pkg/resolve"
)

const readChunkSize = 4096

// handleConn drives one accepted connection: an init write on connect,
// then a read loop that re-attempts matching against the accumulated
// buffer after every chunk.
func (l *TCPListener) handleConn(conn net.Conn) {
	defer l.untrack(conn)
	defer conn.Close()

	l.writeInit(conn)

	buf := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			for l.tryMatch(conn, &buf) {
				// A match clears the buffer; loop again in case the
				// remaining bytes (there are none, since matches
				// consume the whole buffer) immediately match another
				// pending mock.
			}
		}
		if err != nil {
			if !isClosedConnErr(err) {
				logging.General().Debug("tcp connection read error", "error", err)
			}
			return
		}
	}
}

// writeInit scans for the first pending init mock, binds its group to
// conn, and writes its payload.
func (l *TCPListener) writeInit(conn net.Conn) {
	entry := l.mocks.FindAndMark(func(e netmock.Entry) bool {
		tm, ok := e.(*TCPMock)
		return ok && tm.isInit
	})
	if entry == nil {
		return
	}
	tm := entry.(*TCPMock)
	tm.group.bind(conn)
	payload := resolve.ToBytes(tm.init, resolve.Args{})
	if _, err := conn.Write(payload); err != nil {
		logging.General().Debug("tcp init write failed", "error", err)
	}
}

// tryMatch attempts one match against *buf on conn. On success it
// clears *buf and returns true so the caller can immediately retry
// (another pending mock may be satisfied by an empty buffer, e.g. a
// mock whose predicate matches the empty byte string).
func (l *TCPListener) tryMatch(conn net.Conn, buf *[]byte) bool {
	current := *buf
	entry := l.mocks.FindAndMark(func(e netmock.Entry) bool {
		tm, ok := e.(*TCPMock)
		if !ok || tm.isInit {
			return false
		}
		if !tm.isHead && !tm.group.boundTo(conn) {
			return false
		}
		return predicate.Compare(tm.req, current)
	})
	if entry == nil {
		return false
	}

	tm := entry.(*TCPMock)
	if tm.isHead {
		tm.group.bind(conn)
	}
	*buf = (*buf)[:0]

	res := tm.res.resolve(resolve.Args{Body: current})
	if res.bodyDelayMS > 0 {
		time.Sleep(time.Duration(res.bodyDelayMS) * time.Millisecond)
	}
	if res.destroySocket {
		destroyConn(conn)
		return false
	}
	if _, err := conn.Write(res.body); err != nil {
		logging.General().Debug("tcp response write failed", "error", err)
	}
	return true
}

// destroyConn performs an abortive close so the peer observes
// ECONNRESET, mirroring pkg/httpmock's destroySocket.
func destroyConn(conn net.Conn) {
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetLinger(0)
	}
	_ = conn.Close()
}

func isClosedConnErr(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
