package tcpmock

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netstub/netstub/pkg/netmock"
	"github.com/netstub/netstub/pkg/predicate"
	"github.com/netstub/netstub/pkg/resolve"
)

func startListener(t *testing.T, opts ...Option) *TCPListener {
	t.Helper()
	l, err := TCPServer(opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.Teardown(ctx)
	})
	return l
}

func dial(t *testing.T, l *TCPListener) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", l.Port()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readN(t *testing.T, conn net.Conn, n int, timeout time.Duration) []byte {
	t.Helper()
	buf := make([]byte, n)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(timeout)))
	_, err := readFull(conn, buf)
	require.NoError(t, err)
	return buf
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func expectNoDataYet(t *testing.T, conn net.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(50*time.Millisecond)))
	buf := make([]byte, 1)
	_, err := conn.Read(buf)
	assert.Error(t, err, "expected no data to have arrived yet")
}

func TestTCPStreamingMatchAcrossWrites(t *testing.T) {
	l := startListener(t)
	_, err := l.Mock(TCPMockOptions{
		Req: predicate.Bytes([]byte("abcd")),
		Res: ResponseDescriptor{Body: resolve.Literal(resolve.FromString("1234"))},
	})
	require.NoError(t, err)

	conn := dial(t, l)
	_, err = conn.Write([]byte("ab"))
	require.NoError(t, err)
	expectNoDataYet(t, conn)

	_, err = conn.Write([]byte("cd"))
	require.NoError(t, err)
	got := readN(t, conn, 4, time.Second)
	assert.Equal(t, "1234", string(got))
}

func TestTCPPinningScenario(t *testing.T) {
	l := startListener(t)

	headA, err := l.Mock(TCPMockOptions{Init: resolve.Literal(resolve.FromString("a"))})
	require.NoError(t, err)
	_, err = headA.Mock(TCPMockOptions{Req: predicate.String("b"), Res: ResponseDescriptor{Body: resolve.Literal(resolve.FromString("b"))}})
	require.NoError(t, err)
	_, err = headA.Mock(TCPMockOptions{Req: predicate.String("c"), Res: ResponseDescriptor{Body: resolve.Literal(resolve.FromString("c"))}})
	require.NoError(t, err)

	headD, err := l.Mock(TCPMockOptions{Init: resolve.Literal(resolve.FromString("d"))})
	require.NoError(t, err)
	_, err = headD.Mock(TCPMockOptions{Req: predicate.String("e"), Res: ResponseDescriptor{Body: resolve.Literal(resolve.FromString("e"))}})
	require.NoError(t, err)
	_, err = headD.Mock(TCPMockOptions{Req: predicate.String("f"), Res: ResponseDescriptor{Body: resolve.Literal(resolve.FromString("f"))}})
	require.NoError(t, err)

	connA := dial(t, l)
	gotA := readN(t, connA, 1, time.Second)
	connB := dial(t, l)
	gotB := readN(t, connB, 1, time.Second)

	// Whichever group bound to which connection, tails only ever match
	// on their own head's connection.
	var tailsForA, tailsForB []string
	switch string(gotA) {
	case "a":
		tailsForA, tailsForB = []string{"b", "c"}, []string{"e", "f"}
	case "d":
		tailsForA, tailsForB = []string{"e", "f"}, []string{"b", "c"}
	default:
		t.Fatalf("unexpected init payload %q", gotA)
	}
	assert.NotEqual(t, string(gotA), string(gotB))

	_, err = connA.Write([]byte(tailsForA[0]))
	require.NoError(t, err)
	respA := readN(t, connA, 1, time.Second)
	assert.Equal(t, tailsForA[0], string(respA))

	_, err = connB.Write([]byte(tailsForB[0]))
	require.NoError(t, err)
	respB := readN(t, connB, 1, time.Second)
	assert.Equal(t, tailsForB[0], string(respB))

	_, err = connA.Write([]byte(tailsForA[1]))
	require.NoError(t, err)
	respA2 := readN(t, connA, 1, time.Second)
	assert.Equal(t, tailsForA[1], string(respA2))
}

func TestTCPTailCannotMatchOnWrongConnection(t *testing.T) {
	l := startListener(t)
	head, err := l.Mock(TCPMockOptions{Init: resolve.Literal(resolve.FromString("hi"))})
	require.NoError(t, err)
	_, err = head.Mock(TCPMockOptions{Req: predicate.String("tail"), Res: ResponseDescriptor{Body: resolve.Literal(resolve.FromString("ok"))}})
	require.NoError(t, err)

	// This connection never gets the init mock (only one exists and it
	// binds to the first connection), so the tail must stay ineligible here.
	first := dial(t, l)
	_ = readN(t, first, 2, time.Second)

	second := dial(t, l)
	_, err = second.Write([]byte("tail"))
	require.NoError(t, err)
	expectNoDataYet(t, second)
}

func TestTCPPendingResetFails(t *testing.T) {
	l := startListener(t)
	_, err := l.Mock(TCPMockOptions{Req: predicate.String("matched"), Res: ResponseDescriptor{Body: resolve.Literal(resolve.FromString("ok"))}})
	require.NoError(t, err)
	_, err = l.Mock(TCPMockOptions{Req: predicate.String("never")})
	require.NoError(t, err)

	conn := dial(t, l)
	_, err = conn.Write([]byte("matched"))
	require.NoError(t, err)
	_ = readN(t, conn, 2, time.Second)

	err = l.Reset()
	require.Error(t, err)
	var pme *netmock.PendingMockError
	require.ErrorAs(t, err, &pme)
	require.Len(t, pme.Pending, 1)
}

func TestTCPDestroySocketAbortiveClose(t *testing.T) {
	l := startListener(t)
	_, err := l.Mock(TCPMockOptions{
		Req: predicate.String("boom"),
		Res: ResponseDescriptor{DestroySocket: resolve.Literal(true)},
	})
	require.NoError(t, err)

	conn := dial(t, l)
	_, err = conn.Write([]byte("boom"))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	buf := make([]byte, 1)
	_, err = conn.Read(buf)
	assert.Error(t, err)
}
