package tcpmock

import (
	"net"
	"sync"
)

// pinGroup is the shared record that pins a family of mocks to one
// connection: one per head mock, written once when the head matches,
// and consulted by every tail mock sharing it to decide connection
// eligibility.
type pinGroup struct {
	mu   sync.Mutex
	conn net.Conn
}

func newPinGroup() *pinGroup { return &pinGroup{} }

// bind records conn as this group's connection, if not already bound.
// Only the first bind (by the head) has any effect.
func (g *pinGroup) bind(conn net.Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conn == nil {
		g.conn = conn
	}
}

// boundTo reports whether this group is already bound to conn.
func (g *pinGroup) boundTo(conn net.Conn) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.conn == conn
}
