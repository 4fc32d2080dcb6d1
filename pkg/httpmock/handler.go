package httpmock

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/netstub/netstub/pkg/logging"
	"github.com/netstub/netstub/pkg/netmock"
	"github.com/netstub/netstub/pkg/resolve"
	"github.com/netstub/netstub/pkg/util"
)

type handler struct {
	mocks *netmock.Set
}

func newHandler(mocks *netmock.Set) *handler {
	return &handler{mocks: mocks}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		logging.General().Debug("failed to read request body", "error", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	entry := h.mocks.FindAndMark(func(e netmock.Entry) bool {
		m, ok := e.(*HTTPMock)
		if !ok {
			return false
		}
		return m.req.Match(req)
	})

	if entry == nil {
		logging.Match().Debug("no mock matched", "method", req.Method, "pathname", req.Pathname,
			"body", util.TruncateBody(string(req.Body), 0))
		writeFallback(w, req, r)
		return
	}

	m := entry.(*HTTPMock)
	res := m.res.resolve(resolve.Args{Request: req, Body: req.Body})
	writeResponse(w, res)
}

func writeFallback(w http.ResponseWriter, req *Request, r *http.Request) {
	logging.General().Debug("no matching mock found", "method", req.Method, "pathname", req.Pathname)
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, "No matching mock was found for [%s %s HTTP/%s]", req.Method, r.URL.RequestURI(), protoVersion(r))
}

func protoVersion(r *http.Request) string {
	if r.ProtoMajor == 0 {
		return "1.1"
	}
	return fmt.Sprintf("%d.%d", r.ProtoMajor, r.ProtoMinor)
}

// writeResponse honors headerDelay, then bodyDelay, then either writes
// the body or abruptly destroys the connection.
func writeResponse(w http.ResponseWriter, res resolved) {
	if res.headerDelayMS > 0 {
		time.Sleep(time.Duration(res.headerDelayMS) * time.Millisecond)
	}
	for name, value := range res.headers {
		w.Header().Set(name, string(value))
	}
	w.WriteHeader(res.statusCode)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	if res.bodyDelayMS > 0 {
		time.Sleep(time.Duration(res.bodyDelayMS) * time.Millisecond)
	}

	if res.destroySocket {
		destroySocket(w)
		return
	}

	if _, err := w.Write(res.body); err != nil {
		logging.General().Debug("write response body failed, peer likely disconnected", "error", err)
	}
}

// destroySocket performs an abortive close so the peer observes
// ECONNRESET rather than a clean FIN. Hijacks the connection the way a
// fault-injecting middleware would, then additionally disables linger
// so the close is abortive rather than graceful.
func destroySocket(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		logging.General().Debug("destroySocket: ResponseWriter does not support Hijack")
		return
	}
	conn, buf, err := hj.Hijack()
	if err != nil {
		logging.General().Debug("destroySocket: hijack failed", "error", err)
		return
	}
	defer conn.Close()
	if buf != nil {
		_ = buf.Flush()
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetLinger(0)
	}
}
