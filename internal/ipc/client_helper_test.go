package ipc

import "net"

// clientConn is a minimal hand-rolled IPC client used only by this
// package's own tests, standing in for cmd/wmctl's real client.
type clientConn struct {
	nc net.Conn
}

func dialUnix(path string) (net.Conn, error) {
	return net.Dial("unix", path)
}

func (c *clientConn) writeReq(req Request) error    { return writeFrame(c.nc, req) }
func (c *clientConn) readResp(resp *Response) error { return readFrame(c.nc, resp) }
func (c *clientConn) readEvent(ev *Event) error     { return readFrame(c.nc, ev) }
func (c *clientConn) Close() error                  { return c.nc.Close() }
