// File: internal/controller/test_utils.go
package controller

import (
	"bytes"
	"io"
	"sync"
)

// fakeConn is an in-memory ioConn: writes accumulate in an outbox buffer,
// reads are satisfied from a pipe so a test can push lines the "device"
// sends back. Grounded on the teacher's test/helpers_test.go preference
// for small hand-rolled fakes over a mocking library.
type fakeConn struct {
	mu     sync.Mutex
	outbox bytes.Buffer

	readR *io.PipeReader
	readW *io.PipeWriter
	closed bool
}

func newFakeConn() *fakeConn {
	r, w := io.Pipe()
	return &fakeConn{readR: r, readW: w}
}

func (c *fakeConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, io.ErrClosedPipe
	}
	return c.outbox.Write(p)
}

func (c *fakeConn) Read(p []byte) (int, error) {
	return c.readR.Read(p)
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.readW.Close()
	return nil
}

// pushLine simulates the device sending one line.
func (c *fakeConn) pushLine(line string) {
	c.readW.Write([]byte(line + "\n"))
}

func (c *fakeConn) written() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outbox.String()
}
