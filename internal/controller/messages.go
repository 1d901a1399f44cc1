// File: internal/controller/messages.go
package controller

import "github.com/voxelfleet/cuberenderer/internal/raster"

// connectedMsg/disconnectedMsg/lineMsg are internal, sent from a Session's
// own ioLoop goroutine back into its mailbox — the same "signal self, let
// Receive decide" structure as the teacher's ConnectionHandlerActor.
type connectedMsg struct {
	conn ioConn
}

type disconnectedMsg struct {
	err error
}

type lineMsg struct {
	line string
}

// WriteLCD mutates the session's LCD back buffer at (X,Y). It does not
// transmit anything by itself; CommitLCD does.
type WriteLCD struct {
	X, Y int
	Text string
}

// ClearLCD blanks the LCD back buffer.
type ClearLCD struct{}

// CommitLCD diffs the LCD back buffer against front and transmits whatever
// minimal set of lcd: commands is needed to catch the device up.
type CommitLCD struct{}

// SetBacklight sends one boolean per backlight segment.
type SetBacklight struct {
	Bits []bool
}

// SetLED sends a full LED frame: a little-endian pixel count followed by
// that many RGB triples, base64-encoded on the wire.
type SetLED struct {
	Pixels []raster.RGB
}

// Noop requests a liveness line be sent to the device.
type Noop struct{}
