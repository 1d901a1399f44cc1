// File: internal/controller/session.go
package controller

import (
	"bufio"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/voxelfleet/cuberenderer/internal/actorkit"
	"github.com/voxelfleet/cuberenderer/internal/raster"
)

// ioConn is the read/write/close surface Session needs from a connection —
// satisfied by net.Conn and, in tests, by an in-memory pipe.
type ioConn interface {
	io.Reader
	io.Writer
	io.Closer
}

type dialFunc func(network, address string, timeout time.Duration) (ioConn, error)

func dialTCP(network, address string, timeout time.Duration) (ioConn, error) {
	return net.DialTimeout(network, address, timeout)
}

const (
	connectTimeout  = 2 * time.Second
	reconnectBackoff = time.Second
)

// Session is the actor that owns one physical controller's TCP connection:
// the reconnect loop, the line protocol, the LCD double buffer, and
// forwarding raw button frames to the Registry. Grounded on
// ConnectionHandlerActor's "readLoop feeds the actor's own mailbox, actor
// decides" structure, adapted from WebSocket framing onto raw TCP.
type Session struct {
	addr        string
	expectedDIP uint16
	registry    *Registry
	dial        dialFunc

	lcd *LCD

	conn      ioConn
	connected bool
	dip       uint16
	dipKnown  bool
	lastError error

	selfPID *actorkit.PID

	stopCh       chan struct{}
	stopOnce     sync.Once
	ioLoopExited chan struct{}
}

// NewSessionProducer builds the actorkit.Producer for one controller at
// ip:port, expected to announce expectedDIP on enum.
func NewSessionProducer(ip string, port uint16, expectedDIP uint16, registry *Registry) actorkit.Producer {
	addr := net.JoinHostPort(ip, strconv.Itoa(int(port)))
	return func() actorkit.Actor {
		return &Session{
			addr:         addr,
			expectedDIP:  expectedDIP,
			registry:     registry,
			dial:         dialTCP,
			lcd:          NewLCD(),
			stopCh:       make(chan struct{}),
			ioLoopExited: make(chan struct{}),
		}
	}
}

func (s *Session) Receive(ctx actorkit.Context) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in Session %s Receive: %v\nStack trace:\n%s\n", s.addr, r, string(debug.Stack()))
		}
	}()

	if s.selfPID == nil {
		s.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case actorkit.Started:
		go s.ioLoop(ctx.Engine(), ctx.Self())

	case connectedMsg:
		s.conn = msg.conn
		s.connected = true
		s.lastError = nil
		s.dipKnown = false
		s.lcd.Invalidate()
		s.sendLine("enum")
		s.commitLCD()

	case disconnectedMsg:
		s.connected = false
		s.dipKnown = false
		s.lastError = msg.err
		if s.conn != nil {
			s.conn.Close()
			s.conn = nil
		}

	case lineMsg:
		s.handleLine(msg.line)

	case WriteLCD:
		s.lcd.WriteText(msg.X, msg.Y, msg.Text)

	case ClearLCD:
		s.lcd.Clear()

	case CommitLCD:
		s.commitLCD()

	case SetBacklight:
		s.sendLine(encodeBacklight(msg.Bits))

	case SetLED:
		s.sendLine(encodeLED(msg.Pixels))

	case Noop:
		s.sendLine("noop")

	case actorkit.Stopping:
		s.stopOnce.Do(func() { close(s.stopCh) })
		if s.conn != nil {
			s.conn.Close()
		}

	case actorkit.Stopped:

	default:
		fmt.Printf("Session %s received unexpected message type %T\n", s.addr, msg)
	}
}

func (s *Session) commitLCD() {
	cmds := s.lcd.Diff()
	if len(cmds) == 0 {
		return
	}
	for _, cmd := range cmds {
		if err := s.writeLine(cmd); err != nil {
			s.lcd.Invalidate()
			return
		}
	}
	s.lcd.Accept()
}

func (s *Session) sendLine(line string) {
	if err := s.writeLine(line); err != nil {
		fmt.Printf("WARN: Session %s: send %q failed: %v\n", s.addr, line, err)
	}
}

// writeLine is the single point through which every outbound command
// passes. A write failure marks the session disconnected immediately —
// there is no output queue, matching spec.md section 4.5's "caller's
// write is dropped" error semantics.
func (s *Session) writeLine(line string) error {
	if !s.connected || s.conn == nil {
		return fmt.Errorf("session %s: not connected", s.addr)
	}
	_, err := s.conn.Write([]byte(line + "\n"))
	if err != nil {
		s.connected = false
		s.lastError = err
		s.conn.Close()
		s.conn = nil
	}
	return err
}

type enumAnnouncement struct {
	Type string `json:"type"`
	DIP  *uint16 `json:"dip"`
}

type buttonFrame struct {
	Buttons []bool `json:"buttons"`
}

func (s *Session) handleLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	var ann enumAnnouncement
	if err := json.Unmarshal([]byte(line), &ann); err == nil && ann.Type == "controller" && ann.DIP != nil {
		s.dip = *ann.DIP
		s.dipKnown = true
		if s.registry != nil {
			s.registry.HandleEnumResponse(s.selfPID, s.dip)
		}
		return
	}

	var bf buttonFrame
	if err := json.Unmarshal([]byte(line), &bf); err == nil && len(bf.Buttons) == 5 {
		if s.registry != nil && s.dipKnown {
			var arr [5]bool
			copy(arr[:], bf.Buttons)
			s.registry.HandleRawButtons(s.selfPID, arr)
		}
		return
	}

	fmt.Printf("WARN: Session %s: malformed line dropped: %q\n", s.addr, line)
}

// ioLoop owns the reconnect loop and the read loop: dial with a bounded
// timeout, signal the actor on connect, read lines until EOF/error,
// signal disconnect, back off, retry forever until Stopping closes stopCh.
func (s *Session) ioLoop(engine *actorkit.Engine, self *actorkit.PID) {
	defer close(s.ioLoopExited)
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		conn, err := s.dial("tcp", s.addr, connectTimeout)
		if err != nil {
			engine.Send(self, disconnectedMsg{err: err}, nil)
			if s.sleepOrStop(reconnectBackoff) {
				return
			}
			continue
		}

		engine.Send(self, connectedMsg{conn: conn}, nil)
		readErr := s.readLines(conn, engine, self)
		engine.Send(self, disconnectedMsg{err: readErr}, nil)

		if s.sleepOrStop(reconnectBackoff) {
			return
		}
	}
}

func (s *Session) sleepOrStop(d time.Duration) (stopped bool) {
	select {
	case <-s.stopCh:
		return true
	case <-time.After(d):
		return false
	}
}

func (s *Session) readLines(conn ioConn, engine *actorkit.Engine, self *actorkit.PID) error {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		select {
		case <-s.stopCh:
			return nil
		default:
		}
		engine.Send(self, lineMsg{line: scanner.Text()}, nil)
	}
	return scanner.Err()
}

func encodeBacklight(bits []bool) string {
	parts := make([]string, len(bits))
	for i, b := range bits {
		if b {
			parts[i] = "1"
		} else {
			parts[i] = "0"
		}
	}
	return "backlight:" + strings.Join(parts, ":")
}

// encodeLED serializes pixels as a u16-LE count followed by that many RGB
// triples, base64 standard encoding with padding, no embedded newlines —
// resolving spec.md's Open Question on LED framing (see SPEC_FULL.md).
func encodeLED(pixels []raster.RGB) string {
	buf := make([]byte, 2+len(pixels)*3)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(pixels)))
	for i, p := range pixels {
		off := 2 + i*3
		buf[off] = p.R
		buf[off+1] = p.G
		buf[off+2] = p.B
	}
	return "led:" + base64.StdEncoding.EncodeToString(buf)
}
