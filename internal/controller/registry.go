// File: internal/controller/registry.go
package controller

import (
	"fmt"
	"sync"
	"time"

	"github.com/voxelfleet/cuberenderer/internal/actorkit"
	"github.com/voxelfleet/cuberenderer/internal/raster"
)

// ButtonState is the derived state the Registry reports for a button edge.
type ButtonState int

const (
	Released ButtonState = iota
	Pressed
	Held
)

func (s ButtonState) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Held:
		return "held"
	default:
		return "released"
	}
}

// Button indices, fixed by spec.md section 4.5.
const (
	ButtonUp = iota
	ButtonLeft
	ButtonDown
	ButtonRight
	ButtonSelect
)

const restartHoldThreshold = 5 * time.Second

// GameCallback is invoked once per button edge (and once per raw button
// frame for each button that is still held), on the goroutine of the
// Session actor that delivered the frame. Games must treat
// this as foreign and synchronize any mutation of their own state —
// spec.md section 4.6's explicit callback contract.
type GameCallback func(playerID string, button int, state ButtonState)

// Address names one physical controller the Registry should connect to.
type Address struct {
	IP          string
	Port        uint16
	ExpectedDIP uint16
}

type sessionEntry struct {
	pid         *actorkit.PID
	expectedDIP uint16
	confirmed   bool
	dip         uint16
	playerID    string
	lastButtons [5]bool
	holdStart   time.Time
	holding     bool
}

// Registry owns every controller Session, performs the enum handshake
// that binds a DIP to a session, and dispatches button edges to the game.
// Structurally grounded on RoomManagerActor's map-of-children ownership,
// implemented as a plain mutex-guarded struct (like SenderMonitor) rather
// than an actor: its job is thread-safe aggregation and fan-out, not a
// serialized mailbox, and a plain struct lets the render thread query
// HoldingRestart without a round trip through the reactor.
type Registry struct {
	mu                sync.Mutex
	engine            *actorkit.Engine
	sessions          map[string]*sessionEntry // keyed by PID.String()
	controllerMapping map[uint16]string        // dip -> player id
	callback          GameCallback
}

// NewRegistry builds a Registry. controllerMapping binds confirmed DIPs to
// player ids; callback receives button edges.
func NewRegistry(engine *actorkit.Engine, controllerMapping map[uint16]string, callback GameCallback) *Registry {
	return &Registry{
		engine:            engine,
		sessions:          make(map[string]*sessionEntry),
		controllerMapping: controllerMapping,
		callback:          callback,
	}
}

// Start spawns one Session per address and schedules the enumeration
// timeout (~5s) after which any still-unconfirmed session is disconnected.
func (r *Registry) Start(addresses []Address) {
	r.mu.Lock()
	for _, addr := range addresses {
		producer := NewSessionProducer(addr.IP, addr.Port, addr.ExpectedDIP, r)
		pid := r.engine.Spawn(actorkit.NewProps(producer))
		if pid == nil {
			continue
		}
		r.sessions[pid.String()] = &sessionEntry{pid: pid, expectedDIP: addr.ExpectedDIP}
	}
	r.mu.Unlock()

	time.AfterFunc(5*time.Second, r.disconnectUnconfirmed)
}

func (r *Registry) disconnectUnconfirmed() {
	var stale []*actorkit.PID
	r.mu.Lock()
	for key, e := range r.sessions {
		if !e.confirmed {
			stale = append(stale, e.pid)
			delete(r.sessions, key)
		}
	}
	r.mu.Unlock()

	for _, pid := range stale {
		fmt.Printf("WARN: Registry: controller at %s never confirmed its DIP within the enumeration timeout\n", pid)
		r.engine.Stop(pid)
	}
}

// HandleEnumResponse is called by a Session once its device announces a
// DIP. A mismatch against the expected DIP, or a DIP with no player
// mapping, disconnects the session.
func (r *Registry) HandleEnumResponse(sessionPID *actorkit.PID, dip uint16) {
	r.mu.Lock()
	entry, ok := r.sessions[sessionPID.String()]
	if !ok {
		r.mu.Unlock()
		return
	}
	if dip != entry.expectedDIP {
		delete(r.sessions, sessionPID.String())
		r.mu.Unlock()
		fmt.Printf("WARN: Registry: controller at %s announced dip %d, expected %d; disconnecting\n", sessionPID, dip, entry.expectedDIP)
		r.engine.Stop(sessionPID)
		return
	}
	playerID, mapped := r.controllerMapping[dip]
	if !mapped {
		delete(r.sessions, sessionPID.String())
		r.mu.Unlock()
		fmt.Printf("WARN: Registry: dip %d has no player mapping; disconnecting %s\n", dip, sessionPID)
		r.engine.Stop(sessionPID)
		return
	}
	entry.dip = dip
	entry.playerID = playerID
	entry.confirmed = true
	r.mu.Unlock()
}

// HandleRawButtons is called by a Session on every raw button frame. It
// derives Pressed/Released edges (and Held for steady-state presses)
// against the session's last frame, tracks the SELECT hold timer, and
// invokes the game callback once for each button that is down in this
// frame or was down in the previous one.
func (r *Registry) HandleRawButtons(sessionPID *actorkit.PID, buttons [5]bool) {
	r.mu.Lock()
	entry, ok := r.sessions[sessionPID.String()]
	if !ok || !entry.confirmed {
		r.mu.Unlock()
		return
	}
	prev := entry.lastButtons
	entry.lastButtons = buttons
	playerID := entry.playerID

	if buttons[ButtonSelect] && !prev[ButtonSelect] {
		entry.holdStart = time.Now()
		entry.holding = true
	} else if !buttons[ButtonSelect] && prev[ButtonSelect] {
		entry.holding = false
	}
	r.mu.Unlock()

	if r.callback == nil {
		return
	}
	for i := 0; i < 5; i++ {
		switch {
		case buttons[i] && prev[i]:
			r.callback(playerID, i, Held)
		case buttons[i] && !prev[i]:
			r.callback(playerID, i, Pressed)
		case !buttons[i] && prev[i]:
			r.callback(playerID, i, Released)
		}
	}
}

// HoldingRestart reports whether dip's SELECT button has been held for at
// least the restart threshold. Safe to call from the render thread.
func (r *Registry) HoldingRestart(dip uint16) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.sessions {
		if e.confirmed && e.dip == dip && e.holding && time.Since(e.holdStart) >= restartHoldThreshold {
			return true
		}
	}
	return false
}

// ControllerStatus is a read-only snapshot of one session, for the
// monitor's HTTP endpoint.
type ControllerStatus struct {
	DIP       uint16
	PlayerID  string
	Confirmed bool
	Holding   bool
}

// Stats returns a snapshot of every known session, grounded on
// SenderMonitor.Stats()'s copy-out-under-lock shape.
func (r *Registry) Stats() []ControllerStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ControllerStatus, 0, len(r.sessions))
	for _, e := range r.sessions {
		out = append(out, ControllerStatus{
			DIP:       e.dip,
			PlayerID:  e.playerID,
			Confirmed: e.confirmed,
			Holding:   e.holding,
		})
	}
	return out
}

// SessionHandle is a Scene's view of one confirmed controller: enough to
// drive its LCD without exposing the Session actor or the Registry's
// internal bookkeeping.
type SessionHandle struct {
	registry *Registry
	pid      *actorkit.PID
}

// SessionFor returns a handle for the session currently bound to playerID,
// or false if no confirmed session is mapped to that player.
func (r *Registry) SessionFor(playerID string) (SessionHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.sessions {
		if e.confirmed && e.playerID == playerID {
			return SessionHandle{registry: r, pid: e.pid}, true
		}
	}
	return SessionHandle{}, false
}

// WriteLCD, ClearLCD, CommitLCD, SetBacklight and SetLED are all
// fire-and-forget sends into the session's mailbox — the render thread
// must never block on a session.
func (h SessionHandle) WriteLCD(x, y int, text string) {
	h.registry.engine.Send(h.pid, WriteLCD{X: x, Y: y, Text: text}, nil)
}

func (h SessionHandle) ClearLCD() {
	h.registry.engine.Send(h.pid, ClearLCD{}, nil)
}

func (h SessionHandle) CommitLCD() {
	h.registry.engine.Send(h.pid, CommitLCD{}, nil)
}

func (h SessionHandle) SetBacklight(bits []bool) {
	h.registry.engine.Send(h.pid, SetBacklight{Bits: bits}, nil)
}

func (h SessionHandle) SetLED(pixels []raster.RGB) {
	h.registry.engine.Send(h.pid, SetLED{Pixels: pixels}, nil)
}
