// File: internal/actorkit/engine.go
package actorkit

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrTimeout is returned by Ask when no reply arrives within the deadline.
var ErrTimeout = errors.New("actorkit: ask timed out")

// Engine owns the full set of live actors and routes messages between them.
type Engine struct {
	pidCounter uint64
	actors     map[string]*process
	mu         sync.RWMutex
	stopping   atomic.Bool

	askMu      sync.Mutex
	askCounter uint64
	pending    map[string]chan interface{}
}

// NewEngine creates an empty, ready-to-use Engine.
func NewEngine() *Engine {
	return &Engine{
		actors:  make(map[string]*process),
		pending: make(map[string]chan interface{}),
	}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

// Spawn creates and starts a new actor from the given Props, returning its
// PID. Returns nil if the engine is shutting down.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		fmt.Println("actorkit: engine is stopping, cannot spawn new actors")
		return nil
	}

	pid := e.nextPID()
	proc := newProcess(e, pid, props)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()

	return pid
}

// Send delivers message to the actor at pid. sender may be nil when the
// message originates outside the actor system (e.g. an HTTP handler).
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	e.send(pid, message, sender, "")
}

func (e *Engine) send(pid *PID, message interface{}, sender *PID, requestID string) {
	if pid == nil {
		return
	}
	_, isStopping := message.(Stopping)
	_, isStopped := message.(Stopped)
	if e.stopping.Load() && !isStopping && !isStopped {
		return
	}

	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()

	if !ok {
		if requestID != "" {
			e.resolveAsk(requestID, fmt.Errorf("actorkit: actor %s not found", pid.ID))
		}
		return
	}
	proc.sendMessage(&messageEnvelope{Sender: sender, Message: message, requestID: requestID})
}

// Ask sends message to pid and blocks until the actor calls ctx.Reply, the
// timeout elapses (returning ErrTimeout), or the actor is not found.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if pid == nil {
		return nil, fmt.Errorf("actorkit: Ask called with nil PID")
	}

	requestID := e.nextAskID()
	replyCh := make(chan interface{}, 1)

	e.askMu.Lock()
	e.pending[requestID] = replyCh
	e.askMu.Unlock()

	defer func() {
		e.askMu.Lock()
		delete(e.pending, requestID)
		e.askMu.Unlock()
	}()

	e.send(pid, message, nil, requestID)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case reply := <-replyCh:
		if err, ok := reply.(error); ok {
			return nil, err
		}
		return reply, nil
	case <-timer.C:
		return nil, ErrTimeout
	}
}

func (e *Engine) nextAskID() string {
	id := atomic.AddUint64(&e.askCounter, 1)
	return fmt.Sprintf("ask-%d", id)
}

func (e *Engine) resolveAsk(requestID string, response interface{}) {
	e.askMu.Lock()
	ch, ok := e.pending[requestID]
	if ok {
		delete(e.pending, requestID)
	}
	e.askMu.Unlock()

	if !ok {
		return
	}
	select {
	case ch <- response:
	default:
	}
}

// Stop asks the actor at pid to wind down. It returns immediately; the
// actor finishes processing its current message, then Stopping, then exits.
func (e *Engine) Stop(pid *PID) {
	if pid == nil {
		return
	}
	e.mu.RLock()
	_, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if ok {
		e.Send(pid, Stopping{}, nil)
	}
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Count returns the number of actors currently tracked by the engine.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.actors)
}

// Shutdown stops every live actor and blocks until they have all exited or
// the timeout elapses.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}

	e.mu.RLock()
	pids := make([]*PID, 0, len(e.actors))
	for _, proc := range e.actors {
		pids = append(pids, proc.pid)
	}
	e.mu.RUnlock()

	for _, pid := range pids {
		e.Stop(pid)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	e.mu.Lock()
	remaining := len(e.actors)
	if remaining > 0 {
		fmt.Printf("actorkit: shutdown timeout with %d actors still running\n", remaining)
		e.actors = make(map[string]*process)
	}
	e.mu.Unlock()
}
