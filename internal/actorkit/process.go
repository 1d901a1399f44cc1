// File: internal/actorkit/process.go
package actorkit

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor: its mailbox, its state, and
// the goroutine driving its Receive loop.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	mailbox chan *messageEnvelope
	props   *Props
	stopCh  chan struct{}
	stopped atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

// sendMessage enqueues a message for delivery. It never blocks: a full
// mailbox drops the message and logs, matching spec's "best effort, no
// retry" policy for actor-local queues.
func (p *process) sendMessage(envelope *messageEnvelope) {
	_, isStopping := envelope.Message.(Stopping)
	_, isStopped := envelope.Message.(Stopped)
	if p.stopped.Load() && !isStopping && !isStopped {
		return
	}

	select {
	case p.mailbox <- envelope:
	default:
		fmt.Printf("actorkit: actor %s mailbox full, dropping message type %T\n", p.pid.ID, envelope.Message)
	}
}

// run is the actor's main loop. It owns the actor's lifecycle end to end:
// construction, Started, the message loop, Stopping, and the final Stopped.
func (p *process) run() {
	var stoppingInvoked bool

	defer func() {
		p.stopped.Store(true)
		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("actorkit: actor %s panicked during Stopped handling: %v\n", p.pid.ID, r)
			}
			p.engine.remove(p.pid)
		}()
		if p.actor != nil {
			p.invokeReceive(Stopped{}, nil, "")
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("actorkit: actor %s panicked: %v\nstack:\n%s\n", p.pid.ID, r, string(debug.Stack()))
			if p.stopped.CompareAndSwap(false, true) {
				p.closeStopCh()
				if p.actor != nil && !stoppingInvoked {
					p.invokeReceive(Stopping{}, nil, "")
					stoppingInvoked = true
				}
			}
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic(fmt.Sprintf("actorkit: actor %s producer returned nil actor", p.pid.ID))
	}
	p.invokeReceive(Started{}, nil, "")

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) {
				if !stoppingInvoked {
					p.invokeReceive(Stopping{}, nil, "")
					stoppingInvoked = true
				}
			}
			return

		case envelope, ok := <-p.mailbox:
			if !ok {
				return
			}

			_, isStopping := envelope.Message.(Stopping)
			_, isStoppedMsg := envelope.Message.(Stopped)
			if p.stopped.Load() && !isStopping && !isStoppedMsg {
				continue
			}

			switch msg := envelope.Message.(type) {
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					if !stoppingInvoked {
						p.invokeReceive(msg, envelope.Sender, envelope.requestID)
						stoppingInvoked = true
					}
					p.closeStopCh()
				}
			case Stopped:
				fmt.Printf("actorkit: actor %s received Stopped via mailbox unexpectedly\n", p.pid.ID)
			default:
				p.invokeReceive(envelope.Message, envelope.Sender, envelope.requestID)
			}
		}
	}
}

func (p *process) closeStopCh() {
	select {
	case <-p.stopCh:
	default:
		close(p.stopCh)
	}
}

func (p *process) invokeReceive(msg interface{}, sender *PID, requestID string) {
	ctx := &context{
		engine:    p.engine,
		self:      p.pid,
		sender:    sender,
		message:   msg,
		requestID: requestID,
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("actorkit: actor %s panicked in Receive(%T): %v\nstack:\n%s\n", p.pid.ID, msg, r, string(debug.Stack()))
			if requestID != "" {
				p.engine.resolveAsk(requestID, fmt.Errorf("actorkit: actor panicked: %v", r))
			}
		}
	}()
	p.actor.Receive(ctx)
}
