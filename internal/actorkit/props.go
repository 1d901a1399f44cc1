// File: internal/actorkit/props.go
package actorkit

// Actor is the interface implemented by every actor hosted by an Engine.
// Receive is invoked sequentially, once per message, from the actor's own
// goroutine — implementations never need their own locking for state that
// only Receive touches.
type Actor interface {
	Receive(ctx Context)
}

// Producer constructs a fresh Actor instance. Engine.Spawn calls it exactly
// once, on the actor's own goroutine, so a Producer may safely do
// initialization work that would be unsafe to share across actors.
type Producer func() Actor

// Props configures how an actor is created. It exists mainly so future
// options (mailbox size, supervisor strategy) have somewhere to live without
// changing Spawn's signature.
type Props struct {
	producer Producer
}

// NewProps wraps a Producer in a Props ready for Engine.Spawn.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("actorkit: producer cannot be nil")
	}
	return &Props{producer: producer}
}

// Produce creates a new Actor instance using the configured producer.
func (p *Props) Produce() Actor {
	return p.producer()
}
