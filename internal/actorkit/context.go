// File: internal/actorkit/context.go
package actorkit

// Context carries everything an actor needs while processing one message.
type Context interface {
	// Engine returns the Engine hosting this actor.
	Engine() *Engine
	// Self returns the PID of the actor processing the message.
	Self() *PID
	// Sender returns the PID of the sending actor, or nil if the message
	// originated outside the actor system.
	Sender() *PID
	// Message returns the message being processed.
	Message() interface{}
	// RequestID returns the correlation id set by Engine.Ask, or "" if this
	// message was sent with plain Send.
	RequestID() string
	// Reply answers an Ask request. It is a no-op if the message was not
	// sent via Ask.
	Reply(response interface{})
}

type context struct {
	engine    *Engine
	self      *PID
	sender    *PID
	message   interface{}
	requestID string
}

func (c *context) Engine() *Engine      { return c.engine }
func (c *context) Self() *PID           { return c.self }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Message() interface{} { return c.message }
func (c *context) RequestID() string    { return c.requestID }

func (c *context) Reply(response interface{}) {
	if c.requestID == "" {
		return
	}
	c.engine.resolveAsk(c.requestID, response)
}
