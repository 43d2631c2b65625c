package transport

import "github.com/muurk/textwatch/internal/protocol"

// Handler observes an inbound dictionary.
type Handler func(d *protocol.Dict)

// Chain runs inbound observers synchronously in registration order.
type Chain struct {
	names    []string
	handlers []Handler
}

// Register appends an observer. Observers registered first see every
// message first.
func (c *Chain) Register(name string, h Handler) {
	c.names = append(c.names, name)
	c.handlers = append(c.handlers, h)
}

// Dispatch hands d to every observer.
func (c *Chain) Dispatch(d *protocol.Dict) {
	for _, h := range c.handlers {
		h(d)
	}
}

// Names lists the observers in dispatch order.
func (c *Chain) Names() []string {
	return append([]string(nil), c.names...)
}
