// Package transport carries dictionaries between the face and its companion.
//
// The face dials the companion's WebSocket endpoint and keeps redialing with
// exponential backoff while the link is down. Messages travel as binary
// frames holding one encoded dictionary each.
//
// # Sending
//
// At most one outbound message is in flight. Send fails with ErrNotConnected
// while the link is down, with ErrBusy while a previous message is still
// being written, and with protocol.ErrBufferOverflow when the encoding does
// not fit the outbound buffer. Delivery outcomes are reported through the
// Sent and Failed callbacks.
//
// # Receiving
//
// Inbound dictionaries are dispatched to a Chain of handlers in registration
// order. Messages larger than the inbound buffer, malformed messages and text
// frames are discarded and reported through the Dropped callback with a
// Result naming the reason.
//
// # Threading
//
// The client runs its own goroutines but never calls handlers or callbacks
// directly. Everything goes through the poster set with WithPoster, which the
// face wires to its event loop:
//
//	client := transport.NewClient(url, chain,
//	    transport.WithPoster(func(f func()) { program.Send(invokeMsg(f)) }),
//	    transport.WithBufferSizes(256, 128),
//	)
//	go client.Run(ctx)
package transport
