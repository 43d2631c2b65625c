package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/textwatch/internal/logging"
	"github.com/muurk/textwatch/internal/protocol"
)

const (
	// Time allowed to write a message to the companion
	writeWait = 10 * time.Second

	// Hard cap on a single frame; larger frames close the link
	maxFrameSize = 64 * 1024

	defaultInitialRetry = 500 * time.Millisecond
	defaultMaxRetry     = 30 * time.Second
)

// Callbacks receive transport outcomes. All run through the client's poster.
type Callbacks struct {
	// Dropped reports an inbound message that was discarded.
	Dropped func(reason Result)

	// Sent reports a message written to the link.
	Sent func(d *protocol.Dict)

	// Failed reports a message that was accepted but not delivered.
	Failed func(d *protocol.Dict, err error)

	// LinkChanged reports the link coming up or going down.
	LinkChanged func(up bool)
}

// Client is the face's end of the companion link.
type Client struct {
	url    string
	inbox  int
	outbox int

	dialer   *websocket.Dialer
	post     func(func())
	chain    *Chain
	cb       Callbacks
	retryMin time.Duration
	retryMax time.Duration

	mu       sync.Mutex
	conn     *websocket.Conn
	inflight bool
}

// Option configures a Client.
type Option func(*Client)

// WithBufferSizes sets the inbound and outbound limits. Values below the
// protocol minimums are raised.
func WithBufferSizes(inbox, outbox int) Option {
	return func(c *Client) {
		c.inbox, c.outbox = protocol.NormalizeSizes(inbox, outbox)
	}
}

// WithPoster sets the function used to run callbacks and observers.
// The face passes its event loop so that all state changes happen there.
func WithPoster(post func(func())) Option {
	return func(c *Client) {
		c.post = post
	}
}

// WithDialer replaces the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) {
		c.dialer = d
	}
}

// WithCallbacks sets the outcome callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(c *Client) {
		c.cb = cb
	}
}

// WithRetry sets the redial backoff bounds.
func WithRetry(initial, maxInterval time.Duration) Option {
	return func(c *Client) {
		c.retryMin = initial
		c.retryMax = maxInterval
	}
}

// NewClient returns a client for the companion at url.
func NewClient(url string, chain *Chain, opts ...Option) *Client {
	c := &Client{
		url:      url,
		inbox:    protocol.MinInboxSize,
		outbox:   protocol.MinOutboxSize,
		dialer:   websocket.DefaultDialer,
		post:     func(f func()) { f() },
		chain:    chain,
		retryMin: defaultInitialRetry,
		retryMax: defaultMaxRetry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the companion address.
func (c *Client) URL() string {
	return c.url
}

// BufferSizes returns the effective inbound and outbound limits.
func (c *Client) BufferSizes() (inbox, outbox int) {
	return c.inbox, c.outbox
}

// Connected reports whether the link is up.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Begin reports whether a message could be sent now.
func (c *Client) Begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginLocked()
}

func (c *Client) beginLocked() error {
	if c.conn == nil {
		return ErrNotConnected
	}
	if c.inflight {
		return ErrBusy
	}
	return nil
}

// Send encodes d and writes it in the background. An error means the
// message was not accepted; delivery problems arrive through
// Callbacks.Failed.
func (c *Client) Send(d *protocol.Dict) error {
	data, err := protocol.Encode(d, c.outbox)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if err := c.beginLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	conn := c.conn
	c.inflight = true
	c.mu.Unlock()

	go func() {
		err := c.write(conn, data)

		c.mu.Lock()
		c.inflight = false
		c.mu.Unlock()

		c.post(func() {
			if err != nil {
				logging.Warn("Message send failed",
					zap.String("message", d.String()),
					zap.Error(err),
				)
				if c.cb.Failed != nil {
					c.cb.Failed(d, err)
				}
				return
			}
			logging.Debug("Message sent successfully", zap.String("message", d.String()))
			if c.cb.Sent != nil {
				c.cb.Sent(d)
			}
		})
	}()
	return nil
}

func (c *Client) write(conn *websocket.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return &Error{Result: ResultSendTimeout, Err: err}
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return &Error{Result: ResultSendRejected, Err: err}
	}
	logging.LogMessage(c.url, "sent", data)
	return nil
}

// Run dials the companion and reads from it until ctx is done, redialing
// with exponential backoff whenever the link drops.
func (c *Client) Run(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryMin
	b.MaxInterval = c.retryMax
	b.MaxElapsedTime = 0
	b.Reset()

	for {
		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			wait := b.NextBackOff()
			logging.Debug("Companion dial failed",
				zap.String("url", c.url),
				zap.Duration("retry_in", wait),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(wait):
			}
			continue
		}
		b.Reset()

		c.setConn(conn)
		logging.LogConnection(c.url, "connected")
		c.postLink(true)

		err = c.readLoop(ctx, conn)

		c.setConn(nil)
		_ = conn.Close()
		logging.LogConnection(c.url, "disconnected")
		c.postLink(false)

		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			logging.Info("Companion link lost", zap.String("url", c.url), zap.Error(err))
		}
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.inflight = false
	c.mu.Unlock()
}

func (c *Client) postLink(up bool) {
	c.post(func() {
		if c.cb.LinkChanged != nil {
			c.cb.LinkChanged(up)
		}
	})
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	conn.SetReadLimit(maxFrameSize)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}
		c.receive(mt, data)
	}
}

func (c *Client) receive(mt int, data []byte) {
	logging.LogMessage(c.url, "received", data)

	if mt != websocket.BinaryMessage {
		c.drop(ResultInvalidArgs, errors.New("non-binary message"))
		return
	}

	d, err := protocol.Decode(data, c.inbox)
	if err != nil {
		if errors.Is(err, protocol.ErrBufferOverflow) {
			c.drop(ResultBufferOverflow, err)
		} else {
			c.drop(ResultInternalError, err)
		}
		return
	}

	c.post(func() {
		c.chain.Dispatch(d)
	})
}

func (c *Client) drop(reason Result, err error) {
	logging.Warn("Message dropped",
		zap.String("reason", reason.String()),
		zap.Int("code", int(reason)),
		zap.Error(err),
	)
	c.post(func() {
		if c.cb.Dropped != nil {
			c.cb.Dropped(reason)
		}
	})
}
