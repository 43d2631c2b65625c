package glucose

import "time"

const (
	// RequestInterval separates requests after a successful send.
	RequestInterval = 60 * time.Second

	// RetryInterval separates requests after a failed one.
	RetryInterval = 30 * time.Second
)

// Link reports whether the companion is reachable.
type Link interface {
	Connected() bool
}

// RequestState records the outcome of the last request.
// A zero LastRequest means no request was ever sent.
type RequestState struct {
	LastRequest int64
	LastFailed  bool
}

// Throttler decides when the face may ask the companion for data.
// Only the throttler and its Service mutate the request state.
type Throttler struct {
	link  Link
	state RequestState
}

// NewThrottler returns a throttler for link.
func NewThrottler(link Link) *Throttler {
	return &Throttler{link: link}
}

// State returns a copy of the request state.
func (t *Throttler) State() RequestState {
	return t.state
}

// ShouldSendRequest reports whether a request may be sent at now. A down
// link counts as a failure.
func (t *Throttler) ShouldSendRequest(now time.Time) bool {
	if !t.link.Connected() {
		t.state.LastFailed = true
		return false
	}

	interval := RequestInterval
	if t.state.LastFailed {
		interval = RetryInterval
	}
	return now.Unix()-t.state.LastRequest >= int64(interval/time.Second)
}

// MarkSent records a request that was handed to the transport at now.
func (t *Throttler) MarkSent(now time.Time) {
	t.state.LastRequest = now.Unix()
	t.state.LastFailed = false
}

// MarkFailed records a request that could not be sent or delivered.
// The request timestamp is left alone.
func (t *Throttler) MarkFailed() {
	t.state.LastFailed = true
}

// ClearFailure forgets a previous failure after new data arrived.
func (t *Throttler) ClearFailure() {
	t.state.LastFailed = false
}
