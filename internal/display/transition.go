package display

import (
	"time"

	"go.uber.org/zap"

	"github.com/muurk/textwatch/internal/anim"
	"github.com/muurk/textwatch/internal/logging"
)

// Transitioner slides new text into slots on an animation scheduler.
type Transitioner struct {
	sched *anim.Scheduler
	now   func() time.Time
}

// TransitionerOption configures a Transitioner.
type TransitionerOption func(*Transitioner)

// WithClock sets the time source used to anchor transitions.
func WithClock(now func() time.Time) TransitionerOption {
	return func(t *Transitioner) {
		t.now = now
	}
}

// NewTransitioner returns a transitioner scheduling on sched.
func NewTransitioner(sched *anim.Scheduler, opts ...TransitionerOption) *Transitioner {
	t := &Transitioner{sched: sched, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Scheduler returns the underlying animation scheduler.
func (t *Transitioner) Scheduler() *anim.Scheduler {
	return t.sched
}

// UpdateLine writes text into the off-screen buffer of slot and slides it
// in. The on-screen buffer leaves at delay; the new one enters OutInGap
// later. Roles swap when the entering animation stops. When the scheduler
// has no room the text is shown without a transition.
func (t *Transitioner) UpdateLine(slot *Slot, text string, delay time.Duration) {
	slot.settle()
	slot.gen++
	gen := slot.gen

	front, back := slot.front, 1-slot.front
	text = slot.fit.Fit(text)
	slot.bufs[back] = Buffer{Text: text, X: CanvasWidth, Y: slot.nextY, Bold: slot.nextBold}
	slot.target = text
	slot.pending = true

	now := t.now()
	out, err := t.sched.Schedule(now, anim.Spec{
		Delay:    delay,
		Duration: Duration,
		Curve:    anim.EaseIn,
		From:     slot.bufs[front].X,
		To:       -CanvasWidth,
		Apply:    slot.moveTo(front, gen),
	})
	if err != nil {
		t.skip(slot, text, err)
		return
	}

	in, err := t.sched.Schedule(now, anim.Spec{
		Delay:    delay + OutInGap,
		Duration: Duration,
		Curve:    anim.EaseOut,
		From:     CanvasWidth,
		To:       0,
		Apply:    slot.moveTo(back, gen),
		Stopped:  func(bool) { slot.complete(gen) },
	})
	if err != nil {
		t.skip(slot, text, err)
		return
	}

	slot.out, slot.in = out, in
}

// InFlight reports whether either animation of the slot's last transition
// is still scheduled.
func (t *Transitioner) InFlight(slot *Slot) bool {
	return slot.pending && (t.sched.Alive(slot.out) || t.sched.Alive(slot.in))
}

func (t *Transitioner) skip(slot *Slot, text string, err error) {
	logging.Warn("Showing line without transition",
		zap.String("text", text),
		zap.Error(err),
	)
	slot.gen++
	slot.settle()
}
