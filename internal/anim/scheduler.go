// Package anim runs time-based property animations for the face.
//
// The scheduler owns every task. Callers keep only the ID returned by
// Schedule and may ask whether it is still alive; a finished task is gone
// and its ID is never reused.
package anim

import (
	"errors"
	"time"
)

// DefaultCapacity bounds the number of live tasks.
const DefaultCapacity = 16

// ErrSchedulerFull is returned when no task slot is available.
var ErrSchedulerFull = errors.New("animation scheduler full")

// ID identifies a scheduled task. The zero ID is never issued.
type ID uint64

// Curve maps linear progress in [0,1] to eased progress.
type Curve func(t float64) float64

// Linear progresses at a constant rate.
func Linear(t float64) float64 { return t }

// EaseIn accelerates from rest.
func EaseIn(t float64) float64 { return t * t }

// EaseOut decelerates to rest.
func EaseOut(t float64) float64 { return t * (2 - t) }

// Spec describes one animation of a scalar property.
type Spec struct {
	Delay    time.Duration
	Duration time.Duration
	Curve    Curve
	From, To float64

	// Apply receives each interpolated value once the task has started.
	Apply func(v float64)

	// Stopped runs after the task has been removed.
	Stopped func(finished bool)
}

type task struct {
	id    ID
	start time.Time
	spec  Spec
}

// Scheduler holds live tasks ordered by ID.
type Scheduler struct {
	tasks    []*task
	lastID   ID
	capacity int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithCapacity sets the maximum number of live tasks.
func WithCapacity(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// NewScheduler returns an empty scheduler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule registers a task starting at now + spec.Delay.
func (s *Scheduler) Schedule(now time.Time, spec Spec) (ID, error) {
	if len(s.tasks) >= s.capacity {
		return 0, ErrSchedulerFull
	}
	if spec.Curve == nil {
		spec.Curve = Linear
	}
	s.lastID++
	s.tasks = append(s.tasks, &task{
		id:    s.lastID,
		start: now.Add(spec.Delay),
		spec:  spec,
	})
	return s.lastID, nil
}

// Alive reports whether the task has not finished yet.
func (s *Scheduler) Alive(id ID) bool {
	for _, t := range s.tasks {
		if t.id == id {
			return true
		}
	}
	return false
}

// Active returns the number of live tasks.
func (s *Scheduler) Active() int {
	return len(s.tasks)
}

// Advance applies the value of every started task at now. Tasks that reach
// their end are removed before their Stopped callbacks run, so a callback
// may schedule new tasks.
func (s *Scheduler) Advance(now time.Time) {
	var done []*task
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if now.Before(t.start) {
			live = append(live, t)
			continue
		}
		p := 1.0
		if t.spec.Duration > 0 {
			p = float64(now.Sub(t.start)) / float64(t.spec.Duration)
			if p > 1 {
				p = 1
			}
		}
		if t.spec.Apply != nil {
			t.spec.Apply(t.spec.From + (t.spec.To-t.spec.From)*t.spec.Curve(p))
		}
		if p >= 1 {
			done = append(done, t)
			continue
		}
		live = append(live, t)
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live

	for _, t := range done {
		if t.spec.Stopped != nil {
			t.spec.Stopped(true)
		}
	}
}
