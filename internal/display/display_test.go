package display

import (
	"reflect"
	"testing"
	"time"

	"github.com/muurk/textwatch/internal/anim"
)

func TestRowOrigins(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{n: 0, want: nil},
		{n: 1, want: []int{59}},
		{n: 2, want: []int{40, 77}},
		{n: 3, want: []int{22, 59, 96}},
		{n: 4, want: []int{20, 57, 94, 131}},
	}

	for _, tt := range tests {
		if got := RowOrigins(tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("RowOrigins(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(s *anim.Scheduler, d time.Duration) {
	c.now = c.now.Add(d)
	s.Advance(c.now)
}

func newTestTransitioner(opts ...anim.Option) (*Transitioner, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	return NewTransitioner(anim.NewScheduler(opts...), WithClock(clock.Now)), clock
}

func TestSlot_Place(t *testing.T) {
	s := NewSlot(7)
	s.Prepare(22, true)
	s.Place("ten")

	got := s.Front()
	if got.Text != "ten" || got.X != 0 || got.Y != 22 || !got.Bold {
		t.Errorf("Front() = %+v", got)
	}
	if s.Back().X != CanvasWidth {
		t.Errorf("Back().X = %v, want %d", s.Back().X, CanvasWidth)
	}
	if s.Text() != "ten" {
		t.Errorf("Text() = %q", s.Text())
	}
}

func TestUpdateLine_SlidesAndSwaps(t *testing.T) {
	tr, clock := newTestTransitioner()
	sched := tr.Scheduler()

	s := NewSlot(7)
	s.Place("ten")
	tr.UpdateLine(s, "eleven", 0)

	if s.Front().Text != "ten" || s.Back().Text != "eleven" {
		t.Fatalf("before start front=%q back=%q", s.Front().Text, s.Back().Text)
	}
	if !s.Pending() || !tr.InFlight(s) {
		t.Fatal("transition should be pending")
	}

	clock.advance(sched, 200*time.Millisecond)
	if got := s.Front().X; got != -36 {
		t.Errorf("outgoing X at 200ms = %v, want -36", got)
	}
	if got := s.Back().X; got != 81 {
		t.Errorf("incoming X at 200ms = %v, want 81", got)
	}

	clock.advance(sched, 300*time.Millisecond)
	if s.Pending() || tr.InFlight(s) {
		t.Error("transition should be complete")
	}
	if got := s.Front(); got.Text != "eleven" || got.X != 0 {
		t.Errorf("Front() after swap = %+v", got)
	}
	if got := s.Back(); got.Text != "ten" || got.X != CanvasWidth {
		t.Errorf("Back() after swap = %+v", got)
	}
}

func TestUpdateLine_Delay(t *testing.T) {
	tr, clock := newTestTransitioner()

	s := NewSlot(7)
	s.Place("a")
	tr.UpdateLine(s, "b", Stagger)

	clock.advance(tr.Scheduler(), Stagger)
	if s.Front().X != 0 || s.Back().X != CanvasWidth {
		t.Errorf("moved before delay: front=%v back=%v", s.Front().X, s.Back().X)
	}
}

func TestUpdateLine_Supersedes(t *testing.T) {
	tr, clock := newTestTransitioner()
	sched := tr.Scheduler()

	s := NewSlot(7)
	s.Place("ten")
	tr.UpdateLine(s, "a", 0)
	clock.advance(sched, 200*time.Millisecond)

	tr.UpdateLine(s, "b", 0)
	if got := s.Front(); got.Text != "a" || got.X != 0 {
		t.Fatalf("settled front = %+v", got)
	}

	clock.advance(sched, 250*time.Millisecond)
	clock.advance(sched, 350*time.Millisecond)

	if got := s.Front(); got.Text != "b" || got.X != 0 {
		t.Errorf("Front() = %+v, want b at 0", got)
	}
	if got := s.Back(); got.X != CanvasWidth {
		t.Errorf("Back().X = %v, want %d", got.X, CanvasWidth)
	}
	if sched.Active() != 0 {
		t.Errorf("Active() = %d, want 0", sched.Active())
	}
}

func TestUpdateLine_SchedulerFull(t *testing.T) {
	tr, clock := newTestTransitioner(anim.WithCapacity(1))

	s := NewSlot(7)
	s.Place("ten")
	tr.UpdateLine(s, "eleven", 0)

	if s.Pending() {
		t.Error("skipped transition should not stay pending")
	}
	if got := s.Front(); got.Text != "eleven" || got.X != 0 {
		t.Errorf("Front() = %+v", got)
	}

	clock.advance(tr.Scheduler(), time.Second)
	if got := s.Front(); got.Text != "eleven" || got.X != 0 {
		t.Errorf("orphaned task moved the line: %+v", got)
	}
}

func TestUpdateLine_Truncates(t *testing.T) {
	tr, _ := newTestTransitioner()

	s := NewSlot(7)
	tr.UpdateLine(s, "extraordinary", 0)
	if s.Text() != "extraor" {
		t.Errorf("Text() = %q, want extraor", s.Text())
	}
}
