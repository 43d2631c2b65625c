package display

import (
	"github.com/muurk/textwatch/internal/anim"
	"github.com/muurk/textwatch/internal/layout"
)

// Buffer is one render surface of a slot.
type Buffer struct {
	Text string
	X    float64
	Y    int
	Bold bool
}

// Visible reports whether any part of the buffer is on the canvas.
func (b Buffer) Visible() bool {
	return b.Text != "" && b.X > -CanvasWidth && b.X < CanvasWidth
}

// Slot is one face row. It owns two buffers; front names the one on screen.
type Slot struct {
	bufs  [2]Buffer
	front int

	fit    layout.Wrapper
	target string

	// gen invalidates callbacks of superseded transitions.
	gen     uint64
	pending bool
	out, in anim.ID

	nextY    int
	nextBold bool
}

// NewSlot returns an empty slot whose lines hold at most width characters.
func NewSlot(width int) *Slot {
	s := &Slot{fit: layout.Wrapper{Lines: 1, Width: width}}
	s.bufs[0].X = CanvasWidth
	s.bufs[1].X = CanvasWidth
	return s
}

// Text returns the text the slot shows or is transitioning to.
func (s *Slot) Text() string {
	return s.target
}

// Front returns the on-screen buffer.
func (s *Slot) Front() Buffer {
	return s.bufs[s.front]
}

// Back returns the off-screen buffer.
func (s *Slot) Back() Buffer {
	return s.bufs[1-s.front]
}

// Buffers returns both buffers for drawing.
func (s *Slot) Buffers() [2]Buffer {
	return s.bufs
}

// Pending reports whether a transition has not completed yet.
func (s *Slot) Pending() bool {
	return s.pending
}

// Prepare sets the row position and weight used by the next text written
// to the slot.
func (s *Slot) Prepare(y int, bold bool) {
	s.nextY = y
	s.nextBold = bold
}

// Place shows text immediately without a transition.
func (s *Slot) Place(text string) {
	s.settle()
	s.gen++
	text = s.fit.Fit(text)
	s.bufs[s.front] = Buffer{Text: text, X: 0, Y: s.nextY, Bold: s.nextBold}
	s.bufs[1-s.front].X = CanvasWidth
	s.target = text
}

// settle finishes a transition whose completion never arrived.
func (s *Slot) settle() {
	if !s.pending {
		return
	}
	s.swap()
}

func (s *Slot) swap() {
	s.front = 1 - s.front
	s.bufs[s.front].X = 0
	s.bufs[1-s.front].X = CanvasWidth
	s.pending = false
}

// complete runs when the incoming animation of generation gen stops.
func (s *Slot) complete(gen uint64) {
	if gen != s.gen || !s.pending {
		return
	}
	s.swap()
}

// moveTo returns an Apply callback for buffer i that is ignored once the
// slot has moved on to a newer generation.
func (s *Slot) moveTo(i int, gen uint64) func(float64) {
	return func(v float64) {
		if s.gen == gen {
			s.bufs[i].X = v
		}
	}
}
