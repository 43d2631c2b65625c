package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/textwatch/internal/anim"
	"github.com/muurk/textwatch/internal/config"
	"github.com/muurk/textwatch/internal/display"
	"github.com/muurk/textwatch/internal/face"
)

type fakeReader struct{ value, trend int }

func (r fakeReader) ReadCurrent() (int, int) { return r.value, r.trend }

type countingRequester struct{ calls []time.Time }

func (r *countingRequester) MaybeRequest(now time.Time) bool {
	r.calls = append(r.calls, now)
	return true
}

var tenOClock = time.Date(2021, time.September, 15, 10, 0, 0, 0, time.Local)

func newTestModel(debug bool, opts ...face.Option) (*Model, *countingRequester) {
	now := func() time.Time { return tenOClock }
	trans := display.NewTransitioner(anim.NewScheduler(), display.WithClock(now))
	f := face.New(trans, fakeReader{value: 120, trend: 2}, opts...)
	req := &countingRequester{}
	m := NewModel(f, req, WithNow(now), WithDebug(debug))
	m.Init()
	return m, req
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Tap(t *testing.T) {
	m, _ := newTestModel(false)

	_, cmd := m.Update(runes("t"))
	if m.face.Mode() != face.ShowingDate {
		t.Errorf("Mode() = %v after tap, want date", m.face.Mode())
	}
	if cmd == nil || !m.animating {
		t.Error("tap did not start the frame loop")
	}

	// finish every transition
	_, cmd = m.Update(frameMsg(tenOClock.Add(2 * time.Second)))
	if cmd != nil || m.animating {
		t.Error("frame loop kept running with no animations")
	}
}

func TestModel_DebugKeys(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  string
	}{
		{name: "disabled", debug: false, want: "ten"},
		{name: "enabled", debug: true, want: "ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(tt.debug)
			before := m.face.Slots()[1].Text()

			m.Update(tea.KeyMsg{Type: tea.KeyUp})

			after := m.face.Slots()[1].Text()
			if changed := before != after; changed != tt.debug {
				t.Errorf("second row %q -> %q, changed = %v, want %v", before, after, changed, tt.debug)
			}
			if got := m.face.Slots()[0].Text(); got != tt.want {
				t.Errorf("hour row = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModel_MinuteTick(t *testing.T) {
	m, req := newTestModel(false)
	next := tenOClock.Add(time.Minute)

	_, cmd := m.Update(minuteMsg(next))
	if cmd == nil {
		t.Error("minute tick did not schedule the next tick")
	}
	if len(req.calls) != 1 || !req.calls[0].Equal(next) {
		t.Errorf("requester calls = %v, want one at %v", req.calls, next)
	}
	if m.face.Status().Time != "10:01" {
		t.Errorf("status time = %q, want 10:01", m.face.Status().Time)
	}
}

func TestModel_Invoke(t *testing.T) {
	m, _ := newTestModel(false)

	ran := false
	m.Update(invokeMsg(func() {
		ran = true
		m.face.SetLinkUp(true)
	}))
	if !ran {
		t.Fatal("posted function did not run")
	}
	if !m.face.Status().LinkUp {
		t.Error("link state not applied")
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(false)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not quit")
	}
}

func TestRenderFace(t *testing.T) {
	m, _ := newTestModel(false, face.WithSettings(config.Settings{TextAlign: config.AlignLeft}))
	out := RenderFace(m.face)

	for _, want := range []string{"ten", "o'clock", "10:00", "15.09.2021", "120 →", LinkDownMarker} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered face missing %q:\n%s", want, out)
		}
	}
}

func TestLineFor(t *testing.T) {
	tests := []struct {
		rows int
		want []int
	}{
		{rows: 1, want: []int{3}},
		{rows: 2, want: []int{1, 4}},
		{rows: 3, want: []int{0, 3, 5}},
		{rows: 4, want: []int{0, 3, 5, 8}},
	}
	for _, tt := range tests {
		for i, y := range display.RowOrigins(tt.rows) {
			if got := LineFor(y); got != tt.want[i] {
				t.Errorf("rows %d: LineFor(%d) = %d, want %d", tt.rows, y, got, tt.want[i])
			}
		}
	}
}

func TestColumnFor(t *testing.T) {
	tests := []struct {
		x    float64
		want int
	}{
		{0, 0},
		{display.CanvasWidth, FaceColumns},
		{-display.CanvasWidth, -FaceColumns},
		{display.CanvasWidth / 2, FaceColumns / 2},
	}
	for _, tt := range tests {
		if got := ColumnFor(tt.x); got != tt.want {
			t.Errorf("ColumnFor(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestPalette_LinkStyle(t *testing.T) {
	for _, invert := range []bool{false, true} {
		p := PaletteFor(invert)
		if got := p.LinkStyle(true).GetForeground(); got != LinkColor {
			t.Errorf("invert=%v: link up foreground = %v, want %v", invert, got, LinkColor)
		}
		if got := p.LinkStyle(false).GetForeground(); got != p.Foreground {
			t.Errorf("invert=%v: link down foreground = %v, want %v", invert, got, p.Foreground)
		}
	}
}

func TestRenderBar_Width(t *testing.T) {
	p := PaletteFor(false)
	bar := renderBar("10:00", LinkUpMarker, p.LinkStyle(true), p)
	if w := lipgloss.Width(bar); w != FaceColumns {
		t.Errorf("bar width = %d, want %d", w, FaceColumns)
	}
	if !strings.Contains(bar, "10:00") || !strings.Contains(bar, LinkUpMarker) {
		t.Errorf("bar %q missing clock or link marker", bar)
	}
}
