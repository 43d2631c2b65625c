package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/textwatch/internal/face"
)

// FrameInterval is the animation frame period.
const FrameInterval = time.Second / 30

// Requester asks the companion for a fresh reading when due.
type Requester interface {
	MaybeRequest(now time.Time) bool
}

// Messages driving the face
type (
	frameMsg  time.Time
	minuteMsg time.Time

	// invokeMsg runs a function posted from another goroutine
	invokeMsg func()
)

// Model is the Bubble Tea model hosting the face. Every face, cache and
// throttler mutation happens in Update.
type Model struct {
	face      *face.Face
	requester Requester
	now       func() time.Time

	keys keyMap
	help help.Model

	Width  int
	Height int

	animating bool
}

// ModelOption configures a Model
type ModelOption func(*Model)

// WithDebug enables the keys that move the displayed time.
func WithDebug(on bool) ModelOption {
	return func(m *Model) {
		m.keys = newKeyMap(on)
	}
}

// WithNow replaces time.Now.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// NewModel returns a model for f. requester is asked on every minute tick.
func NewModel(f *face.Face, requester Requester, opts ...ModelOption) *Model {
	m := &Model{
		face:      f,
		requester: requester,
		now:       time.Now,
		keys:      newKeyMap(false),
		help:      help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Poster returns a function that runs f on the program's update loop.
// Transport callbacks are wired through it.
func Poster(p *tea.Program) func(func()) {
	return func(f func()) {
		p.Send(invokeMsg(f))
	}
}

// NewProgram returns a full screen program for m.
func NewProgram(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.face.Start(m.now())
	return m.nextMinute()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tap):
			m.face.Tap(m.now())
		case key.Matches(msg, m.keys.Later):
			m.face.Shift(face.DebugStep)
		case key.Matches(msg, m.keys.Earlier):
			m.face.Shift(-face.DebugStep)
		default:
			return m, nil
		}
		return m, m.animate()

	case minuteMsg:
		now := time.Time(msg)
		m.face.Tick(now)
		m.requester.MaybeRequest(now)
		return m, tea.Batch(m.nextMinute(), m.animate())

	case frameMsg:
		sched := m.face.Transitioner().Scheduler()
		sched.Advance(time.Time(msg))
		if sched.Active() == 0 {
			m.animating = false
			return m, nil
		}
		return m, frame()

	case invokeMsg:
		msg()
		return m, m.animate()
	}

	return m, nil
}

// animate starts the frame loop when animations are pending.
func (m *Model) animate() tea.Cmd {
	if m.animating || m.face.Transitioner().Scheduler().Active() == 0 {
		return nil
	}
	m.animating = true
	return frame()
}

func frame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// nextMinute fires at the start of the next wall clock minute.
func (m *Model) nextMinute() tea.Cmd {
	now := m.now()
	wait := now.Truncate(time.Minute).Add(time.Minute).Sub(now)
	return tea.Tick(wait, func(t time.Time) tea.Msg {
		return minuteMsg(t)
	})
}

// View implements tea.Model
func (m *Model) View() string {
	width, height := m.Width, m.Height
	if width == 0 || height == 0 {
		width, height = GetTerminalSize()
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		RenderFace(m.face),
		HelpStyle.Render(m.help.View(m.keys)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
