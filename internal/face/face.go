package face

import (
	"time"

	"go.uber.org/zap"

	"github.com/muurk/textwatch/internal/config"
	"github.com/muurk/textwatch/internal/display"
	"github.com/muurk/textwatch/internal/layout"
	"github.com/muurk/textwatch/internal/logging"
	"github.com/muurk/textwatch/internal/words"
)

// Mode is what the rows currently spell.
type Mode int

const (
	ShowingTime Mode = iota
	ShowingDate
)

func (m Mode) String() string {
	if m == ShowingDate {
		return "date"
	}
	return "time"
}

// DebugStep is how far one debug key press moves the displayed time.
const DebugStep = 5 * time.Minute

// WordSource spells times and dates.
type WordSource interface {
	TimePhrase(lang words.Language, hour, minute, second int) string
	DatePhrase(lang words.Language, weekday time.Weekday, day int, month time.Month) string
}

// Reader supplies the current glucose reading. A zero value means no data.
type Reader interface {
	ReadCurrent() (value, trend int)
}

// Face drives the rows and status bars of the watch face.
type Face struct {
	words  WordSource
	wrap   layout.Wrapper
	trans  *display.Transitioner
	reader Reader

	slots []*display.Slot
	lines int

	mode        Mode
	dateTimeout int

	lang   words.Language
	align  config.Align
	invert bool
	linkUp bool
	use24h bool

	offset time.Duration
	last   time.Time
	status Status
}

// Option configures a Face.
type Option func(*Face)

// WithWords replaces the built-in word tables.
func WithWords(src WordSource) Option {
	return func(f *Face) {
		f.words = src
	}
}

// WithSettings sets the initial invert, alignment and language.
func WithSettings(s config.Settings) Option {
	return func(f *Face) {
		f.invert = s.Invert
		f.align = s.TextAlign
		f.lang = s.Language
	}
}

// With24Hour selects a 24 hour status clock.
func With24Hour(on bool) Option {
	return func(f *Face) {
		f.use24h = on
	}
}

// New returns a face animating its rows through trans and reading glucose
// from reader.
func New(trans *display.Transitioner, reader Reader, opts ...Option) *Face {
	defaults := config.Defaults()
	f := &Face{
		words:  words.Tables{},
		wrap:   layout.Default,
		trans:  trans,
		reader: reader,
		lang:   defaults.Language,
		align:  defaults.TextAlign,
		invert: defaults.Invert,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.slots = make([]*display.Slot, f.wrap.Lines)
	for i := range f.slots {
		f.slots[i] = display.NewSlot(f.wrap.Width)
	}
	return f
}

// Start shows the time at now without animating.
func (f *Face) Start(now time.Time) {
	f.last = now
	f.mode = ShowingTime
	f.dateTimeout = 0

	t := f.displayed()
	r := f.wrap.WrapTime(f.timePhrase(t))
	origins := display.RowOrigins(r.Count)
	for i := 0; i < r.Count; i++ {
		f.slots[i].Prepare(origins[i], r.Emphasized[i])
		f.slots[i].Place(r.Lines[i])
	}
	f.lines = r.Count
	f.refreshStatus(t)
}

// Tick handles the minute tick. The date reverts to the time after two
// ticks.
func (f *Face) Tick(now time.Time) {
	f.last = now
	if f.mode == ShowingDate {
		f.dateTimeout++
	}
	f.render()
}

// Tap toggles between time and date.
func (f *Face) Tap(now time.Time) {
	f.last = now
	if f.mode == ShowingTime {
		f.mode = ShowingDate
		f.dateTimeout = 0
	} else {
		f.mode = ShowingTime
	}
	f.render()
}

// Shift moves the displayed time by d and redraws. Used by debug mode.
func (f *Face) Shift(d time.Duration) {
	f.offset += d
	f.render()
}

// SetLanguage switches the word tables and redraws when the language changed.
func (f *Face) SetLanguage(lang words.Language) {
	if lang == f.lang {
		return
	}
	f.lang = lang
	if !f.last.IsZero() {
		f.render()
	}
}

// SetAlign sets the row alignment.
func (f *Face) SetAlign(a config.Align) {
	f.align = a
}

// SetInvert sets dark-on-light rendering.
func (f *Face) SetInvert(on bool) {
	f.invert = on
}

// SetLinkUp updates the link indicator.
func (f *Face) SetLinkUp(up bool) {
	f.linkUp = up
	f.status.LinkUp = up
}

// ApplySettings applies settings received from the companion.
func (f *Face) ApplySettings(old, updated config.Settings) {
	logging.Debug("Applying settings",
		zap.Bool("invert", updated.Invert),
		zap.Stringer("text_align", updated.TextAlign),
		zap.Stringer("language", updated.Language),
	)
	f.SetInvert(updated.Invert)
	f.SetAlign(updated.TextAlign)
	if old.Language != updated.Language {
		f.SetLanguage(updated.Language)
	}
}

// RefreshStatus re-reads the glucose value into the status bar.
func (f *Face) RefreshStatus() {
	f.refreshStatus(f.displayed())
}

func (f *Face) displayed() time.Time {
	return f.last.Add(f.offset)
}

func (f *Face) timePhrase(t time.Time) string {
	return f.words.TimePhrase(f.lang, t.Hour(), t.Minute(), t.Second())
}

func (f *Face) render() {
	t := f.displayed()
	f.refreshStatus(t)

	var r layout.Result
	if f.mode == ShowingTime || f.dateTimeout > 1 {
		f.mode = ShowingTime
		f.dateTimeout = 0
		r = f.wrap.WrapTime(f.timePhrase(t))
	} else {
		r = f.wrap.WrapDate(f.words.DatePhrase(f.lang, t.Weekday(), t.Day(), t.Month()))
	}

	origins := display.RowOrigins(r.Count)
	var delay time.Duration
	for i, slot := range f.slots {
		if r.Count == f.lines && slot.Text() == r.Lines[i] {
			continue
		}
		y := slot.Front().Y
		if i < len(origins) {
			y = origins[i]
		}
		slot.Prepare(y, r.Emphasized[i])
		f.trans.UpdateLine(slot, r.Lines[i], delay)
		delay += display.Stagger
	}
	f.lines = r.Count
}

// Mode returns what the rows spell.
func (f *Face) Mode() Mode {
	return f.mode
}

// Slots returns the rows, top first.
func (f *Face) Slots() []*display.Slot {
	return f.slots
}

// Lines returns the number of non-empty rows.
func (f *Face) Lines() int {
	return f.lines
}

// Status returns the status bar contents.
func (f *Face) Status() Status {
	return f.status
}

// Align returns the row alignment.
func (f *Face) Align() config.Align {
	return f.align
}

// Inverted reports dark-on-light rendering.
func (f *Face) Inverted() bool {
	return f.invert
}

// Language returns the language rows are spelled in.
func (f *Face) Language() words.Language {
	return f.lang
}

// Transitioner returns the row animator.
func (f *Face) Transitioner() *display.Transitioner {
	return f.trans
}
