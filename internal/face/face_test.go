package face

import (
	"fmt"
	"testing"
	"time"

	"github.com/muurk/textwatch/internal/anim"
	"github.com/muurk/textwatch/internal/config"
	"github.com/muurk/textwatch/internal/display"
	"github.com/muurk/textwatch/internal/glucose"
	"github.com/muurk/textwatch/internal/words"
)

type fakeWords struct {
	times map[string]string
	date  string
	langs []words.Language
}

func (w *fakeWords) TimePhrase(lang words.Language, hour, minute, _ int) string {
	w.langs = append(w.langs, lang)
	return w.times[fmt.Sprintf("%02d:%02d", hour, minute)]
}

func (w *fakeWords) DatePhrase(lang words.Language, _ time.Weekday, _ int, _ time.Month) string {
	return w.date
}

type fakeReader struct {
	value, trend int
}

func (r fakeReader) ReadCurrent() (int, int) {
	return r.value, r.trend
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func at(hour, minute int) time.Time {
	return time.Date(2021, time.September, 15, hour, minute, 0, 0, time.Local)
}

func newTestFace(src *fakeWords, reader Reader) (*Face, *fakeClock) {
	clock := &fakeClock{now: at(10, 0)}
	sched := anim.NewScheduler()
	trans := display.NewTransitioner(sched, display.WithClock(clock.Now))
	return New(trans, reader, WithWords(src)), clock
}

func texts(f *Face) []string {
	out := make([]string, 0, len(f.Slots()))
	for _, s := range f.Slots() {
		out = append(out, s.Text())
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStart_PlacesWithoutAnimation(t *testing.T) {
	src := &fakeWords{times: map[string]string{"10:00": "*ten aaaaa bbbbb"}}
	f, _ := newTestFace(src, fakeReader{})

	f.Start(at(10, 0))

	if got, want := texts(f), []string{"ten", "aaaaa", "bbbbb", ""}; !equal(got, want) {
		t.Errorf("rows = %q, want %q", got, want)
	}
	if f.Lines() != 3 {
		t.Errorf("Lines() = %d, want 3", f.Lines())
	}
	if f.Transitioner().Scheduler().Active() != 0 {
		t.Errorf("Start scheduled %d animations", f.Transitioner().Scheduler().Active())
	}

	origins := display.RowOrigins(3)
	for i := 0; i < 3; i++ {
		front := f.Slots()[i].Front()
		if front.X != 0 || front.Y != origins[i] {
			t.Errorf("row %d at (%v, %d), want (0, %d)", i, front.X, front.Y, origins[i])
		}
	}
	if !f.Slots()[0].Front().Bold || f.Slots()[1].Front().Bold {
		t.Error("only the hour row should be bold")
	}
}

func TestTick_AnimatesChangedRowsOnly(t *testing.T) {
	src := &fakeWords{times: map[string]string{
		"10:00": "*ten aaaaa bbbbb ccccc",
		"10:01": "*ten aaaaa xxxxx yyyyy",
	}}
	f, clock := newTestFace(src, fakeReader{})
	f.Start(at(10, 0))

	f.Tick(at(10, 1))

	slots := f.Slots()
	if slots[0].Pending() || slots[1].Pending() {
		t.Error("unchanged rows were animated")
	}
	if !slots[2].Pending() || !slots[3].Pending() {
		t.Fatal("changed rows were not animated")
	}

	// First changed row starts at once, the next one a stagger later
	sched := f.Transitioner().Scheduler()
	sched.Advance(clock.now.Add(50 * time.Millisecond))
	if x := slots[2].Front().X; x >= 0 {
		t.Errorf("row 2 front X = %v, want moving left", x)
	}
	if x := slots[3].Front().X; x != 0 {
		t.Errorf("row 3 front X = %v, want 0 before its stagger", x)
	}

	sched.Advance(clock.now.Add(2 * time.Second))
	if got, want := texts(f), []string{"ten", "aaaaa", "xxxxx", "yyyyy"}; !equal(got, want) {
		t.Errorf("rows = %q, want %q", got, want)
	}
	if slots[3].Pending() || slots[3].Front().Text != "yyyyy" {
		t.Errorf("row 3 front = %+v, pending %v", slots[3].Front(), slots[3].Pending())
	}
}

func TestTick_LineCountChangeUpdatesAllRows(t *testing.T) {
	src := &fakeWords{times: map[string]string{
		"10:00": "*ten aaaaa bbbbb",
		"10:01": "*ten aaaaa bbbbb ccccc",
	}}
	f, _ := newTestFace(src, fakeReader{})
	f.Start(at(10, 0))

	f.Tick(at(10, 1))

	for i, s := range f.Slots() {
		if !s.Pending() {
			t.Errorf("row %d not updated after line count change", i)
		}
	}
	if f.Lines() != 4 {
		t.Errorf("Lines() = %d, want 4", f.Lines())
	}
	origins := display.RowOrigins(4)
	for i, s := range f.Slots() {
		if y := s.Back().Y; y != origins[i] {
			t.Errorf("row %d incoming Y = %d, want %d", i, y, origins[i])
		}
	}
}

func TestTap_RevertsAfterTwoTicks(t *testing.T) {
	src := &fakeWords{
		times: map[string]string{"10:00": "*ten", "10:01": "*ten oh one", "10:02": "*ten oh two"},
		date:  "wed 15th sept",
	}
	f, _ := newTestFace(src, fakeReader{})
	f.Start(at(10, 0))

	f.Tap(at(10, 0))
	if f.Mode() != ShowingDate {
		t.Fatalf("Mode() = %v after tap, want date", f.Mode())
	}
	if got := texts(f); got[0] != "wed" {
		t.Errorf("rows = %q, want date", got)
	}
	if !f.Slots()[0].Back().Bold || f.Slots()[1].Back().Bold {
		t.Error("date should only embolden the first row")
	}

	f.Tick(at(10, 1))
	if f.Mode() != ShowingDate {
		t.Fatalf("Mode() = %v after one tick, want date", f.Mode())
	}

	f.Tick(at(10, 2))
	if f.Mode() != ShowingTime {
		t.Fatalf("Mode() = %v after two ticks, want time", f.Mode())
	}
	if got, want := texts(f), []string{"ten", "oh two", "", ""}; !equal(got, want) {
		t.Errorf("rows = %q, want %q", got, want)
	}
}

func TestTap_TogglesBack(t *testing.T) {
	src := &fakeWords{times: map[string]string{"10:00": "*ten"}, date: "wed 15th sept"}
	f, _ := newTestFace(src, fakeReader{})
	f.Start(at(10, 0))

	f.Tap(at(10, 0))
	f.Tap(at(10, 0))
	if f.Mode() != ShowingTime {
		t.Errorf("Mode() = %v after two taps, want time", f.Mode())
	}
	if got := texts(f); got[0] != "ten" {
		t.Errorf("rows = %q, want time", got)
	}
}

func TestSetLanguage_Redraws(t *testing.T) {
	src := &fakeWords{times: map[string]string{"10:00": "*ten"}}
	f, _ := newTestFace(src, fakeReader{})
	f.Start(at(10, 0))

	f.ApplySettings(config.Defaults(), config.Settings{Invert: true, TextAlign: config.AlignLeft, Language: words.German})

	if f.Language() != words.German {
		t.Errorf("Language() = %v, want de", f.Language())
	}
	if last := src.langs[len(src.langs)-1]; last != words.German {
		t.Errorf("last phrase requested in %v, want de", last)
	}
	if !f.Inverted() || f.Align() != config.AlignLeft {
		t.Errorf("Inverted() = %v, Align() = %v", f.Inverted(), f.Align())
	}

	calls := len(src.langs)
	f.SetLanguage(words.German)
	if len(src.langs) != calls {
		t.Error("unchanged language redrew the face")
	}
}

func TestShift(t *testing.T) {
	src := &fakeWords{times: map[string]string{"10:00": "*ten", "10:05": "*ten oh five", "09:55": "*nine fifty five"}}
	f, _ := newTestFace(src, fakeReader{})
	f.Start(at(10, 0))

	f.Shift(DebugStep)
	if got := texts(f); got[1] != "oh five" {
		t.Errorf("rows after +5 = %q", got)
	}

	f.Shift(-2 * DebugStep)
	if got := texts(f); got[0] != "nine" {
		t.Errorf("rows after -5 = %q", got)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		reader fakeReader
		when   time.Time
		want   Status
	}{
		{
			name:   "reading",
			reader: fakeReader{value: 120, trend: 5},
			when:   at(13, 5),
			want:   Status{Time: "1:05", Date: "15.09.2021", Value: "120", Arrow: "←"},
		},
		{
			name:   "no data",
			reader: fakeReader{value: 0, trend: -1},
			when:   at(9, 30),
			want:   Status{Time: "9:30", Date: "15.09.2021", Value: NoData, Arrow: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFace(&fakeWords{}, tt.reader)
			f.Start(tt.when)
			if got := f.Status(); got != tt.want {
				t.Errorf("Status() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTrendArrow(t *testing.T) {
	tests := []struct {
		trend int
		want  string
	}{
		{0, "↑"}, {1, "↗"}, {2, "→"}, {3, "↘"}, {4, "↓"}, {5, "←"}, {6, ""}, {-1, ""},
	}
	for _, tt := range tests {
		if got := TrendArrow(tt.trend); got != tt.want {
			t.Errorf("TrendArrow(%d) = %q, want %q", tt.trend, got, tt.want)
		}
	}
}

func TestTrendArrow_CoversValidTrends(t *testing.T) {
	for trend := -2; trend <= glucose.MaxTrend+2; trend++ {
		if hasArrow := TrendArrow(trend) != ""; hasArrow != glucose.ValidTrend(trend) {
			t.Errorf("trend %d: arrow %q, ValidTrend = %v", trend, TrendArrow(trend), glucose.ValidTrend(trend))
		}
	}
}

func TestClockText(t *testing.T) {
	tests := []struct {
		when   time.Time
		use24h bool
		want   string
	}{
		{at(0, 7), false, "12:07"},
		{at(9, 30), false, "9:30"},
		{at(21, 45), false, "9:45"},
		{at(9, 30), true, "09:30"},
		{at(21, 45), true, "21:45"},
	}
	for _, tt := range tests {
		if got := ClockText(tt.when, tt.use24h); got != tt.want {
			t.Errorf("ClockText(%v, %v) = %q, want %q", tt.when, tt.use24h, got, tt.want)
		}
	}
}

func TestSetLinkUp(t *testing.T) {
	f, _ := newTestFace(&fakeWords{}, fakeReader{})
	f.Start(at(10, 0))

	f.SetLinkUp(true)
	if !f.Status().LinkUp {
		t.Error("status does not show the link")
	}
	f.Tick(at(10, 1))
	if !f.Status().LinkUp {
		t.Error("link indicator lost on tick")
	}
}
