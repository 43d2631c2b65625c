package face

import (
	"strconv"
	"time"
)

// Status is the content of the top and bottom bars.
type Status struct {
	// Top bar
	Time   string
	LinkUp bool

	// Bottom bar
	Date  string
	Value string
	Arrow string
}

// NoData is shown in place of a missing glucose value.
const NoData = "--"

var arrows = []string{"↑", "↗", "→", "↘", "↓", "←"}

// TrendArrow returns the arrow for a trend code, or "" when unknown.
func TrendArrow(trend int) string {
	if trend < 0 || trend >= len(arrows) {
		return ""
	}
	return arrows[trend]
}

// ClockText formats the status clock. The 12 hour form has no leading zero.
func ClockText(t time.Time, use24h bool) string {
	if use24h {
		return t.Format("15:04")
	}
	return t.Format("3:04")
}

func (f *Face) refreshStatus(t time.Time) {
	value, trend := f.reader.ReadCurrent()

	s := Status{
		Time:   ClockText(t, f.use24h),
		LinkUp: f.linkUp,
		Date:   t.Format("02.01.2006"),
		Value:  NoData,
		Arrow:  TrendArrow(trend),
	}
	if value > 0 {
		s.Value = strconv.Itoa(value)
	}
	f.status = s
}
