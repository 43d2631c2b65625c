package display

import "time"

// Face geometry in display units.
const (
	CanvasWidth   = 144
	ScreenHeight  = 168
	RowHeight     = 37
	TextHeight    = 50
	TopReserve    = 20
	BottomReserve = 20
)

// Transition timing.
const (
	Duration = 400 * time.Millisecond
	Stagger  = 150 * time.Millisecond
	OutInGap = 100 * time.Millisecond
)

// RowOrigins returns the top edge of each of n active rows, centered in the
// area between the status bars when they fit.
func RowOrigins(n int) []int {
	if n <= 0 {
		return nil
	}
	total := (n-1)*RowHeight + TextHeight
	available := ScreenHeight - TopReserve - BottomReserve

	y := TopReserve
	if total < available {
		y += (available - total) / 2
	}

	ys := make([]int, n)
	for i := range ys {
		ys[i] = y
		y += RowHeight
	}
	return ys
}
