package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/textwatch/internal/config"
	"github.com/muurk/textwatch/internal/display"
	"github.com/muurk/textwatch/internal/face"
	"github.com/muurk/textwatch/internal/layout"
)

type cell struct {
	r    rune
	bold bool
}

// ColumnFor maps a horizontal display offset to a cell offset.
func ColumnFor(x float64) int {
	return int(math.Round(x * FaceColumns / display.CanvasWidth))
}

// LineFor maps a row origin to a body line. Origins outside the body give
// -1.
func LineFor(y int) int {
	area := display.ScreenHeight - display.TopReserve - display.BottomReserve
	line := int(math.Round(float64(y-display.TopReserve) * BodyLines / float64(area)))
	if line < 0 || line >= BodyLines {
		return -1
	}
	return line
}

// alignStart is the first cell of text of width w before any slide.
func alignStart(a config.Align, w int) int {
	switch a {
	case config.AlignLeft:
		return 1
	case config.AlignRight:
		return FaceColumns - w - 1
	default:
		return (FaceColumns - w) / 2
	}
}

// RenderFace draws the status bars and every visible row buffer.
func RenderFace(f *face.Face) string {
	p := PaletteFor(f.Inverted())

	body := make([][]cell, BodyLines)
	for i := range body {
		body[i] = blankLine()
	}

	for _, slot := range f.Slots() {
		for _, b := range slot.Buffers() {
			if !b.Visible() {
				continue
			}
			line := LineFor(b.Y)
			if line < 0 {
				continue
			}
			draw(body[line], b, f.Align())
		}
	}

	status := f.Status()
	link := LinkDownMarker
	if status.LinkUp {
		link = LinkUpMarker
	}
	reading := status.Value
	if status.Arrow != "" {
		reading += " " + status.Arrow
	}

	lines := make([]string, 0, BodyLines+2)
	lines = append(lines, renderBar(status.Time, link, p.LinkStyle(status.LinkUp), p))
	for _, l := range body {
		lines = append(lines, renderCells(l, p))
	}
	lines = append(lines, renderBar(status.Date, reading, p.TextStyle(false), p))

	return FaceBorderStyle(p).Render(strings.Join(lines, "\n"))
}

func blankLine() []cell {
	l := make([]cell, FaceColumns)
	for i := range l {
		l[i].r = ' '
	}
	return l
}

func draw(line []cell, b display.Buffer, a config.Align) {
	start := alignStart(a, layout.Cells.StringWidth(b.Text)) + ColumnFor(b.X)
	col := start
	for _, r := range b.Text {
		w := layout.Cells.RuneWidth(r)
		if col >= 0 && col+w <= len(line) {
			line[col] = cell{r: r, bold: b.Bold}
		}
		col += w
	}
}

// renderCells styles runs of equal weight.
func renderCells(line []cell, p Palette) string {
	var sb strings.Builder
	var run []rune
	bold := false
	flush := func() {
		if len(run) > 0 {
			sb.WriteString(p.TextStyle(bold).Render(string(run)))
			run = run[:0]
		}
	}
	for _, c := range line {
		if c.bold != bold {
			flush()
			bold = c.bold
		}
		run = append(run, c.r)
	}
	flush()
	return sb.String()
}

// renderBar puts left and right at the edges of a face-wide line. right is
// drawn with rightStyle.
func renderBar(left, right string, rightStyle lipgloss.Style, p Palette) string {
	left = layout.Cells.Truncate(left, FaceColumns, "")
	gap := FaceColumns - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = FaceColumns - lipgloss.Width(left)
	}
	bar := p.TextStyle(false).Render(left + strings.Repeat(" ", gap))
	if right == "" {
		return bar
	}
	return bar + rightStyle.Render(right)
}
