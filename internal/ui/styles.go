package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the face
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - border
	MutedColor   = lipgloss.Color("#626262") // Gray - help, status separators
	LinkColor    = lipgloss.Color("#43BF6D") // Green - link up
	DarkColor    = lipgloss.Color("#000000")
	LightColor   = lipgloss.Color("#FFFFFF")
)

// Face geometry in terminal cells
const (
	FaceColumns = 22 // Width of the face canvas
	BodyLines   = 9  // Lines between the two status bars

	MinTerminalWidth  = FaceColumns + 4
	MinTerminalHeight = BodyLines + 6
)

// Status markers
const (
	LinkUpMarker   = "●"
	LinkDownMarker = "○"
)

// Palette is the foreground and background pair for the face.
type Palette struct {
	Foreground lipgloss.Color
	Background lipgloss.Color
}

// PaletteFor returns light-on-dark, or dark-on-light when inverted.
func PaletteFor(invert bool) Palette {
	if invert {
		return Palette{Foreground: DarkColor, Background: LightColor}
	}
	return Palette{Foreground: LightColor, Background: DarkColor}
}

// TextStyle returns the style for face text.
func (p Palette) TextStyle(bold bool) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Background).
		Bold(bold)
}

// LinkStyle colors the link marker. A down link uses the plain text color.
func (p Palette) LinkStyle(up bool) lipgloss.Style {
	style := p.TextStyle(false)
	if up {
		style = style.Foreground(LinkColor)
	}
	return style
}

// FaceBorderStyle returns the frame drawn around the face
func FaceBorderStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Background(p.Background)
}

// HelpStyle is for the key help line under the face
var HelpStyle = lipgloss.NewStyle().
	Foreground(MutedColor).
	PaddingTop(1)

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, MinTerminalHeight // Default fallback
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}
	return width, height
}
