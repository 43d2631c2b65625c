// Package layout folds word phrases into the fixed line grid of the face.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// DefaultLines is the number of rows on the face.
	DefaultLines = 4

	// DefaultWidth is the visible character budget of a row.
	DefaultWidth = 7

	// EmphasisMarker prefixes a word that must render emphasized.
	EmphasisMarker = "*"
)

// Cells measures visible width. East Asian ambiguous runes count as one
// column whatever the process locale, so wrapping is the same everywhere.
var Cells = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Token is a single word of a phrase with its marker stripped.
type Token struct {
	Text       string
	Emphasized bool
}

// Result is a wrapped phrase. Lines and Emphasized always have the
// wrapper's line count; unused trailing lines are empty.
type Result struct {
	Lines      []string
	Emphasized []bool

	// Count is the number of non-empty lines.
	Count int
}

// Wrapper folds phrases into Lines rows of at most Width visible characters.
type Wrapper struct {
	Lines int
	Width int
}

// Default is the wrapper used by the face.
var Default = Wrapper{Lines: DefaultLines, Width: DefaultWidth}

// Tokenize splits a phrase on spaces. A leading marker followed by at least
// one character makes the word emphasized; a bare marker is kept as text.
func Tokenize(phrase string) []Token {
	fields := strings.Fields(phrase)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f, EmphasisMarker) && len(f) > len(EmphasisMarker) {
			tokens = append(tokens, Token{Text: f[len(EmphasisMarker):], Emphasized: true})
			continue
		}
		tokens = append(tokens, Token{Text: f})
	}
	return tokens
}

// WrapTime wraps a time phrase. Emphasized words stand alone on their line;
// other words merge while the joined line fits.
func (w Wrapper) WrapTime(phrase string) Result {
	return w.wrap(Tokenize(phrase))
}

// WrapDate wraps a date phrase. Word markers are ignored, every line merges
// under the width rule and only the first line is emphasized.
func (w Wrapper) WrapDate(phrase string) Result {
	tokens := Tokenize(phrase)
	for i := range tokens {
		tokens[i].Emphasized = false
	}
	r := w.wrap(tokens)
	if r.Count > 0 {
		r.Emphasized[0] = true
	}
	return r
}

func (w Wrapper) wrap(tokens []Token) Result {
	r := Result{
		Lines:      make([]string, w.Lines),
		Emphasized: make([]bool, w.Lines),
	}

	next := 0
	for r.Count < w.Lines && next < len(tokens) {
		seed := tokens[next]
		next++

		line := w.Fit(seed.Text)
		if line == "" {
			continue
		}

		if !seed.Emphasized {
			for next < len(tokens) && !tokens[next].Emphasized {
				joined := line + " " + tokens[next].Text
				if Cells.StringWidth(joined) > w.Width {
					break
				}
				line = joined
				next++
			}
		}

		r.Lines[r.Count] = line
		r.Emphasized[r.Count] = seed.Emphasized
		r.Count++
	}
	return r
}

// Fit truncates s to the wrapper's visible width.
func (w Wrapper) Fit(s string) string {
	if Cells.StringWidth(s) <= w.Width {
		return s
	}
	return Cells.Truncate(s, w.Width, "")
}
