// Package words turns clock fields into space-separated phrases.
//
// Time phrases mark the hour word with a leading "*" so the face can set it
// in bold on its own line. Date phrases carry no markers. Long words are
// split or abbreviated to fit a seven character row, for example
// "thir teen" and "sept".
//
// English and German have their own tables. The remaining languages render
// with the English tables.
package words

import "time"

// Marker prefixes the emphasized word of a phrase.
const Marker = "*"

// Tables produces phrases from the built-in word tables.
type Tables struct{}

type table interface {
	clock(hour, minute int) string
	calendar(weekday time.Weekday, day int, month time.Month) string
}

func lookup(lang Language) table {
	switch lang {
	case German:
		return german{}
	default:
		return english{}
	}
}

// TimePhrase returns the phrase for a wall clock time. Seconds are ignored.
func (Tables) TimePhrase(lang Language, hour, minute, _ int) string {
	return lookup(lang).clock(hour, minute)
}

// DatePhrase returns the phrase for a calendar date.
func (Tables) DatePhrase(lang Language, weekday time.Weekday, day int, month time.Month) string {
	return lookup(lang).calendar(weekday, day, month)
}

func hour12(hour int) int {
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return h
}
