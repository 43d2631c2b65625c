package words

import (
	"strconv"
	"time"
)

type english struct{}

var enOnes = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thir teen", "four teen", "fif teen", "six teen",
	"seven teen", "eigh teen", "nine teen",
}

var enTens = []string{"", "", "twenty", "thirty", "forty", "fifty"}

var enWeekdays = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

var enMonths = []string{
	"january", "feb", "march", "april", "may", "june",
	"july", "august", "sept", "october", "nov", "dec",
}

func (english) clock(hour, minute int) string {
	phrase := Marker + enOnes[hour12(hour)] + " "
	switch {
	case minute == 0:
		phrase += "o'clock"
	case minute < 10:
		phrase += "oh " + enOnes[minute]
	case minute < 20:
		phrase += enOnes[minute]
	default:
		phrase += enTens[minute/10]
		if minute%10 != 0 {
			phrase += " " + enOnes[minute%10]
		}
	}
	return phrase
}

func (english) calendar(weekday time.Weekday, day int, month time.Month) string {
	return enWeekdays[weekday] + " " + ordinal(day) + " " + enMonths[month-1]
}

func ordinal(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(day) + suffix
}
