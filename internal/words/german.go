package words

import (
	"strconv"
	"time"
)

type german struct{}

var deOnes = []string{
	"null", "eins", "zwei", "drei", "vier", "fünf", "sechs", "sieben", "acht", "neun",
	"zehn", "elf", "zwölf", "drei zehn", "vier zehn", "fünf zehn", "sech zehn",
	"sieb zehn", "acht zehn", "neun zehn",
}

var deTens = []string{"", "", "zwanzig", "dreißig", "vierzig", "fünfzig"}

var deWeekdays = []string{"so", "mo", "di", "mi", "do", "fr", "sa"}

var deMonths = []string{
	"januar", "februar", "märz", "april", "mai", "juni",
	"juli", "august", "sept", "oktober", "nov", "dez",
}

func (german) clock(hour, minute int) string {
	h := hour12(hour)
	if minute == 0 {
		if h == 1 {
			return Marker + "ein uhr"
		}
		return Marker + deOnes[h] + " uhr"
	}

	phrase := Marker + deOnes[h] + " "
	switch {
	case minute < 10:
		phrase += "null " + deOnes[minute]
	case minute < 20:
		phrase += deOnes[minute]
	case minute%10 == 0:
		phrase += deTens[minute/10]
	default:
		unit := deOnes[minute%10]
		if minute%10 == 1 {
			unit = "ein"
		}
		phrase += unit + " und " + deTens[minute/10]
	}
	return phrase
}

func (german) calendar(weekday time.Weekday, day int, month time.Month) string {
	return deWeekdays[weekday] + " " + strconv.Itoa(day) + ". " + deMonths[month-1]
}
