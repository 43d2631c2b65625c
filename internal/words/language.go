package words

import "fmt"

// Language selects the word tables. Values match the LANGUAGE wire key.
type Language uint8

const (
	Catalan   Language = 0
	German    Language = 1
	EnglishGB Language = 2
	EnglishUS Language = 3
	Spanish   Language = 4
	French    Language = 5
	Norwegian Language = 6
	Swedish   Language = 7
)

// DefaultLanguage is used when no valid language is configured.
const DefaultLanguage = EnglishUS

var languageCodes = []string{
	Catalan:   "ca",
	German:    "de",
	EnglishGB: "en_GB",
	EnglishUS: "en_US",
	Spanish:   "es",
	French:    "fr",
	Norwegian: "no",
	Swedish:   "sv",
}

// String returns the locale code of the language.
func (l Language) String() string {
	if l.Valid() {
		return languageCodes[l]
	}
	return fmt.Sprintf("lang(%d)", uint8(l))
}

// Valid reports whether l names a known language.
func (l Language) Valid() bool {
	return int(l) < len(languageCodes)
}

// ParseLanguage looks up a locale code such as "en_US".
func ParseLanguage(code string) (Language, bool) {
	for i, c := range languageCodes {
		if c == code {
			return Language(i), true
		}
	}
	return DefaultLanguage, false
}

// Languages returns every known language in wire order.
func Languages() []Language {
	out := make([]Language, len(languageCodes))
	for i := range out {
		out[i] = Language(i)
	}
	return out
}
