package config

import (
	"fmt"

	"github.com/muurk/textwatch/internal/words"
)

// Align is the horizontal alignment of the face rows.
// Values match the TEXT_ALIGN wire key.
type Align uint8

const (
	AlignCenter Align = 0
	AlignLeft   Align = 1
	AlignRight  Align = 2
)

var alignNames = []string{
	AlignCenter: "center",
	AlignLeft:   "left",
	AlignRight:  "right",
}

func (a Align) String() string {
	if int(a) < len(alignNames) {
		return alignNames[a]
	}
	return fmt.Sprintf("align(%d)", uint8(a))
}

// Valid reports whether a is a known alignment.
func (a Align) Valid() bool {
	return int(a) < len(alignNames)
}

// ParseAlign looks up an alignment name. Unknown names give AlignCenter.
func ParseAlign(name string) (Align, bool) {
	for i, n := range alignNames {
		if n == name {
			return Align(i), true
		}
	}
	return AlignCenter, false
}

// Settings are the user preferences synced from the companion.
type Settings struct {
	Invert    bool
	TextAlign Align
	Language  words.Language
}

// Defaults returns the settings used before any were saved.
func Defaults() Settings {
	return Settings{
		Invert:    false,
		TextAlign: AlignCenter,
		Language:  words.DefaultLanguage,
	}
}

// normalize replaces out-of-range values with defaults.
func (s Settings) normalize() Settings {
	if !s.TextAlign.Valid() {
		s.TextAlign = AlignCenter
	}
	if !s.Language.Valid() {
		s.Language = words.DefaultLanguage
	}
	return s
}

// fileFormat is the on-disk form of Settings.
type fileFormat struct {
	Version   int    `yaml:"version"`
	Invert    bool   `yaml:"invert"`
	TextAlign string `yaml:"text_align"`
	Language  string `yaml:"language"`
}

func toFile(s Settings) fileFormat {
	return fileFormat{
		Version:   1,
		Invert:    s.Invert,
		TextAlign: s.TextAlign.String(),
		Language:  s.Language.String(),
	}
}

func fromFile(f fileFormat) Settings {
	align, _ := ParseAlign(f.TextAlign)
	lang, _ := words.ParseLanguage(f.Language)
	return Settings{Invert: f.Invert, TextAlign: align, Language: lang}
}
