package config

import (
	"go.uber.org/zap"

	"github.com/muurk/textwatch/internal/logging"
	"github.com/muurk/textwatch/internal/protocol"
	"github.com/muurk/textwatch/internal/words"
)

// Persister saves settings.
type Persister interface {
	Save(Settings) error
}

// Syncer applies settings carried by inbound messages.
type Syncer struct {
	current  Settings
	store    Persister
	onChange func(old, updated Settings)
}

// NewSyncer starts from initial. onChange runs after every change that
// altered at least one field.
func NewSyncer(initial Settings, store Persister, onChange func(old, updated Settings)) *Syncer {
	return &Syncer{current: initial.normalize(), store: store, onChange: onChange}
}

// Current returns the active settings.
func (s *Syncer) Current() Settings {
	return s.current
}

// HandleMessage applies whichever settings keys d carries. Unknown
// alignment or language values fall back to their defaults.
func (s *Syncer) HandleMessage(d *protocol.Dict) {
	u := protocol.SettingsFrom(d)
	if u.Empty() {
		return
	}

	next := s.current
	if u.Invert != nil {
		next.Invert = *u.Invert
	}
	if u.TextAlign != nil {
		next.TextAlign = Align(*u.TextAlign)
	}
	if u.Language != nil {
		next.Language = words.Language(*u.Language)
	}
	next = next.normalize()

	if next == s.current {
		return
	}

	old := s.current
	s.current = next
	logging.Info("Settings changed",
		zap.Bool("invert", next.Invert),
		zap.String("text_align", next.TextAlign.String()),
		zap.String("language", next.Language.String()),
	)

	if s.store != nil {
		if err := s.store.Save(next); err != nil {
			logging.Warn("Failed to persist settings", zap.Error(err))
		}
	}
	if s.onChange != nil {
		s.onChange(old, next)
	}
}
