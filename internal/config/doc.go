// Package config persists the face settings and applies settings pushed by
// the companion.
//
// # Settings File
//
// Settings are stored as YAML in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/textwatch/settings.yaml or $HOME/.config/textwatch/settings.yaml
//   - macOS: $HOME/.config/textwatch/settings.yaml
//   - Windows: %LOCALAPPDATA%\textwatch\settings.yaml
//
// The file is read once at startup and rewritten atomically whenever a
// message changes a setting:
//
//	version: 1
//	invert: false
//	text_align: center
//	language: en_US
//
// # Sync
//
// Syncer is an inbound observer. It applies INVERT, TEXT_ALIGN and LANGUAGE
// when present, saves the result and notifies the face so it can restyle or
// re-render.
//
// # Usage Example
//
//	path, _ := config.DefaultSettingsPath()
//	store := config.NewStore(path)
//	settings, err := store.Load()
//	if err != nil {
//	    logging.Warn("Using default settings", zap.Error(err))
//	}
//	syncer := config.NewSyncer(settings, store, face.ApplySettings)
//	chain.Register("settings", syncer.HandleMessage)
package config
