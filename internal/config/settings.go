package config

import (
	"strings"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyContentOrigin  = "content_origin"
	KeyEffectsEnabled = "effects_enabled"
	KeyCuesEnabled    = "cues_enabled"
	KeyVolume         = "volume"
)

// Default values
const (
	DefaultEffectsEnabled = true
	DefaultCuesEnabled    = true
	DefaultVolume         = 0.8
)

// Settings manages the user adjustable preferences. Startup defaults come from
// Config; anything stored here overrides them.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetContentOrigin returns the stored origin, or fallback when none is stored
func (s *Settings) GetContentOrigin(fallback string) string {
	origin := strings.TrimSpace(s.app.Preferences().String(KeyContentOrigin))
	if origin == "" {
		return fallback
	}
	return origin
}

// SetContentOrigin stores the origin override. An empty value clears it.
func (s *Settings) SetContentOrigin(origin string) {
	s.app.Preferences().SetString(KeyContentOrigin, strings.TrimSpace(origin))
}

// GetEffectsEnabled returns whether ambient rune effects are drawn
func (s *Settings) GetEffectsEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyEffectsEnabled, DefaultEffectsEnabled)
}

// SetEffectsEnabled sets whether ambient rune effects are drawn
func (s *Settings) SetEffectsEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyEffectsEnabled, enabled)
}

// GetCuesEnabled returns whether page turn and click cues are played
func (s *Settings) GetCuesEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyCuesEnabled, DefaultCuesEnabled)
}

// SetCuesEnabled sets whether page turn and click cues are played
func (s *Settings) SetCuesEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyCuesEnabled, enabled)
}

// GetVolume returns the playback volume in [0,1]
func (s *Settings) GetVolume() float64 {
	return clampVolume(s.app.Preferences().FloatWithFallback(KeyVolume, DefaultVolume))
}

// SetVolume sets the playback volume, clamped to [0,1]
func (s *Settings) SetVolume(volume float64) {
	s.app.Preferences().SetFloat(KeyVolume, clampVolume(volume))
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
