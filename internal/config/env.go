package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds startup configuration read from LOREBOX_* environment variables.
type Config struct {
	// Origin is the static site root: an http(s) base URL or a local directory.
	Origin string `env:"LOREBOX_ORIGIN" envDefault:"http://localhost:8000/"`

	// Lore book content
	LoreManifest    string `env:"LOREBOX_LORE_MANIFEST" envDefault:"content/lore.json"`
	LoreLegacyDir   string `env:"LOREBOX_LORE_LEGACY_DIR" envDefault:"content/lore/"`
	LoreLegacy      bool   `env:"LOREBOX_LORE_LEGACY" envDefault:"true"`
	LegacyMarkup    bool   `env:"LOREBOX_LEGACY_MARKUP" envDefault:"false"`
	PageTurnCuePath string `env:"LOREBOX_PAGE_TURN_CUE" envDefault:"assets/sfx/page-turn-8bit.mp3"`

	// Music box content
	Playlist        string `env:"LOREBOX_PLAYLIST" envDefault:"assets/playlist.m3u"`
	TracksManifest  string `env:"LOREBOX_TRACKS" envDefault:"assets/tracks.json"`
	MediaRoot       string `env:"LOREBOX_MEDIA_ROOT" envDefault:"assets/"`
	SlashCuePath    string `env:"LOREBOX_SLASH_CUE" envDefault:"assets/sfx/slash.mp3"`
	RotationMinutes int    `env:"LOREBOX_ROTATION_MINUTES" envDefault:"30"`
	FeaturedCount   int    `env:"LOREBOX_FEATURED_COUNT" envDefault:"7"`

	// Reloading: 0 disables the periodic reload of the track pool.
	ReloadInterval time.Duration `env:"LOREBOX_RELOAD_INTERVAL" envDefault:"0s"`
	WatchContent   bool          `env:"LOREBOX_WATCH" envDefault:"true"`

	FetchTimeout time.Duration `env:"LOREBOX_FETCH_TIMEOUT" envDefault:"10s"`
	LogMode      string        `env:"LOREBOX_LOG_MODE" envDefault:"development"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
