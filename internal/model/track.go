package model

import (
	"fmt"
	"time"
)

// Rotation and slot limits
const (
	DefaultRotationMinutes = 30
	MinRotationMinutes     = 1
	DefaultFeaturedCount   = 7
	MinFeaturedCount       = 1
	MaxFeaturedCount       = 7
)

// LibraryFormat records which music manifest produced the pool
type LibraryFormat string

const (
	LibraryFormatPlaylist LibraryFormat = "playlist"
	LibraryFormatTracks   LibraryFormat = "tracks"
	LibraryFormatNone     LibraryFormat = "none"
)

// Track is one entry of the music pool
type Track struct {
	Title string `json:"title"`
	File  string `json:"file"`
}

// Playable returns true if the track points at a media file
func (t *Track) Playable() bool {
	return t != nil && t.File != ""
}

// DisplayTitle returns the title, or a slot based name when the title is empty
func (t *Track) DisplayTitle(slot int) string {
	if t != nil && t.Title != "" {
		return t.Title
	}
	return fmt.Sprintf("Track %d", slot+1)
}

// Library is the loaded music pool with its rotation parameters
type Library struct {
	Tracks          []Track
	RotationMinutes int
	FeaturedCount   int
	Format          LibraryFormat

	// Notice is a user facing message set when nothing could be loaded
	Notice string
}

// RotationInterval returns the time between featured set rotations
func (l Library) RotationInterval() time.Duration {
	return time.Duration(ClampRotationMinutes(l.RotationMinutes)) * time.Minute
}

// ClampFeaturedCount limits the number of featured slots to [1,7]
func ClampFeaturedCount(count int) int {
	if count < MinFeaturedCount {
		return MinFeaturedCount
	}
	if count > MaxFeaturedCount {
		return MaxFeaturedCount
	}
	return count
}

// ClampRotationMinutes enforces the minimum rotation period
func ClampRotationMinutes(minutes int) int {
	if minutes < MinRotationMinutes {
		return MinRotationMinutes
	}
	return minutes
}
