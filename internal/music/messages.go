package music

import (
	"github.com/ytget/lorebox/internal/model"
)

// Msg is anything the controller reacts to
type Msg interface {
	isMsg()
}

// SlotClicked is posted when a slot button is pressed
type SlotClicked struct {
	Slot int
}

// AudioEvent reports a playback state change of the audio element
type AudioEvent struct {
	State model.AudioState
}

// ProgressTick asks for a progress bar refresh
type ProgressTick struct{}

// SpawnTick asks for a glyph burst
type SpawnTick struct{}

// RotateTick asks for a new featured set
type RotateTick struct{}

// ReloadTick asks for the track pool to be reloaded
type ReloadTick struct{}

// PoolLoaded replaces the track pool
type PoolLoaded struct {
	Library model.Library

	// Reload is set for pools loaded after startup
	Reload bool
}

// SourceLoaded reports the end of a background source load
type SourceLoaded struct {
	Slot int

	// Request matches the click that started the load
	Request uint64
	Err     error
}

// EffectsEnabled turns the rune effects on or off
type EffectsEnabled struct {
	Enabled bool
}

func (SlotClicked) isMsg()    {}
func (AudioEvent) isMsg()     {}
func (ProgressTick) isMsg()   {}
func (SpawnTick) isMsg()      {}
func (RotateTick) isMsg()     {}
func (ReloadTick) isMsg()     {}
func (PoolLoaded) isMsg()     {}
func (SourceLoaded) isMsg()   {}
func (EffectsEnabled) isMsg() {}
