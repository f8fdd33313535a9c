package model

// BlockType identifies how a lore block is rendered
type BlockType string

const (
	// BlockText renders literal text
	BlockText BlockType = "text"

	// BlockImage renders an image
	BlockImage BlockType = "image"

	// BlockVideo renders a video
	BlockVideo BlockType = "video"
)

// String returns the string representation of BlockType
func (bt BlockType) String() string {
	return string(bt)
}

// IsKnown returns true for the block types the renderer understands
func (bt BlockType) IsKnown() bool {
	return bt == BlockText || bt == BlockImage || bt == BlockVideo
}

// IsMedia returns true for image and video blocks
func (bt BlockType) IsMedia() bool {
	return bt == BlockImage || bt == BlockVideo
}

// Side is the half of the open book a block belongs to
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// String returns the string representation of Side
func (s Side) String() string {
	return string(s)
}

// AudioState represents the state reported by the audio element
type AudioState string

const (
	// AudioPlaying means the element started or resumed playback
	AudioPlaying AudioState = "playing"

	// AudioPaused means playback was paused, by a button or externally
	AudioPaused AudioState = "paused"

	// AudioEnded means the loaded source played to its natural end
	AudioEnded AudioState = "ended"
)

// String returns the string representation of AudioState
func (as AudioState) String() string {
	return string(as)
}

// IsStopped returns true if no audio is audible in this state
func (as AudioState) IsStopped() bool {
	return as == AudioPaused || as == AudioEnded
}
