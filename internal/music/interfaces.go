package music

import (
	"context"
	"time"

	"github.com/ytget/lorebox/internal/model"
)

// Audio is the single audio element the controller drives
type Audio interface {
	SetSource(path string)
	Play() error
	Pause()
	Rewind()
	Paused() bool
	Position() time.Duration

	// Duration returns false while the length is unknown
	Duration() (time.Duration, bool)
}

// Loader is implemented by audio elements that can fetch and decode the
// source ahead of Play. The controller then loads off its goroutine.
type Loader interface {
	Load(ctx context.Context) error
}

// View receives every visible change of the music box. Implementations must
// not block; widget updates are expected to be marshalled to the UI thread.
type View interface {
	// SetSlots relabels the slot buttons
	SetSlots(slots []*model.Track)

	// MarkActive highlights slot, or clears every highlight for NoSlot
	MarkActive(slot int)

	// Flash briefly pulses a slot button
	Flash(slot int)

	// Notify shows a transient notice
	Notify(n Notice)

	ShowProgress(title string)
	SetProgress(percent float64)
	HideProgress()

	// SetEffectsActive is called once per effects start and stop
	SetEffectsActive(active bool)
	SpawnGlyphs(glyphs []Glyph)
}

// Cue plays a short sound effect, best effort
type Cue interface {
	Play()
}
