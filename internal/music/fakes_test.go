package music

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ytget/lorebox/internal/model"
)

func seededRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

type fakeAudio struct {
	mu      sync.Mutex
	calls   []string
	src     string
	paused  bool
	playErr error
	pos     time.Duration
	dur     time.Duration
	durOK   bool
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{paused: true}
}

func (a *fakeAudio) SetSource(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, "source:"+path)
	a.src = path
}

func (a *fakeAudio) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, "play")
	if a.playErr != nil {
		return a.playErr
	}
	a.paused = false
	return nil
}

func (a *fakeAudio) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, "pause")
	a.paused = true
}

func (a *fakeAudio) Rewind() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, "rewind")
	a.pos = 0
}

// finish stops the fake the way a track reaching its end does
func (a *fakeAudio) finish() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = true
}

func (a *fakeAudio) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

func (a *fakeAudio) Position() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos
}

func (a *fakeAudio) Duration() (time.Duration, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dur, a.durOK
}

// loadingAudio loads sources ahead of Play
type loadingAudio struct {
	*fakeAudio
	loadErr error
}

func (a *loadingAudio) Load(ctx context.Context) error {
	return a.loadErr
}

type fakeView struct {
	mu         sync.Mutex
	slots      []*model.Track
	active     int
	flashes    []int
	notices    []Notice
	title      string
	progress   []float64
	showing    bool
	hides      int
	effects    []bool
	glyphs     int
	slotsCalls int
}

func newFakeView() *fakeView {
	return &fakeView{active: NoSlot}
}

func (v *fakeView) SetSlots(slots []*model.Track) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.slots = slots
	v.slotsCalls++
}

func (v *fakeView) MarkActive(slot int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active = slot
}

func (v *fakeView) Flash(slot int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.flashes = append(v.flashes, slot)
}

func (v *fakeView) Notify(n Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, n)
}

func (v *fakeView) ShowProgress(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.title = title
	v.showing = true
}

func (v *fakeView) SetProgress(percent float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.progress = append(v.progress, percent)
}

func (v *fakeView) HideProgress() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showing = false
	v.hides++
}

func (v *fakeView) SetEffectsActive(active bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.effects = append(v.effects, active)
}

func (v *fakeView) SpawnGlyphs(glyphs []Glyph) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.glyphs += len(glyphs)
}

func (v *fakeView) snapshot() fakeView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fakeView{
		active:  v.active,
		notices: append([]Notice(nil), v.notices...),
		showing: v.showing,
		glyphs:  v.glyphs,
		title:   v.title,
	}
}

type fakeCue struct {
	plays int
}

func (c *fakeCue) Play() { c.plays++ }

func tracks(names ...string) []model.Track {
	out := make([]model.Track, 0, len(names))
	for _, n := range names {
		out = append(out, model.Track{Title: n, File: "tracks/" + n + ".mp3"})
	}
	return out
}
