package music

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/ytget/lorebox/internal/logging"
	"github.com/ytget/lorebox/internal/model"
)

// NoSlot means no slot is playing
const NoSlot = -1

// DefaultMediaRoot prefixes track files to form audio sources
const DefaultMediaRoot = "assets/"

// DefaultInboxSize is the capacity of the message queue
const DefaultInboxSize = 64

// ReloadFunc loads a fresh track pool
type ReloadFunc func(ctx context.Context) model.Library

// Options configures a Controller
type Options struct {
	MediaRoot      string
	Rand           *rand.Rand
	EffectsEnabled bool

	// Reload and ReloadInterval enable periodic pool reloads
	Reload         ReloadFunc
	ReloadInterval time.Duration

	Log *logging.Logger
}

// Controller is the playback state machine of the music box.
//
// Handle is not safe for concurrent use. Outside of tests, messages are sent
// with Post and applied by the goroutine running Run.
type Controller struct {
	audio   Audio
	view    View
	cue     Cue
	rotator *Rotator
	effects *Effects
	log     *logging.Logger
	inbox   chan Msg

	mediaRoot      string
	reload         ReloadFunc
	reloadInterval time.Duration

	// Pool and featured set
	pool     []model.Track
	count    int
	rotation time.Duration
	slots    []*model.Track

	// Playback
	nowPlaying int
	loaded     *model.Track
	loading    bool
	request    uint64

	// Timer states
	effectsEnabled bool
	effectsOn      bool
	progressOn     bool
}

// NewController creates a controller with an empty pool. A nil cue disables
// the click sound.
func NewController(audio Audio, view View, cue Cue, opts Options) *Controller {
	root := opts.MediaRoot
	if root == "" {
		root = DefaultMediaRoot
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}

	rng := opts.Rand
	if rng == nil {
		rng = newRand()
	}

	return &Controller{
		audio:          audio,
		view:           view,
		cue:            cue,
		rotator:        NewRotator(rng),
		effects:        NewEffects(rng),
		log:            logging.OrNop(opts.Log),
		inbox:          make(chan Msg, DefaultInboxSize),
		mediaRoot:      root,
		reload:         opts.Reload,
		reloadInterval: opts.ReloadInterval,
		count:          model.DefaultFeaturedCount,
		nowPlaying:     NoSlot,
		effectsEnabled: opts.EffectsEnabled,
	}
}

// Handle applies one message
func (c *Controller) Handle(ctx context.Context, msg Msg) {
	switch m := msg.(type) {
	case SlotClicked:
		c.onSlotClicked(ctx, m.Slot)
	case SourceLoaded:
		c.onSourceLoaded(m)
	case AudioEvent:
		c.onAudioEvent(m.State)
	case ProgressTick:
		c.onProgressTick()
	case SpawnTick:
		c.onSpawnTick()
	case RotateTick:
		c.repick()
	case ReloadTick:
		c.onReloadTick(ctx)
	case PoolLoaded:
		c.onPoolLoaded(m)
	case EffectsEnabled:
		c.onEffectsEnabled(m.Enabled)
	default:
		c.log.Warn("unknown music message", "type", msg)
	}
}

// NowPlaying returns the active slot or NoSlot
func (c *Controller) NowPlaying() int {
	return c.nowPlaying
}

// Loaded returns the track currently assigned to the audio element
func (c *Controller) Loaded() *model.Track {
	return c.loaded
}

// Slots returns a copy of the featured set
func (c *Controller) Slots() []*model.Track {
	out := make([]*model.Track, len(c.slots))
	copy(out, c.slots)
	return out
}

// EffectsActive reports whether the spawn timer should run
func (c *Controller) EffectsActive() bool {
	return c.effectsOn && c.effectsEnabled
}

// ProgressActive reports whether the progress timer should run
func (c *Controller) ProgressActive() bool {
	return c.progressOn
}

// RotationInterval returns the featured set rotation period, 0 when disarmed
func (c *Controller) RotationInterval() time.Duration {
	if len(c.pool) == 0 {
		return 0
	}
	return c.rotation
}

func (c *Controller) onSlotClicked(ctx context.Context, slot int) {
	if c.cue != nil {
		c.cue.Play()
	}

	if slot < 0 || slot >= len(c.slots) {
		c.log.Debug("click on unknown slot", "slot", slot, "slots", len(c.slots))
		return
	}

	// Same slot toggles without touching the source
	if slot == c.nowPlaying {
		if c.loading {
			c.log.Debug("slot still loading", "slot", slot)
			return
		}
		if c.audio.Paused() {
			if err := c.audio.Play(); err != nil {
				c.startFailed(slot, err)
			}
			return
		}
		c.audio.Pause()
		return
	}

	track := c.slots[slot]
	if !track.Playable() && len(c.pool) > 0 {
		c.repick()
		track = c.slots[slot]
	}
	if !track.Playable() {
		c.view.Flash(slot)
		c.view.Notify(NewNotice(NoticeNoAssignment))
		return
	}

	// Stop whatever was playing before switching sources
	c.audio.Pause()
	c.audio.Rewind()

	c.nowPlaying = slot
	c.loaded = track
	c.view.MarkActive(slot)

	c.audio.SetSource(c.mediaRoot + track.File)

	loader, ok := c.audio.(Loader)
	if !ok {
		c.loading = false
		c.start(slot)
		return
	}

	c.request++
	c.loading = true
	req := c.request
	go func() {
		err := loader.Load(ctx)
		c.Post(ctx, SourceLoaded{Slot: slot, Request: req, Err: err})
	}()
}

func (c *Controller) start(slot int) {
	if err := c.audio.Play(); err != nil {
		c.startFailed(slot, err)
		return
	}
	c.log.Debug("playing", "slot", slot, "file", c.loaded.File)
}

// onSourceLoaded starts playback unless a later click or a reload took over
func (c *Controller) onSourceLoaded(m SourceLoaded) {
	if m.Request != c.request || !c.loading {
		c.log.Debug("stale source load", "slot", m.Slot)
		return
	}
	c.loading = false

	if m.Slot != c.nowPlaying {
		return
	}
	if m.Err != nil {
		c.startFailed(m.Slot, m.Err)
		return
	}
	c.start(m.Slot)
}

// startFailed reports a failed start and forgets the slot
func (c *Controller) startFailed(slot int, err error) {
	title := c.loaded.DisplayTitle(slot)
	c.log.Warn("playback failed", "slot", slot, "error", err)

	c.view.Flash(slot)
	c.view.Notify(playFailedNotice(title))
	c.view.MarkActive(NoSlot)
	c.nowPlaying = NoSlot
}

func (c *Controller) onAudioEvent(state model.AudioState) {
	// Events queued before a source switch describe the previous track
	if state.IsStopped() != c.audio.Paused() {
		c.log.Debug("stale audio event dropped", "state", state.String())
		return
	}

	switch state {
	case model.AudioPlaying:
		c.startEffects()
		c.view.ShowProgress(c.progressTitle())
		if c.nowPlaying != NoSlot {
			c.view.MarkActive(c.nowPlaying)
		}
		c.progressOn = true
	case model.AudioPaused:
		c.stopEffects()
		c.hideProgress()
		c.view.MarkActive(NoSlot)
	case model.AudioEnded:
		c.stopEffects()
		c.hideProgress()
		c.view.MarkActive(NoSlot)
		c.nowPlaying = NoSlot
	}
}

// progressTitle labels the progress popup with the track actually loaded
func (c *Controller) progressTitle() string {
	if c.nowPlaying == NoSlot {
		if c.loaded != nil && c.loaded.Title != "" {
			return c.loaded.Title
		}
		return "Unknown Track"
	}
	return c.loaded.DisplayTitle(c.nowPlaying)
}

func (c *Controller) hideProgress() {
	if !c.progressOn {
		return
	}
	c.progressOn = false
	c.view.HideProgress()
}

func (c *Controller) startEffects() {
	if c.effectsOn {
		return
	}
	c.effectsOn = true
	if c.effectsEnabled {
		c.view.SetEffectsActive(true)
	}
}

func (c *Controller) stopEffects() {
	if !c.effectsOn {
		return
	}
	c.effectsOn = false
	if c.effectsEnabled {
		c.view.SetEffectsActive(false)
	}
}

func (c *Controller) onEffectsEnabled(enabled bool) {
	if enabled == c.effectsEnabled {
		return
	}
	c.effectsEnabled = enabled
	if c.effectsOn {
		c.view.SetEffectsActive(enabled)
	}
}

func (c *Controller) onProgressTick() {
	if !c.progressOn || c.audio.Paused() {
		return
	}
	dur, ok := c.audio.Duration()
	if !ok || dur <= 0 {
		return
	}
	c.view.SetProgress(ProgressPercent(c.audio.Position(), dur))
}

// ProgressPercent returns pos/dur as a percentage clamped to [0,100]
func ProgressPercent(pos, dur time.Duration) float64 {
	if dur <= 0 {
		return 0
	}
	pct := float64(pos) / float64(dur) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func (c *Controller) onSpawnTick() {
	if !c.EffectsActive() {
		return
	}
	c.view.SpawnGlyphs(c.effects.Burst())
}

// repick maps a new featured set onto the slots without touching playback.
// The active slot keeps the track loaded in the audio element.
func (c *Controller) repick() {
	slots, empty := c.rotator.Pick(c.pool, c.count)
	if c.nowPlaying != NoSlot {
		if c.nowPlaying < len(slots) && c.loaded != nil {
			slots[c.nowPlaying] = c.loaded
		} else {
			// The active slot no longer exists; playback goes on unmarked
			c.nowPlaying = NoSlot
			c.view.MarkActive(NoSlot)
		}
	}

	c.slots = slots
	c.view.SetSlots(c.Slots())
	if empty {
		c.view.Notify(NewNotice(NoticeNoTracks))
	}
}

func (c *Controller) onPoolLoaded(m PoolLoaded) {
	lib := m.Library

	// A failed reload keeps the pool that is already playing
	if m.Reload && lib.Format == model.LibraryFormatNone && len(c.pool) > 0 {
		c.log.Warn("reload found no library, keeping current pool", "tracks", len(c.pool))
		return
	}

	c.pool = lib.Tracks
	c.count = model.ClampFeaturedCount(lib.FeaturedCount)
	c.rotation = lib.RotationInterval()

	if lib.Notice != "" {
		c.slots = make([]*model.Track, c.count)
		if c.nowPlaying >= c.count {
			c.nowPlaying = NoSlot
			c.view.MarkActive(NoSlot)
		}
		if c.nowPlaying != NoSlot {
			c.slots[c.nowPlaying] = c.loaded
		}
		c.view.SetSlots(c.Slots())
		c.view.Notify(NewNotice(lib.Notice))
		return
	}

	c.log.Info("track pool ready", "tracks", len(c.pool), "slots", c.count, "rotation", c.rotation)
	c.repick()
}

func (c *Controller) onReloadTick(ctx context.Context) {
	if c.reload == nil {
		return
	}
	go func() {
		lib := c.reload(ctx)
		c.Post(ctx, PoolLoaded{Library: lib, Reload: true})
	}()
}
