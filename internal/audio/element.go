package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/ytget/lorebox/internal/logging"
	"github.com/ytget/lorebox/internal/model"
)

// Fetcher reads media bytes by content path
type Fetcher interface {
	Fetch(ctx context.Context, p string) ([]byte, error)
}

// ErrSourceChanged is returned by Load when SetSource replaced the source
// while it was loading
var ErrSourceChanged = errors.New("audio source changed while loading")

// Watch loop and event queue settings
const (
	DefaultWatchInterval = 100 * time.Millisecond
	eventBuffer          = 16
)

// player is the part of *audio.Player the element drives
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	Position() time.Duration
	SetVolume(volume float64)
	Close() error
}

// playerFactory creates a player for a decoded stream
type playerFactory func(s stream) (player, error)

func contextPlayers(ctx *audio.Context) playerFactory {
	return func(s stream) (player, error) {
		p, err := ctx.NewPlayer(s)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// opened is a decoded source ready to be installed
type opened struct {
	player player
	length time.Duration
	known  bool
}

// Element is the single music player. It mirrors the small part of an HTML
// audio element the music box needs and reports state changes on Events.
type Element struct {
	mu         sync.Mutex
	fetcher    Fetcher
	sampleRate int
	newPlayer  playerFactory
	log        *logging.Logger

	src     string
	gen     uint64
	player  player
	length  time.Duration
	known   bool
	playing bool
	volume  float64

	events chan model.AudioState
	stop   chan struct{}
	once   sync.Once
}

// NewElement creates an element on the shared context and starts its watch
// loop. Close stops the loop.
func NewElement(fetcher Fetcher, volume float64, log *logging.Logger) *Element {
	ctx := SharedContext()
	return newElement(fetcher, volume, log, ctx.SampleRate(), contextPlayers(ctx), DefaultWatchInterval)
}

func newElement(fetcher Fetcher, volume float64, log *logging.Logger, sampleRate int, newPlayer playerFactory, watchEvery time.Duration) *Element {
	e := &Element{
		fetcher:    fetcher,
		sampleRate: sampleRate,
		newPlayer:  newPlayer,
		log:        logging.OrNop(log),
		volume:     ClampVolume(volume),
		events:     make(chan model.AudioState, eventBuffer),
		stop:       make(chan struct{}),
	}
	go e.watch(watchEvery)
	return e
}

// Events reports Playing, Paused and Ended transitions
func (e *Element) Events() <-chan model.AudioState {
	return e.events
}

// SetSource assigns the media path. A new path drops the current player
// without an event; the media is fetched on the next Load or Play.
func (e *Element) SetSource(p string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p == e.src && e.player != nil {
		return
	}
	e.closePlayerLocked()
	e.src = p
	e.gen++
}

// Load fetches and decodes the current source without holding the element,
// so the other methods stay responsive. A Play after a successful Load starts
// at once.
func (e *Element) Load(ctx context.Context) error {
	e.mu.Lock()
	src, gen, ready := e.src, e.gen, e.player != nil
	e.mu.Unlock()

	if ready {
		return nil
	}

	o, err := e.open(ctx, src)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen {
		e.discard(o)
		return ErrSourceChanged
	}
	if e.player != nil {
		// A concurrent Play got there first
		e.discard(o)
		return nil
	}
	e.installLocked(o)
	return nil
}

// Play starts or resumes playback. Without a prior Load the media is fetched
// here; fetch and decode errors are returned as start failures.
func (e *Element) Play() error {
	e.mu.Lock()
	if e.player == nil {
		o, err := e.open(context.Background(), e.src)
		if err != nil {
			e.mu.Unlock()
			return err
		}
		e.installLocked(o)
	}
	e.player.Play()
	changed := !e.playing
	e.playing = true
	e.mu.Unlock()

	if changed {
		e.emit(model.AudioPlaying)
	}
	return nil
}

// Pause stops playback at the current position
func (e *Element) Pause() {
	e.mu.Lock()
	if e.player == nil || !e.playing {
		e.mu.Unlock()
		return
	}
	e.player.Pause()
	e.playing = false
	e.mu.Unlock()

	e.emit(model.AudioPaused)
}

// Rewind moves back to the start
func (e *Element) Rewind() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return
	}
	if err := e.player.Rewind(); err != nil {
		e.log.Debug("rewind failed", "src", e.src, "error", err)
	}
}

// Paused returns true unless audio is playing
func (e *Element) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.playing
}

// Position returns the playback position
func (e *Element) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return 0
	}
	return e.player.Position()
}

// Duration returns the media length once it is known
func (e *Element) Duration() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.length, e.known
}

// SetVolume changes the volume of the current and future players
func (e *Element) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.volume = ClampVolume(v)
	if e.player != nil {
		e.player.SetVolume(e.volume)
	}
}

// Close stops the watch loop and releases the player
func (e *Element) Close() error {
	e.once.Do(func() {
		close(e.stop)
		e.mu.Lock()
		e.closePlayerLocked()
		e.mu.Unlock()
	})
	return nil
}

// open fetches and decodes src. It only reads fields that never change.
func (e *Element) open(ctx context.Context, src string) (opened, error) {
	if src == "" {
		return opened{}, fmt.Errorf("no source")
	}

	codec, err := CodecFor(src)
	if err != nil {
		return opened{}, err
	}

	data, err := e.fetcher.Fetch(ctx, src)
	if err != nil {
		return opened{}, fmt.Errorf("load %s: %w", src, err)
	}

	s, err := decode(codec, e.sampleRate, data)
	if err != nil {
		return opened{}, fmt.Errorf("load %s: %w", src, err)
	}

	p, err := e.newPlayer(s)
	if err != nil {
		return opened{}, fmt.Errorf("create player for %s: %w", src, err)
	}

	length, known := StreamDuration(s.Length(), e.sampleRate)
	return opened{player: p, length: length, known: known}, nil
}

func (e *Element) installLocked(o opened) {
	o.player.SetVolume(e.volume)
	e.player = o.player
	e.length, e.known = o.length, o.known
}

func (e *Element) discard(o opened) {
	if err := o.player.Close(); err != nil {
		e.log.Debug("close player failed", "error", err)
	}
}

func (e *Element) closePlayerLocked() {
	if e.player != nil {
		if err := e.player.Close(); err != nil {
			e.log.Debug("close player failed", "src", e.src, "error", err)
		}
	}
	e.player = nil
	e.length, e.known = 0, false
	e.playing = false
}

// watch detects the end of playback, which no caller reports
func (e *Element) watch(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			if e.checkEnded() {
				e.emit(model.AudioEnded)
			}
		}
	}
}

func (e *Element) checkEnded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil || !e.playing || e.player.IsPlaying() {
		return false
	}
	e.playing = false
	return true
}

// emit never blocks: the controller that drains Events may be the caller
func (e *Element) emit(state model.AudioState) {
	select {
	case e.events <- state:
	default:
		e.log.Warn("audio event dropped", "state", state.String())
	}
}
