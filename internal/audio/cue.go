package audio

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/ytget/lorebox/internal/logging"
)

// Cue is a short sound effect. Playing restarts it from the beginning.
// Failures are logged at debug level and otherwise ignored.
type Cue struct {
	ctx     *audio.Context
	fetcher Fetcher
	path    string
	log     *logging.Logger
	enabled atomic.Bool

	mu     sync.Mutex
	player *audio.Player
	failed bool
}

// NewCue creates a cue for the media at path. The media is loaded on first use.
func NewCue(fetcher Fetcher, path string, log *logging.Logger) *Cue {
	c := &Cue{
		ctx:     SharedContext(),
		fetcher: fetcher,
		path:    path,
		log:     logging.OrNop(log),
	}
	c.enabled.Store(true)
	return c
}

// SetEnabled turns the cue on or off
func (c *Cue) SetEnabled(enabled bool) {
	c.enabled.Store(enabled)
}

// Play starts the cue without blocking the caller
func (c *Cue) Play() {
	if c == nil || !c.enabled.Load() {
		return
	}
	go c.play()
}

func (c *Cue) play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.player == nil {
		// A missing file is not retried on every click
		if c.failed {
			return
		}
		player, err := c.load()
		if err != nil {
			c.failed = true
			c.log.Debug("sound cue unavailable", "path", c.path, "error", err)
			return
		}
		c.player = player
	}

	if err := c.player.Rewind(); err != nil {
		c.log.Debug("sound cue rewind failed", "path", c.path, "error", err)
	}
	c.player.Play()
}

// load decodes the whole cue into memory
func (c *Cue) load() (*audio.Player, error) {
	codec, err := CodecFor(c.path)
	if err != nil {
		return nil, err
	}

	data, err := c.fetcher.Fetch(context.Background(), c.path)
	if err != nil {
		return nil, err
	}

	s, err := decode(codec, c.ctx.SampleRate(), data)
	if err != nil {
		return nil, err
	}

	pcm, err := io.ReadAll(s)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	return c.ctx.NewPlayerFromBytes(pcm), nil
}
