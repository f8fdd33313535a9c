package music

import (
	"context"
	"time"

	"github.com/ytget/lorebox/internal/model"
)

// Post queues a message for the Run loop. It gives up when ctx is done.
func (c *Controller) Post(ctx context.Context, msg Msg) bool {
	select {
	case c.inbox <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

// Run applies posted messages and audio events until ctx is done, and owns
// the rotation, reload, spawn and progress timers. Disarmed timers leave a nil
// channel so their select case never fires.
func (c *Controller) Run(ctx context.Context, audioEvents <-chan model.AudioState) error {
	var rotate, reload, spawn, progress loopTimer
	defer func() {
		rotate.stop()
		reload.stop()
		spawn.stop()
		progress.stop()
	}()

	for {
		rotate.set(c.RotationInterval())
		if c.reload != nil {
			reload.set(c.reloadInterval)
		}
		spawn.set(armed(c.EffectsActive(), SpawnInterval))
		progress.set(armed(c.ProgressActive(), ProgressInterval))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-c.inbox:
			c.Handle(ctx, msg)
		case state, ok := <-audioEvents:
			if !ok {
				audioEvents = nil
				continue
			}
			c.Handle(ctx, AudioEvent{State: state})
		case <-rotate.C():
			c.Handle(ctx, RotateTick{})
		case <-reload.C():
			c.Handle(ctx, ReloadTick{})
		case <-spawn.C():
			c.Handle(ctx, SpawnTick{})
		case <-progress.C():
			c.Handle(ctx, ProgressTick{})
		}
	}
}

func armed(on bool, every time.Duration) time.Duration {
	if on {
		return every
	}
	return 0
}

// loopTimer is a ticker that can be armed and disarmed from the loop
type loopTimer struct {
	t     *time.Ticker
	every time.Duration
}

// set arms the ticker with the given period, or disarms it for zero. An
// unchanged period keeps the running ticker.
func (l *loopTimer) set(every time.Duration) {
	if every == l.every {
		return
	}
	l.stop()
	if every > 0 {
		l.t = time.NewTicker(every)
		l.every = every
	}
}

func (l *loopTimer) stop() {
	if l.t != nil {
		l.t.Stop()
		l.t = nil
	}
	l.every = 0
}

// C returns the tick channel, nil while disarmed
func (l *loopTimer) C() <-chan time.Time {
	if l.t == nil {
		return nil
	}
	return l.t.C
}
