package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/ytget/lorebox/internal/model"
	"github.com/ytget/lorebox/internal/platform"
)

// testWAV returns a silent 16 bit stereo WAV at DefaultSampleRate
func testWAV(frames int) []byte {
	const channels, bits = 2, 16
	dataLen := frames * channels * bits / 8
	le := binary.LittleEndian

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, le, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, le, uint32(16))
	_ = binary.Write(&buf, le, uint16(1))
	_ = binary.Write(&buf, le, uint16(channels))
	_ = binary.Write(&buf, le, uint32(DefaultSampleRate))
	_ = binary.Write(&buf, le, uint32(DefaultSampleRate*channels*bits/8))
	_ = binary.Write(&buf, le, uint16(channels*bits/8))
	_ = binary.Write(&buf, le, uint16(bits))
	buf.WriteString("data")
	_ = binary.Write(&buf, le, uint32(dataLen))
	buf.Write(make([]byte, dataLen))
	return buf.Bytes()
}

type fakePlayer struct {
	mu      sync.Mutex
	playing bool
	closed  bool
	rewinds int
	volume  float64
	pos     time.Duration
}

func (p *fakePlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
}

func (p *fakePlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

func (p *fakePlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *fakePlayer) Rewind() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rewinds++
	p.pos = 0
	return nil
}

func (p *fakePlayer) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

func (p *fakePlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
}

func (p *fakePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.playing = false
	return nil
}

// finish stops the player the way the end of the stream does
func (p *fakePlayer) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

func (p *fakePlayer) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

type playerRecorder struct {
	mu      sync.Mutex
	players []*fakePlayer
}

func (r *playerRecorder) open(s stream) (player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &fakePlayer{}
	r.players = append(r.players, p)
	return p, nil
}

func (r *playerRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (r *playerRecorder) last() *fakePlayer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.players) == 0 {
		return nil
	}
	return r.players[len(r.players)-1]
}

func testMedia() fstest.MapFS {
	return fstest.MapFS{
		"tracks/a.wav": {Data: testWAV(DefaultSampleRate)},
		"tracks/b.wav": {Data: testWAV(DefaultSampleRate / 2)},
		"tracks/c.wav": {Data: []byte("RIFF0000WAVE")},
	}
}

func newTestElement(t *testing.T, fetcher Fetcher, watchEvery time.Duration) (*Element, *playerRecorder) {
	t.Helper()
	rec := &playerRecorder{}
	if fetcher == nil {
		fetcher = platform.NewFSSource("test", testMedia())
	}
	e := newElement(fetcher, 0.5, nil, DefaultSampleRate, rec.open, watchEvery)
	t.Cleanup(func() { _ = e.Close() })
	return e, rec
}

// drain returns the queued events without waiting
func drain(e *Element) []model.AudioState {
	var out []model.AudioState
	for {
		select {
		case s := <-e.events:
			out = append(out, s)
		default:
			return out
		}
	}
}

func TestElementPlayPauseEmitOnce(t *testing.T) {
	e, rec := newTestElement(t, nil, time.Hour)
	e.SetSource("tracks/a.wav")

	if !e.Paused() {
		t.Fatal("Expected a new element to be paused")
	}
	for i := 0; i < 2; i++ {
		if err := e.Play(); err != nil {
			t.Fatalf("Expected play to succeed, got %v", err)
		}
	}
	if e.Paused() {
		t.Error("Expected element playing")
	}
	if rec.count() != 1 {
		t.Errorf("Expected one player, got %d", rec.count())
	}
	if got := drain(e); len(got) != 1 || got[0] != model.AudioPlaying {
		t.Errorf("Expected one Playing event, got %v", got)
	}

	dur, ok := e.Duration()
	if !ok || dur != time.Second {
		t.Errorf("Expected a known 1s duration, got %v (%v)", dur, ok)
	}
	if v := rec.last().volume; v != 0.5 {
		t.Errorf("Expected volume 0.5 applied, got %v", v)
	}

	e.Pause()
	e.Pause()
	if !e.Paused() {
		t.Error("Expected element paused")
	}
	if got := drain(e); len(got) != 1 || got[0] != model.AudioPaused {
		t.Errorf("Expected one Paused event, got %v", got)
	}
}

func TestElementSetSourceDropsPlayer(t *testing.T) {
	e, rec := newTestElement(t, nil, time.Hour)
	e.SetSource("tracks/a.wav")
	if err := e.Play(); err != nil {
		t.Fatalf("Expected play to succeed, got %v", err)
	}
	first := rec.last()
	drain(e)

	e.SetSource("tracks/b.wav")
	if !first.isClosed() {
		t.Error("Expected the previous player closed")
	}
	if !e.Paused() {
		t.Error("Expected a source change to reset the playing flag")
	}
	if _, ok := e.Duration(); ok {
		t.Error("Expected the duration unknown until the next load")
	}
	if got := drain(e); len(got) != 0 {
		t.Errorf("Expected no event from SetSource, got %v", got)
	}

	if err := e.Play(); err != nil {
		t.Fatalf("Expected play to succeed, got %v", err)
	}
	if rec.count() != 2 {
		t.Fatalf("Expected a second player, got %d", rec.count())
	}
	if dur, _ := e.Duration(); dur != 500*time.Millisecond {
		t.Errorf("Expected 500ms, got %v", dur)
	}

	// The same path keeps the loaded player
	e.SetSource("tracks/b.wav")
	if rec.last().isClosed() {
		t.Error("Expected the player kept for an unchanged source")
	}
}

func TestElementEndedOnce(t *testing.T) {
	e, rec := newTestElement(t, nil, time.Hour)
	e.SetSource("tracks/a.wav")
	if err := e.Play(); err != nil {
		t.Fatalf("Expected play to succeed, got %v", err)
	}

	if e.checkEnded() {
		t.Fatal("Expected no end while the player runs")
	}
	rec.last().finish()
	if !e.checkEnded() {
		t.Fatal("Expected the end detected")
	}
	if e.checkEnded() {
		t.Error("Expected the end reported once")
	}
	if !e.Paused() {
		t.Error("Expected element paused after the end")
	}
}

func TestElementWatchEmitsEnded(t *testing.T) {
	e, rec := newTestElement(t, nil, 5*time.Millisecond)
	e.SetSource("tracks/a.wav")
	if err := e.Play(); err != nil {
		t.Fatalf("Expected play to succeed, got %v", err)
	}
	if got := <-e.Events(); got != model.AudioPlaying {
		t.Fatalf("Expected Playing first, got %v", got)
	}

	rec.last().finish()
	select {
	case got := <-e.Events():
		if got != model.AudioEnded {
			t.Fatalf("Expected Ended, got %v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Expected an Ended event")
	}

	time.Sleep(50 * time.Millisecond)
	if got := drain(e); len(got) != 0 {
		t.Errorf("Expected no further events, got %v", got)
	}
}

func TestElementEmitDoesNotBlock(t *testing.T) {
	e, _ := newTestElement(t, nil, time.Hour)

	done := make(chan struct{})
	go func() {
		for i := 0; i < eventBuffer+5; i++ {
			e.emit(model.AudioPlaying)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected emit to return with a full queue")
	}
	if len(e.events) != eventBuffer {
		t.Errorf("Expected %d queued events, got %d", eventBuffer, len(e.events))
	}
}

func TestElementPlayErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		is   error
	}{
		{name: "no source", src: ""},
		{name: "missing file", src: "tracks/zzz.wav", is: platform.ErrNotFound},
		{name: "unsupported format", src: "tracks/a.flac"},
		{name: "broken media", src: "tracks/c.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestElement(t, nil, time.Hour)
			e.SetSource(tt.src)

			err := e.Play()
			if err == nil {
				t.Fatal("Expected play to fail")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Expected %v, got %v", tt.is, err)
			}
			if !e.Paused() || rec.count() != 0 {
				t.Errorf("Expected no player after a failure, got %d", rec.count())
			}
			if got := drain(e); len(got) != 0 {
				t.Errorf("Expected no events, got %v", got)
			}
		})
	}
}

func TestElementLoadAhead(t *testing.T) {
	e, rec := newTestElement(t, nil, time.Hour)
	e.SetSource("tracks/a.wav")

	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if _, ok := e.Duration(); !ok {
		t.Error("Expected the duration known after load")
	}
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Expected a second load to be a no-op, got %v", err)
	}
	if err := e.Play(); err != nil {
		t.Fatalf("Expected play to succeed, got %v", err)
	}
	if rec.count() != 1 {
		t.Errorf("Expected the loaded player reused, got %d players", rec.count())
	}
}

// gatedFetcher blocks fetches until release is closed
type gatedFetcher struct {
	Fetcher
	started chan struct{}
	release chan struct{}
}

func (g *gatedFetcher) Fetch(ctx context.Context, p string) ([]byte, error) {
	g.started <- struct{}{}
	<-g.release
	return g.Fetcher.Fetch(ctx, p)
}

func TestElementLoadSupersededBySetSource(t *testing.T) {
	gate := &gatedFetcher{
		Fetcher: platform.NewFSSource("test", testMedia()),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	e, rec := newTestElement(t, gate, time.Hour)
	e.SetSource("tracks/a.wav")

	result := make(chan error, 1)
	go func() { result <- e.Load(context.Background()) }()
	<-gate.started

	// The element stays usable while the fetch is outstanding
	e.SetSource("tracks/b.wav")
	if !e.Paused() {
		t.Error("Expected element paused")
	}
	close(gate.release)

	if err := <-result; !errors.Is(err, ErrSourceChanged) {
		t.Fatalf("Expected ErrSourceChanged, got %v", err)
	}
	if rec.count() != 1 || !rec.last().isClosed() {
		t.Error("Expected the superseded player closed")
	}
	if _, ok := e.Duration(); ok {
		t.Error("Expected nothing installed for the old source")
	}
}

func TestElementSetVolume(t *testing.T) {
	e, rec := newTestElement(t, nil, time.Hour)
	e.SetSource("tracks/a.wav")
	if err := e.Play(); err != nil {
		t.Fatalf("Expected play to succeed, got %v", err)
	}

	e.SetVolume(2)
	if v := rec.last().volume; v != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", v)
	}
	e.SetVolume(-1)
	if v := rec.last().volume; v != 0 {
		t.Errorf("Expected volume clamped to 0, got %v", v)
	}
}
