package audio

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate is the sample rate of the shared context
const DefaultSampleRate = 44100

// bytesPerFrame is 16 bit stereo PCM
const bytesPerFrame = 4

// Codec names a supported container
type Codec string

const (
	CodecMP3    Codec = "mp3"
	CodecWAV    Codec = "wav"
	CodecVorbis Codec = "ogg"
)

var (
	sharedContext *audio.Context
	contextOnce   sync.Once
)

// SharedContext returns the process wide audio context. ebiten allows only
// one context per process.
func SharedContext() *audio.Context {
	contextOnce.Do(func() {
		if ctx := audio.CurrentContext(); ctx != nil {
			sharedContext = ctx
			return
		}
		sharedContext = audio.NewContext(DefaultSampleRate)
	})
	return sharedContext
}

// CodecFor picks the decoder from the file extension
func CodecFor(p string) (Codec, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	switch ext {
	case "mp3":
		return CodecMP3, nil
	case "wav":
		return CodecWAV, nil
	case "ogg", "oga":
		return CodecVorbis, nil
	default:
		return "", fmt.Errorf("unsupported audio format %q", path.Ext(p))
	}
}

// stream is a decoded PCM stream with a known byte length
type stream interface {
	io.ReadSeeker
	Length() int64
}

// decode turns encoded media into 16 bit stereo PCM at sampleRate
func decode(codec Codec, sampleRate int, data []byte) (stream, error) {
	reader := bytes.NewReader(data)

	switch codec {
	case CodecMP3:
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("decode mp3: %w", err)
		}
		return s, nil
	case CodecWAV:
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav: %w", err)
		}
		return s, nil
	case CodecVorbis:
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("decode ogg: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported codec %q", codec)
	}
}

// StreamDuration converts a PCM byte length into playback time
func StreamDuration(length int64, sampleRate int) (time.Duration, bool) {
	if length <= 0 || sampleRate <= 0 {
		return 0, false
	}
	frames := length / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(sampleRate), true
}

// ClampVolume limits volume to [0,1]
func ClampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
