package music

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Effect timing
const (
	SpawnInterval    = 420 * time.Millisecond
	ProgressInterval = 120 * time.Millisecond
	GlyphLinger      = 80 * time.Millisecond
)

// Glyph drift ranges, in pixels and milliseconds
const (
	glyphDXSpan   = 80.0
	glyphDYMin    = 60.0
	glyphDYSpan   = 120.0
	glyphMinLife  = 900
	glyphLifeSpan = 900

	// thirdGlyphThreshold gives a 40% chance of a third glyph per tick
	thirdGlyphThreshold = 0.6
)

// RuneChars is the alphabet glyphs are drawn from
const RuneChars = "ᚠᚢᚦᚨᚱᚲᚷᚹᚺᚾᛁᛃᛇᛈᛉᛋᛏᛒᛖᛗᛚᛜᛞᛟᛝ"

// runeSet holds RuneChars split into runes
var runeSet = []rune(RuneChars)

// Emitter is a fixed point glyphs rise from, in percent of the effect layer
type Emitter struct {
	X, Y  float64
	Color color.NRGBA
}

// Emitters are placed on the three characters of the backdrop
var Emitters = []Emitter{
	// left guitarist
	{X: 8, Y: 36, Color: color.NRGBA{R: 0x7f, G: 0xff, B: 0xd4, A: 0xff}},
	{X: 11, Y: 48, Color: color.NRGBA{R: 0x7f, G: 0xff, B: 0xd4, A: 0xff}},
	// center
	{X: 52, Y: 42, Color: color.NRGBA{R: 0x8b, G: 0xe9, B: 0xff, A: 0xff}},
	// right
	{X: 88, Y: 40, Color: color.NRGBA{R: 0xa7, G: 0x8b, B: 0xfa, A: 0xff}},
	{X: 92, Y: 55, Color: color.NRGBA{R: 0xa7, G: 0x8b, B: 0xfa, A: 0xff}},
}

// Glyph is one transient rune floating up from an emitter
type Glyph struct {
	ID    string
	Rune  rune
	X, Y  float64 // percent
	DX    float64 // pixels, in [-40,40)
	DY    float64 // pixels, in (-180,-60]
	Color color.NRGBA

	// Lifetime is the drift duration; the surface removes the glyph after
	// Lifetime + GlyphLinger
	Lifetime time.Duration
}

// RemoveAfter returns how long the glyph stays on screen
func (g Glyph) RemoveAfter() time.Duration {
	return g.Lifetime + GlyphLinger
}

// Effects produces glyph bursts
type Effects struct {
	rng *rand.Rand
}

// NewEffects creates a glyph generator. A nil rng is replaced by a time seeded one.
func NewEffects(rng *rand.Rand) *Effects {
	if rng == nil {
		rng = newRand()
	}
	return &Effects{rng: rng}
}

// Burst returns the glyphs for one spawn tick: two, plus a third 40% of the time
func (e *Effects) Burst() []Glyph {
	glyphs := []Glyph{e.Spawn(), e.Spawn()}
	if e.rng.Float64() > thirdGlyphThreshold {
		glyphs = append(glyphs, e.Spawn())
	}
	return glyphs
}

// Spawn creates a single glyph at a random emitter
func (e *Effects) Spawn() Glyph {
	em := Emitters[e.rng.IntN(len(Emitters))]
	return Glyph{
		ID:       uuid.NewString(),
		Rune:     runeSet[e.rng.IntN(len(runeSet))],
		X:        em.X,
		Y:        em.Y,
		DX:       e.rng.Float64()*glyphDXSpan - glyphDXSpan/2,
		DY:       -(e.rng.Float64()*glyphDYSpan + glyphDYMin),
		Color:    em.Color,
		Lifetime: time.Duration(glyphMinLife+e.rng.Float64()*glyphLifeSpan) * time.Millisecond,
	}
}
