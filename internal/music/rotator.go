package music

import (
	"math/rand/v2"
	"time"

	"github.com/ytget/lorebox/internal/model"
)

// Rotator picks the featured tracks for the slots
type Rotator struct {
	rng *rand.Rand
}

// NewRotator creates a rotator. A nil rng is replaced by a time seeded one.
func NewRotator(rng *rand.Rand) *Rotator {
	if rng == nil {
		rng = newRand()
	}
	return &Rotator{rng: rng}
}

// Pick returns exactly clamp(count,1,7) slots. Tracks are distinct when the
// pool is large enough; a smaller pool is shuffled once and repeated
// cyclically. An empty pool yields all empty slots and notice=true.
func (r *Rotator) Pick(pool []model.Track, count int) ([]*model.Track, bool) {
	n := model.ClampFeaturedCount(count)
	slots := make([]*model.Track, n)

	if len(pool) == 0 {
		return slots, true
	}

	// Shuffle a copy; slots point into it so later pool reloads cannot alias
	shuffled := make([]model.Track, len(pool))
	copy(shuffled, pool)
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for i := range slots {
		slots[i] = &shuffled[i%len(shuffled)]
	}
	return slots, false
}

func newRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}
