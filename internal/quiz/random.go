package quiz

import (
	"math/rand"
	"time"
)

// Rand is the source of randomness for shuffling. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a time-seeded source. It is not safe for concurrent use.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle returns a uniformly shuffled copy of items (Fisher-Yates)
func Shuffle[T any](rng Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
