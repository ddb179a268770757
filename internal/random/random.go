package random

import (
	"math/rand"
	"time"
)

// Source is the only randomness the draft core consumes. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Permute returns a shuffled copy of xs. Every ordering is equally likely:
// walk from the last index down, swapping with a uniform index in [0, i].
func Permute[T any](src Source, xs []T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
