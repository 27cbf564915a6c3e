package spin

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Random is the randomness the wheel consumes. *rand.Rand satisfies it.
type Random interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
	Perm(n int) []int
	Shuffle(n int, swap func(i, j int))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRandom returns a deterministic source for seed
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSeededRandom returns a source seeded from crypto/rand along with the seed
// so a spin can be replayed.
func NewSeededRandom() (*rand.Rand, int64, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, 0, err
	}
	return NewRandom(seed), seed, nil
}
