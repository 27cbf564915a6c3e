// Package spin turns an activity pool into a wheel and spins it.
//
// # Working set
//
// BuildWorkingSet draws at most MaxWorkingSetSize items. Larger pools are
// sampled uniformly without replacement; smaller pools are used whole, in
// pool order unless shuffling is requested.
//
// # Selection
//
// A spin is SpinTicks random increments in [0, 360) added to a rotation that
// starts at zero. The wheel's pointer sits at the top, so the landed slice is
// counted backwards from the final angle:
//
//	final = rotation mod 360
//	index = floor((360 - final) / (360 / n)) mod n
//
// with final == 0 landing on index 0. Resolve exposes this as a pure function
// so any recorded spin can be replayed.
package spin

import (
	"math"

	"github.com/julianstephens/spinday/internal/constants"
	apperrors "github.com/julianstephens/spinday/internal/errors"
)

// BuildWorkingSet picks the items shown on one wheel. The result never
// aliases pool.
func BuildWorkingSet(pool []string, rng Random, shuffle bool) ([]string, error) {
	if len(pool) == 0 {
		return nil, apperrors.ErrEmptyPool
	}

	if len(pool) > constants.MaxWorkingSetSize {
		perm := rng.Perm(len(pool))[:constants.MaxWorkingSetSize]
		working := make([]string, len(perm))
		for i, p := range perm {
			working[i] = pool[p]
		}
		return working, nil
	}

	working := make([]string, len(pool))
	copy(working, pool)
	if shuffle {
		rng.Shuffle(len(working), func(i, j int) {
			working[i], working[j] = working[j], working[i]
		})
	}
	return working, nil
}

// NormalizeRotation maps a cumulative rotation into [0, 360)
func NormalizeRotation(rotation float64) float64 {
	final := math.Mod(rotation, constants.FullTurnDegrees)
	if final < 0 {
		final += constants.FullTurnDegrees
	}
	return final
}

// SelectIndex returns the slice under the pointer for a wheel of n items.
// n must be positive.
func SelectIndex(rotation float64, n int) int {
	final := NormalizeRotation(rotation)
	if final == 0 {
		return 0
	}
	slice := constants.FullTurnDegrees / float64(n)
	idx := int(math.Floor((constants.FullTurnDegrees - final) / slice))
	return idx % n
}

// Resolve replays a spin: it sums increments and returns the landed index
// and item.
func Resolve(working []string, increments []float64) (int, string, error) {
	if len(working) == 0 {
		return 0, "", apperrors.ErrEmptyPool
	}
	var rotation float64
	for _, inc := range increments {
		rotation += inc
	}
	idx := SelectIndex(rotation, len(working))
	return idx, working[idx], nil
}
