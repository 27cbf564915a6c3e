package spin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/spinday/internal/constants"
	apperrors "github.com/julianstephens/spinday/internal/errors"
)

func labels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + i))
	}
	return out
}

func TestBuildWorkingSetEmpty(t *testing.T) {
	_, err := BuildWorkingSet(nil, NewRandom(1), false)
	if !errors.Is(err, apperrors.ErrEmptyPool) {
		t.Errorf("BuildWorkingSet(nil) error = %v, want ErrEmptyPool", err)
	}
}

func TestBuildWorkingSetSmallPoolKeepsOrder(t *testing.T) {
	pool := []string{"A", "B", "C", "D"}
	got, err := BuildWorkingSet(pool, NewRandom(7), false)
	if err != nil {
		t.Fatalf("BuildWorkingSet() error = %v", err)
	}
	if diff := cmp.Diff(pool, got); diff != "" {
		t.Errorf("working set mismatch (-want +got):\n%s", diff)
	}

	got[0] = "changed"
	if pool[0] != "A" {
		t.Error("working set aliases the pool")
	}
}

func TestBuildWorkingSetShuffleIsPermutation(t *testing.T) {
	pool := labels(8)
	got, err := BuildWorkingSet(pool, NewRandom(42), true)
	if err != nil {
		t.Fatalf("BuildWorkingSet() error = %v", err)
	}
	if len(got) != len(pool) {
		t.Fatalf("len = %d, want %d", len(got), len(pool))
	}
	seen := map[string]int{}
	for _, l := range got {
		seen[l]++
	}
	for _, l := range pool {
		if seen[l] != 1 {
			t.Errorf("label %s appears %d times", l, seen[l])
		}
	}
}

func TestBuildWorkingSetSizes(t *testing.T) {
	for n := 1; n <= 25; n++ {
		for seed := int64(0); seed < 20; seed++ {
			pool := labels(n)
			got, err := BuildWorkingSet(pool, NewRandom(seed), false)
			if err != nil {
				t.Fatalf("n=%d seed=%d: error = %v", n, seed, err)
			}
			want := min(n, constants.MaxWorkingSetSize)
			if len(got) != want {
				t.Fatalf("n=%d seed=%d: len = %d, want %d", n, seed, len(got), want)
			}
			seen := map[string]bool{}
			for _, l := range got {
				if seen[l] {
					t.Fatalf("n=%d seed=%d: duplicate %s in %v", n, seed, l, got)
				}
				seen[l] = true
			}
		}
	}
}

func TestBuildWorkingSetSamplesByPosition(t *testing.T) {
	// Repeated labels are distinct positions and may both be drawn
	pool := append(labels(11), "A")
	got, err := BuildWorkingSet(pool, NewRandom(3), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != constants.MaxWorkingSetSize {
		t.Errorf("len = %d, want %d", len(got), constants.MaxWorkingSetSize)
	}
}

func TestBuildWorkingSetSamplingCoversPool(t *testing.T) {
	pool := labels(15)
	counts := map[string]int{}
	for seed := int64(0); seed < 300; seed++ {
		got, err := BuildWorkingSet(pool, NewRandom(seed), false)
		if err != nil {
			t.Fatal(err)
		}
		for _, l := range got {
			counts[l]++
		}
	}
	// Each label is expected in 2/3 of draws; 300 draws leave wide margins
	for _, l := range pool {
		if counts[l] < 120 || counts[l] > 280 {
			t.Errorf("label %s drawn %d/300 times, sampling looks biased", l, counts[l])
		}
	}
}

func TestSelectIndex(t *testing.T) {
	tests := []struct {
		name     string
		rotation float64
		n        int
		want     int
	}{
		{"zero lands first", 0, 4, 0},
		{"full turn lands first", 360, 4, 0},
		{"45 degrees on four", 45, 4, 3},
		{"just past zero", 0.001, 4, 3},
		{"90 boundary", 90, 4, 3},
		{"just past 90", 90.5, 4, 2},
		{"180", 180, 4, 2},
		{"270", 270, 4, 1},
		{"359", 359, 4, 0},
		{"cumulative", 720 + 45, 4, 3},
		{"single item", 123.4, 1, 0},
		{"negative", -45, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectIndex(tt.rotation, tt.n); got != tt.want {
				t.Errorf("SelectIndex(%v, %d) = %d, want %d", tt.rotation, tt.n, got, tt.want)
			}
		})
	}
}

func TestSelectIndexInBounds(t *testing.T) {
	rng := NewRandom(99)
	for i := 0; i < 10000; i++ {
		n := rng.Intn(10) + 1
		rotation := rng.Float64() * 360 * 20
		idx := SelectIndex(rotation, n)
		if idx < 0 || idx >= n {
			t.Fatalf("SelectIndex(%v, %d) = %d out of range", rotation, n, idx)
		}
	}
}

func TestResolveFortyFiveDegrees(t *testing.T) {
	increments := make([]float64, constants.SpinTicks)
	increments[0] = 45
	idx, item, err := Resolve([]string{"A", "B", "C", "D"}, increments)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if idx != 3 || item != "D" {
		t.Errorf("Resolve() = %d %q, want 3 \"D\"", idx, item)
	}
}

func TestResolveEmpty(t *testing.T) {
	if _, _, err := Resolve(nil, []float64{10}); !errors.Is(err, apperrors.ErrEmptyPool) {
		t.Errorf("Resolve(nil) error = %v, want ErrEmptyPool", err)
	}
}

func TestNormalizeRotation(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{
		{0, 0}, {360, 0}, {370, 10}, {-10, 350}, {1080.5, 0.5},
	} {
		if got := NormalizeRotation(tt.in); got != tt.want {
			t.Errorf("NormalizeRotation(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSeededRandom(t *testing.T) {
	rng, seed, err := NewSeededRandom()
	if err != nil {
		t.Fatalf("NewSeededRandom() error = %v", err)
	}
	replay := NewRandom(seed)
	for i := 0; i < 5; i++ {
		if a, b := rng.Float64(), replay.Float64(); a != b {
			t.Fatalf("draw %d differs: %v vs %v", i, a, b)
		}
	}
}
