package nn

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"

	"github.com/born-ml/mlp/internal/matrix"
)

// InitFunc fills a parameter matrix in place.
//
// A nil InitFunc leaves the matrix zero-filled.
type InitFunc func(m *matrix.Matrix)

// NewRand returns a random source for initializers and shuffling.
//
// A zero seed picks a time-based seed; any other value is deterministic.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	//nolint:gosec // Weight initialization and shuffling are not security-critical.
	return rand.New(rand.NewSource(seed))
}

// Normal samples every element from N(0, 1) using the Box-Muller transform.
//
// Each sample consumes two uniform draws u1, u2 and yields
// sqrt(-2·ln u1)·cos(2π·u2). u1 is drawn from (0, 1] so the logarithm stays
// finite.
func Normal(rng *rand.Rand) InitFunc {
	return func(m *matrix.Matrix) {
		data := m.Data()
		for i := range data {
			u1 := 1 - rng.Float32()
			u2 := rng.Float32()
			data[i] = math32.Sqrt(-2*math32.Log(u1)) * math32.Cos(2*math32.Pi*u2)
		}
	}
}

// Xavier (Glorot) initialization.
//
// Draws from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))) where
// fan_in is the column count and fan_out the row count of the matrix.
func Xavier(rng *rand.Rand) InitFunc {
	return func(m *matrix.Matrix) {
		bound := math32.Sqrt(6 / float32(m.Rows()+m.Cols()))
		data := m.Data()
		for i := range data {
			data[i] = (rng.Float32()*2 - 1) * bound
		}
	}
}

// Constant fills every element with v.
func Constant(v float32) InitFunc {
	return func(m *matrix.Matrix) {
		m.Fill(v)
	}
}

// Zeros resets every element to 0.
func Zeros(m *matrix.Matrix) {
	m.Fill(0)
}
