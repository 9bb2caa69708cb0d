package randx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sw965/sda/mathx/randx"
)

func TestNewMT19937Reproducible(t *testing.T) {
	a := randx.NewMT19937(89677)
	b := randx.NewMT19937(89677)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestUniform(t *testing.T) {
	rng := randx.NewMT19937(1)
	for i := 0; i < 1000; i++ {
		v := randx.Uniform(-2.0, 3.0, rng)
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 3.0)
	}
}

func TestCorrupt(t *testing.T) {
	rng := randx.NewMT19937(1)
	x := []float32{1, 2, 3, 4, 5, 6, 7, 8}

	assert.Equal(t, x, randx.Corrupt(x, 0.0, rng))
	assert.Equal(t, make([]float32, len(x)), randx.Corrupt(x, 1.0, rng))

	big := make([]float32, 10000)
	for i := range big {
		big[i] = 1
	}
	zeros := 0
	for _, e := range randx.Corrupt(big, 0.3, rng) {
		if e == 0 {
			zeros++
		}
	}
	assert.InDelta(t, 3000, zeros, 300)
	// 元のスライスは変更されない
	assert.Equal(t, float32(1), big[0])
}
