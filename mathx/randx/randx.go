package randx

import (
	"math/rand/v2"

	"github.com/seehuhn/mt19937"
)

// NewMT19937 はシード値で初期化したメルセンヌ・ツイスタを元にした乱数生成器を返します。
// 同じシード値からは常に同じ系列が得られます。
func NewMT19937(seed uint64) *rand.Rand {
	mt := mt19937.New()
	mt.Seed(int64(seed))
	return rand.New(mt)
}

// Uniform は [min, max) の一様乱数を返します。
func Uniform(min, max float64, rng *rand.Rand) float64 {
	return min + (max-min)*rng.Float64()
}

// Bernoulli は確率pでtrueを返します。
func Bernoulli(p float64, rng *rand.Rand) bool {
	return rng.Float64() < p
}

// Corrupt は各要素を独立に確率noiseで0にしたコピーを返します。
// noiseが0でも要素ごとに乱数を1つ消費します。
func Corrupt(x []float32, noise float64, rng *rand.Rand) []float32 {
	y := make([]float32, len(x))
	for i, e := range x {
		if !Bernoulli(noise, rng) {
			y[i] = e
		}
	}
	return y
}
