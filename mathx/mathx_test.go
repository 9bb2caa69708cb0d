package mathx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sw965/sda/mathx"
)

func TestConvertScale(t *testing.T) {
	assert.Equal(t, float32(0), mathx.ConvertScale(0, 0, 255, 0, 1))
	assert.Equal(t, float32(1), mathx.ConvertScale(255, 0, 255, 0, 1))
	assert.InDelta(t, 0.2, mathx.ConvertScale(51, 0, 255, 0, 1), 1e-6)
	assert.InDelta(t, 0.0, mathx.ConvertScale(0.5, 0, 1, -1, 1), 1e-6)
}

func TestCentralDifference(t *testing.T) {
	f := func(x float32) float32 { return x * x }
	var h float32 = 0.01
	assert.InDelta(t, 6.0, mathx.CentralDifference(f(3+h), f(3-h), h), 1e-3)
}
