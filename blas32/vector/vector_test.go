package vector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sw965/sda/blas32/tensor/2d"
	"github.com/sw965/sda/blas32/vector"
	"gonum.org/v1/gonum/blas/blas32"
)

func TestClone(t *testing.T) {
	vec := vector.FromSlice([]float32{-1.0, -2.0, -3.0, 4.0})
	result := vector.Clone(vec)
	result.Data[0] = 1000.0
	assert.Equal(t, float32(-1.0), vec.Data[0])
	assert.Equal(t, float32(1000.0), result.Data[0])
}

func TestAffine(t *testing.T) {
	// 2x3
	w := blas32.General{Rows: 2, Cols: 3, Stride: 3, Data: []float32{
		1, 2, 3,
		4, 5, 6,
	}}
	x := vector.FromSlice([]float32{1, 0, -1})
	b := vector.FromSlice([]float32{0.5, -0.5})

	y := vector.Affine(x, w, b)
	assert.Equal(t, []float32{-1.5, -2.5}, y.Data)
	// biasは変更されない
	assert.Equal(t, []float32{0.5, -0.5}, b.Data)
}

func TestAffineTrans(t *testing.T) {
	w := blas32.General{Rows: 2, Cols: 3, Stride: 3, Data: []float32{
		1, 2, 3,
		4, 5, 6,
	}}
	x := vector.FromSlice([]float32{1, -1})
	b := vector.NewZeros(3)

	y := vector.AffineTrans(x, w, b)
	assert.Equal(t, []float32{-3, -3, -3}, y.Data)

	explicit := vector.Affine(x, tensor2d.Transpose(w), b)
	assert.Equal(t, explicit.Data, y.Data)
}

func TestSub(t *testing.T) {
	d := vector.Sub(vector.FromSlice([]float32{3, 2}), vector.FromSlice([]float32{1, 5}))
	assert.Equal(t, []float32{2, -3}, d.Data)
	assert.Panics(t, func() {
		vector.Sub(vector.NewZeros(2), vector.NewZeros(3))
	})
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, 1, vector.ArgMax([]float32{0.1, 0.7, 0.2}))
	assert.Equal(t, 0, vector.ArgMax([]float32{0.5, 0.5}))
	assert.Equal(t, 2, vector.ArgMax([]int{1, 1, 3, 3}))
	assert.Equal(t, -1, vector.ArgMax([]float32{}))
}
