package tensor2d

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/sw965/sda/mathx/randx"
	"gonum.org/v1/gonum/blas/blas32"
)

func NewZeros(rows, cols int) blas32.General {
	return blas32.General{
		Rows:   rows,
		Cols:   cols,
		Stride: cols,
		Data:   make([]float32, rows*cols),
	}
}

// NewGlorotUniform は [-r, r] (r = scale * sqrt(6 / (rows + cols))) の一様分布で初期化します。
// 乱数は行優先の順で1要素ずつ引きます。
func NewGlorotUniform(rows, cols int, scale float64, rng *rand.Rand) blas32.General {
	gen := NewZeros(rows, cols)
	r := scale * math.Sqrt(6.0/float64(rows+cols))
	for i := range gen.Data {
		gen.Data[i] = float32(randx.Uniform(-r, r, rng))
	}
	return gen
}

func Clone(gen blas32.General) blas32.General {
	return blas32.General{
		Rows:   gen.Rows,
		Cols:   gen.Cols,
		Stride: gen.Stride,
		Data:   slices.Clone(gen.Data),
	}
}

func At(gen blas32.General, row, col int) int {
	return row*gen.Stride + col
}

// Row は行rowを共有するベクトルを返します。
func Row(gen blas32.General, row int) blas32.Vector {
	return blas32.Vector{
		N:    gen.Cols,
		Inc:  1,
		Data: gen.Data[row*gen.Stride : row*gen.Stride+gen.Cols],
	}
}

// Col は列colを共有するストライド付きベクトルを返します。
func Col(gen blas32.General, col int) blas32.Vector {
	return blas32.Vector{
		N:    gen.Rows,
		Inc:  gen.Stride,
		Data: gen.Data[col:],
	}
}

func Transpose(gen blas32.General) blas32.General {
	t := NewZeros(gen.Cols, gen.Rows)
	for i := range t.Rows {
		for j := range t.Cols {
			t.Data[At(t, i, j)] = gen.Data[At(gen, j, i)]
		}
	}
	return t
}

func Equal(a, b blas32.General) bool {
	return a.Rows == b.Rows && a.Cols == b.Cols && slices.Equal(a.Data, b.Data)
}
