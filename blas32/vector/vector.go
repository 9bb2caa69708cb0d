package vector

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

func NewZeros(n int) blas32.Vector {
	return blas32.Vector{
		N:    n,
		Inc:  1,
		Data: make([]float32, n),
	}
}

// FromSlice はコピーせずにsをラップします。
func FromSlice(s []float32) blas32.Vector {
	return blas32.Vector{
		N:    len(s),
		Inc:  1,
		Data: s,
	}
}

func Clone(vec blas32.Vector) blas32.Vector {
	return blas32.Vector{
		N:    vec.N,
		Inc:  vec.Inc,
		Data: slices.Clone(vec.Data),
	}
}

// Affine は w・x + b を計算します。wは(出力数, 入力数)の行優先行列です。
func Affine(x blas32.Vector, w blas32.General, b blas32.Vector) blas32.Vector {
	y := Clone(b)
	blas32.Gemv(blas.NoTrans, 1.0, w, x, 1.0, y)
	return y
}

// AffineTrans は転置行列をコピーせずに wᵀ・x + b を計算します。
func AffineTrans(x blas32.Vector, w blas32.General, b blas32.Vector) blas32.Vector {
	y := Clone(b)
	blas32.Gemv(blas.Trans, 1.0, w, x, 1.0, y)
	return y
}

// Sub は x - y を新しいベクトルとして返します。
func Sub(x, y blas32.Vector) blas32.Vector {
	if x.N != y.N {
		panic(fmt.Sprintf("vector.Sub: length mismatch %d != %d", x.N, y.N))
	}
	z := Clone(x)
	blas32.Axpy(-1.0, y, z)
	return z
}

// ArgMax は最大値のインデックスを返します。同値の場合は先に現れた方を優先します。
func ArgMax[X constraints.Ordered](xs []X) int {
	if len(xs) == 0 {
		return -1
	}
	idx := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[idx] {
			idx = i
		}
	}
	return idx
}

func Equal(a, b blas32.Vector) bool {
	return a.N == b.N && slices.Equal(a.Data[:a.N], b.Data[:b.N])
}
