package layer

import (
	"fmt"

	"github.com/sw965/sda/blas32/tensor/2d"
	"github.com/sw965/sda/blas32/vector"
	"gonum.org/v1/gonum/blas/blas32"
)

// NeuronComputer は出力ユニットの活性化前の値を必要に応じて計算します。
// Transposedの場合は重み行列を転置して扱いますが、転置したコピーは作りません。
type NeuronComputer struct {
	Weight     blas32.General
	Bias       blas32.Vector
	Input      blas32.Vector
	Transposed bool
}

func NewNeuronComputer(w blas32.General, b, x blas32.Vector, transposed bool) NeuronComputer {
	nc := NeuronComputer{Weight: w, Bias: b, Input: x, Transposed: transposed}
	in, out := w.Cols, w.Rows
	if transposed {
		in, out = out, in
	}
	if x.N != in {
		panic(fmt.Sprintf("NeuronComputer: len(input) = %d, want %d", x.N, in))
	}
	if b.N != out {
		panic(fmt.Sprintf("NeuronComputer: len(bias) = %d, want %d", b.N, out))
	}
	return nc
}

// Len は出力ユニット数です。
func (nc *NeuronComputer) Len() int {
	return nc.Bias.N
}

// At はユニットkの Bias[k] + Σ_j Input[j]·W[k][j] (転置時は W[j][k]) を返します。
func (nc *NeuronComputer) At(k int) float32 {
	var w blas32.Vector
	if nc.Transposed {
		w = tensor2d.Col(nc.Weight, k)
	} else {
		w = tensor2d.Row(nc.Weight, k)
	}
	return nc.Bias.Data[k*nc.Bias.Inc] + blas32.Dot(w, nc.Input)
}

// All は全ユニットをまとめて計算します。
func (nc *NeuronComputer) All() []float32 {
	if nc.Transposed {
		return vector.AffineTrans(nc.Input, nc.Weight, nc.Bias).Data
	}
	return vector.Affine(nc.Input, nc.Weight, nc.Bias).Data
}
