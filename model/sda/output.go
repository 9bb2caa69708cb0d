package sda

import (
	"github.com/sw965/sda/blas32/vector"
	"github.com/sw965/sda/layer"
	"github.com/sw965/sda/mlfuncs/1d"
	"gonum.org/v1/gonum/blas/blas32"
)

// OutputLayer は多クラスのロジスティック回帰を行う出力層です。
// 出力は P(class | input) を表します。
type OutputLayer struct {
	*layer.Layer
}

func NewOutputLayer(nIn, nOut int) *OutputLayer {
	return &OutputLayer{Layer: layer.New(nIn, nOut, mlfuncs1d.Softmax, layer.OutputDelta)}
}

// Predict は確率が最大となるクラスを返します。同率なら小さいインデックスを選びます。
func (o *OutputLayer) Predict(x blas32.Vector) int {
	return vector.ArgMax(o.Compute(x).Data)
}
