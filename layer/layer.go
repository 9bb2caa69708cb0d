package layer

import (
	"fmt"

	"github.com/sw965/sda/blas32/tensor/2d"
	"github.com/sw965/sda/blas32/vector"
	"github.com/sw965/sda/mlfuncs/1d"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// DeltaFunc は層の出力と上位層からの情報から、活性化前の値に対する勾配を求めます。
// 隠れ層と出力層の違いはこれだけです。
type DeltaFunc func(output, upperInfo float32) float32

// HiddenDelta は連鎖律 upperInfo · f'(output) です。
func HiddenDelta(act mlfuncs1d.Activation) DeltaFunc {
	if act.Grad == nil {
		panic(fmt.Sprintf("HiddenDelta: activation %q has no element-wise derivative", act.Name))
	}
	return func(output, upperInfo float32) float32 {
		return upperInfo * act.Grad(output)
	}
}

// OutputDelta はSoftmaxと交差エントロピーを合わせた勾配です。upperInfoは教師信号です。
func OutputDelta(output, upperInfo float32) float32 {
	return output - upperInfo
}

// UpperInfo は上位層から渡される、出力ユニットごとの学習情報です。
type UpperInfo func(int) float32

func VectorInfo(v blas32.Vector) UpperInfo {
	return func(i int) float32 {
		return v.Data[i*v.Inc]
	}
}

func OneHotInfo(label int) UpperInfo {
	return func(i int) float32 {
		if i == label {
			return 1.0
		}
		return 0.0
	}
}

type Layer struct {
	NIn        int
	NOut       int
	Weight     blas32.General
	Bias       blas32.Vector
	Activation mlfuncs1d.Activation
	Delta      DeltaFunc
}

// New は重みとバイアスを0で初期化した層を作ります。
func New(nIn, nOut int, act mlfuncs1d.Activation, delta DeltaFunc) *Layer {
	if nIn <= 0 || nOut <= 0 {
		panic(fmt.Sprintf("layer.New: nIn = %d, nOut = %d, both must be positive", nIn, nOut))
	}
	if act.Func == nil {
		panic("layer.New: activation is nil")
	}
	if delta == nil {
		panic("layer.New: delta is nil")
	}
	return &Layer{
		NIn:        nIn,
		NOut:       nOut,
		Weight:     tensor2d.NewZeros(nOut, nIn),
		Bias:       vector.NewZeros(nOut),
		Activation: act,
		Delta:      delta,
	}
}

func (l *Layer) Compute(input blas32.Vector) blas32.Vector {
	nc := NewNeuronComputer(l.Weight, l.Bias, input, false)
	return vector.FromSlice(l.Activation.Func(nc.All()))
}

// Learn はこの層の重みとバイアスを1ステップ更新し、下位層に渡す情報を返します。
// 下位層への情報は更新前の重みで計算します。
func (l *Layer) Learn(input, output blas32.Vector, upperInfo UpperInfo, learningRate float32) blas32.Vector {
	if input.N != l.NIn || output.N != l.NOut {
		panic(fmt.Sprintf("Layer.Learn: len(input) = %d, len(output) = %d, want %d, %d", input.N, output.N, l.NIn, l.NOut))
	}

	delta := vector.NewZeros(l.NOut)
	for i := range delta.Data {
		delta.Data[i] = l.Delta(output.Data[i*output.Inc], upperInfo(i))
	}

	lowerInfo := vector.NewZeros(l.NIn)
	blas32.Gemv(blas.Trans, 1.0, l.Weight, delta, 0.0, lowerInfo)

	blas32.Ger(-learningRate, delta, input, l.Weight)
	blas32.Axpy(-learningRate, delta, l.Bias)
	return lowerInfo
}
