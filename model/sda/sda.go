// Package sda は積層雑音除去自己符号化器 (Stacked Denoising Autoencoder) を実装します。
//
// 事前学習では各隠れ層を、その下の層の出力を入力とする雑音除去自己符号化器として
// 独立に学習します。層をまたぐ勾配はありません。事前学習の後は出力層を載せて
// 通常の多層パーセプトロンとして誤差逆伝播法でファインチューニングします。
package sda

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/sw965/sda/dataset"
	"github.com/sw965/sda/layer"
	"github.com/sw965/sda/mathx/randx"
	"github.com/sw965/sda/parallel"
	"gonum.org/v1/gonum/blas/blas32"
)

type Model struct {
	stack  *Stack
	output *OutputLayer

	// Parallel は評価時のゴルーチン数です。0以下ならGOMAXPROCSを使います。
	Parallel int
}

// New は入力次元数nInのモデルを作ります。seedは重みの初期化と破損ノイズの両方に使われます。
func New(nIn int, seed uint64) *Model {
	return &Model{stack: NewStack(nIn, randx.NewMT19937(seed))}
}

func (m *Model) Stack() *Stack {
	return m.stack
}

func (m *Model) OutputLayer() *OutputLayer {
	return m.output
}

// SetLogisticRegressionLayer は最後の隠れ層の幅から出力層を作り、隠れ層を固定します。
func (m *Model) SetLogisticRegressionLayer(neurons int) {
	m.output = NewOutputLayer(m.stack.InputNeuronCount(m.stack.Count()), neurons)
	m.stack.Freeze()
}

// FineTune はデータセットの各例で順伝播と逆伝播を1回ずつ行い、全層を更新します。
func (m *Model) FineTune(ds dataset.Dataset, learningRate float32) error {
	if m.output == nil {
		return errors.Wrap(ErrNoOutputLayer, "fine-tune")
	}
	n := m.stack.Count()
	images := ds.Images()
	labels := ds.Labels()
	inputs := make([]blas32.Vector, n+2)
	for d, x := range images {
		inputs[0] = x
		for i := 0; i < n; i++ {
			inputs[i+1] = m.stack.At(i).Compute(inputs[i])
		}
		inputs[n+1] = m.output.Compute(inputs[n])

		lowerInfo := m.output.Learn(inputs[n], inputs[n+1], layer.OneHotInfo(labels[d]), learningRate)
		for i := n - 1; i >= 0; i-- {
			lowerInfo = m.stack.At(i).Learn(inputs[i], inputs[i+1], layer.VectorInfo(lowerInfo), learningRate)
		}
	}
	return nil
}

func (m *Model) Predict(x blas32.Vector) (int, error) {
	if m.output == nil {
		return 0, errors.Wrap(ErrNoOutputLayer, "predict")
	}
	return m.output.Predict(m.stack.Compute(x)), nil
}

// ComputeErrorRates はデータセット全体に対する誤り率を返します。
// 重みは読むだけなので、例ごとに並列に評価します。
func (m *Model) ComputeErrorRates(ds dataset.Dataset) (float32, error) {
	if m.output == nil {
		return 0, errors.Wrap(ErrNoOutputLayer, "compute error rates")
	}
	images := ds.Images()
	labels := ds.Labels()
	if len(images) == 0 {
		return 0, nil
	}

	p := m.Parallel
	if p <= 0 {
		p = runtime.GOMAXPROCS(0)
	}
	wrongs := make([]int, p)
	parallel.For(len(images), p, func(workerIdx, idx int) {
		if m.output.Predict(m.stack.Compute(images[idx])) != labels[idx] {
			wrongs[workerIdx]++
		}
	})

	total := 0
	for _, w := range wrongs {
		total += w
	}
	return float32(total) / float32(len(images)), nil
}
