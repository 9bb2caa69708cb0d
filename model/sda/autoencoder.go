package sda

import (
	"fmt"
	"math/rand/v2"

	"github.com/sw965/sda/blas32/tensor/2d"
	"github.com/sw965/sda/blas32/vector"
	"github.com/sw965/sda/dataset"
	"github.com/sw965/sda/layer"
	"github.com/sw965/sda/mathx/randx"
	"github.com/sw965/sda/mlfuncs/1d"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// PrefixComputer は、ある層の実際の入力 (それより下の全ての層の出力) を計算します。
// 層はスタックへのポインタではなく、この能力とインデックスだけを持ちます。
type PrefixComputer interface {
	ComputePrefix(x blas32.Vector, index int) blas32.Vector
}

// DenoisingAutoencoder は積層の1段を表す隠れ層です。
// 破損させた入力を隠れ空間へ投影し、転置した重みで入力空間へ再投影して、
// 元の入力との再構築誤差を最小化するように学習します (Vincent et al., 2008)。
//
//	x~ ~ q_D(x~|x)
//	y  = s(W x~ + b)
//	z  = s(Wᵀ y + c)
//	L(x, z) = -Σ_k [x_k log z_k + (1-x_k) log(1-z_k)]
type DenoisingAutoencoder struct {
	*layer.Layer
	VisibleBias blas32.Vector

	prefix PrefixComputer
	index  int
	rng    *rand.Rand
}

func newDenoisingAutoencoder(nIn, nOut int, act mlfuncs1d.Activation, prefix PrefixComputer, index int, rng *rand.Rand) *DenoisingAutoencoder {
	if prefix == nil {
		panic("sda: prefix computer is nil")
	}
	if rng == nil {
		panic("sda: rng is nil")
	}
	l := layer.New(nIn, nOut, act, layer.HiddenDelta(act))

	// シグモイドの場合はtanhの4倍の幅で初期化する (Glorot & Bengio, 2010)
	scale := 1.0
	if act.IsSigmoid() {
		scale = 4.0
	}
	l.Weight = tensor2d.NewGlorotUniform(nOut, nIn, scale, rng)

	return &DenoisingAutoencoder{
		Layer:       l,
		VisibleBias: vector.NewZeros(nIn),
		prefix:      prefix,
		index:       index,
		rng:         rng,
	}
}

// Index はスタック内でのこの層の位置です。
func (da *DenoisingAutoencoder) Index() int {
	return da.index
}

type daUpdate func(image, corrupted, latent, reconstructed blas32.Vector)

// Train は自己符号化器としてデータセットを1周学習し、平均の再構築コストを返します。
// コストは各例の更新前の値です。
func (da *DenoisingAutoencoder) Train(ds dataset.Dataset, learningRate, noise float32) float32 {
	return da.computeCost(ds, noise, func(image, corrupted, latent, reconstructed blas32.Vector) {
		diff := vector.Sub(reconstructed, image)

		// delta = (W・diff) ⊙ f'(latent)
		delta := vector.NewZeros(da.NOut)
		blas32.Gemv(blas.NoTrans, 1.0, da.Weight, diff, 0.0, delta)
		for i := range delta.Data {
			delta.Data[i] *= da.Activation.Grad(latent.Data[i])
		}
		blas32.Axpy(-learningRate, delta, da.Bias)

		// W[i][j] -= lr * (diff[j]*latent[i] + delta[i]*corrupted[j])
		blas32.Ger(-learningRate, latent, diff, da.Weight)
		blas32.Ger(-learningRate, delta, corrupted, da.Weight)
		blas32.Axpy(-learningRate, diff, da.VisibleBias)
	})
}

// ComputeCost はパラメーターを更新せずにTrainと同じ手順で平均コストを計算します。
// 破損用の乱数は消費します。
func (da *DenoisingAutoencoder) ComputeCost(ds dataset.Dataset, noise float32) float32 {
	return da.computeCost(ds, noise, nil)
}

func (da *DenoisingAutoencoder) computeCost(ds dataset.Dataset, noise float32, update daUpdate) float32 {
	if noise < 0 || noise > 1 {
		panic(fmt.Sprintf("sda: noise rate %v out of [0, 1]", noise))
	}
	images := ds.Images()
	if len(images) == 0 {
		return 0
	}

	cost := float32(0.0)
	for _, x := range images {
		image := da.prefix.ComputePrefix(x, da.index)
		corrupted := vector.FromSlice(randx.Corrupt(image.Data, float64(noise), da.rng))
		latent, reconstructed := da.encodeDecode(corrupted)
		cost += mlfuncs1d.BiClassCrossEntropy(reconstructed.Data, image.Data)
		if update != nil {
			update(image, corrupted, latent, reconstructed)
		}
	}
	return cost / float32(len(images))
}

func (da *DenoisingAutoencoder) encodeDecode(x blas32.Vector) (blas32.Vector, blas32.Vector) {
	latent := da.Compute(x)
	nc := layer.NewNeuronComputer(da.Weight, da.VisibleBias, latent, true)
	// 再構築は交差エントロピーで評価するので常に(0, 1)に収める
	reconstructed := vector.FromSlice(mlfuncs1d.Sigmoid.Func(nc.All()))
	return latent, reconstructed
}

// Reconstruct はこの層の入力空間のベクトルxを破損させずに符号化・復号します。
func (da *DenoisingAutoencoder) Reconstruct(x blas32.Vector) blas32.Vector {
	_, reconstructed := da.encodeDecode(x)
	return reconstructed
}
