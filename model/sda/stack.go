package sda

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/sw965/sda/mlfuncs/1d"
	"gonum.org/v1/gonum/blas/blas32"
)

// Stack は隠れ層 (雑音除去自己符号化器) の順序付きコレクションです。
// 隣り合う層は常に layers[i].NOut == layers[i+1].NIn を満たします。
// Freeze後は構造を変更できません。
type Stack struct {
	layers    []*DenoisingAutoencoder
	rng       *rand.Rand
	nextInput int
	frozen    bool
}

func NewStack(nIn int, rng *rand.Rand) *Stack {
	if nIn <= 0 {
		panic(fmt.Sprintf("sda.NewStack: nIn = %d, must be positive", nIn))
	}
	if rng == nil {
		panic("sda.NewStack: rng is nil")
	}
	return &Stack{rng: rng, nextInput: nIn}
}

func (s *Stack) Count() int {
	return len(s.layers)
}

func (s *Stack) At(index int) *DenoisingAutoencoder {
	return s.layers[index]
}

func (s *Stack) Frozen() bool {
	return s.frozen
}

// InputNeuronCount はindex番目の層の入力ユニット数を返します。
// index == Count() の場合は出力層の入力ユニット数になります。
func (s *Stack) InputNeuronCount(index int) int {
	if index < 0 || index > len(s.layers) {
		panic(fmt.Sprintf("sda.Stack.InputNeuronCount: index %d out of [0, %d]", index, len(s.layers)))
	}
	if index == len(s.layers) {
		return s.nextInput
	}
	return s.layers[index].NIn
}

// ComputeUntil はxを層0..stop-1に順に通した結果を返します。
// 1つも層を通らない場合はxをそのまま返し、コピーはしません。
func (s *Stack) ComputeUntil(x blas32.Vector, stop int) blas32.Vector {
	if stop > len(s.layers) {
		stop = len(s.layers)
	}
	for i := 0; i < stop; i++ {
		x = s.layers[i].Compute(x)
	}
	return x
}

// Compute は全ての隠れ層を通した結果、つまり出力層への入力を返します。
func (s *Stack) Compute(x blas32.Vector) blas32.Vector {
	return s.ComputeUntil(x, len(s.layers))
}

func (s *Stack) ComputePrefix(x blas32.Vector, index int) blas32.Vector {
	return s.ComputeUntil(x, index)
}

// Set はindex番目の隠れ層のニューロン数を変更します。index == Count() なら層を追加します。
// 変更された層と、その直後の層は重みを引き継がずに作り直されます。
func (s *Stack) Set(index, neurons int) error {
	return s.SetWithActivation(index, neurons, mlfuncs1d.Sigmoid)
}

func (s *Stack) SetWithActivation(index, neurons int, act mlfuncs1d.Activation) error {
	if s.frozen {
		return errors.Wrapf(ErrFrozen, "set layer %d", index)
	}
	if index < 0 || index > len(s.layers) {
		return errors.Wrapf(ErrOutOfRange, "index %d, count %d", index, len(s.layers))
	}
	if neurons <= 0 {
		panic(fmt.Sprintf("sda.Stack.Set: neurons = %d, must be positive", neurons))
	}

	if index == len(s.layers) {
		s.layers = append(s.layers, newDenoisingAutoencoder(s.nextInput, neurons, act, s, index, s.rng))
		s.nextInput = neurons
		return nil
	}

	old := s.layers[index]
	s.layers[index] = newDenoisingAutoencoder(old.NIn, neurons, act, s, index, s.rng)
	if index+1 < len(s.layers) {
		next := s.layers[index+1]
		s.layers[index+1] = newDenoisingAutoencoder(neurons, next.NOut, next.Activation, s, index+1, s.rng)
	} else {
		s.nextInput = neurons
	}
	return nil
}

// Freeze はこのコレクションを固定します。元に戻す方法はありません。
func (s *Stack) Freeze() {
	s.frozen = true
}
