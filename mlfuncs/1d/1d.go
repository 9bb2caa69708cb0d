package mlfuncs1d

import (
	"fmt"
	"slices"

	"github.com/chewxy/math32"
	"github.com/sw965/sda/mlfuncs/scalar"
)

// Activation は要素ごとの活性化関数です。
// Gradは活性化前ではなく活性化後の値を受け取ります。Softmaxのように
// 要素単位の導関数を持たない場合はnilです。
type Activation struct {
	Name string
	Func func([]float32) []float32
	Grad func(float32) float32
}

func newElementwise(name string, f, grad func(float32) float32) Activation {
	return Activation{
		Name: name,
		Func: func(u []float32) []float32 {
			y := make([]float32, len(u))
			for i, e := range u {
				y[i] = f(e)
			}
			return y
		},
		Grad: grad,
	}
}

var (
	Sigmoid  = newElementwise("sigmoid", scalar.Sigmoid, scalar.SigmoidGrad)
	Tanh     = newElementwise("tanh", scalar.Tanh, scalar.TanhGrad)
	ReLU     = newElementwise("relu", scalar.ReLU, scalar.ReLUGrad)
	Softplus = newElementwise("softplus", scalar.Softplus, scalar.SoftplusGrad)
	Identity = newElementwise("identity", scalar.Identity, scalar.IdentityGrad)
	Softmax  = Activation{Name: "softmax", Func: SoftmaxFunc}
)

// IsSigmoid は重みの初期化幅を決めるのに使います。
func (a Activation) IsSigmoid() bool {
	return a.Name == Sigmoid.Name
}

func ActivationByName(name string) (Activation, error) {
	for _, a := range []Activation{Sigmoid, Tanh, ReLU, Softplus, Identity, Softmax} {
		if a.Name == name {
			return a, nil
		}
	}
	return Activation{}, fmt.Errorf("unknown activation %q", name)
}

func SoftmaxFunc(u []float32) []float32 {
	y := make([]float32, len(u))
	if len(u) == 0 {
		return y
	}
	maxU := slices.Max(u) // オーバーフロー対策
	sum := float32(0.0)
	for i, e := range u {
		y[i] = math32.Exp(e - maxU)
		sum += y[i]
	}
	for i := range y {
		y[i] /= sum
	}
	return y
}

const Epsilon float32 = 1e-10

func checkLen(name string, s, t []float32) {
	if len(s) != len(t) {
		panic(fmt.Sprintf("%s: len(source) = %d, len(target) = %d", name, len(s), len(t)))
	}
}

// BiClassCrossEntropy は -Σ[t ln(s+ε) + (1-t) ln(1-s+ε)] です。
func BiClassCrossEntropy(s, t []float32) float32 {
	checkLen("BiClassCrossEntropy", s, t)
	sum := float32(0.0)
	for i := range s {
		sum -= t[i]*math32.Log(s[i]+Epsilon) + (1-t[i])*math32.Log(1-s[i]+Epsilon)
	}
	return sum
}

func MultiClassCrossEntropy(s, t []float32) float32 {
	checkLen("MultiClassCrossEntropy", s, t)
	sum := float32(0.0)
	for i := range s {
		sum -= t[i] * math32.Log(s[i]+Epsilon)
	}
	return sum
}

func SquaredError(s, t []float32) float32 {
	checkLen("SquaredError", s, t)
	sum := float32(0.0)
	for i := range s {
		d := s[i] - t[i]
		sum += d * d
	}
	return sum / 2
}

func OneHot(label, n int) []float32 {
	if label < 0 || label >= n {
		panic(fmt.Sprintf("OneHot: label %d out of [0, %d)", label, n))
	}
	t := make([]float32, n)
	t[label] = 1.0
	return t
}
