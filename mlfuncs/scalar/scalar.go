package scalar

import (
	"github.com/chewxy/math32"
)

func Sigmoid(x float32) float32 {
	return 1.0 / (1.0 + math32.Exp(-x))
}

// SigmoidGrad は活性化後の値yから傾きを求めます。
func SigmoidGrad(y float32) float32 {
	return y * (1.0 - y)
}

func Tanh(x float32) float32 {
	return math32.Tanh(x)
}

func TanhGrad(y float32) float32 {
	return 1.0 - (y * y)
}

func ReLU(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}

func ReLUGrad(y float32) float32 {
	if y > 0 {
		return 1.0
	}
	return 0
}

// Softplus は |x| が大きくてもオーバーフローしない形で ln(1+e^x) を計算します。
func Softplus(x float32) float32 {
	if x > 0 {
		return x + math32.Log1p(math32.Exp(-x))
	}
	return math32.Log1p(math32.Exp(x))
}

func SoftplusGrad(y float32) float32 {
	return 1.0 - math32.Exp(-y)
}

func Identity(x float32) float32 {
	return x
}

func IdentityGrad(y float32) float32 {
	return 1.0
}
