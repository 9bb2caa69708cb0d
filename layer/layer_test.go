package layer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/sda/blas32/vector"
	"github.com/sw965/sda/layer"
	"github.com/sw965/sda/mathx"
	"github.com/sw965/sda/mlfuncs/1d"
	"gonum.org/v1/gonum/blas/blas32"
)

func TestComputeZeroParameters(t *testing.T) {
	testCases := []struct {
		act  mlfuncs1d.Activation
		want float32
	}{
		{mlfuncs1d.Sigmoid, 0.5},
		{mlfuncs1d.ReLU, 0},
		{mlfuncs1d.Identity, 0},
		{mlfuncs1d.Tanh, 0},
	}
	for _, tc := range testCases {
		for _, dims := range [][2]int{{1, 1}, {4, 3}, {7, 10}} {
			l := layer.New(dims[0], dims[1], tc.act, layer.HiddenDelta(tc.act))
			y := l.Compute(vector.NewZeros(dims[0]))
			require.Equal(t, dims[1], y.N, tc.act.Name)
			for _, e := range y.Data {
				assert.Equal(t, tc.want, e, tc.act.Name)
			}
		}
	}
}

func TestNewPanics(t *testing.T) {
	assert.Panics(t, func() { layer.New(0, 3, mlfuncs1d.Sigmoid, layer.OutputDelta) })
	assert.Panics(t, func() { layer.New(3, 0, mlfuncs1d.Sigmoid, layer.OutputDelta) })
	assert.Panics(t, func() { layer.New(3, 3, mlfuncs1d.Sigmoid, nil) })
	assert.Panics(t, func() { layer.HiddenDelta(mlfuncs1d.Softmax) })
}

func TestComputeDimensionMismatch(t *testing.T) {
	l := layer.New(3, 2, mlfuncs1d.Sigmoid, layer.OutputDelta)
	assert.Panics(t, func() { l.Compute(vector.NewZeros(2)) })
}

func TestNeuronComputer(t *testing.T) {
	w := blas32.General{Rows: 2, Cols: 3, Stride: 3, Data: []float32{
		1, 2, 3,
		4, 5, 6,
	}}

	nc := layer.NewNeuronComputer(w, vector.FromSlice([]float32{1, -1}), vector.FromSlice([]float32{1, 1, 1}), false)
	assert.Equal(t, 2, nc.Len())
	assert.Equal(t, float32(7), nc.At(0))
	assert.Equal(t, float32(14), nc.At(1))
	assert.Equal(t, []float32{7, 14}, nc.All())

	tr := layer.NewNeuronComputer(w, vector.NewZeros(3), vector.FromSlice([]float32{1, 2}), true)
	assert.Equal(t, 3, tr.Len())
	want := []float32{9, 12, 15}
	for k, e := range want {
		assert.Equal(t, e, tr.At(k))
	}
	assert.Equal(t, want, tr.All())

	assert.Panics(t, func() {
		layer.NewNeuronComputer(w, vector.NewZeros(2), vector.NewZeros(2), false)
	})
}

func TestLearnUsesWeightBeforeUpdate(t *testing.T) {
	l := layer.New(2, 1, mlfuncs1d.Identity, layer.HiddenDelta(mlfuncs1d.Identity))
	copy(l.Weight.Data, []float32{1, 2})

	input := vector.FromSlice([]float32{1, 1})
	output := l.Compute(input)
	require.Equal(t, []float32{3}, output.Data)

	lowerInfo := l.Learn(input, output, layer.VectorInfo(vector.FromSlice([]float32{0.5})), 0.1)
	assert.InDeltaSlice(t, []float32{0.5, 1.0}, lowerInfo.Data, 1e-6)
	assert.InDeltaSlice(t, []float32{0.95, 1.95}, l.Weight.Data, 1e-6)
	assert.InDeltaSlice(t, []float32{-0.05}, l.Bias.Data, 1e-6)
}

func TestOutputDelta(t *testing.T) {
	output := []float32{0.7, 0.3}
	info := layer.OneHotInfo(0)
	got := make([]float32, len(output))
	for i, o := range output {
		got[i] = layer.OutputDelta(o, info(i))
	}
	assert.InDeltaSlice(t, []float32{-0.3, 0.3}, got, 1e-6)
}

func TestHiddenDelta(t *testing.T) {
	d := layer.HiddenDelta(mlfuncs1d.Sigmoid)
	assert.InDelta(t, 2*0.25, d(0.5, 2), 1e-7)
}

func TestLearnMatchesNumericalGradient(t *testing.T) {
	l := layer.New(3, 2, mlfuncs1d.Softmax, layer.OutputDelta)
	copy(l.Weight.Data, []float32{0.1, -0.2, 0.3, 0.05, 0.4, -0.1})
	copy(l.Bias.Data, []float32{0.1, -0.1})
	input := vector.FromSlice([]float32{1, 0.5, -1})
	label := 1
	loss := func() float32 {
		return mlfuncs1d.MultiClassCrossEntropy(l.Compute(input).Data, mlfuncs1d.OneHot(label, 2))
	}

	params := make([]*float32, 0, len(l.Weight.Data)+len(l.Bias.Data))
	for i := range l.Weight.Data {
		params = append(params, &l.Weight.Data[i])
	}
	for i := range l.Bias.Data {
		params = append(params, &l.Bias.Data[i])
	}

	var h float32 = 0.01
	numerical := make([]float32, len(params))
	before := make([]float32, len(params))
	for i, p := range params {
		orig := *p
		before[i] = orig
		*p = orig + h
		plus := loss()
		*p = orig - h
		minus := loss()
		*p = orig
		numerical[i] = mathx.CentralDifference(plus, minus, h)
	}

	l.Learn(input, l.Compute(input), layer.OneHotInfo(label), 1.0)
	for i, p := range params {
		assert.InDelta(t, numerical[i], before[i]-*p, 2e-3, "param %d", i)
	}
}
