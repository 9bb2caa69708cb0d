package dataset_test

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/sda/dataset"
	"gonum.org/v1/gonum/blas/blas32"
)

func TestNew(t *testing.T) {
	set, err := dataset.FromSlices([][]float32{{1, 0}, {0, 1}}, []int{0, 1}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 1, set.Row())
	assert.Equal(t, 2, set.Column())
	assert.Equal(t, []int{0, 1}, set.Labels())

	_, err = dataset.FromSlices([][]float32{{1, 0}}, []int{0, 1}, 1, 2)
	assert.Error(t, err)

	_, err = dataset.FromSlices([][]float32{{1, 0, 1}}, []int{0}, 1, 2)
	assert.Error(t, err)

	_, err = dataset.FromSlices(nil, nil, 0, 2)
	assert.Error(t, err)
}

func TestNewRejectsNonContiguousImages(t *testing.T) {
	long := blas32.Vector{N: 2, Inc: 1, Data: []float32{1, 0, 1}}
	_, err := dataset.New([]blas32.Vector{long}, []int{0}, 1, 2)
	assert.Error(t, err)

	strided := blas32.Vector{N: 2, Inc: 2, Data: []float32{1, 0, 1, 0}}
	_, err = dataset.New([]blas32.Vector{strided}, []int{0}, 1, 2)
	assert.Error(t, err)

	exact := blas32.Vector{N: 2, Inc: 1, Data: []float32{1, 0}}
	_, err = dataset.New([]blas32.Vector{exact}, []int{0}, 1, 2)
	assert.NoError(t, err)
}

func newSet(t *testing.T, n int) *dataset.Set {
	images := make([][]float32, n)
	labels := make([]int, n)
	for i := range images {
		images[i] = []float32{float32(i)}
		labels[i] = i % 2
	}
	set, err := dataset.FromSlices(images, labels, 1, 1)
	require.NoError(t, err)
	return set
}

func TestLearningSet(t *testing.T) {
	ls := &dataset.LearningSet{Training: newSet(t, 10), Test: newSet(t, 4), ClassCount: 2}
	require.NoError(t, ls.SplitValidation(3))
	assert.Equal(t, 7, ls.Training.Len())
	assert.Equal(t, 3, ls.Validation.Len())
	assert.Equal(t, float32(7), ls.Validation.Images()[0].Data[0])
	require.NoError(t, ls.Validate())

	sub := ls.Subset(2, 100)
	assert.Equal(t, 2, sub.Training.Len())
	assert.Equal(t, 4, sub.Test.Len())

	assert.Error(t, ls.SplitValidation(7))

	bad := &dataset.LearningSet{Training: newSet(t, 4), ClassCount: 1}
	assert.Error(t, bad.Validate())
}

func idx(t *testing.T, header []uint32, body []byte) *bytes.Buffer {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, header))
	buf.Write(body)
	return &buf
}

func TestReadIDX(t *testing.T) {
	images := idx(t, []uint32{0x803, 2, 2, 2}, []byte{0, 255, 51, 102, 255, 255, 0, 0})
	labels := idx(t, []uint32{0x801, 2}, []byte{7, 3})

	set, err := dataset.ReadIDX(images, labels)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 2, set.Row())
	assert.Equal(t, 2, set.Column())
	assert.Equal(t, []int{7, 3}, set.Labels())
	assert.InDeltaSlice(t, []float32{0, 1, 0.2, 0.4}, set.Images()[0].Data, 1e-6)
	assert.Equal(t, 4, len(set.Images()[1].Data))
}

func TestReadIDXBadMagic(t *testing.T) {
	images := idx(t, []uint32{0x803, 1, 1, 1}, []byte{0})
	labels := idx(t, []uint32{0x999, 1}, []byte{0})
	_, err := dataset.ReadIDX(images, labels)
	assert.Error(t, err)

	images = idx(t, []uint32{0x803, 2, 1, 1}, []byte{0, 0})
	labels = idx(t, []uint32{0x801, 1}, []byte{0})
	_, err = dataset.ReadIDX(images, labels)
	assert.Error(t, err)
}

func TestReadPR(t *testing.T) {
	row := "3," + strings.Repeat(" 1", 35) + "\n"
	input := row + "\n" + "5 " + strings.Repeat("0.5,", 34) + "0.5\n"
	set, err := dataset.ReadPR(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []int{3, 5}, set.Labels())
	assert.Equal(t, float32(0.5), set.Images()[1].Data[34])

	_, err = dataset.ReadPR(strings.NewReader("x, 1, 2\n"))
	assert.Error(t, err)

	_, err = dataset.ReadPR(strings.NewReader("1, 1, 2\n"))
	assert.Error(t, err)
}
