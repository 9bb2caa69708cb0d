package dataset

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sw965/sda/mathx"
	"gonum.org/v1/gonum/blas/blas32"
)

const (
	idxLabelMagic = 0x801
	idxImageMagic = 0x803

	mnistClassCount = 10
	mnistValidation = 10000
)

// LoadMNIST はdir以下のIDX形式のMNISTを読み込みます。
// 訓練データの末尾10000個を検証データにします。
func LoadMNIST(dir string) (*LearningSet, error) {
	train, err := LoadIDX(filepath.Join(dir, "train-images.idx3-ubyte"), filepath.Join(dir, "train-labels.idx1-ubyte"))
	if err != nil {
		return nil, err
	}
	test, err := LoadIDX(filepath.Join(dir, "t10k-images.idx3-ubyte"), filepath.Join(dir, "t10k-labels.idx1-ubyte"))
	if err != nil {
		return nil, err
	}
	if train.row != test.row || train.column != test.column {
		return nil, errors.Errorf("mnist: training images are %dx%d, test images are %dx%d", train.row, train.column, test.row, test.column)
	}

	ls := &LearningSet{Training: train, Test: test, ClassCount: mnistClassCount}
	if train.Len() > mnistValidation {
		if err := ls.SplitValidation(mnistValidation); err != nil {
			return nil, err
		}
	}
	return ls, nil
}

func LoadIDX(imagePath, labelPath string) (*Set, error) {
	imgFile, err := os.Open(imagePath)
	if err != nil {
		return nil, errors.Wrap(err, "open idx images")
	}
	defer imgFile.Close()

	lblFile, err := os.Open(labelPath)
	if err != nil {
		return nil, errors.Wrap(err, "open idx labels")
	}
	defer lblFile.Close()

	return ReadIDX(bufio.NewReader(imgFile), bufio.NewReader(lblFile))
}

// ReadIDX はIDX形式の画像とラベルを読みます。サイズはビッグエンディアンで、画素は[0, 1]に正規化します。
func ReadIDX(images, labels io.Reader) (*Set, error) {
	var lblHeader [2]uint32
	if err := binary.Read(labels, binary.BigEndian, &lblHeader); err != nil {
		return nil, errors.Wrap(err, "read idx label header")
	}
	if lblHeader[0] != idxLabelMagic {
		return nil, errors.Errorf("idx: label magic %#x, want %#x", lblHeader[0], idxLabelMagic)
	}

	var imgHeader [4]uint32
	if err := binary.Read(images, binary.BigEndian, &imgHeader); err != nil {
		return nil, errors.Wrap(err, "read idx image header")
	}
	if imgHeader[0] != idxImageMagic {
		return nil, errors.Errorf("idx: image magic %#x, want %#x", imgHeader[0], idxImageMagic)
	}

	n := int(lblHeader[1])
	if int(imgHeader[1]) != n {
		return nil, errors.Errorf("idx: %d labels but %d images", n, imgHeader[1])
	}
	row, column := int(imgHeader[2]), int(imgHeader[3])
	size := row * column

	lbls := make([]byte, n)
	if _, err := io.ReadFull(labels, lbls); err != nil {
		return nil, errors.Wrap(err, "read idx labels")
	}
	pixels := make([]byte, n*size)
	if _, err := io.ReadFull(images, pixels); err != nil {
		return nil, errors.Wrap(err, "read idx images")
	}

	vecs := make([]blas32.Vector, n)
	ints := make([]int, n)
	data := make([]float32, n*size)
	for i := range data {
		data[i] = mathx.ConvertScale(float32(pixels[i]), 0, 255, 0, 1)
	}
	for i := 0; i < n; i++ {
		vecs[i] = blas32.Vector{N: size, Inc: 1, Data: data[i*size : (i+1)*size : (i+1)*size]}
		ints[i] = int(lbls[i])
	}
	return New(vecs, ints, row, column)
}
