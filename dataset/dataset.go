package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/blas/blas32"
)

// Dataset は画像とラベルの組を読み取り専用で提供します。
// len(Images()) == len(Labels()) で、全ての画像の長さは Row()*Column() です。
type Dataset interface {
	Images() []blas32.Vector
	Labels() []int
	Row() int
	Column() int
}

// Set はメモリ上のDatasetです。
type Set struct {
	images []blas32.Vector
	labels []int
	row    int
	column int
}

func New(images []blas32.Vector, labels []int, row, column int) (*Set, error) {
	if row <= 0 || column <= 0 {
		return nil, errors.Errorf("dataset: row = %d, column = %d, both must be positive", row, column)
	}
	if len(images) != len(labels) {
		return nil, errors.Errorf("dataset: %d images but %d labels", len(images), len(labels))
	}
	size := row * column
	for i, img := range images {
		if img.N != size {
			return nil, errors.Errorf("dataset: image %d has length %d, want %d", i, img.N, size)
		}
		// 画像はInc == 1かつlen(Data) == Nであること
		if img.Inc != 1 || len(img.Data) != img.N {
			return nil, errors.Errorf("dataset: image %d must be contiguous with len(Data) = N, got Inc = %d, len(Data) = %d, N = %d", i, img.Inc, len(img.Data), img.N)
		}
	}
	return &Set{images: images, labels: labels, row: row, column: column}, nil
}

// FromSlices は [][]float32 から作ります。画像データはコピーしません。
func FromSlices(images [][]float32, labels []int, row, column int) (*Set, error) {
	vecs := make([]blas32.Vector, len(images))
	for i, img := range images {
		vecs[i] = blas32.Vector{N: len(img), Inc: 1, Data: img}
	}
	return New(vecs, labels, row, column)
}

func (s *Set) Images() []blas32.Vector { return s.images }
func (s *Set) Labels() []int           { return s.labels }
func (s *Set) Row() int                { return s.row }
func (s *Set) Column() int             { return s.column }

// Len はnilのSetに対しては0を返します。
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.images)
}

// Slice は [from, to) の部分集合を返します。データは共有します。
func (s *Set) Slice(from, to int) *Set {
	return &Set{
		images: s.images[from:to],
		labels: s.labels[from:to],
		row:    s.row,
		column: s.column,
	}
}

// LearningSet は訓練・検証・テスト用のデータセットをまとめたものです。
type LearningSet struct {
	Training   *Set
	Validation *Set
	Test       *Set
	ClassCount int
}

// Validate はクラス数とラベルの範囲、各データセットの画像サイズの一致を確認します。
func (ls *LearningSet) Validate() error {
	if ls.ClassCount <= 0 {
		return errors.Errorf("dataset: class count %d must be positive", ls.ClassCount)
	}
	if ls.Training == nil || ls.Training.Len() == 0 {
		return errors.New("dataset: training data is empty")
	}
	for name, s := range map[string]*Set{"training": ls.Training, "validation": ls.Validation, "test": ls.Test} {
		if s == nil {
			continue
		}
		if s.row != ls.Training.row || s.column != ls.Training.column {
			return errors.Errorf("dataset: %s images are %dx%d, training images are %dx%d", name, s.row, s.column, ls.Training.row, ls.Training.column)
		}
		for i, l := range s.labels {
			if l < 0 || l >= ls.ClassCount {
				return errors.Errorf("dataset: %s label %d at %d out of [0, %d)", name, l, i, ls.ClassCount)
			}
		}
	}
	return nil
}

// SplitValidation は訓練データの末尾n個を検証データとして切り出します。
func (ls *LearningSet) SplitValidation(n int) error {
	total := ls.Training.Len()
	if n < 0 || n >= total {
		return errors.Errorf("dataset: cannot take %d validation examples from %d training examples", n, total)
	}
	ls.Validation = ls.Training.Slice(total-n, total)
	ls.Training = ls.Training.Slice(0, total-n)
	return nil
}

// Subset は先頭から指定数だけを使う LearningSet を返します。
func (ls *LearningSet) Subset(training, test int) *LearningSet {
	sub := &LearningSet{
		Training:   ls.Training.Slice(0, min(training, ls.Training.Len())),
		Validation: ls.Validation,
		ClassCount: ls.ClassCount,
	}
	if ls.Test != nil {
		sub.Test = ls.Test.Slice(0, min(test, ls.Test.Len()))
	}
	return sub
}
