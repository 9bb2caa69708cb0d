package dataset

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	prRow        = 7
	prColumn     = 5
	prClassCount = 10
)

// LoadPR は pattern2learn.dat と pattern2recog.dat を読み込みます。
// 検証データは無いので、テストデータを検証にも使います。
func LoadPR(dir string) (*LearningSet, error) {
	train, err := loadPRFile(filepath.Join(dir, "pattern2learn.dat"))
	if err != nil {
		return nil, err
	}
	test, err := loadPRFile(filepath.Join(dir, "pattern2recog.dat"))
	if err != nil {
		return nil, err
	}
	return &LearningSet{Training: train, Validation: test, Test: test, ClassCount: prClassCount}, nil
}

func loadPRFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open pr patterns")
	}
	defer f.Close()
	set, err := ReadPR(f)
	return set, errors.Wrapf(err, "read %s", path)
}

// ReadPR は1行1例、"ラベル, 値1, 値2, ..." (区切りはカンマか空白) の形式を読みます。
func ReadPR(r io.Reader) (*Set, error) {
	var images [][]float32
	var labels []int
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.FieldsFunc(sc.Text(), func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		if len(fields) == 0 {
			continue
		}
		label, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: label", line)
		}
		img := make([]float32, len(fields)-1)
		for i, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: value %d", line, i)
			}
			img[i] = float32(v)
		}
		images = append(images, img)
		labels = append(labels, label)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan pr patterns")
	}
	return FromSlices(images, labels, prRow, prColumn)
}
