package sda

import (
	"github.com/pkg/errors"
)

var (
	// ErrFrozen は固定された隠れ層のコレクションを変更しようとした場合に返されます。
	ErrFrozen = errors.New("sda: frozen stack cannot be changed")
	// ErrOutOfRange は存在しない層のインデックスが指定された場合に返されます。
	ErrOutOfRange = errors.New("sda: layer index out of range")
	// ErrNoOutputLayer は出力層を設定する前にファインチューニングや評価を行った場合に返されます。
	ErrNoOutputLayer = errors.New("sda: output layer is not set")
)
