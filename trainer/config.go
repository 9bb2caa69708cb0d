package trainer

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/sw965/sda/mlfuncs/1d"
)

// HiddenConfig は隠れ層1段分の設定です。
type HiddenConfig struct {
	Neurons    int
	Noise      float32
	Activation string
}

// AutoNeuronsConfig はニューロン数の自動決定の設定です。
// 幅を Min, Min*Increase, ... と増やし、検証コストの変化率がConvergeConstant以下になったら止めます。
// Maxを超える幅は試しません。
type AutoNeuronsConfig struct {
	Min              int
	Increase         int
	Max              int
	ConvergeConstant float32
}

type Config struct {
	Seed   uint64
	Hidden []HiddenConfig

	PretrainEpochs       int
	PretrainLearningRate float32

	FinetuneEpochs       int
	FinetuneLearningRate float32
	Patience             int
	PatienceIncrease     int
	ImprovementThreshold float32

	// nilならHiddenのNeuronsをそのまま使う
	AutoNeurons *AutoNeuronsConfig `json:",omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Seed: 89677,
		Hidden: []HiddenConfig{
			{Neurons: 1000, Noise: 0.1, Activation: "sigmoid"},
			{Neurons: 1000, Noise: 0.2, Activation: "sigmoid"},
			{Neurons: 1000, Noise: 0.3, Activation: "sigmoid"},
		},
		PretrainEpochs:       15,
		PretrainLearningRate: 0.001,
		FinetuneEpochs:       1000,
		FinetuneLearningRate: 0.01,
		Patience:             10,
		PatienceIncrease:     2,
		ImprovementThreshold: 1.0,
	}
}

func DefaultAutoNeuronsConfig() *AutoNeuronsConfig {
	return &AutoNeuronsConfig{Min: 1, Increase: 2, Max: 1024, ConvergeConstant: 0.5}
}

func LoadConfig(path string) (Config, error) {
	var c Config
	f, err := os.Open(path)
	if err != nil {
		return c, errors.Wrap(err, "open config")
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return c, errors.Wrapf(err, "decode config %s", path)
	}
	return c, c.Validate()
}

func (c Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create config")
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode config %s", path)
	}
	return f.Close()
}

func (c Config) Validate() error {
	if len(c.Hidden) == 0 {
		return errors.New("config: no hidden layers")
	}
	for i, h := range c.Hidden {
		if c.AutoNeurons == nil && h.Neurons <= 0 {
			return errors.Errorf("config: hidden layer %d has %d neurons", i, h.Neurons)
		}
		if h.Noise < 0 || h.Noise > 1 {
			return errors.Errorf("config: hidden layer %d noise %v out of [0, 1]", i, h.Noise)
		}
		act, err := mlfuncs1d.ActivationByName(h.activationName())
		if err != nil {
			return errors.Wrapf(err, "config: hidden layer %d", i)
		}
		if act.Grad == nil {
			return errors.Errorf("config: hidden layer %d activation %q cannot be used in a hidden layer", i, act.Name)
		}
	}
	if c.PretrainEpochs < 0 {
		return errors.Errorf("config: pretrain epochs %d is negative", c.PretrainEpochs)
	}
	if c.FinetuneEpochs <= 0 {
		return errors.Errorf("config: finetune epochs %d must be positive", c.FinetuneEpochs)
	}
	if c.PretrainLearningRate <= 0 || c.FinetuneLearningRate <= 0 {
		return errors.Errorf("config: learning rates %v, %v must be positive", c.PretrainLearningRate, c.FinetuneLearningRate)
	}
	if c.Patience <= 0 || c.PatienceIncrease <= 0 {
		return errors.Errorf("config: patience %d, increase %d must be positive", c.Patience, c.PatienceIncrease)
	}
	if a := c.AutoNeurons; a != nil {
		if a.Min <= 0 || a.Increase < 2 {
			return errors.Errorf("config: auto neurons min %d must be positive and increase %d at least 2", a.Min, a.Increase)
		}
		if a.Max < a.Min {
			return errors.Errorf("config: auto neurons max %d must be at least min %d", a.Max, a.Min)
		}
		if c.PretrainEpochs <= 0 {
			return errors.New("config: auto neurons needs at least one pretrain epoch")
		}
		if a.ConvergeConstant < 0 {
			return errors.Errorf("config: converge constant %v is negative", a.ConvergeConstant)
		}
	}
	return nil
}

func (h HiddenConfig) activationName() string {
	if h.Activation == "" {
		return mlfuncs1d.Sigmoid.Name
	}
	return h.Activation
}
