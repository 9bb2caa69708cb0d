// Package trainer は事前学習とファインチューニングの手順をまとめたものです。
package trainer

import (
	"io"
	"log"
	"math"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/sw965/sda/dataset"
	"github.com/sw965/sda/mlfuncs/1d"
	"github.com/sw965/sda/model/sda"
	"gonum.org/v1/gonum/floats"
)

// LayerReport は隠れ層1段の事前学習の記録です。コストはエポックごとの平均です。
type LayerReport struct {
	Index           int
	Neurons         int
	Noise           float32
	TrainingCosts   []float64
	ValidationCosts []float64
}

// FinalCost は最後のエポックの検証コストです。
func (r LayerReport) FinalCost() float64 {
	if len(r.ValidationCosts) == 0 {
		return math.Inf(1)
	}
	return r.ValidationCosts[len(r.ValidationCosts)-1]
}

// BestEpoch は検証コストが最小だったエポック (1始まり) です。
func (r LayerReport) BestEpoch() int {
	if len(r.ValidationCosts) == 0 {
		return 0
	}
	return floats.MinIdx(r.ValidationCosts) + 1
}

func (r LayerReport) BestCost() float64 {
	if len(r.ValidationCosts) == 0 {
		return math.Inf(1)
	}
	return floats.Min(r.ValidationCosts)
}

type Result struct {
	BestValidationError float32
	TestError           float32
	BestEpoch           int
	Epochs              int
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func discardIfNil(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return logger
}

func checkSets(sets *dataset.LearningSet) error {
	if err := sets.Validate(); err != nil {
		return err
	}
	if sets.Validation == nil || sets.Validation.Len() == 0 {
		return errors.New("trainer: validation data is empty")
	}
	return nil
}

func pretrainLayer(m *sda.Model, index, neurons int, h HiddenConfig, sets *dataset.LearningSet, cfg Config, logger *log.Logger) (LayerReport, error) {
	act, err := mlfuncs1d.ActivationByName(h.activationName())
	if err != nil {
		return LayerReport{}, err
	}
	if err := m.Stack().SetWithActivation(index, neurons, act); err != nil {
		return LayerReport{}, err
	}
	logger.Printf("pre-training layer %d: neurons=%d noise=%v activation=%s\n", index, neurons, h.Noise, act.Name)

	da := m.Stack().At(index)
	r := LayerReport{
		Index:           index,
		Neurons:         neurons,
		Noise:           h.Noise,
		TrainingCosts:   make([]float64, 0, cfg.PretrainEpochs),
		ValidationCosts: make([]float64, 0, cfg.PretrainEpochs),
	}
	for epoch := 1; epoch <= cfg.PretrainEpochs; epoch++ {
		trainCost := da.Train(sets.Training, cfg.PretrainLearningRate, h.Noise)
		validCost := da.ComputeCost(sets.Validation, h.Noise)
		r.TrainingCosts = append(r.TrainingCosts, float64(trainCost))
		r.ValidationCosts = append(r.ValidationCosts, float64(validCost))
		logger.Printf("pre-training layer %d, epoch %d, cost %f, validation cost %f\n", index, epoch, trainCost, validCost)
	}
	return r, nil
}

// Pretrain はcfg.Hiddenの順に隠れ層を追加し、それぞれを自己符号化器として学習します。
// 既に同じインデックスの層があれば作り直します。
func Pretrain(m *sda.Model, sets *dataset.LearningSet, cfg Config, logger *log.Logger) ([]LayerReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkSets(sets); err != nil {
		return nil, err
	}
	logger = discardIfNil(logger)

	reports := make([]LayerReport, 0, len(cfg.Hidden))
	for i, h := range cfg.Hidden {
		r, err := pretrainLayer(m, i, h.Neurons, h, sets, cfg, logger)
		if err != nil {
			return reports, errors.Wrapf(err, "pre-train layer %d", i)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// AutoPretrain は各隠れ層のニューロン数を自動で決めながら事前学習します。
// 幅をMinから倍々に増やして学習し、
//
//	|(cost - lastCost) / (neurons - lastNeurons)| <= ConvergeConstant
//
// となった幅を採用します。Maxを超える幅は試さず、コストが有限でなくなった場合もそこで止めます。
// 試した全ての幅の記録を返します。
func AutoPretrain(m *sda.Model, sets *dataset.LearningSet, cfg Config, logger *log.Logger) ([]LayerReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.AutoNeurons == nil {
		return nil, errors.New("trainer: auto neurons is not configured")
	}
	if err := checkSets(sets); err != nil {
		return nil, err
	}
	logger = discardIfNil(logger)
	auto := cfg.AutoNeurons

	var reports []LayerReport
	for i, h := range cfg.Hidden {
		lastCost := math.Inf(1)
		lastNeurons := 0
		for neurons := auto.Min; ; neurons *= auto.Increase {
			r, err := pretrainLayer(m, i, neurons, h, sets, cfg, logger)
			if err != nil {
				return reports, errors.Wrapf(err, "auto pre-train layer %d", i)
			}
			reports = append(reports, r)

			cost := r.FinalCost()
			relative := math.Abs((cost - lastCost) / float64(neurons-lastNeurons))
			logger.Printf("layer %d, neurons %d, cost relative error %f\n", i, neurons, relative)
			first := lastNeurons == 0
			lastCost, lastNeurons = cost, neurons

			// 最初の幅は比較対象が+Infなので収束判定をしない
			if !isFinite(cost) || (!first && !isFinite(relative)) {
				logger.Printf("layer %d: cost is not finite, stop at %d neurons\n", i, neurons)
				break
			}
			if relative <= float64(auto.ConvergeConstant) {
				break
			}
			if neurons*auto.Increase > auto.Max {
				logger.Printf("layer %d: reached max neurons %d\n", i, auto.Max)
				break
			}
		}
	}
	return reports, nil
}

// FineTune は出力層を設定して全層を誤差逆伝播法で学習します。
// 検証データの誤り率で早期終了し、最良のエポックでのテスト誤り率を記録します。
func FineTune(m *sda.Model, sets *dataset.LearningSet, cfg Config, logger *log.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := checkSets(sets); err != nil {
		return Result{}, err
	}
	logger = discardIfNil(logger)

	m.SetLogisticRegressionLayer(sets.ClassCount)
	logger.Println("fine-tuning...")

	result := Result{BestValidationError: math32.Inf(1)}
	patience := cfg.Patience
	for epoch := 1; epoch <= cfg.FinetuneEpochs && epoch <= patience; epoch++ {
		if err := m.FineTune(sets.Training, cfg.FinetuneLearningRate); err != nil {
			return result, err
		}
		validErr, err := m.ComputeErrorRates(sets.Validation)
		if err != nil {
			return result, err
		}
		result.Epochs = epoch
		logger.Printf("epoch %d, validation error %f %%\n", epoch, validErr*100.0)

		if validErr < result.BestValidationError {
			if validErr < result.BestValidationError*cfg.ImprovementThreshold {
				patience = max(patience, epoch*cfg.PatienceIncrease)
			}
			result.BestValidationError = validErr
			result.BestEpoch = epoch

			if sets.Test != nil && sets.Test.Len() > 0 {
				testErr, err := m.ComputeErrorRates(sets.Test)
				if err != nil {
					return result, err
				}
				result.TestError = testErr
				logger.Printf("     epoch %d, test error of best model %f %%\n", epoch, testErr*100.0)
			}
		}
	}
	return result, nil
}

// Run はモデルを作り、事前学習 (AutoNeuronsがあれば自動決定) とファインチューニングを行います。
func Run(sets *dataset.LearningSet, cfg Config, logger *log.Logger) (*sda.Model, []LayerReport, Result, error) {
	if err := checkSets(sets); err != nil {
		return nil, nil, Result{}, err
	}
	m := sda.New(sets.Training.Row()*sets.Training.Column(), cfg.Seed)

	pretrain := Pretrain
	if cfg.AutoNeurons != nil {
		pretrain = AutoPretrain
	}
	reports, err := pretrain(m, sets, cfg, logger)
	if err != nil {
		return m, reports, Result{}, err
	}
	result, err := FineTune(m, sets, cfg, logger)
	return m, reports, result, err
}
