// Package optim implements mini-batch stochastic gradient descent for nn.Network.
//
// This package provides:
//   - SGD: mini-batch update (Step) and the epoch loop (Fit)
//   - Shuffle: one Fisher-Yates permutation applied to features and labels
//   - Evaluate / EvaluateBinary / MeanLoss: scoring helpers
//
// Example usage:
//
//	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{
//	    LR:        3.0,
//	    BatchSize: 10,
//	    Epochs:    30,
//	    Seed:      42,
//	})
//	history, err := sgd.Fit(net, train)
//	correct, err := optim.Evaluate(net, test.Features, test.Labels, nn.Sigmoid)
package optim

import (
	"errors"
	"math/rand"
	"time"

	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/parallel"
)

// Common errors.
var (
	ErrEmptyDataset        = errors.New("optim: empty training set")
	ErrEmptyBatch          = errors.New("optim: empty mini-batch")
	ErrLengthMismatch      = errors.New("optim: features and labels differ in length")
	ErrInvalidBatchSize    = errors.New("optim: mini-batch size must be > 0")
	ErrInvalidEpochs       = errors.New("optim: epoch count must be > 0")
	ErrInvalidLearningRate = errors.New("optim: learning rate must be > 0")
)

// Config holds training hyper-parameters.
type Config struct {
	LR        float32 // Learning rate (η)
	BatchSize int     // Samples per gradient step
	Epochs    int     // Full passes over the training set

	// Seed drives shuffling when Rand is nil. Zero means time-based.
	Seed int64
	// Rand overrides Seed with an explicit source.
	Rand *rand.Rand

	// Parallel controls per-sample gradient fan-out inside a mini-batch.
	// The zero value runs sequentially.
	Parallel parallel.Config

	// Eval, when set, is scored after every epoch.
	Eval *dataset.Dataset

	// OnEpoch, when set, is called after every epoch.
	OnEpoch func(EpochStats)
}

// Defaults returns a Config with the hyper-parameters commonly used for a
// sigmoid MLP on MNIST: η = 3.0, batch size 10, 30 epochs.
func Defaults() Config {
	return Config{
		LR:        3.0,
		BatchSize: 10,
		Epochs:    30,
	}
}

// EpochStats reports one completed epoch.
type EpochStats struct {
	Epoch    int           // 1-based epoch number
	Epochs   int           // Total epochs
	Batches  int           // Gradient steps taken this epoch
	Duration time.Duration // Wall time of the epoch, scoring excluded

	// Filled only when Config.Eval is set.
	Correct  int
	Total    int
	EvalLoss float32
}

// Accuracy returns Correct/Total, or 0 when nothing was scored.
func (s EpochStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// History collects the stats of every epoch of a Fit call.
type History struct {
	Epochs []EpochStats
}

// Last returns the final epoch's stats.
func (h *History) Last() EpochStats {
	if len(h.Epochs) == 0 {
		return EpochStats{}
	}
	return h.Epochs[len(h.Epochs)-1]
}
