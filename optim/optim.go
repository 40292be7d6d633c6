// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"math/rand"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
	"github.com/born-ml/mlp/internal/parallel"
)

// SGD (Stochastic Gradient Descent)

// SGD trains a network with mini-batch gradient descent.
type SGD = optim.SGD

// Config contains training hyper-parameters.
type Config = optim.Config

// EpochStats reports one completed epoch.
type EpochStats = optim.EpochStats

// History collects the stats of every epoch of a Fit call.
type History = optim.History

// Errors returned by SGD.
var (
	ErrEmptyDataset        = optim.ErrEmptyDataset
	ErrEmptyBatch          = optim.ErrEmptyBatch
	ErrLengthMismatch      = optim.ErrLengthMismatch
	ErrInvalidBatchSize    = optim.ErrInvalidBatchSize
	ErrInvalidEpochs       = optim.ErrInvalidEpochs
	ErrInvalidLearningRate = optim.ErrInvalidLearningRate
)

// ParallelConfig controls per-sample gradient fan-out inside a mini-batch.
type ParallelConfig = parallel.Config

// DefaultParallel returns a fan-out sized to the physical core count.
//
// Example:
//
//	cfg := optim.Defaults()
//	cfg.Parallel = optim.DefaultParallel()
func DefaultParallel() ParallelConfig {
	return parallel.DefaultConfig()
}

// Defaults returns η = 3.0, batch size 10 and 30 epochs.
func Defaults() Config {
	return optim.Defaults()
}

// NewSGD creates a new SGD trainer.
//
// Example:
//
//	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{
//	    LR:        3.0,
//	    BatchSize: 10,
//	    Epochs:    30,
//	})
//	history, err := sgd.Fit(net, train)
func NewSGD(act nn.Activation, cost nn.Cost, config Config) *SGD {
	return optim.NewSGD(act, cost, config)
}

// Shuffle applies one random permutation to features and labels in place.
func Shuffle(rng *rand.Rand, features, labels []*matrix.Matrix) error {
	return optim.Shuffle(rng, features, labels)
}

// Evaluation

// Evaluate counts samples whose arg-max prediction matches the arg-max label.
func Evaluate(net *nn.Network, features, labels []*matrix.Matrix, act nn.Activation) (int, error) {
	return optim.Evaluate(net, features, labels, act)
}

// EvaluateBinary counts samples whose outputs agree with the labels after
// thresholding both.
func EvaluateBinary(net *nn.Network, features, labels []*matrix.Matrix, act nn.Activation, threshold float32) (int, error) {
	return optim.EvaluateBinary(net, features, labels, act, threshold)
}

// MeanLoss returns the average cost over all samples.
func MeanLoss(net *nn.Network, features, labels []*matrix.Matrix, act nn.Activation, cost nn.Cost) (float32, error) {
	return optim.MeanLoss(net, features, labels, act, cost)
}
