package optim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/parallel"
)

// SGD trains a network with mini-batch stochastic gradient descent.
//
// Update rule for a mini-batch of n samples:
//
//	W[i] = W[i] - (lr / n) · Σ ∂C/∂W[i]
//	b[i] = b[i] - (lr / n) · Σ ∂C/∂b[i]
//
// SGD is not safe for concurrent use; one SGD drives one network at a time.
type SGD struct {
	act  nn.Activation
	cost nn.Cost
	cfg  Config
	rng  *rand.Rand
}

// NewSGD creates a trainer for the given activation and cost.
//
// The config is validated by Step and Fit, not here.
func NewSGD(act nn.Activation, cost nn.Cost, cfg Config) *SGD {
	rng := cfg.Rand
	if rng == nil {
		rng = nn.NewRand(cfg.Seed)
	}
	return &SGD{
		act:  act,
		cost: cost,
		cfg:  cfg,
		rng:  rng,
	}
}

// LR returns the current learning rate.
func (s *SGD) LR() float32 {
	return s.cfg.LR
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling from an OnEpoch callback.
func (s *SGD) SetLR(lr float32) {
	s.cfg.LR = lr
}

// Step performs exactly one gradient-descent step on the average gradient
// of the given mini-batch.
//
// Per-sample gradients may be computed concurrently (Config.Parallel) but
// are always summed in sample order, so the result does not depend on the
// worker count. If any sample fails, the network is left unchanged.
func (s *SGD) Step(net *nn.Network, features, labels []*matrix.Matrix) error {
	if len(features) != len(labels) {
		return fmt.Errorf("%w: %d features, %d labels", ErrLengthMismatch, len(features), len(labels))
	}
	if len(features) == 0 {
		return ErrEmptyBatch
	}
	if !validLR(s.cfg.LR) {
		return fmt.Errorf("%w: got %v", ErrInvalidLearningRate, s.cfg.LR)
	}

	n := len(features)
	grads := make([]*nn.Gradients, n)
	errs := make([]error, n)
	parallel.For(n, func(i int) {
		grads[i], errs[i] = net.Backprop(features[i], labels[i], s.act, s.cost)
	}, s.cfg.Parallel)

	sum := nn.NewGradients(net)
	for i := range grads {
		if errs[i] != nil {
			return fmt.Errorf("sample %d: %w", i, errs[i])
		}
		if err := sum.Accumulate(grads[i]); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		grads[i] = nil
	}

	return net.Descend(sum.Scale(s.cfg.LR / float32(n)))
}

// Fit runs the epoch loop over data.
//
// Each epoch shuffles data.Features and data.Labels in place with one
// shared permutation, cuts them into contiguous mini-batches of
// Config.BatchSize (the last one may be shorter) and calls Step on each in
// order.
func (s *SGD) Fit(net *nn.Network, data *dataset.Dataset) (*History, error) {
	if err := s.validate(data); err != nil {
		return nil, err
	}

	n := data.Len()
	history := &History{Epochs: make([]EpochStats, 0, s.cfg.Epochs)}
	for epoch := 1; epoch <= s.cfg.Epochs; epoch++ {
		start := time.Now()
		if err := Shuffle(s.rng, data.Features, data.Labels); err != nil {
			return history, err
		}

		batches := 0
		for j := 0; j < n; j += s.cfg.BatchSize {
			end := min(j+s.cfg.BatchSize, n)
			if err := s.Step(net, data.Features[j:end], data.Labels[j:end]); err != nil {
				return history, fmt.Errorf("epoch %d, batch %d: %w", epoch, batches, err)
			}
			batches++
		}

		stats := EpochStats{
			Epoch:    epoch,
			Epochs:   s.cfg.Epochs,
			Batches:  batches,
			Duration: time.Since(start),
		}
		if s.cfg.Eval != nil && s.cfg.Eval.Len() > 0 {
			if err := s.score(net, &stats); err != nil {
				return history, fmt.Errorf("epoch %d: %w", epoch, err)
			}
		}

		history.Epochs = append(history.Epochs, stats)
		if s.cfg.OnEpoch != nil {
			s.cfg.OnEpoch(stats)
		}
	}
	return history, nil
}

func (s *SGD) score(net *nn.Network, stats *EpochStats) error {
	eval := s.cfg.Eval
	correct, err := Evaluate(net, eval.Features, eval.Labels, s.act)
	if err != nil {
		return err
	}
	loss, err := MeanLoss(net, eval.Features, eval.Labels, s.act, s.cost)
	if err != nil {
		return err
	}
	stats.Correct = correct
	stats.Total = eval.Len()
	stats.EvalLoss = loss
	return nil
}

func (s *SGD) validate(data *dataset.Dataset) error {
	if data == nil || data.Len() == 0 {
		return ErrEmptyDataset
	}
	if len(data.Features) != len(data.Labels) {
		return fmt.Errorf("%w: %d features, %d labels", ErrLengthMismatch, len(data.Features), len(data.Labels))
	}
	if s.cfg.BatchSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, s.cfg.BatchSize)
	}
	if s.cfg.Epochs <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidEpochs, s.cfg.Epochs)
	}
	if !validLR(s.cfg.LR) {
		return fmt.Errorf("%w: got %v", ErrInvalidLearningRate, s.cfg.LR)
	}
	return nil
}

func validLR(lr float32) bool {
	return lr > 0 && !math.IsInf(float64(lr), 0)
}
