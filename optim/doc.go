// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides mini-batch stochastic gradient descent for nn.Network.
//
// # Overview
//
// This package contains:
//   - SGD: one gradient step per mini-batch (Step) and the epoch loop (Fit)
//   - Config: learning rate, batch size, epochs, seed and hooks
//   - Evaluate / EvaluateBinary / MeanLoss: scoring helpers
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/mlp/dataset"
//	    "github.com/born-ml/mlp/nn"
//	    "github.com/born-ml/mlp/optim"
//	)
//
//	func main() {
//	    train, _ := dataset.LoadMNIST("data", true, 0)
//	    test, _ := dataset.LoadMNIST("data", false, 0)
//
//	    rng := nn.NewRand(42)
//	    net, _ := nn.NewNetwork([]int{784, 30, 10}, nn.Normal(rng), nn.Normal(rng))
//
//	    cfg := optim.Defaults() // η = 3.0, batch 10, 30 epochs
//	    cfg.Eval = test
//	    cfg.OnEpoch = func(s optim.EpochStats) {
//	        fmt.Printf("Epoch %d: %d / %d\n", s.Epoch, s.Correct, s.Total)
//	    }
//
//	    sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, cfg)
//	    if _, err := sgd.Fit(net, train); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Update Rule
//
// For a mini-batch of n samples:
//
//	W = W - (η / n) · Σ ∂C/∂W
//	b = b - (η / n) · Σ ∂C/∂b
//
// Fit reshuffles the training set in place at the start of every epoch.
// Set Config.Seed for reproducible runs.
package optim
