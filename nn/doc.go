// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a fully connected feedforward network and its
// backpropagation.
//
// # Overview
//
// This package contains:
//   - Network: a linear stack of dense layers sized by NewNetwork
//   - Activations: Sigmoid, Tanh, ReLU, ReflectedSigmoid
//   - Cost functions: SquaredError, CrossEntropy
//   - Initialization: Normal, Xavier, Constant, Zeros
//   - Gradients: per-sample Backprop, Accumulate, Scale, Descend
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/mlp/matrix"
//	    "github.com/born-ml/mlp/nn"
//	)
//
//	func main() {
//	    rng := nn.NewRand(42)
//
//	    // 784 inputs, one hidden layer of 30, 10 outputs.
//	    net, err := nn.NewNetwork([]int{784, 30, 10}, nn.Normal(rng), nn.Normal(rng))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    out, err := net.Predict(x, nn.Sigmoid) // x is a (784, 1) column
//	}
//
// # Backpropagation
//
// Backprop returns the gradient of the cost with respect to every weight and
// bias for one sample. Gradients of a mini-batch are summed with Accumulate,
// averaged with Scale and applied with Descend:
//
//	sum := nn.NewGradients(net)
//	for i := range batch {
//	    g, err := net.Backprop(batch[i], labels[i], nn.Sigmoid, nn.SquaredError{})
//	    ...
//	    sum.Accumulate(g)
//	}
//	net.Descend(sum.Scale(lr / float32(len(batch))))
//
// Package optim wraps this loop as SGD.
package nn
