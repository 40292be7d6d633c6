// Package nn implements the multi-layer perceptron used by the trainer.
//
// This package provides:
//   - Network: a linear stack of dense layer transitions (weight + bias)
//   - Predict / Backprop: forward inference and per-sample gradients
//   - Activations: Sigmoid, ReflectedSigmoid, Tanh, ReLU
//   - Costs: SquaredError, CrossEntropy
//   - Initializers: Normal (Box-Muller), Xavier, Constant, Zeros
//
// All values are float32 and every intermediate is a fresh matrix, so a
// Network is never mutated by inference or gradient computation.
package nn

import (
	"errors"
	"fmt"

	"github.com/born-ml/mlp/internal/matrix"
)

// Common errors.
var (
	ErrTooFewLayers      = errors.New("nn: network needs at least 2 layers")
	ErrBadLayerSize      = errors.New("nn: layer size must be > 0")
	ErrInputShape        = errors.New("nn: input shape does not match input layer")
	ErrLabelShape        = errors.New("nn: label shape does not match output layer")
	ErrLayerIndex        = errors.New("nn: layer index out of range")
	ErrUnknownActivation = errors.New("nn: unknown activation")
	ErrUnknownCost       = errors.New("nn: unknown cost")
)

// Network is a fully connected feedforward network.
//
// For layer sizes [n0, n1, ..., nL] it holds L transitions where
// weights[i] has shape (n[i+1], n[i]) and biases[i] has shape (n[i+1], 1).
//
// Example:
//
//	rng := nn.NewRand(42)
//	net, err := nn.NewNetwork([]int{784, 30, 10}, nn.Normal(rng), nil)
//	out, err := net.Predict(image, nn.Sigmoid)
type Network struct {
	sizes   []int
	weights []*matrix.Matrix
	biases  []*matrix.Matrix
}

// NewNetwork creates a network with the given layer sizes, input and output
// layers included.
//
// weightInit and biasInit, when non-nil, are called once per transition to
// fill that transition's matrix; nil leaves it zero-filled.
func NewNetwork(sizes []int, weightInit, biasInit InitFunc) (*Network, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewLayers, len(sizes))
	}
	for i, n := range sizes {
		if n <= 0 {
			return nil, fmt.Errorf("%w: layer %d has size %d", ErrBadLayerSize, i, n)
		}
	}

	net := &Network{
		sizes:   append([]int(nil), sizes...),
		weights: make([]*matrix.Matrix, len(sizes)-1),
		biases:  make([]*matrix.Matrix, len(sizes)-1),
	}
	for i := 0; i < len(sizes)-1; i++ {
		net.weights[i] = matrix.New(sizes[i+1], sizes[i])
		net.biases[i] = matrix.New(sizes[i+1], 1)
		if weightInit != nil {
			weightInit(net.weights[i])
		}
		if biasInit != nil {
			biasInit(net.biases[i])
		}
	}
	return net, nil
}

// Sizes returns a copy of the layer sizes.
func (n *Network) Sizes() []int {
	return append([]int(nil), n.sizes...)
}

// NumLayers returns the number of layers, input and output included.
func (n *Network) NumLayers() int {
	return len(n.sizes)
}

// NumTransitions returns the number of weight/bias pairs.
func (n *Network) NumTransitions() int {
	return len(n.weights)
}

// InputSize returns the size of the input layer.
func (n *Network) InputSize() int {
	return n.sizes[0]
}

// OutputSize returns the size of the output layer.
func (n *Network) OutputSize() int {
	return n.sizes[len(n.sizes)-1]
}

// Weight returns the weight matrix of transition i.
//
// The matrix is shared with the network; treat it as read-only.
func (n *Network) Weight(i int) *matrix.Matrix {
	return n.weights[i]
}

// Bias returns the bias column of transition i.
//
// The matrix is shared with the network; treat it as read-only.
func (n *Network) Bias(i int) *matrix.Matrix {
	return n.biases[i]
}

// NumParameters returns the total count of weights and biases.
func (n *Network) NumParameters() int {
	total := 0
	for i := range n.weights {
		total += n.weights[i].Len() + n.biases[i].Len()
	}
	return total
}

// SetParameters replaces transition i with copies of w and b.
func (n *Network) SetParameters(i int, w, b *matrix.Matrix) error {
	if i < 0 || i >= len(n.weights) {
		return fmt.Errorf("%w: %d of %d", ErrLayerIndex, i, len(n.weights))
	}
	if !w.SameShape(n.weights[i]) {
		return fmt.Errorf("layer %d weights: %w", i,
			&matrix.ShapeError{Op: "replace", A: n.weights[i].Shape(), B: w.Shape()})
	}
	if !b.SameShape(n.biases[i]) {
		return fmt.Errorf("layer %d biases: %w", i,
			&matrix.ShapeError{Op: "replace", A: n.biases[i].Shape(), B: b.Shape()})
	}
	n.weights[i] = w.Copy()
	n.biases[i] = b.Copy()
	return nil
}

// Release drops every owned matrix. The network must not be used afterwards.
func (n *Network) Release() {
	n.sizes = nil
	n.weights = nil
	n.biases = nil
}

// Predict runs forward inference on a (InputSize, 1) column.
//
// Returns a new (OutputSize, 1) matrix; neither the network nor x is modified.
func (n *Network) Predict(x *matrix.Matrix, act Activation) (*matrix.Matrix, error) {
	if err := n.checkInput(x); err != nil {
		return nil, err
	}

	a := x.Copy()
	for i := range n.weights {
		z, err := n.preActivation(i, a)
		if err != nil {
			return nil, err
		}
		a = act.Forward(z)
	}
	return a, nil
}

// preActivation computes z = W[i]·a + b[i].
func (n *Network) preActivation(i int, a *matrix.Matrix) (*matrix.Matrix, error) {
	wa, err := n.weights[i].MatMul(a)
	if err != nil {
		return nil, fmt.Errorf("layer %d: %w", i, err)
	}
	z, err := wa.Add(n.biases[i])
	if err != nil {
		return nil, fmt.Errorf("layer %d: %w", i, err)
	}
	return z, nil
}

func (n *Network) checkInput(x *matrix.Matrix) error {
	if x.Rows() != n.sizes[0] || x.Cols() != 1 {
		return fmt.Errorf("%w: got %v, want (%d, 1)", ErrInputShape, x.Shape(), n.sizes[0])
	}
	return nil
}
