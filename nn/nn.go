// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// Network is a fully connected feedforward network.
type Network = nn.Network

// Gradients holds one gradient matrix per weight and bias of a Network.
type Gradients = nn.Gradients

// NewNetwork creates a network with the given layer sizes.
//
// weightInit and biasInit fill each weight and bias matrix; nil leaves it
// zero-filled.
//
// Example:
//
//	rng := nn.NewRand(1)
//	net, err := nn.NewNetwork([]int{2, 2, 1}, nn.Normal(rng), nn.Normal(rng))
func NewNetwork(sizes []int, weightInit, biasInit InitFunc) (*Network, error) {
	return nn.NewNetwork(sizes, weightInit, biasInit)
}

// NewGradients returns zero-filled gradients shaped like net.
func NewGradients(net *Network) *Gradients {
	return nn.NewGradients(net)
}

// Errors returned by Network.
var (
	ErrTooFewLayers      = nn.ErrTooFewLayers
	ErrBadLayerSize      = nn.ErrBadLayerSize
	ErrInputShape        = nn.ErrInputShape
	ErrLabelShape        = nn.ErrLabelShape
	ErrLayerIndex        = nn.ErrLayerIndex
	ErrUnknownActivation = nn.ErrUnknownActivation
	ErrUnknownCost       = nn.ErrUnknownCost
)

// Activations

// Activation is an elementwise nonlinearity and its derivative.
type Activation = nn.Activation

// ActivationFunc builds an Activation from scalar functions.
type ActivationFunc = nn.ActivationFunc

// Built-in activations.
var (
	Sigmoid          = nn.Sigmoid
	ReflectedSigmoid = nn.ReflectedSigmoid
	Tanh             = nn.Tanh
	ReLU             = nn.ReLU
)

// ActivationByName looks up a built-in activation ("sigmoid", "tanh", ...).
func ActivationByName(name string) (ActivationFunc, error) {
	return nn.ActivationByName(name)
}

// ActivationNames lists the built-in activation names in sorted order.
func ActivationNames() []string {
	return nn.ActivationNames()
}

// Cost functions

// Cost measures the error of one prediction and its gradient.
type Cost = nn.Cost

// SquaredError is ½·Σ(pred - label)².
type SquaredError = nn.SquaredError

// CrossEntropy is -Σ[y·ln(p) + (1-y)·ln(1-p)], for outputs in (0, 1).
type CrossEntropy = nn.CrossEntropy

// CostByName looks up a built-in cost ("quadratic", "cross-entropy").
func CostByName(name string) (Cost, error) {
	return nn.CostByName(name)
}

// CostNames lists the built-in cost names in sorted order.
func CostNames() []string {
	return nn.CostNames()
}

// Initialization

// InitFunc fills a matrix in place.
type InitFunc = nn.InitFunc

// NewRand returns a seeded source. Seed 0 uses the current time.
func NewRand(seed int64) *rand.Rand {
	return nn.NewRand(seed)
}

// Normal fills with samples from N(0, 1).
func Normal(rng *rand.Rand) InitFunc {
	return nn.Normal(rng)
}

// Xavier fills with uniform samples scaled by the layer fan-in and fan-out.
func Xavier(rng *rand.Rand) InitFunc {
	return nn.Xavier(rng)
}

// Constant fills with v.
func Constant(v float32) InitFunc {
	return nn.Constant(v)
}

// Zeros fills with 0.
func Zeros(m *matrix.Matrix) {
	nn.Zeros(m)
}
