package nn

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"github.com/born-ml/mlp/internal/matrix"
)

// Activation is an element-wise nonlinearity paired with its derivative.
//
// Derivative receives the pre-activation matrix z (the linear combination
// W·a + b), not the activation output.
type Activation interface {
	Forward(z *matrix.Matrix) *matrix.Matrix
	Derivative(z *matrix.Matrix) *matrix.Matrix
}

// ActivationFunc adapts a pair of scalar functions to Activation.
//
// Example:
//
//	softplus := nn.ActivationFunc{
//	    Name:  "softplus",
//	    Fn:    func(x float32) float32 { return math32.Log1p(math32.Exp(x)) },
//	    Deriv: func(x float32) float32 { return 1 / (1 + math32.Exp(-x)) },
//	}
type ActivationFunc struct {
	Name  string
	Fn    func(float32) float32
	Deriv func(float32) float32
}

// Forward applies Fn element-wise.
func (a ActivationFunc) Forward(z *matrix.Matrix) *matrix.Matrix {
	return z.Apply(a.Fn)
}

// Derivative applies Deriv element-wise.
func (a ActivationFunc) Derivative(z *matrix.Matrix) *matrix.Matrix {
	return z.Apply(a.Deriv)
}

// String returns the activation name.
func (a ActivationFunc) String() string {
	return a.Name
}

func logistic(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

func reflectedLogistic(x float32) float32 {
	return 1 / (1 + math32.Exp(x))
}

// Sigmoid is the logistic function σ(x) = 1 / (1 + exp(-x)).
//
// Derivative: σ(x)·(1 - σ(x)).
//
// Networks trained with the mirrored formula 1 / (1 + exp(x)) and this same
// derivative should select ReflectedSigmoid ("reflected-sigmoid") instead.
var Sigmoid = ActivationFunc{
	Name: "sigmoid",
	Fn:   logistic,
	Deriv: func(x float32) float32 {
		s := logistic(x)
		return s * (1 - s)
	},
}

// ReflectedSigmoid computes 1 / (1 + exp(x)), the mirror image of Sigmoid,
// and pairs it with s·(1 - s) recomputed from the same formula.
//
// The paired derivative has the wrong sign for this function, so gradient
// descent with it does not minimize the cost. It exists to reproduce the
// behavior of networks trained with that formula.
var ReflectedSigmoid = ActivationFunc{
	Name: "reflected-sigmoid",
	Fn:   reflectedLogistic,
	Deriv: func(x float32) float32 {
		s := reflectedLogistic(x)
		return s * (1 - s)
	},
}

// Tanh is the hyperbolic tangent. Derivative: 1 - tanh²(x).
var Tanh = ActivationFunc{
	Name: "tanh",
	Fn:   math32.Tanh,
	Deriv: func(x float32) float32 {
		t := math32.Tanh(x)
		return 1 - t*t
	},
}

// ReLU is max(0, x). Derivative: 1 for x > 0, else 0.
var ReLU = ActivationFunc{
	Name: "relu",
	Fn: func(x float32) float32 {
		if x < 0 {
			return 0
		}
		return x
	},
	Deriv: func(x float32) float32 {
		if x > 0 {
			return 1
		}
		return 0
	},
}

var activations = map[string]ActivationFunc{
	Sigmoid.Name:          Sigmoid,
	ReflectedSigmoid.Name: ReflectedSigmoid,
	Tanh.Name:             Tanh,
	ReLU.Name:             ReLU,
}

// ActivationByName looks up a built-in activation.
func ActivationByName(name string) (ActivationFunc, error) {
	a, ok := activations[name]
	if !ok {
		return ActivationFunc{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownActivation, name, ActivationNames())
	}
	return a, nil
}

// ActivationNames returns the built-in activation names, sorted.
func ActivationNames() []string {
	names := make([]string, 0, len(activations))
	for name := range activations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
