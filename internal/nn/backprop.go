package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/matrix"
)

// Gradients holds ∂C/∂W and ∂C/∂b for every layer transition.
//
// Weights[i] and Biases[i] have the shapes of the network's weights[i] and
// biases[i].
type Gradients struct {
	Weights []*matrix.Matrix
	Biases  []*matrix.Matrix
}

// NewGradients returns zero-filled gradients shaped like net's parameters.
func NewGradients(net *Network) *Gradients {
	g := &Gradients{
		Weights: make([]*matrix.Matrix, len(net.weights)),
		Biases:  make([]*matrix.Matrix, len(net.biases)),
	}
	for i := range net.weights {
		g.Weights[i] = matrix.New(net.weights[i].Rows(), net.weights[i].Cols())
		g.Biases[i] = matrix.New(net.biases[i].Rows(), net.biases[i].Cols())
	}
	return g
}

// Accumulate adds other into g, layer by layer.
func (g *Gradients) Accumulate(other *Gradients) error {
	if len(other.Weights) != len(g.Weights) || len(other.Biases) != len(g.Biases) {
		return fmt.Errorf("%w: %d transitions, want %d", ErrLayerIndex, len(other.Weights), len(g.Weights))
	}
	for i := range g.Weights {
		w, err := g.Weights[i].Add(other.Weights[i])
		if err != nil {
			return fmt.Errorf("layer %d weights: %w", i, err)
		}
		b, err := g.Biases[i].Add(other.Biases[i])
		if err != nil {
			return fmt.Errorf("layer %d biases: %w", i, err)
		}
		g.Weights[i] = w
		g.Biases[i] = b
	}
	return nil
}

// Scale returns a copy of g with every element multiplied by s.
func (g *Gradients) Scale(s float32) *Gradients {
	out := &Gradients{
		Weights: make([]*matrix.Matrix, len(g.Weights)),
		Biases:  make([]*matrix.Matrix, len(g.Biases)),
	}
	for i := range g.Weights {
		out.Weights[i] = g.Weights[i].Scale(s)
		out.Biases[i] = g.Biases[i].Scale(s)
	}
	return out
}

// Descend subtracts g from the network's parameters: W[i] -= g.Weights[i],
// b[i] -= g.Biases[i]. Each transition is replaced by a new matrix.
//
// All transitions are computed before any is stored, so a shape error
// leaves the network unchanged.
func (n *Network) Descend(g *Gradients) error {
	if len(g.Weights) != len(n.weights) || len(g.Biases) != len(n.biases) {
		return fmt.Errorf("%w: %d transitions, want %d", ErrLayerIndex, len(g.Weights), len(n.weights))
	}
	weights := make([]*matrix.Matrix, len(n.weights))
	biases := make([]*matrix.Matrix, len(n.biases))
	for i := range n.weights {
		w, err := n.weights[i].Sub(g.Weights[i])
		if err != nil {
			return fmt.Errorf("layer %d weights: %w", i, err)
		}
		b, err := n.biases[i].Sub(g.Biases[i])
		if err != nil {
			return fmt.Errorf("layer %d biases: %w", i, err)
		}
		weights[i] = w
		biases[i] = b
	}
	copy(n.weights, weights)
	copy(n.biases, biases)
	return nil
}

// Backprop computes the gradient of cost with respect to every weight and
// bias for a single (x, y) sample.
//
// The forward pass keeps each pre-activation z[i] and activation a[i]
// (a[0] is a copy of x). Then, with L transitions:
//
//	delta[L-1] = cost'(a[L], y) ⊙ act'(z[L-1])
//	delta[i]   = (W[i+1]ᵀ · delta[i+1]) ⊙ act'(z[i])   for i = L-2 … 0
//	∂b[i] = delta[i],  ∂W[i] = delta[i] · a[i]ᵀ
func (n *Network) Backprop(x, y *matrix.Matrix, act Activation, cost Cost) (*Gradients, error) {
	if err := n.checkInput(x); err != nil {
		return nil, err
	}
	out := n.OutputSize()
	if y.Rows() != out || y.Cols() != 1 {
		return nil, fmt.Errorf("%w: got %v, want (%d, 1)", ErrLabelShape, y.Shape(), out)
	}

	layers := len(n.weights)
	zs := make([]*matrix.Matrix, layers)
	as := make([]*matrix.Matrix, layers+1)
	as[0] = x.Copy()

	// Forward pass.
	for i := 0; i < layers; i++ {
		z, err := n.preActivation(i, as[i])
		if err != nil {
			return nil, err
		}
		zs[i] = z
		as[i+1] = act.Forward(z)
	}

	grads := &Gradients{
		Weights: make([]*matrix.Matrix, layers),
		Biases:  make([]*matrix.Matrix, layers),
	}

	// Output layer.
	costDeriv, err := cost.Derivative(as[layers], y)
	if err != nil {
		return nil, fmt.Errorf("cost derivative: %w", err)
	}
	delta, err := costDeriv.MulElem(act.Derivative(zs[layers-1]))
	if err != nil {
		return nil, fmt.Errorf("layer %d delta: %w", layers-1, err)
	}
	if err := grads.set(layers-1, delta, as[layers-1]); err != nil {
		return nil, err
	}

	// Backward pass. Two-layer networks have nothing left to do.
	for i := layers - 2; i >= 0; i-- {
		back, err := n.weights[i+1].Transpose().MatMul(delta)
		if err != nil {
			return nil, fmt.Errorf("layer %d delta: %w", i, err)
		}
		delta, err = back.MulElem(act.Derivative(zs[i]))
		if err != nil {
			return nil, fmt.Errorf("layer %d delta: %w", i, err)
		}
		if err := grads.set(i, delta, as[i]); err != nil {
			return nil, err
		}
	}

	return grads, nil
}

// set stores ∂b[i] = delta and ∂W[i] = delta · prevᵀ.
func (g *Gradients) set(i int, delta, prev *matrix.Matrix) error {
	w, err := delta.MatMul(prev.Transpose())
	if err != nil {
		return fmt.Errorf("layer %d weight gradient: %w", i, err)
	}
	g.Weights[i] = w
	g.Biases[i] = delta
	return nil
}
