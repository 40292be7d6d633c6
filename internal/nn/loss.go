package nn

import (
	"fmt"
	"sort"

	"github.com/born-ml/mlp/internal/matrix"
)

// Cost measures how far a prediction is from its label.
//
// Derivative returns ∂C/∂prediction with the prediction's shape. Both
// methods fail with a matrix shape error when the shapes differ.
type Cost interface {
	Forward(prediction, label *matrix.Matrix) (float32, error)
	Derivative(prediction, label *matrix.Matrix) (*matrix.Matrix, error)
}

// SquaredError is the quadratic cost.
//
//	C  = ½ · Σ (prediction - label)²
//	C' = prediction - label
//
// The ½ makes Derivative the exact gradient of Forward.
type SquaredError struct{}

// Forward returns ½·Σ(prediction - label)².
func (SquaredError) Forward(prediction, label *matrix.Matrix) (float32, error) {
	diff, err := prediction.Sub(label)
	if err != nil {
		return 0, err
	}
	var sum float32
	for _, v := range diff.Data() {
		sum += v * v
	}
	return sum / 2, nil
}

// Derivative returns prediction - label.
func (SquaredError) Derivative(prediction, label *matrix.Matrix) (*matrix.Matrix, error) {
	return prediction.Sub(label)
}

var costs = map[string]Cost{
	"quadratic":     SquaredError{},
	"cross-entropy": CrossEntropy{},
}

// CostByName looks up a built-in cost: "quadratic" or "cross-entropy".
func CostByName(name string) (Cost, error) {
	c, ok := costs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownCost, name, CostNames())
	}
	return c, nil
}

// CostNames returns the built-in cost names, sorted.
func CostNames() []string {
	names := make([]string, 0, len(costs))
	for name := range costs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
