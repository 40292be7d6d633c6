package optim

import (
	"fmt"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// Evaluate counts samples whose predicted class matches the label's class,
// both taken as the index of the largest element (first one on ties).
func Evaluate(net *nn.Network, features, labels []*matrix.Matrix, act nn.Activation) (int, error) {
	if len(features) != len(labels) {
		return 0, fmt.Errorf("%w: %d features, %d labels", ErrLengthMismatch, len(features), len(labels))
	}
	correct := 0
	for i := range features {
		pred, err := net.Predict(features[i], act)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		if pred.ArgMax() == labels[i].ArgMax() {
			correct++
		}
	}
	return correct, nil
}

// EvaluateBinary counts samples where every output, thresholded at
// threshold, agrees with the thresholded label.
//
// Use it for single-output networks, where Evaluate is always right.
func EvaluateBinary(net *nn.Network, features, labels []*matrix.Matrix, act nn.Activation, threshold float32) (int, error) {
	if len(features) != len(labels) {
		return 0, fmt.Errorf("%w: %d features, %d labels", ErrLengthMismatch, len(features), len(labels))
	}
	correct := 0
	for i := range features {
		pred, err := net.Predict(features[i], act)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		if !pred.SameShape(labels[i]) {
			return 0, fmt.Errorf("sample %d: %w", i, &matrix.ShapeError{Op: "compare", A: pred.Shape(), B: labels[i].Shape()})
		}
		if thresholdMatch(pred.Data(), labels[i].Data(), threshold) {
			correct++
		}
	}
	return correct, nil
}

func thresholdMatch(pred, label []float32, threshold float32) bool {
	for k := range pred {
		if (pred[k] >= threshold) != (label[k] >= threshold) {
			return false
		}
	}
	return true
}

// MeanLoss returns the average cost over all samples.
func MeanLoss(net *nn.Network, features, labels []*matrix.Matrix, act nn.Activation, cost nn.Cost) (float32, error) {
	if len(features) != len(labels) {
		return 0, fmt.Errorf("%w: %d features, %d labels", ErrLengthMismatch, len(features), len(labels))
	}
	if len(features) == 0 {
		return 0, ErrEmptyDataset
	}
	var total float32
	for i := range features {
		pred, err := net.Predict(features[i], act)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		loss, err := cost.Forward(pred, labels[i])
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		total += loss
	}
	return total / float32(len(features)), nil
}
