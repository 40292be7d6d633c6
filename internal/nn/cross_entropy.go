package nn

import (
	"github.com/chewxy/math32"

	"github.com/born-ml/mlp/internal/matrix"
)

// crossEntropyEps keeps predictions away from 0 and 1 so the log and the
// division in Derivative stay finite.
const crossEntropyEps = 1e-6

// CrossEntropy is the binary cross-entropy cost for outputs in (0, 1), such
// as those of Sigmoid.
//
// Mathematical Formulation:
//
//	C  = -Σ [ y·ln(p) + (1 - y)·ln(1 - p) ]
//	C' = (p - y) / (p·(1 - p))
//
// Paired with Sigmoid the output delta C'·σ'(z) reduces to p - y, so the
// learning slowdown of SquaredError on saturated outputs goes away.
// Predictions are clamped to [1e-6, 1 - 1e-6].
type CrossEntropy struct{}

// Forward returns -Σ[y·ln(p) + (1-y)·ln(1-p)].
func (CrossEntropy) Forward(prediction, label *matrix.Matrix) (float32, error) {
	if !prediction.SameShape(label) {
		return 0, &matrix.ShapeError{Op: "compare", A: prediction.Shape(), B: label.Shape()}
	}
	var sum float32
	p, y := prediction.Data(), label.Data()
	for k := range p {
		pk := clampProb(p[k])
		sum -= y[k]*math32.Log(pk) + (1-y[k])*math32.Log(1-pk)
	}
	return sum, nil
}

// Derivative returns (p - y) / (p·(1 - p)).
func (CrossEntropy) Derivative(prediction, label *matrix.Matrix) (*matrix.Matrix, error) {
	if !prediction.SameShape(label) {
		return nil, &matrix.ShapeError{Op: "compare", A: prediction.Shape(), B: label.Shape()}
	}
	out := matrix.New(prediction.Rows(), prediction.Cols())
	p, y, d := prediction.Data(), label.Data(), out.Data()
	for k := range p {
		pk := clampProb(p[k])
		d[k] = (pk - y[k]) / (pk * (1 - pk))
	}
	return out, nil
}

func clampProb(p float32) float32 {
	switch {
	case p < crossEntropyEps:
		return crossEntropyEps
	case p > 1-crossEntropyEps:
		return 1 - crossEntropyEps
	default:
		return p
	}
}
