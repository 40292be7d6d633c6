package optim

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/mlp/internal/matrix"
)

// Shuffle permutes features and labels in place with the same uniformly
// random permutation, so features[i] stays paired with labels[i].
//
// Fisher-Yates: for i from len-1 down to 1, swap i with j drawn uniformly
// from [0, i].
func Shuffle(rng *rand.Rand, features, labels []*matrix.Matrix) error {
	if len(features) != len(labels) {
		return fmt.Errorf("%w: %d features, %d labels", ErrLengthMismatch, len(features), len(labels))
	}
	for i := len(features) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		features[i], features[j] = features[j], features[i]
		labels[i], labels[j] = labels[j], labels[i]
	}
	return nil
}
