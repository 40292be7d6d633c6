// Package dataset loads and prepares training samples.
//
// A Dataset is two index-aligned slices of column matrices: Features[i] is
// the input for sample i and Labels[i] its target. Loaders normalize pixel
// inputs to [0, 1] and one-hot encode class labels.
package dataset

import (
	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/matrix"
)

// Common errors.
var (
	ErrLengthMismatch = errors.New("dataset: features and labels differ in length")
	ErrEmpty          = errors.New("dataset: no samples")
	ErrSampleShape    = errors.New("dataset: inconsistent sample shape")
	ErrBadMagic       = errors.New("dataset: invalid IDX magic number")
	ErrBadDimensions  = errors.New("dataset: invalid IDX image dimensions")
	ErrCountMismatch  = errors.New("dataset: image and label counts differ")
	ErrBadRecord      = errors.New("dataset: malformed CSV record")
	ErrClassRange     = errors.New("dataset: class out of range")
	ErrBadRatio       = errors.New("dataset: split ratio must be in [0, 1]")
)

// Dataset holds index-aligned features and labels.
type Dataset struct {
	Features []*matrix.Matrix
	Labels   []*matrix.Matrix
}

// New creates a Dataset after checking that both slices have equal length.
func New(features, labels []*matrix.Matrix) (*Dataset, error) {
	if len(features) != len(labels) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d features, %d labels", len(features), len(labels))
	}
	return &Dataset{Features: features, Labels: labels}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Features)
}

// Validate checks that the dataset is non-empty, aligned, and that every
// feature (and every label) has the same shape.
func (d *Dataset) Validate() error {
	if len(d.Features) != len(d.Labels) {
		return errors.Wrapf(ErrLengthMismatch, "%d features, %d labels", len(d.Features), len(d.Labels))
	}
	if len(d.Features) == 0 {
		return ErrEmpty
	}
	fs, ls := d.Features[0].Shape(), d.Labels[0].Shape()
	for i := range d.Features {
		if d.Features[i].Shape() != fs {
			return errors.Wrapf(ErrSampleShape, "feature %d is %v, want %v", i, d.Features[i].Shape(), fs)
		}
		if d.Labels[i].Shape() != ls {
			return errors.Wrapf(ErrSampleShape, "label %d is %v, want %v", i, d.Labels[i].Shape(), ls)
		}
	}
	return nil
}

// Split splits the dataset into train and validation sets.
//
// The first (1 - validationRatio) share of samples goes to train. Both
// results share matrices with d.
func (d *Dataset) Split(validationRatio float32) (*Dataset, *Dataset, error) {
	if validationRatio < 0 || validationRatio > 1 {
		return nil, nil, errors.Wrapf(ErrBadRatio, "got %v", validationRatio)
	}
	splitIdx := int(float32(d.Len()) * (1 - validationRatio))

	train := &Dataset{
		Features: d.Features[:splitIdx:splitIdx],
		Labels:   d.Labels[:splitIdx:splitIdx],
	}
	validation := &Dataset{
		Features: d.Features[splitIdx:],
		Labels:   d.Labels[splitIdx:],
	}
	return train, validation, nil
}

// Head returns a dataset view of at most n samples. n <= 0 returns d.
func (d *Dataset) Head(n int) *Dataset {
	if n <= 0 || n >= d.Len() {
		return d
	}
	return &Dataset{Features: d.Features[:n:n], Labels: d.Labels[:n:n]}
}

// OneHot returns a (classes, 1) column with a 1 at row class.
func OneHot(class, classes int) (*matrix.Matrix, error) {
	if class < 0 || class >= classes {
		return nil, errors.Wrapf(ErrClassRange, "class %d of %d", class, classes)
	}
	m := matrix.New(classes, 1)
	m.Data()[class] = 1
	return m, nil
}
