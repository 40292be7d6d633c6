// Package dataset provides training data loading for the MLP trainer.
//
// This package wraps the internal readers and exports a clean public API for
// the MNIST IDX files (optionally gzipped), the Kaggle-style MNIST CSV and
// the four-point XOR table.
//
// Example usage:
//
//	import "github.com/born-ml/mlp/dataset"
//
//	// Reads train-images-idx3-ubyte[.gz] and train-labels-idx1-ubyte[.gz].
//	train, err := dataset.LoadMNIST("data", true, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Samples: %d\n", train.Len())
//	fmt.Printf("Input shape: %v\n", train.Features[0].Shape()) // (784, 1)
package dataset

import (
	"io"

	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/matrix"
)

// Dataset pairs feature columns with label columns.
type Dataset = dataset.Dataset

// MNIST dimensions.
const (
	MNISTPixels  = dataset.MNISTPixels
	MNISTClasses = dataset.MNISTClasses
)

// Errors returned by the loaders.
var (
	ErrLengthMismatch = dataset.ErrLengthMismatch
	ErrEmpty          = dataset.ErrEmpty
	ErrSampleShape    = dataset.ErrSampleShape
	ErrBadMagic       = dataset.ErrBadMagic
	ErrBadDimensions  = dataset.ErrBadDimensions
	ErrCountMismatch  = dataset.ErrCountMismatch
	ErrBadRecord      = dataset.ErrBadRecord
	ErrClassRange     = dataset.ErrClassRange
	ErrBadRatio       = dataset.ErrBadRatio
)

// New pairs features with labels after checking that they line up.
func New(features, labels []*matrix.Matrix) (*Dataset, error) {
	return dataset.New(features, labels)
}

// LoadMNIST reads the training (train = true) or test set from dataDir.
// maxSamples > 0 truncates the set.
func LoadMNIST(dataDir string, train bool, maxSamples int) (*Dataset, error) {
	return dataset.LoadMNIST(dataDir, train, maxSamples)
}

// LoadMNISTCSV reads a label,pixel0,...,pixel783 CSV file with a header row.
func LoadMNISTCSV(filename string, maxSamples int) (*Dataset, error) {
	return dataset.LoadMNISTCSV(filename, maxSamples)
}

// ReadMNISTCSV is LoadMNISTCSV over an arbitrary reader.
func ReadMNISTCSV(r io.Reader, maxSamples int) (*Dataset, error) {
	return dataset.ReadMNISTCSV(r, maxSamples)
}

// OneHot returns a (classes, 1) column with a 1 at class.
func OneHot(class, classes int) (*matrix.Matrix, error) {
	return dataset.OneHot(class, classes)
}

// XOR returns the four XOR points with scalar labels.
func XOR() *Dataset {
	return dataset.XOR()
}

// XOROneHot returns the four XOR points with two-class one-hot labels.
func XOROneHot() *Dataset {
	return dataset.XOROneHot()
}
