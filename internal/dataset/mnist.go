package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/matrix"
)

// MNIST geometry.
const (
	MNISTPixels  = 28 * 28
	MNISTClasses = 10
)

// LoadMNIST loads MNIST from the official IDX files in dataDir.
//
// Expected files (each optionally gzip-compressed with a .gz suffix):
//   - train-images-idx3-ubyte, train-labels-idx1-ubyte (train = true)
//   - t10k-images-idx3-ubyte, t10k-labels-idx1-ubyte (train = false)
//
// Features are (784, 1) columns scaled to [0, 1]; labels are (10, 1)
// one-hot columns. maxSamples <= 0 loads everything.
func LoadMNIST(dataDir string, train bool, maxSamples int) (*Dataset, error) {
	prefix := "t10k"
	if train {
		prefix = "train"
	}
	imageFile := filepath.Join(dataDir, prefix+"-images-idx3-ubyte")
	labelFile := filepath.Join(dataDir, prefix+"-labels-idx1-ubyte")

	set, err := readIDXFile(imageFile, readIDXImages)
	if err != nil {
		return nil, errors.Wrap(err, "load images")
	}
	if set.Rows*set.Cols != MNISTPixels {
		return nil, errors.Wrapf(ErrBadDimensions, "load images: %dx%d, want 28x28", set.Rows, set.Cols)
	}
	images := set.Images
	labels, err := readIDXFile(labelFile, readIDXLabels)
	if err != nil {
		return nil, errors.Wrap(err, "load labels")
	}
	if len(images) != len(labels) {
		return nil, errors.Wrapf(ErrCountMismatch, "%d images, %d labels", len(images), len(labels))
	}

	n := len(images)
	if maxSamples > 0 && n > maxSamples {
		n = maxSamples
	}

	d := &Dataset{
		Features: make([]*matrix.Matrix, n),
		Labels:   make([]*matrix.Matrix, n),
	}
	for i := 0; i < n; i++ {
		d.Features[i] = pixelsToColumn(images[i])
		d.Labels[i], err = OneHot(int(labels[i]), MNISTClasses)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}
	}
	return d, nil
}

func pixelsToColumn(pixels []byte) *matrix.Matrix {
	m := matrix.New(len(pixels), 1)
	data := m.Data()
	for j, p := range pixels {
		data[j] = float32(p) / 255
	}
	return m
}

// LoadMNISTCSV loads MNIST from a Kaggle-style CSV file.
//
// CSV Format:
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//
// The header row is skipped. maxSamples <= 0 loads everything.
func LoadMNISTCSV(filename string, maxSamples int) (*Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	return ReadMNISTCSV(f, maxSamples)
}

// ReadMNISTCSV is LoadMNISTCSV over an arbitrary reader.
func ReadMNISTCSV(r io.Reader, maxSamples int) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(ErrEmpty, "missing header")
		}
		return nil, errors.Wrap(err, "read header")
	}

	d := &Dataset{}
	pixels := make([]byte, MNISTPixels)
	for row := 1; maxSamples <= 0 || d.Len() < maxSamples; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}
		if len(record) != MNISTPixels+1 {
			return nil, errors.Wrapf(ErrBadRecord, "row %d: got %d fields, want %d", row, len(record), MNISTPixels+1)
		}

		class, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, errors.Wrapf(ErrBadRecord, "row %d: label %q", row, record[0])
		}
		label, err := OneHot(class, MNISTClasses)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}

		for j := range pixels {
			v, err := strconv.ParseUint(record[j+1], 10, 8)
			if err != nil {
				return nil, errors.Wrapf(ErrBadRecord, "row %d, column %d: pixel %q", row, j+1, record[j+1])
			}
			pixels[j] = byte(v)
		}

		d.Features = append(d.Features, pixelsToColumn(pixels))
		d.Labels = append(d.Labels, label)
	}

	if d.Len() == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}
