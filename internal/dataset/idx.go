package dataset

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	idxImagesMagic = 2051
	idxLabelsMagic = 2049
)

// openMaybeGzip opens name, or name+".gz" through a gzip reader when only
// the compressed file exists.
func openMaybeGzip(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err == nil {
		return f, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "open")
	}

	gz, gzErr := os.Open(name + ".gz")
	if gzErr != nil {
		return nil, errors.Wrap(err, "open")
	}
	zr, err := gzip.NewReader(bufio.NewReader(gz))
	if err != nil {
		gz.Close()
		return nil, errors.Wrapf(err, "gzip %s.gz", name)
	}
	return &gzipFile{Reader: zr, file: gz}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return zerr
}

// maxIDXImageSize bounds rows·cols so a corrupt header cannot request an
// absurd per-image allocation.
const maxIDXImageSize = 1 << 24

// idxImageSet is the decoded content of an IDX image file.
type idxImageSet struct {
	Rows, Cols int
	Images     [][]byte
}

// readIDXImages reads an image file in IDX format.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
//
// The image count in the header is not trusted for allocation: images are
// appended as they are read, so a short file fails on the first missing
// image.
func readIDXImages(r io.Reader) (*idxImageSet, error) {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, errors.Wrap(err, "read magic")
	}
	if magic != idxImagesMagic {
		return nil, errors.Wrapf(ErrBadMagic, "got %d, want %d", magic, idxImagesMagic)
	}

	var header [3]uint32 // count, rows, cols
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(err, "read dimensions")
	}

	imageSize := uint64(header[1]) * uint64(header[2])
	if imageSize == 0 || imageSize > maxIDXImageSize {
		return nil, errors.Wrapf(ErrBadDimensions, "%dx%d", header[1], header[2])
	}

	out := &idxImageSet{Rows: int(header[1]), Cols: int(header[2])}
	for i := uint32(0); i < header[0]; i++ {
		img := make([]byte, imageSize)
		if _, err := io.ReadFull(r, img); err != nil {
			return nil, errors.Wrapf(err, "read image %d of %d", i, header[0])
		}
		out.Images = append(out.Images, img)
	}
	return out, nil
}

// readIDXLabels reads a label file in IDX format.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func readIDXLabels(r io.Reader) ([]byte, error) {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, errors.Wrap(err, "read magic")
	}
	if magic != idxLabelsMagic {
		return nil, errors.Wrapf(ErrBadMagic, "got %d, want %d", magic, idxLabelsMagic)
	}

	var numLabels uint32
	if err := binary.Read(r, binary.BigEndian, &numLabels); err != nil {
		return nil, errors.Wrap(err, "read label count")
	}

	labels, err := io.ReadAll(io.LimitReader(r, int64(numLabels)))
	if err != nil {
		return nil, errors.Wrap(err, "read labels")
	}
	if len(labels) != int(numLabels) {
		return nil, errors.Wrapf(io.ErrUnexpectedEOF, "read labels: got %d of %d", len(labels), numLabels)
	}
	return labels, nil
}

func readIDXFile[T any](name string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := openMaybeGzip(name)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	out, err := read(bufio.NewReader(f))
	if err != nil {
		return zero, errors.Wrap(err, name)
	}
	return out, nil
}
