// Package matrix implements the dense float32 matrix used by the trainer.
//
// Matrices are row-major: element (i, j) lives at index i*cols + j of the
// backing slice. Every arithmetic operation allocates a fresh result, so an
// output never aliases the storage of its inputs. Fill and Set are the only
// in-place mutators.
package matrix

import (
	"fmt"
	"strings"
)

// Shape is a (rows, cols) pair.
type Shape [2]int

// String renders the shape as "(rows, cols)".
func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s[0], s[1])
}

// Matrix is a fixed-size 2-D matrix of float32 values.
//
// Example:
//
//	a := matrix.New(2, 3)
//	a.Fill(1)
//	b := a.Transpose()   // (3, 2)
//	c, err := a.MatMul(b) // (2, 2)
type Matrix struct {
	rows int
	cols int
	data []float32
}

// New creates a zero-filled matrix with the given shape.
//
// Negative dimensions are a programming error and panic. Zero-sized
// matrices are allowed.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimensions (%d, %d)", rows, cols))
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

// FromSlice creates a matrix from row-major data.
// The slice is copied into the matrix's memory.
func FromSlice(rows, cols int, data []float32) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("%w: shape (%d, %d) requires %d elements, but got %d",
			ErrBadShape, rows, cols, rows*cols, len(data))
	}
	m := New(rows, cols)
	copy(m.data, data)
	return m, nil
}

// Column creates a (len(values), 1) column vector.
func Column(values ...float32) *Matrix {
	m := New(len(values), 1)
	copy(m.data, values)
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// Shape returns (rows, cols).
func (m *Matrix) Shape() Shape {
	return Shape{m.rows, m.cols}
}

// Len returns the number of elements.
func (m *Matrix) Len() int {
	return len(m.data)
}

// SameShape reports whether m and other have identical dimensions.
func (m *Matrix) SameShape(other *Matrix) bool {
	return m.rows == other.rows && m.cols == other.cols
}

// Data returns the row-major backing slice.
//
// WARNING: the slice is not copied; writes through it modify the matrix.
func (m *Matrix) Data() []float32 {
	return m.data
}

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) (float32, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, fmt.Errorf("%w: (%d, %d) in %v", ErrOutOfRange, i, j, m.Shape())
	}
	return m.data[i*m.cols+j], nil
}

// Set stores v at (i, j).
func (m *Matrix) Set(i, j int, v float32) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return fmt.Errorf("%w: (%d, %d) in %v", ErrOutOfRange, i, j, m.Shape())
	}
	m.data[i*m.cols+j] = v
	return nil
}

// Copy returns a deep copy with independent storage.
func (m *Matrix) Copy() *Matrix {
	out := New(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Fill sets every element to value, in place.
func (m *Matrix) Fill(value float32) {
	for i := range m.data {
		m.data[i] = value
	}
}

// Equal reports whether both matrices have the same shape and elements.
func (m *Matrix) Equal(other *Matrix) bool {
	if !m.SameShape(other) {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// EqualApprox is Equal with an absolute per-element tolerance.
func (m *Matrix) EqualApprox(other *Matrix, eps float32) bool {
	if !m.SameShape(other) {
		return false
	}
	for i, v := range m.data {
		d := v - other.data[i]
		if d < 0 {
			d = -d
		}
		if d > eps {
			return false
		}
	}
	return true
}

// String formats the matrix one row per line as "[ 0.00 1.00 ]".
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < m.cols; j++ {
			fmt.Fprintf(&sb, " %.2f", m.data[i*m.cols+j])
		}
		sb.WriteString(" ]\n")
	}
	return sb.String()
}
