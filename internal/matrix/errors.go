package matrix

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrShapeMismatch indicates incompatible operand shapes, e.g. Add on
	// different shapes or MatMul where a.Cols() != b.Rows().
	ErrShapeMismatch = errors.New("matrix: shape mismatch")

	// ErrBadShape is returned when data does not fit the requested shape.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")
)

// ShapeError describes a failed binary operation together with both operand shapes.
type ShapeError struct {
	Op string // Operation name (e.g., "add", "matmul")
	A  Shape  // Left operand shape
	B  Shape  // Right operand shape
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("matrix: cannot %s %v and %v", e.Op, e.A, e.B)
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func shapeError(op string, a, b *Matrix) error {
	return &ShapeError{Op: op, A: a.Shape(), B: b.Shape()}
}
