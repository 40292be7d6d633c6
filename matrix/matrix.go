// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import "github.com/born-ml/mlp/internal/matrix"

// Matrix is a dense row-major float32 matrix.
type Matrix = matrix.Matrix

// Shape is (rows, cols).
type Shape = matrix.Shape

// ShapeError reports operands whose shapes do not fit an operation.
type ShapeError = matrix.ShapeError

// Errors returned by matrix operations.
var (
	ErrShapeMismatch = matrix.ErrShapeMismatch
	ErrBadShape      = matrix.ErrBadShape
	ErrOutOfRange    = matrix.ErrOutOfRange
)

// New creates a zero-filled rows×cols matrix.
//
// Example:
//
//	m := matrix.New(30, 784)
func New(rows, cols int) *Matrix {
	return matrix.New(rows, cols)
}

// FromSlice creates a rows×cols matrix from row-major data.
// The data is copied.
func FromSlice(rows, cols int, data []float32) (*Matrix, error) {
	return matrix.FromSlice(rows, cols, data)
}

// Column creates an n×1 column vector.
func Column(values ...float32) *Matrix {
	return matrix.Column(values...)
}
