// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense float32 matrices used by the MLP trainer.
//
// # Overview
//
// Matrices are row-major and own their storage. This package provides:
//   - Construction: New (zero-filled), FromSlice, Column
//   - Elementwise arithmetic: Add, Sub, MulElem, Scale, Apply
//   - Linear algebra: MatMul, Transpose
//   - Reductions: Sum, ArgMax
//
// Every operation returns a fresh matrix. Operands are never modified, so a
// caller can drop intermediates as soon as it is done with them.
//
// # Basic Usage
//
//	import "github.com/born-ml/mlp/matrix"
//
//	func main() {
//	    w, _ := matrix.FromSlice(2, 3, []float32{1, 2, 3, 4, 5, 6})
//	    x := matrix.Column(1, 0, -1)
//
//	    y, err := w.MatMul(x) // (2, 1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(y)
//	}
//
// # Errors
//
// Binary operations return a *ShapeError when operand shapes are not
// compatible. It matches ErrShapeMismatch with errors.Is.
package matrix
