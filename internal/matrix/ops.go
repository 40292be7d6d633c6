package matrix

// Transpose returns a new (cols, rows) matrix with result[j,i] = m[i,j].
func (m *Matrix) Transpose() *Matrix {
	out := New(m.cols, m.rows)
	for i := 0; i < out.rows; i++ {
		for j := 0; j < out.cols; j++ {
			out.data[i*out.cols+j] = m.data[j*m.cols+i]
		}
	}
	return out
}

// Add returns m + other. Shapes must match.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if !m.SameShape(other) {
		return nil, shapeError("add", m, other)
	}
	out := New(m.rows, m.cols)
	for i := range out.data {
		out.data[i] = m.data[i] + other.data[i]
	}
	return out, nil
}

// Sub returns m - other. Shapes must match.
func (m *Matrix) Sub(other *Matrix) (*Matrix, error) {
	if !m.SameShape(other) {
		return nil, shapeError("subtract", m, other)
	}
	out := New(m.rows, m.cols)
	for i := range out.data {
		out.data[i] = m.data[i] - other.data[i]
	}
	return out, nil
}

// MulElem returns the element-wise (Hadamard) product. Shapes must match.
func (m *Matrix) MulElem(other *Matrix) (*Matrix, error) {
	if !m.SameShape(other) {
		return nil, shapeError("multiply element-wise", m, other)
	}
	out := New(m.rows, m.cols)
	for i := range out.data {
		out.data[i] = m.data[i] * other.data[i]
	}
	return out, nil
}

// MatMul performs matrix multiplication.
// (M, K) @ (K, N) -> (M, N)
//
// Naive O(n³) triple loop; each output element accumulates in float32 over k
// in increasing order.
func (m *Matrix) MatMul(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, shapeError("multiply", m, other)
	}
	rows, inner, cols := m.rows, m.cols, other.cols
	out := New(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum float32
			for k := 0; k < inner; k++ {
				sum += m.data[i*inner+k] * other.data[k*cols+j]
			}
			out.data[i*cols+j] = sum
		}
	}
	return out, nil
}

// Scale returns m multiplied by a scalar.
func (m *Matrix) Scale(s float32) *Matrix {
	out := New(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = v * s
	}
	return out
}

// Apply returns a new matrix with fn applied to every element.
func (m *Matrix) Apply(fn func(float32) float32) *Matrix {
	out := New(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = fn(v)
	}
	return out
}

// Sum returns the sum of all elements.
func (m *Matrix) Sum() float32 {
	var sum float32
	for _, v := range m.data {
		sum += v
	}
	return sum
}

// ArgMax returns the row-major index of the largest element.
//
// Ties resolve to the first occurrence: only a strictly greater element
// replaces the current maximum. Returns -1 for an empty matrix.
func (m *Matrix) ArgMax() int {
	if len(m.data) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(m.data); i++ {
		if m.data[i] > m.data[best] {
			best = i
		}
	}
	return best
}
