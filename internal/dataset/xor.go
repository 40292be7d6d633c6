package dataset

import "github.com/born-ml/mlp/internal/matrix"

var xorTable = [4][3]float32{
	{0, 0, 0},
	{0, 1, 1},
	{1, 0, 1},
	{1, 1, 0},
}

// XOR returns the four XOR points with (1, 1) scalar labels.
func XOR() *Dataset {
	d := &Dataset{}
	for _, row := range xorTable {
		d.Features = append(d.Features, matrix.Column(row[0], row[1]))
		d.Labels = append(d.Labels, matrix.Column(row[2]))
	}
	return d
}

// XOROneHot returns the four XOR points with (2, 1) one-hot labels:
// class 0 is "false", class 1 is "true".
func XOROneHot() *Dataset {
	d := &Dataset{}
	for _, row := range xorTable {
		d.Features = append(d.Features, matrix.Column(row[0], row[1]))
		d.Labels = append(d.Labels, matrix.Column(1-row[2], row[2]))
	}
	return d
}
