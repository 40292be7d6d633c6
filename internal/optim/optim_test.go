package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
	"github.com/born-ml/mlp/internal/parallel"
)

func mustMatrix(t *testing.T, rows, cols int, data ...float32) *matrix.Matrix {
	t.Helper()
	m, err := matrix.FromSlice(rows, cols, data)
	require.NoError(t, err)
	return m
}

// newNet builds a network with deterministic Normal weights for the given seed.
func newNet(t *testing.T, sizes []int, seed int64) *nn.Network {
	t.Helper()
	rng := nn.NewRand(seed)
	net, err := nn.NewNetwork(sizes, nn.Normal(rng), nn.Normal(rng))
	require.NoError(t, err)
	return net
}

// randomData returns n samples with inputs in [0, 1) and one-hot labels.
func randomData(t *testing.T, n, in, classes int, seed int64) *dataset.Dataset {
	t.Helper()
	rng := nn.NewRand(seed)
	d := &dataset.Dataset{}
	for i := 0; i < n; i++ {
		x := matrix.New(in, 1)
		for j := range x.Data() {
			x.Data()[j] = rng.Float32()
		}
		y, err := dataset.OneHot(rng.Intn(classes), classes)
		require.NoError(t, err)
		d.Features = append(d.Features, x)
		d.Labels = append(d.Labels, y)
	}
	return d
}

func assertSameParameters(t *testing.T, a, b *nn.Network, eps float32) {
	t.Helper()
	require.Equal(t, a.NumTransitions(), b.NumTransitions())
	for i := 0; i < a.NumTransitions(); i++ {
		assert.True(t, a.Weight(i).EqualApprox(b.Weight(i), eps), "weights %d differ", i)
		assert.True(t, a.Bias(i).EqualApprox(b.Bias(i), eps), "biases %d differ", i)
	}
}

func TestShuffle_PreservesPairing(t *testing.T) {
	n := 50
	features := make([]*matrix.Matrix, n)
	labels := make([]*matrix.Matrix, n)
	for i := 0; i < n; i++ {
		features[i] = matrix.Column(float32(i))
		labels[i] = matrix.Column(float32(i))
	}
	before := append([]*matrix.Matrix(nil), features...)

	require.NoError(t, optim.Shuffle(nn.NewRand(7), features, labels))

	seen := make(map[float32]bool)
	moved := 0
	for i := range features {
		id := features[i].Data()[0]
		assert.Equal(t, id, labels[i].Data()[0], "pair %d broken", i)
		seen[id] = true
		if features[i] != before[i] {
			moved++
		}
	}
	assert.Len(t, seen, n, "shuffle must be a permutation")
	assert.Positive(t, moved)
}

func TestShuffle_Deterministic(t *testing.T) {
	build := func() []*matrix.Matrix {
		out := make([]*matrix.Matrix, 20)
		for i := range out {
			out[i] = matrix.Column(float32(i))
		}
		return out
	}
	a, al := build(), build()
	b, bl := build(), build()
	require.NoError(t, optim.Shuffle(nn.NewRand(3), a, al))
	require.NoError(t, optim.Shuffle(nn.NewRand(3), b, bl))
	for i := range a {
		assert.Equal(t, a[i].Data()[0], b[i].Data()[0])
	}
}

func TestShuffle_Edges(t *testing.T) {
	rng := nn.NewRand(1)
	assert.NoError(t, optim.Shuffle(rng, nil, nil))

	one := []*matrix.Matrix{matrix.Column(1)}
	assert.NoError(t, optim.Shuffle(rng, one, []*matrix.Matrix{matrix.Column(1)}))

	err := optim.Shuffle(rng, one, nil)
	assert.ErrorIs(t, err, optim.ErrLengthMismatch)
}

// TestStep_FullBatchEqualsGradientDescent checks that one Step over the whole
// set equals W -= lr·mean(∂C/∂W).
func TestStep_FullBatchEqualsGradientDescent(t *testing.T) {
	sizes := []int{4, 3, 2}
	data := randomData(t, 6, 4, 2, 21)
	lr := float32(0.5)

	stepped := newNet(t, sizes, 5)
	manual := newNet(t, sizes, 5)

	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{LR: lr, BatchSize: 6, Epochs: 1})
	require.NoError(t, sgd.Step(stepped, data.Features, data.Labels))

	sum := nn.NewGradients(manual)
	for i := range data.Features {
		g, err := manual.Backprop(data.Features[i], data.Labels[i], nn.Sigmoid, nn.SquaredError{})
		require.NoError(t, err)
		require.NoError(t, sum.Accumulate(g))
	}
	require.NoError(t, manual.Descend(sum.Scale(lr/float32(data.Len()))))

	assertSameParameters(t, stepped, manual, 1e-6)
}

func TestStep_SingleSampleMovesAgainstGradient(t *testing.T) {
	net, err := nn.NewNetwork([]int{2, 1}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, net.SetParameters(0, mustMatrix(t, 1, 2, 0.5, -0.5), matrix.Column(0.1)))

	x, y := matrix.Column(1, 1), matrix.Column(1)
	g, err := net.Backprop(x, y, nn.Sigmoid, nn.SquaredError{})
	require.NoError(t, err)
	before := net.Bias(0).Data()[0]

	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{LR: 2})
	require.NoError(t, sgd.Step(net, []*matrix.Matrix{x}, []*matrix.Matrix{y}))

	assert.InDelta(t, before-2*g.Biases[0].Data()[0], net.Bias(0).Data()[0], 1e-6)
}

func TestStep_ParallelMatchesSequential(t *testing.T) {
	sizes := []int{5, 6, 3}
	data := randomData(t, 17, 5, 3, 8)

	seq := newNet(t, sizes, 2)
	par := newNet(t, sizes, 2)

	seqSGD := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{LR: 1, Parallel: parallel.Sequential()})
	parSGD := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{
		LR:       1,
		Parallel: parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1},
	})

	require.NoError(t, seqSGD.Step(seq, data.Features, data.Labels))
	require.NoError(t, parSGD.Step(par, data.Features, data.Labels))

	// Summation order is fixed, so results are bit-identical.
	assertSameParameters(t, seq, par, 0)
}

func TestStep_Errors(t *testing.T) {
	net := newNet(t, []int{2, 1}, 1)
	x := []*matrix.Matrix{matrix.Column(1, 1)}
	y := []*matrix.Matrix{matrix.Column(1)}

	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{LR: 1})
	assert.ErrorIs(t, sgd.Step(net, nil, nil), optim.ErrEmptyBatch)
	assert.ErrorIs(t, sgd.Step(net, x, nil), optim.ErrLengthMismatch)

	zeroLR := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{})
	assert.ErrorIs(t, zeroLR.Step(net, x, y), optim.ErrInvalidLearningRate)
}

func TestStep_FailedSampleLeavesNetworkUnchanged(t *testing.T) {
	net := newNet(t, []int{2, 2, 1}, 4)
	before := net.Weight(0).Copy()

	features := []*matrix.Matrix{matrix.Column(1, 0), matrix.Column(0, 1)}
	labels := []*matrix.Matrix{matrix.Column(1), matrix.Column(1, 0)}

	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{LR: 1})
	err := sgd.Step(net, features, labels)
	assert.ErrorIs(t, err, nn.ErrLabelShape)
	assert.Contains(t, err.Error(), "sample 1")
	assert.True(t, before.Equal(net.Weight(0)))
}

func TestSGD_LR(t *testing.T) {
	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Defaults())
	assert.Equal(t, float32(3), sgd.LR())
	sgd.SetLR(0.5)
	assert.Equal(t, float32(0.5), sgd.LR())
}

func TestFit_Validation(t *testing.T) {
	net := newNet(t, []int{2, 1}, 1)
	data := dataset.XOR()

	tests := []struct {
		name string
		cfg  optim.Config
		data *dataset.Dataset
		want error
	}{
		{"nil data", optim.Defaults(), nil, optim.ErrEmptyDataset},
		{"empty data", optim.Defaults(), &dataset.Dataset{}, optim.ErrEmptyDataset},
		{"mismatch", optim.Defaults(), &dataset.Dataset{Features: data.Features, Labels: data.Labels[:2]}, optim.ErrLengthMismatch},
		{"zero batch", optim.Config{LR: 1, Epochs: 1}, data, optim.ErrInvalidBatchSize},
		{"negative batch", optim.Config{LR: 1, Epochs: 1, BatchSize: -3}, data, optim.ErrInvalidBatchSize},
		{"zero epochs", optim.Config{LR: 1, BatchSize: 2}, data, optim.ErrInvalidEpochs},
		{"zero lr", optim.Config{BatchSize: 2, Epochs: 1}, data, optim.ErrInvalidLearningRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, tt.cfg)
			_, err := sgd.Fit(net, tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFit_BatchingAndCallbacks(t *testing.T) {
	net := newNet(t, []int{3, 4, 2}, 9)
	data := randomData(t, 5, 3, 2, 10)
	eval := randomData(t, 3, 3, 2, 11)

	var calls []optim.EpochStats
	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{
		LR:        0.5,
		BatchSize: 2,
		Epochs:    3,
		Seed:      1,
		Eval:      eval,
		OnEpoch:   func(s optim.EpochStats) { calls = append(calls, s) },
	})

	history, err := sgd.Fit(net, data)
	require.NoError(t, err)
	require.Len(t, history.Epochs, 3)
	assert.Equal(t, history.Epochs, calls)

	for i, s := range history.Epochs {
		assert.Equal(t, i+1, s.Epoch)
		assert.Equal(t, 3, s.Epochs)
		// 5 samples in batches of 2: 2 + 2 + 1. The trailing batch is
		// truncated in every epoch, not just the first.
		assert.Equal(t, 3, s.Batches)
		assert.Equal(t, 3, s.Total)
		assert.GreaterOrEqual(t, s.Correct, 0)
		assert.LessOrEqual(t, s.Correct, 3)
		assert.Positive(t, s.EvalLoss)
	}
	assert.Equal(t, history.Epochs[2], history.Last())
}

func TestFit_ShufflesKeepPairs(t *testing.T) {
	data := randomData(t, 12, 2, 2, 3)
	pairs := make(map[*matrix.Matrix]*matrix.Matrix)
	for i := range data.Features {
		pairs[data.Features[i]] = data.Labels[i]
	}

	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{LR: 1, BatchSize: 5, Epochs: 2, Seed: 6})
	_, err := sgd.Fit(newNet(t, []int{2, 2}, 1), data)
	require.NoError(t, err)

	for i := range data.Features {
		assert.Same(t, pairs[data.Features[i]], data.Labels[i])
	}
}

func TestFit_ReportsStepError(t *testing.T) {
	data := &dataset.Dataset{
		Features: []*matrix.Matrix{matrix.Column(1, 0)},
		Labels:   []*matrix.Matrix{matrix.Column(1, 0, 0)},
	}
	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{LR: 1, BatchSize: 1, Epochs: 2})
	history, err := sgd.Fit(newNet(t, []int{2, 1}, 1), data)
	assert.ErrorIs(t, err, nn.ErrLabelShape)
	assert.Contains(t, err.Error(), "epoch 1")
	assert.Empty(t, history.Epochs)
}

// TestFit_XOR trains a [2, 2, 1] network on the four XOR points.
func TestFit_XOR(t *testing.T) {
	net, err := nn.NewNetwork([]int{2, 2, 1}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, net.SetParameters(0, mustMatrix(t, 2, 2, 0.5, -0.4, -0.3, 0.8), matrix.Column(0.1, -0.1)))
	require.NoError(t, net.SetParameters(1, mustMatrix(t, 1, 2, 0.7, -0.6), matrix.Column(0.05)))

	data := dataset.XOR()
	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{
		LR:        3,
		BatchSize: 2,
		Epochs:    3000,
		Seed:      1,
	})
	_, err = sgd.Fit(net, data)
	require.NoError(t, err)

	correct, err := optim.EvaluateBinary(net, data.Features, data.Labels, nn.Sigmoid, 0.5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, correct, 3, "XOR accuracy %d/4", correct)

	loss, err := optim.MeanLoss(net, data.Features, data.Labels, nn.Sigmoid, nn.SquaredError{})
	require.NoError(t, err)
	assert.Less(t, loss, float32(0.05))
}

// TestFit_XORSeeded trains from the seeded Normal initialization that
// "mlp xor" uses by default.
func TestFit_XORSeeded(t *testing.T) {
	rng := nn.NewRand(1)
	net, err := nn.NewNetwork([]int{2, 2, 1}, nn.Normal(rng), nn.Normal(rng))
	require.NoError(t, err)

	data := dataset.XOR()
	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{
		LR:        2,
		BatchSize: 4,
		Epochs:    5000,
		Rand:      rng,
	})
	history, err := sgd.Fit(net, data)
	require.NoError(t, err)
	assert.Equal(t, 1, history.Last().Batches)

	correct, err := optim.EvaluateBinary(net, data.Features, data.Labels, nn.Sigmoid, 0.5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, correct, 3, "XOR accuracy %d/4", correct)
}

func TestEvaluate(t *testing.T) {
	// Identity-like network: output = sigmoid(x), so argmax(output) == argmax(x).
	net, err := nn.NewNetwork([]int{3, 3}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, net.SetParameters(0, mustMatrix(t, 3, 3, 1, 0, 0, 0, 1, 0, 0, 0, 1), matrix.New(3, 1)))

	features := []*matrix.Matrix{
		matrix.Column(0.9, 0.1, 0.2),
		matrix.Column(0.1, 0.8, 0.2),
		matrix.Column(0.3, 0.3, 0.1), // tie: predicted class 0
		matrix.Column(0.1, 0.2, 0.7),
	}
	labels := []*matrix.Matrix{
		matrix.Column(1, 0, 0),
		matrix.Column(0, 0, 1),
		matrix.Column(1, 0, 0),
		matrix.Column(0, 0, 1),
	}

	correct, err := optim.Evaluate(net, features, labels, nn.Sigmoid)
	require.NoError(t, err)
	assert.Equal(t, 3, correct)

	_, err = optim.Evaluate(net, features, labels[:1], nn.Sigmoid)
	assert.ErrorIs(t, err, optim.ErrLengthMismatch)

	_, err = optim.Evaluate(net, []*matrix.Matrix{matrix.Column(1)}, labels[:1], nn.Sigmoid)
	assert.ErrorIs(t, err, nn.ErrInputShape)
}

func TestEvaluateBinary(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 1}, nn.Constant(1), nil)
	require.NoError(t, err)

	// sigmoid(x) >= 0.5 exactly when x >= 0.
	features := []*matrix.Matrix{matrix.Column(2), matrix.Column(-2), matrix.Column(3)}
	labels := []*matrix.Matrix{matrix.Column(1), matrix.Column(0), matrix.Column(0)}

	correct, err := optim.EvaluateBinary(net, features, labels, nn.Sigmoid, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, correct)

	_, err = optim.EvaluateBinary(net, features[:1], []*matrix.Matrix{matrix.Column(1, 0)}, nn.Sigmoid, 0.5)
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestMeanLoss(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 1}, nil, nil)
	require.NoError(t, err)

	// Zero weights: every prediction is sigmoid(0) = 0.5.
	features := []*matrix.Matrix{matrix.Column(1), matrix.Column(5)}
	labels := []*matrix.Matrix{matrix.Column(1), matrix.Column(0)}

	loss, err := optim.MeanLoss(net, features, labels, nn.Sigmoid, nn.SquaredError{})
	require.NoError(t, err)
	assert.InDelta(t, 0.125, loss, 1e-6)

	_, err = optim.MeanLoss(net, nil, nil, nn.Sigmoid, nn.SquaredError{})
	assert.ErrorIs(t, err, optim.ErrEmptyDataset)
}

func TestEpochStats_Accuracy(t *testing.T) {
	assert.Zero(t, optim.EpochStats{}.Accuracy())
	assert.InDelta(t, 0.75, optim.EpochStats{Correct: 3, Total: 4}.Accuracy(), 1e-12)
}

func BenchmarkStep(b *testing.B) {
	rng := nn.NewRand(1)
	net, _ := nn.NewNetwork([]int{784, 30, 10}, nn.Normal(rng), nn.Normal(rng))
	features := make([]*matrix.Matrix, 10)
	labels := make([]*matrix.Matrix, 10)
	for i := range features {
		features[i] = matrix.New(784, 1)
		nn.Normal(rng)(features[i])
		labels[i], _ = dataset.OneHot(i, 10)
	}

	for _, cfg := range []struct {
		name string
		par  parallel.Config
	}{
		{"sequential", parallel.Sequential()},
		{"parallel", parallel.Config{Enabled: true, NumWorkers: parallel.Workers(), MinChunkSize: 1}},
	} {
		b.Run(cfg.name, func(b *testing.B) {
			sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{LR: 3, Parallel: cfg.par})
			for i := 0; i < b.N; i++ {
				_ = sgd.Step(net, features, labels)
			}
		})
	}
}
