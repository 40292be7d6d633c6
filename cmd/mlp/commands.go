package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	. "github.com/stevegt/goadapt"

	"github.com/born-ml/mlp/dataset"
	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/nn"
	"github.com/born-ml/mlp/optim"
)

func runTrain(args []string, w io.Writer) (err error) {
	defer Return(&err)

	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(w)
	dataDir := fs.String("data", "data", "directory holding the MNIST IDX files")
	csvFile := fs.String("csv", "", "training CSV (label,pixel0..pixel783); overrides -data")
	testCSV := fs.String("test-csv", "", "test CSV scored after every epoch")
	layers := fs.String("layers", "784,30,10", "comma-separated layer sizes")
	epochs := fs.Int("epochs", 30, "training epochs")
	batch := fs.Int("batch", 10, "mini-batch size")
	lr := fs.Float64("lr", 3.0, "learning rate")
	activation := fs.String("activation", "sigmoid", "activation: "+strings.Join(nn.ActivationNames(), ", ")+
		" (sigmoid is 1/(1+e^-x); reflected-sigmoid is 1/(1+e^x) with the sigmoid derivative)")
	costName := fs.String("cost", "quadratic", "cost: "+strings.Join(nn.CostNames(), ", "))
	seed := fs.Int64("seed", 0, "random seed (0 = time-based)")
	maxTrain := fs.Int("max-train", 0, "limit training samples (0 = all)")
	maxTest := fs.Int("max-test", 0, "limit test samples (0 = all)")
	workers := fs.Int("workers", 0, "backprop workers per mini-batch (0 = physical cores, 1 = sequential)")
	dotFile := fs.String("dot", "", "write the network graph in DOT format to this file")
	Ck(fs.Parse(args))

	sizes, err := parseLayers(*layers)
	Ck(err)
	act, err := nn.ActivationByName(*activation)
	Ck(err)
	cost, err := nn.CostByName(*costName)
	Ck(err)

	train, test, err := loadMNIST(*dataDir, *csvFile, *testCSV, *maxTrain, *maxTest)
	Ck(err)
	Assert(train.Len() > 0, "no training samples")
	Assert(train.Features[0].Len() == sizes[0],
		"input layer has %d neurons but samples have %d values", sizes[0], train.Features[0].Len())

	rng := nn.NewRand(*seed)
	net, err := nn.NewNetwork(sizes, nn.Normal(rng), nn.Normal(rng))
	Ck(err)
	defer net.Release()

	if *dotFile != "" {
		Ck(os.WriteFile(*dotFile, []byte(net.Dot()), 0o600))
	}

	par := workerConfig(*workers)
	fmt.Fprintf(w, "Network %v: %d parameters, %s activation, %s cost\n", sizes, net.NumParameters(), act, *costName)
	fmt.Fprintf(w, "CPU: %s, %d workers\n", parallel.CPUName(), par.NumWorkers)
	fmt.Fprintf(w, "Training on %d samples", train.Len())
	if test != nil {
		fmt.Fprintf(w, ", testing on %d", test.Len())
	}
	fmt.Fprintln(w)

	cfg := optim.Config{
		LR:        float32(*lr),
		BatchSize: *batch,
		Epochs:    *epochs,
		Rand:      rng,
		Parallel:  par,
		Eval:      test,
		OnEpoch:   func(s optim.EpochStats) { printEpoch(w, s) },
	}
	_, err = optim.NewSGD(act, cost, cfg).Fit(net, train)
	Ck(err)
	return nil
}

func loadMNIST(dir, csvFile, testCSV string, maxTrain, maxTest int) (train, test *dataset.Dataset, err error) {
	defer Return(&err)

	if csvFile != "" {
		train, err = dataset.LoadMNISTCSV(csvFile, maxTrain)
		Ck(err)
		if testCSV != "" {
			test, err = dataset.LoadMNISTCSV(testCSV, maxTest)
			Ck(err)
		}
		return train, test, nil
	}

	train, err = dataset.LoadMNIST(dir, true, maxTrain)
	Ck(err)
	test, err = dataset.LoadMNIST(dir, false, maxTest)
	Ck(err)
	return train, test, nil
}

func printEpoch(w io.Writer, s optim.EpochStats) {
	fmt.Fprintf(w, "Completed epoch %d of %d (%v)", s.Epoch, s.Epochs, s.Duration.Round(time.Millisecond))
	if s.Total > 0 {
		fmt.Fprintf(w, ": %d / %d correct (%.2f%%), loss %.4f",
			s.Correct, s.Total, 100*s.Accuracy(), s.EvalLoss)
	}
	fmt.Fprintln(w)
}

func runXOR(args []string, w io.Writer) (err error) {
	defer Return(&err)

	fs := flag.NewFlagSet("xor", flag.ContinueOnError)
	fs.SetOutput(w)
	epochs := fs.Int("epochs", 5000, "training epochs")
	batch := fs.Int("batch", 4, "mini-batch size")
	lr := fs.Float64("lr", 2.0, "learning rate")
	hidden := fs.Int("hidden", 2, "hidden layer size")
	seed := fs.Int64("seed", 1, "random seed (0 = time-based)")
	Ck(fs.Parse(args))

	data := dataset.XOR()
	rng := nn.NewRand(*seed)
	net, err := nn.NewNetwork([]int{2, *hidden, 1}, nn.Normal(rng), nn.Normal(rng))
	Ck(err)

	sgd := optim.NewSGD(nn.Sigmoid, nn.SquaredError{}, optim.Config{
		LR:        float32(*lr),
		BatchSize: *batch,
		Epochs:    *epochs,
		Rand:      rng,
	})
	history, err := sgd.Fit(net, data)
	Ck(err)
	fmt.Fprintf(w, "Trained %d epochs in %d steps\n", *epochs, *epochs*history.Last().Batches)

	for _, x := range dataset.XOR().Features {
		out, err := net.Predict(x, nn.Sigmoid)
		Ck(err)
		fmt.Fprintf(w, "%v XOR %v -> %.3f\n", x.Data()[0], x.Data()[1], out.Data()[0])
	}

	correct, err := optim.EvaluateBinary(net, data.Features, data.Labels, nn.Sigmoid, 0.5)
	Ck(err)
	loss, err := optim.MeanLoss(net, data.Features, data.Labels, nn.Sigmoid, nn.SquaredError{})
	Ck(err)
	fmt.Fprintf(w, "Accuracy: %d / %d, loss %.4f\n", correct, data.Len(), loss)
	return nil
}

func runGraph(args []string, w io.Writer) (err error) {
	defer Return(&err)

	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	fs.SetOutput(w)
	layers := fs.String("layers", "784,30,10", "comma-separated layer sizes")
	Ck(fs.Parse(args))

	sizes, err := parseLayers(*layers)
	Ck(err)
	net, err := nn.NewNetwork(sizes, nil, nil)
	Ck(err)
	fmt.Fprintln(w, net.Dot())
	return nil
}

// parseLayers parses "784,30,10" into layer sizes.
func parseLayers(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	sizes := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid layer size %q in %q", f, s)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func workerConfig(workers int) parallel.Config {
	switch {
	case workers == 1:
		return parallel.Sequential()
	case workers > 1:
		cfg := parallel.DefaultConfig()
		cfg.Enabled = true
		cfg.NumWorkers = workers
		return cfg
	default:
		return parallel.DefaultConfig()
	}
}
