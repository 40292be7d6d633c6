// Package main provides the mlp CLI: train and inspect fully connected
// networks on MNIST or XOR.
package main

import (
	"fmt"
	"io"
	"os"
)

const version = "v0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mlp: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		usage(w)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(w, "mlp %s\n", version)
		return nil
	case "train":
		return runTrain(args[1:], w)
	case "xor":
		return runXOR(args[1:], w)
	case "graph":
		return runGraph(args[1:], w)
	case "help", "-h", "--help":
		usage(w)
		return nil
	default:
		usage(w)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "mlp - feedforward network trainer")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  train      Train on MNIST (IDX directory or CSV)")
	fmt.Fprintln(w, "  xor        Train a 2-2-1 network on XOR")
	fmt.Fprintln(w, "  graph      Print a network's layer graph in DOT format")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'mlp <command> -h' for command flags.")
}
