package nn

import (
	"fmt"

	"github.com/emicklei/dot"
)

// Dot renders the network topology as a Graphviz digraph.
//
// Each layer becomes a node labelled with its size; each transition becomes
// an edge labelled with the weight matrix shape.
func (n *Network) Dot() string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	nodes := make([]dot.Node, len(n.sizes))
	for i, size := range n.sizes {
		var kind string
		switch i {
		case 0:
			kind = "input"
		case len(n.sizes) - 1:
			kind = "output"
		default:
			kind = "hidden"
		}
		// The library renders its own node IDs; the key only keeps
		// equal-sized layers from collapsing into one node.
		nodes[i] = g.Node(fmt.Sprintf("layer%d", i)).
			Label(fmt.Sprintf("%s (%d)", kind, size)).
			Attr("shape", "box")
	}
	for i, w := range n.weights {
		g.Edge(nodes[i], nodes[i+1], fmt.Sprintf("W%d %dx%d", i, w.Rows(), w.Cols()))
	}
	return g.String()
}
