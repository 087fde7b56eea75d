package report

import (
	"github.com/emicklei/dot"

	"github.com/akileshthuniki/preapply/lib/graph"
)

// Graphviz renders the dependency graph as a Graphviz DOT document, for
// `analyze --output` with the "dot" format. Every node is drawn; nodes in the
// affected set are colored red.
func Graphviz(g *graph.Graph, affected map[string]struct{}) string {
	d := dot.NewGraph(dot.Directed)
	d.Attr("rankdir", "LR")

	nodes := make(map[string]dot.Node, len(g.Nodes()))
	for _, addr := range g.Nodes() {
		n := d.Node(addr)
		if _, ok := affected[addr]; ok {
			n.Attr("color", "red")
		}
		nodes[addr] = n
	}

	for _, addr := range g.Nodes() {
		for _, dep := range g.Successors(addr) {
			d.Edge(nodes[addr], nodes[dep])
		}
	}

	return d.String()
}
