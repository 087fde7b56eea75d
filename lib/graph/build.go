package graph

import "github.com/akileshthuniki/preapply/lib/normalize"

// Build constructs the dependency graph of a normalized plan: one node per
// resource, one edge per depends_on entry.
func Build(plan *normalize.NormalizedPlan) *Graph {
	g := New()
	for _, r := range plan.Resources {
		g.AddNode(r.Address)
	}
	for _, r := range plan.Resources {
		for _, dep := range r.SortedDependsOn() {
			g.AddEdge(r.Address, dep)
		}
	}
	return g
}
