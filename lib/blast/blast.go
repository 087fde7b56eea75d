// Package blast computes the blast-radius metric.
package blast

import (
	"sort"
	"strings"

	"github.com/akileshthuniki/preapply/lib/graph"
	"github.com/akileshthuniki/preapply/lib/normalize"
)

// Result is the blast-radius outcome for one analysis run.
type Result struct {
	AffectedCount      int
	ChangedCount       int
	AffectedComponents []string
	Affected           map[string]struct{}
}

// componentLabel derives the component label for a resource: module path if
// non-empty, else the string before the first '.' in the resource type.
func componentLabel(r normalize.NormalizedResource) string {
	if r.Module != "" {
		return r.Module
	}
	if i := strings.IndexByte(r.Type, '.'); i >= 0 {
		return r.Type[:i]
	}
	return r.Type
}

// Compute derives affected = ⋃_c Downstream(c) ∪ {c} over the CHANGED
// addresses (action ∈ {CREATE, UPDATE, DELETE}), using BFS over the graph.
func Compute(g *graph.Graph, plan *normalize.NormalizedPlan) Result {
	byAddress := make(map[string]normalize.NormalizedResource, len(plan.Resources))
	for _, r := range plan.Resources {
		byAddress[r.Address] = r
	}

	changed := make([]string, 0)
	affected := make(map[string]struct{})
	for _, r := range plan.Resources {
		if !r.Action.Changed() {
			continue
		}
		changed = append(changed, r.Address)
		affected[r.Address] = struct{}{}
		for addr := range g.Downstream(r.Address) {
			affected[addr] = struct{}{}
		}
	}

	componentSet := make(map[string]struct{})
	for addr := range affected {
		if r, ok := byAddress[addr]; ok {
			componentSet[componentLabel(r)] = struct{}{}
		}
	}
	components := make([]string, 0, len(componentSet))
	for c := range componentSet {
		components = append(components, c)
	}
	sort.Strings(components)

	return Result{
		AffectedCount:      len(affected),
		ChangedCount:       len(changed),
		AffectedComponents: components,
		Affected:           affected,
	}
}
