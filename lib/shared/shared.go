// Package shared implements the shared-resource detector.
package shared

import (
	"sort"
	"strings"

	"github.com/akileshthuniki/preapply/lib/graph"
	"github.com/akileshthuniki/preapply/lib/normalize"
)

// SharedResource is one entry of the detector's result.
type SharedResource struct {
	Address    string
	IsCritical bool
}

// isCriticalType reports whether t matches one of the critical type
// patterns, where a trailing "*" denotes a prefix match (e.g. "aws_rds_*").
func isCriticalType(t string, patterns []string) bool {
	for _, p := range patterns {
		if strings.HasSuffix(p, "*") {
			if strings.HasPrefix(t, strings.TrimSuffix(p, "*")) {
				return true
			}
			continue
		}
		if t == p {
			return true
		}
	}
	return false
}

// Detect returns the sorted list of shared addresses: resources whose
// in-degree in the dependency graph is ≥ 2.
func Detect(g *graph.Graph, plan *normalize.NormalizedPlan, criticalTypes []string) []SharedResource {
	byAddress := make(map[string]normalize.NormalizedResource, len(plan.Resources))
	for _, r := range plan.Resources {
		byAddress[r.Address] = r
	}

	var out []SharedResource
	for _, addr := range g.Nodes() {
		if g.InDegree(addr) < 2 {
			continue
		}
		critical := false
		if r, ok := byAddress[addr]; ok {
			critical = isCriticalType(r.Type, criticalTypes)
		}
		out = append(out, SharedResource{Address: addr, IsCritical: critical})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}
