// Package cost implements the cost-alert checks.
package cost

import (
	"sort"

	"github.com/akileshthuniki/preapply/lib/normalize"
)

// Kind is the closed cost-alert kind variant.
type Kind string

// Kind values.
const (
	KindHighCostCreate         Kind = "high_cost_create"
	KindHighCostInstanceCreate Kind = "high_cost_instance_create"
	KindInstanceScaleUp        Kind = "instance_scale_up"
)

// Alert is one emitted CostAlert.
type Alert struct {
	ResourceAddress string
	Kind            Kind
	Details         string
}

// Tier maps an instance-type prefix to an ordinal tier index.
type Tier struct {
	Prefix string
	Index  int
}

func tierIndex(instanceType string, tiers []Tier) (int, bool) {
	best := -1
	bestLen := -1
	for _, t := range tiers {
		if len(t.Prefix) > bestLen && hasPrefix(instanceType, t.Prefix) {
			best = t.Index
			bestLen = len(t.Prefix)
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Scan evaluates the three cost rules against a normalized plan.
func Scan(plan *normalize.NormalizedPlan, highCostTypes, highCostInstanceTypes []string, instanceTiers []Tier) []Alert {
	var out []Alert

	for _, r := range plan.Resources {
		switch r.Action {
		case normalize.ActionCreate:
			if contains(highCostTypes, r.Type) {
				out = append(out, Alert{ResourceAddress: r.Address, Kind: KindHighCostCreate, Details: r.Type})
			}
			if instanceType, ok := r.After["instance_type"].(string); ok && contains(highCostInstanceTypes, instanceType) {
				out = append(out, Alert{ResourceAddress: r.Address, Kind: KindHighCostInstanceCreate, Details: instanceType})
			}
		case normalize.ActionUpdate:
			before, okB := r.Before["instance_type"].(string)
			after, okA := r.After["instance_type"].(string)
			if !okB || !okA {
				continue
			}
			beforeTier, okBT := tierIndex(before, instanceTiers)
			afterTier, okAT := tierIndex(after, instanceTiers)
			if okBT && okAT && afterTier > beforeTier {
				out = append(out, Alert{
					ResourceAddress: r.Address,
					Kind:            KindInstanceScaleUp,
					Details:         before + " -> " + after,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ResourceAddress < out[j].ResourceAddress })
	return out
}
