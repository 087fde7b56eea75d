// Package recommend implements the fixed-order mitigation recommendation
// engine.
package recommend

import (
	"github.com/akileshthuniki/preapply/lib/blast"
	"github.com/akileshthuniki/preapply/lib/normalize"
	"github.com/akileshthuniki/preapply/lib/security"
	"github.com/akileshthuniki/preapply/lib/shared"
)

// defaultSensitiveDeleteTypes is the default rule-(a) type set; callers may widen
// it via config's shared_resources.sensitive_delete_types.
var defaultSensitiveDeleteTypes = map[string]struct{}{
	"aws_db_instance":    {},
	"aws_rds_cluster":    {},
	"aws_s3_bucket":      {},
	"aws_dynamodb_table": {},
}

// Inputs bundles everything the rule predicates need.
type Inputs struct {
	Plan            *normalize.NormalizedPlan
	Exposures       []security.Exposure
	SharedResources []shared.SharedResource
	Blast           blast.Result
	SensitiveDeleteTypes []string
}

type rule struct {
	fires func(Inputs) bool
	text  string
}

func sensitiveTypeSet(extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(defaultSensitiveDeleteTypes)+len(extra))
	for t := range defaultSensitiveDeleteTypes {
		set[t] = struct{}{}
	}
	for _, t := range extra {
		set[t] = struct{}{}
	}
	return set
}

// rules are evaluated in this fixed declaration order.
var rules = []rule{
	{
		text: "verify backup before proceeding",
		fires: func(in Inputs) bool {
			set := sensitiveTypeSet(in.SensitiveDeleteTypes)
			for _, r := range in.Plan.Resources {
				if r.Action != normalize.ActionDelete {
					continue
				}
				if _, ok := set[r.Type]; ok {
					return true
				}
			}
			return false
		},
	},
	{
		text: "restrict ingress to known CIDR ranges",
		fires: func(in Inputs) bool {
			return len(in.Exposures) > 0
		},
	},
	{
		text: "apply in stages to reduce blast radius",
		fires: func(in Inputs) bool {
			changed := make(map[string]struct{})
			for _, r := range in.Plan.Resources {
				if r.Action.Changed() {
					changed[r.Address] = struct{}{}
				}
			}
			for _, sr := range in.SharedResources {
				if !sr.IsCritical {
					continue
				}
				if _, ok := changed[sr.Address]; ok {
					return true
				}
			}
			return false
		},
	},
	{
		text: "large blast radius, consider phased rollout",
		fires: func(in Inputs) bool {
			return in.Blast.AffectedCount > 10
		},
	},
	{
		text: "cross-module change, coordinate with module owners",
		fires: func(in Inputs) bool {
			modules := make(map[string]struct{})
			for _, r := range in.Plan.Resources {
				if !r.Action.Changed() {
					continue
				}
				if r.Module != "" {
					modules[r.Module] = struct{}{}
				}
			}
			return len(modules) >= 2
		},
	},
}

// Generate evaluates each rule in its fixed declaration order and returns
// the de-duplicated, order-preserving list of recommendation texts.
func Generate(in Inputs) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rules {
		if !r.fires(in) {
			continue
		}
		if _, dup := seen[r.text]; dup {
			continue
		}
		seen[r.text] = struct{}{}
		out = append(out, r.text)
	}
	return out
}
