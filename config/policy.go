package config

import (
	"os"

	"gopkg.in/yaml.v3"

	pperrors "github.com/akileshthuniki/preapply/lib/errors"
	"github.com/akileshthuniki/preapply/lib/policyeval"
	"github.com/akileshthuniki/preapply/lib/risk"
)

// policyMatchDoc mirrors the YAML shape of a policy rule's match block.
// Pointer fields distinguish "absent" from "false"/"" so an
// unset condition is not AND-combined into the match.
type policyMatchDoc struct {
	ExplanationID         *string  `yaml:"explanation_id"`
	RiskLevel             []string `yaml:"risk_level"`
	ActionType            []string `yaml:"action_type"`
	HasSensitiveDeletions *bool    `yaml:"has_sensitive_deletions"`
	HasSecurityExposures  *bool    `yaml:"has_security_exposures"`
}

type policyRuleDoc struct {
	ID          string         `yaml:"id"`
	Description string         `yaml:"description"`
	Match       policyMatchDoc `yaml:"match"`
	Action      string         `yaml:"action"`
}

type policyDoc struct {
	Rules []policyRuleDoc `yaml:"rules"`
}

// LoadPolicy parses the policy YAML file at path. yaml.v3 is used
// directly instead of viper because a policy document is an ordered rule
// list with an exact schema, and viper's map-based merge cannot guarantee
// the rule order that the evaluator's first-fail-wins semantics depend on.
func LoadPolicy(path string) (*policyeval.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pperrors.NewPolicyLoadError(path, err)
	}

	var doc policyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, pperrors.NewPolicyLoadError(path, err)
	}

	rules := make([]policyeval.Rule, 0, len(doc.Rules))
	for _, r := range doc.Rules {
		tiers := make([]risk.PolicyTier, 0, len(r.Match.RiskLevel))
		for _, lvl := range r.Match.RiskLevel {
			tiers = append(tiers, risk.PolicyTier(lvl))
		}

		rules = append(rules, policyeval.Rule{
			ID:          r.ID,
			Description: r.Description,
			Match: policyeval.Match{
				ExplanationID:         r.Match.ExplanationID,
				RiskLevel:             tiers,
				ActionType:            r.Match.ActionType,
				HasSensitiveDeletions: r.Match.HasSensitiveDeletions,
				HasSecurityExposures:  r.Match.HasSecurityExposures,
			},
			Action: policyeval.RuleAction(r.Action),
		})
	}

	return &policyeval.Document{Rules: rules}, nil
}
