// Package policyeval implements the policy evaluator.
package policyeval

import (
	"github.com/akileshthuniki/preapply/lib/report"
	"github.com/akileshthuniki/preapply/lib/risk"
)

// RuleAction is the closed policy-rule action variant.
type RuleAction string

// RuleAction values.
const (
	ActionFail RuleAction = "fail"
	ActionWarn RuleAction = "warn"
)

// Match is the AND-combined condition block of one policy rule.
type Match struct {
	ExplanationID         *string
	RiskLevel             []risk.PolicyTier
	ActionType            []string
	HasSensitiveDeletions *bool
	HasSecurityExposures  *bool
}

// Rule is one entry of a policy document's rules list.
type Rule struct {
	ID          string
	Description string
	Match       Match
	Action      RuleAction
}

// Document is a parsed policy file. Rule order is preserved.
type Document struct {
	Rules []Rule
}

// Hit records the outcome of evaluating one rule.
type Hit struct {
	RuleID  string
	Matched bool
	Action  RuleAction
}

// Result is the evaluator's output.
type Result struct {
	Passed       bool
	FailureCount int
	WarningCount int
	Hits         []Hit
}

func matches(m Match, out report.CoreOutput) bool {
	if m.ExplanationID != nil && *m.ExplanationID != out.ExplanationID {
		return false
	}
	if len(m.RiskLevel) > 0 && !containsTier(m.RiskLevel, out.RiskLevel) {
		return false
	}
	if len(m.ActionType) > 0 && !intersectsActionTypes(m.ActionType, out.RiskAttributes.ActionTypes) {
		return false
	}
	if m.HasSensitiveDeletions != nil {
		actual := len(out.RiskAttributes.SensitiveDeletions) >= 1
		if actual != *m.HasSensitiveDeletions {
			return false
		}
	}
	if m.HasSecurityExposures != nil {
		actual := len(out.RiskAttributes.SecurityExposures) > 0
		if actual != *m.HasSecurityExposures {
			return false
		}
	}
	return true
}

func containsTier(set []risk.PolicyTier, v risk.PolicyTier) bool {
	for _, t := range set {
		if t == v {
			return true
		}
	}
	return false
}

func intersectsActionTypes(set []string, observed []string) bool {
	observedSet := make(map[string]struct{}, len(observed))
	for _, o := range observed {
		observedSet[o] = struct{}{}
	}
	for _, s := range set {
		if _, ok := observedSet[s]; ok {
			return true
		}
	}
	return false
}

// Evaluate runs every rule against out in document order. All rules run to
// populate counts; only the first matching `fail` rule governs exit-code
// determination downstream.
func Evaluate(doc Document, out report.CoreOutput) Result {
	result := Result{Passed: true}
	for _, rule := range doc.Rules {
		matched := matches(rule.Match, out)
		result.Hits = append(result.Hits, Hit{RuleID: rule.ID, Matched: matched, Action: rule.Action})
		if !matched {
			continue
		}
		switch rule.Action {
		case ActionFail:
			result.FailureCount++
			result.Passed = false
		case ActionWarn:
			result.WarningCount++
		}
	}
	return result
}
