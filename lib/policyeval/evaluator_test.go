package policyeval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akileshthuniki/preapply/lib/report"
	"github.com/akileshthuniki/preapply/lib/risk"
	"github.com/akileshthuniki/preapply/lib/security"
)

func ptrBool(b bool) *bool { return &b }

func TestEvaluate_S5PolicyBlockAuto(t *testing.T) {
	out := report.CoreOutput{
		RiskLevel: risk.PolicyHigh,
		RiskAttributes: report.RiskAttributes{
			SecurityExposures: []security.Exposure{{ResourceAddress: "sg"}},
		},
	}
	doc := Document{Rules: []Rule{
		{
			ID: "block-high-risk-exposures",
			Match: Match{
				RiskLevel:            []risk.PolicyTier{risk.PolicyHigh, risk.PolicyCritical},
				HasSecurityExposures: ptrBool(true),
			},
			Action: ActionFail,
		},
	}}

	result := Evaluate(doc, out)
	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, 0, result.WarningCount)
}

func TestEvaluate_WarnActionNeverFailsPassed(t *testing.T) {
	out := report.CoreOutput{RiskLevel: risk.PolicyHigh}
	doc := Document{Rules: []Rule{
		{ID: "warn-rule", Match: Match{RiskLevel: []risk.PolicyTier{risk.PolicyHigh}}, Action: ActionWarn},
	}}

	result := Evaluate(doc, out)
	assert.True(t, result.Passed)
	assert.Equal(t, 0, result.FailureCount)
	assert.Equal(t, 1, result.WarningCount)
}

func TestEvaluate_AllRulesRunRegardlessOfEarlierFailure(t *testing.T) {
	out := report.CoreOutput{RiskLevel: risk.PolicyHigh}
	doc := Document{Rules: []Rule{
		{ID: "first-fail", Match: Match{RiskLevel: []risk.PolicyTier{risk.PolicyHigh}}, Action: ActionFail},
		{ID: "second-fail", Match: Match{RiskLevel: []risk.PolicyTier{risk.PolicyHigh}}, Action: ActionFail},
	}}

	result := Evaluate(doc, out)
	assert.Equal(t, 2, result.FailureCount)
	assert.Len(t, result.Hits, 2)
}
