package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tfjson "github.com/hashicorp/terraform-json"

	"github.com/akileshthuniki/preapply/lib/ingest"
	"github.com/akileshthuniki/preapply/lib/risk"
)

func TestRun_S1_LowRiskSingleCreate(t *testing.T) {
	raw := &ingest.RawPlan{
		FormatVersion: "1.2",
		ResourceChanges: []ingest.RawResourceChange{
			{
				Address: "aws_s3_bucket.logs",
				Type:    "aws_s3_bucket",
				Change: ingest.RawChange{
					Actions: tfjson.Actions{tfjson.ActionCreate},
					After:   map[string]any{"acl": "private"},
				},
			},
		},
	}

	out, err := Run([]byte(`{}`), raw, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 0.0, out.BlastRadiusScore)
	assert.Equal(t, risk.TierLow, out.RiskLevelDetailed)
	assert.Equal(t, risk.ActionAutoApprove, out.RiskAction)
	assert.Equal(t, 1, out.AffectedCount)
	assert.Empty(t, out.Recommendations)
}

func TestRun_S3_HighRiskDeleteAndExposure(t *testing.T) {
	raw := &ingest.RawPlan{
		FormatVersion: "1.2",
		ResourceChanges: []ingest.RawResourceChange{
			{
				Address: "aws_db_instance.production",
				Type:    "aws_db_instance",
				Change: ingest.RawChange{
					Actions: tfjson.Actions{tfjson.ActionDelete},
					Before:  map[string]any{},
				},
			},
			{
				Address: "aws_security_group.sg",
				Type:    "aws_security_group",
				Change: ingest.RawChange{
					Actions: tfjson.Actions{tfjson.ActionCreate},
					After: map[string]any{
						"ingress": []any{
							map[string]any{
								"from_port":   float64(22),
								"to_port":     float64(22),
								"cidr_blocks": []any{"0.0.0.0/0"},
							},
						},
					},
				},
			},
		},
	}

	out, err := Run([]byte(`{}`), raw, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, risk.TierHigh, out.RiskLevelDetailed)
	assert.Equal(t, risk.PolicyHigh, out.RiskLevel)
	assert.InDelta(t, 85.0, out.BlastRadiusScore, 0.01)
	assert.Contains(t, out.Recommendations, "verify backup before proceeding")
	assert.Contains(t, out.Recommendations, "restrict ingress to known CIDR ranges")
}

func TestRun_DeterministicAcrossRuns(t *testing.T) {
	raw := &ingest.RawPlan{
		FormatVersion: "1.2",
		ResourceChanges: []ingest.RawResourceChange{
			{Address: "aws_instance.a", Type: "aws_instance", Change: ingest.RawChange{Actions: tfjson.Actions{tfjson.ActionCreate}}},
		},
	}

	out1, err1 := Run([]byte(`{"x":1}`), raw, DefaultConfig())
	out2, err2 := Run([]byte(`{"x":1}`), raw, DefaultConfig())
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, out1, out2)
}
