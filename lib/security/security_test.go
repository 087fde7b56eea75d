package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akileshthuniki/preapply/lib/normalize"
)

func TestScanSecurityGroups_SeverityByPort(t *testing.T) {
	plan := &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
		{
			Address: "aws_security_group.sg",
			Type:    "aws_security_group",
			Action:  normalize.ActionCreate,
			After: map[string]any{
				"ingress": []any{
					map[string]any{
						"from_port":   float64(22),
						"to_port":     float64(22),
						"cidr_blocks": []any{"0.0.0.0/0"},
					},
					map[string]any{
						"from_port":   float64(8080),
						"to_port":     float64(8080),
						"cidr_blocks": []any{"0.0.0.0/0"},
					},
				},
			},
		},
	}}

	exposures := ScanSecurityGroups(plan)
	assert.Len(t, exposures, 2)
	assert.Equal(t, SeverityHigh, exposures[0].Severity)
	assert.Equal(t, SeverityMedium, exposures[1].Severity)
}

func TestScanS3PublicAccessBlock(t *testing.T) {
	plan := &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
		{
			Address: "aws_s3_bucket_public_access_block.logs",
			Type:    "aws_s3_bucket_public_access_block",
			Action:  normalize.ActionUpdate,
			After: map[string]any{
				"block_public_acls":      true,
				"block_public_policy":    true,
				"ignore_public_acls":     true,
				"restrict_public_buckets": false,
			},
		},
	}}

	exposures := ScanS3PublicAccessBlock(plan)
	assert.Len(t, exposures, 1)
	assert.Equal(t, KindS3PublicBlockOff, exposures[0].Kind)
	assert.Equal(t, SeverityHigh, exposures[0].Severity)
}

func TestScanS3ACL(t *testing.T) {
	plan := &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
		{Address: "aws_s3_bucket.a", Type: "aws_s3_bucket", Action: normalize.ActionCreate, After: map[string]any{"acl": "public-read-write"}},
		{Address: "aws_s3_bucket.b", Type: "aws_s3_bucket", Action: normalize.ActionCreate, After: map[string]any{"acl": "public-read"}},
		{Address: "aws_s3_bucket.c", Type: "aws_s3_bucket", Action: normalize.ActionCreate, After: map[string]any{"acl": "private"}},
	}}

	exposures := ScanS3ACL(plan)
	assert.Len(t, exposures, 2)
}
