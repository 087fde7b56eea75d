package blast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akileshthuniki/preapply/lib/graph"
	"github.com/akileshthuniki/preapply/lib/normalize"
)

func TestCompute_S2Scenario(t *testing.T) {
	plan := &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
		{Address: "aws_vpc.main", Type: "aws_vpc", Action: normalize.ActionUpdate},
		{Address: "aws_subnet.a", Type: "aws_subnet", Action: normalize.ActionUpdate,
			DependsOn: map[string]struct{}{"aws_vpc.main": {}}},
	}}
	g := graph.Build(plan)

	result := Compute(g, plan)
	assert.Equal(t, 2, result.ChangedCount)
	assert.Equal(t, 2, result.AffectedCount)
}

func TestCompute_NoChangedResourcesYieldsZero(t *testing.T) {
	plan := &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
		{Address: "aws_s3_bucket.logs", Type: "aws_s3_bucket", Action: normalize.ActionNoOp},
	}}
	g := graph.Build(plan)

	result := Compute(g, plan)
	assert.Equal(t, 0, result.ChangedCount)
	assert.Equal(t, 0, result.AffectedCount)
}

func TestComponentLabel_PrefersModule(t *testing.T) {
	plan := &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
		{Address: "module.vpc.aws_subnet.a", Module: "vpc", Type: "aws_subnet", Action: normalize.ActionCreate},
		{Address: "aws_s3_bucket.logs", Type: "aws_s3_bucket", Action: normalize.ActionCreate},
	}}
	g := graph.Build(plan)

	result := Compute(g, plan)
	assert.ElementsMatch(t, []string{"vpc", "aws_s3_bucket"}, result.AffectedComponents)
}
