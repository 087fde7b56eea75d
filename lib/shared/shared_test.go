package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akileshthuniki/preapply/lib/graph"
	"github.com/akileshthuniki/preapply/lib/normalize"
)

func TestDetect_InDegreeThreshold(t *testing.T) {
	plan := &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
		{Address: "aws_lb.shared", Type: "aws_lb"},
		{Address: "svc.a", Type: "svc", DependsOn: map[string]struct{}{"aws_lb.shared": {}}},
		{Address: "svc.b", Type: "svc", DependsOn: map[string]struct{}{"aws_lb.shared": {}}},
		{Address: "svc.c", Type: "svc", DependsOn: map[string]struct{}{"aws_lb.shared": {}}},
		{Address: "aws_rds_cluster.db", Type: "aws_rds_cluster"},
		{Address: "svc.d", Type: "svc", DependsOn: map[string]struct{}{"aws_rds_cluster.db": {}}},
	}}
	g := graph.Build(plan)

	result := Detect(g, plan, []string{"aws_lb", "aws_rds_*"})
	assert.Len(t, result, 1)
	assert.Equal(t, "aws_lb.shared", result[0].Address)
	assert.True(t, result[0].IsCritical)
}

func TestDetect_NotCriticalWhenTypeUnmatched(t *testing.T) {
	plan := &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
		{Address: "aws_security_group.sg", Type: "aws_security_group"},
		{Address: "svc.a", Type: "svc", DependsOn: map[string]struct{}{"aws_security_group.sg": {}}},
		{Address: "svc.b", Type: "svc", DependsOn: map[string]struct{}{"aws_security_group.sg": {}}},
	}}
	g := graph.Build(plan)

	result := Detect(g, plan, []string{"aws_lb"})
	assert.Len(t, result, 1)
	assert.False(t, result[0].IsCritical)
}
