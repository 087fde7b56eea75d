package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akileshthuniki/preapply/lib/blast"
	"github.com/akileshthuniki/preapply/lib/normalize"
	"github.com/akileshthuniki/preapply/lib/security"
	"github.com/akileshthuniki/preapply/lib/shared"
)

func TestGenerate_S1EmptyPlanYieldsNoRecommendations(t *testing.T) {
	in := Inputs{
		Plan: &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
			{Address: "aws_s3_bucket.logs", Type: "aws_s3_bucket", Action: normalize.ActionCreate},
		}},
		Blast: blast.Result{AffectedCount: 1},
	}
	assert.Empty(t, Generate(in))
}

func TestGenerate_SensitiveDeletionRule(t *testing.T) {
	in := Inputs{
		Plan: &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
			{Address: "aws_db_instance.prod", Type: "aws_db_instance", Action: normalize.ActionDelete},
		}},
	}
	out := Generate(in)
	assert.Contains(t, out, "verify backup before proceeding")
}

func TestGenerate_PreservesOrderAndDedupes(t *testing.T) {
	in := Inputs{
		Plan: &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
			{Address: "aws_db_instance.a", Type: "aws_db_instance", Action: normalize.ActionDelete},
			{Address: "aws_s3_bucket.b", Type: "aws_s3_bucket", Action: normalize.ActionDelete},
		}},
		Exposures: []security.Exposure{{ResourceAddress: "sg", Kind: security.KindIngressCIDR}},
		Blast:     blast.Result{AffectedCount: 20},
	}
	out := Generate(in)
	assert.Equal(t, []string{
		"verify backup before proceeding",
		"restrict ingress to known CIDR ranges",
		"large blast radius, consider phased rollout",
	}, out)
}

func TestGenerate_SharedCriticalRule(t *testing.T) {
	in := Inputs{
		Plan: &normalize.NormalizedPlan{Resources: []normalize.NormalizedResource{
			{Address: "aws_lb.shared", Type: "aws_lb", Action: normalize.ActionUpdate},
		}},
		SharedResources: []shared.SharedResource{{Address: "aws_lb.shared", IsCritical: true}},
	}
	out := Generate(in)
	assert.Contains(t, out, "apply in stages to reduce blast radius")
}
