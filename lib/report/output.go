// Package report assembles the CoreOutput record and guarantees a stable,
// deterministic sort order on every emitted array.
package report

import (
	"sort"

	"github.com/akileshthuniki/preapply/lib/blast"
	"github.com/akileshthuniki/preapply/lib/cost"
	"github.com/akileshthuniki/preapply/lib/normalize"
	"github.com/akileshthuniki/preapply/lib/risk"
	"github.com/akileshthuniki/preapply/lib/security"
	"github.com/akileshthuniki/preapply/lib/shared"
	"github.com/akileshthuniki/preapply/lib/statedestructive"
)

// Version is the CoreOutput schema version emitted in every report.
const Version = "1"

// RiskBreakdown mirrors the risk_breakdown subtree.
type RiskBreakdown struct {
	PrimaryDimension      string             `json:"primary_dimension"`
	Dimensions            map[string]float64 `json:"dimensions"`
	InteractionMultiplier float64            `json:"interaction_multiplier"`
	BlastContribution     float64            `json:"blast_contribution"`
}

// RiskAttributes mirrors the risk_attributes subtree.
type RiskAttributes struct {
	BlastRadius            int                 `json:"blast_radius"`
	SharedDependencies     []string            `json:"shared_dependencies"`
	CriticalInfrastructure []string            `json:"critical_infrastructure"`
	SensitiveDeletions     []string            `json:"sensitive_deletions"`
	SecurityExposures      []security.Exposure `json:"security_exposures"`
	CostAlerts             []cost.Alert        `json:"cost_alerts"`
	ActionTypes            []string            `json:"action_types"`
	RiskBreakdown          RiskBreakdown       `json:"risk_breakdown"`
}

// CoreOutput is the versioned, field-stable record emitted at the CLI
// boundary.
type CoreOutput struct {
	Version            string             `json:"version"`
	ExplanationID      string             `json:"explanation_id"`
	RiskLevel          risk.PolicyTier    `json:"risk_level"`
	RiskLevelDetailed  risk.Tier          `json:"risk_level_detailed"`
	BlastRadiusScore   float64            `json:"blast_radius_score"`
	RiskAction         risk.Action        `json:"risk_action"`
	ApprovalRequired   risk.ApprovalLevel `json:"approval_required"`
	AffectedCount      int                `json:"affected_count"`
	DeletionCount      int                `json:"deletion_count"`
	AffectedComponents []string           `json:"affected_components"`
	RiskAttributes     RiskAttributes     `json:"risk_attributes"`
	Recommendations    []string           `json:"recommendations"`
}

// Inputs bundles every component the assembler needs.
type Inputs struct {
	ExplanationID        string
	Plan                 *normalize.NormalizedPlan
	Blast                blast.Result
	RiskResult           risk.Result
	SharedResources      []shared.SharedResource
	Exposures            []security.Exposure
	StateUpdates         []statedestructive.Update
	CostAlerts           []cost.Alert
	Recommendations      []string
	SensitiveDeleteTypes []string
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilExposures(s []security.Exposure) []security.Exposure {
	if s == nil {
		return []security.Exposure{}
	}
	return s
}

func nonNilAlerts(s []cost.Alert) []cost.Alert {
	if s == nil {
		return []cost.Alert{}
	}
	return s
}

func sensitiveTypeSet(extra []string) map[string]struct{} {
	defaults := map[string]struct{}{
		"aws_db_instance":    {},
		"aws_rds_cluster":    {},
		"aws_s3_bucket":      {},
		"aws_dynamodb_table": {},
	}
	for _, t := range extra {
		defaults[t] = struct{}{}
	}
	return defaults
}

// Assemble builds the CoreOutput record, stable-sorting every array on emit
// (sort by address ascending, case-sensitive).
func Assemble(in Inputs) CoreOutput {
	deletionCount := 0
	var deletions []string
	var actionTypeSet = make(map[string]struct{})
	sensitiveTypes := sensitiveTypeSet(in.SensitiveDeleteTypes)

	for _, r := range in.Plan.Resources {
		if r.Action == normalize.ActionDelete {
			deletionCount++
			if _, ok := sensitiveTypes[r.Type]; ok {
				deletions = append(deletions, r.Address)
			}
		}
		if r.Action.Changed() {
			actionTypeSet[string(r.Action)] = struct{}{}
		}
	}
	sort.Strings(deletions)

	actionTypes := make([]string, 0, len(actionTypeSet))
	for a := range actionTypeSet {
		actionTypes = append(actionTypes, a)
	}
	sort.Strings(actionTypes)

	sharedAddresses := make([]string, 0, len(in.SharedResources))
	criticalAddresses := make([]string, 0)
	for _, sr := range in.SharedResources {
		sharedAddresses = append(sharedAddresses, sr.Address)
		if sr.IsCritical {
			criticalAddresses = append(criticalAddresses, sr.Address)
		}
	}
	sort.Strings(sharedAddresses)
	sort.Strings(criticalAddresses)

	exposures := append([]security.Exposure(nil), in.Exposures...)
	sort.SliceStable(exposures, func(i, j int) bool { return exposures[i].ResourceAddress < exposures[j].ResourceAddress })

	costAlerts := append([]cost.Alert(nil), in.CostAlerts...)
	sort.SliceStable(costAlerts, func(i, j int) bool { return costAlerts[i].ResourceAddress < costAlerts[j].ResourceAddress })

	dims := make(map[string]float64, len(in.RiskResult.Breakdown.Dimensions))
	for d, v := range in.RiskResult.Breakdown.Dimensions {
		dims[string(d)] = v
	}

	action, approval := in.RiskResult.Tier.ActionFor()

	return CoreOutput{
		Version:            Version,
		ExplanationID:      in.ExplanationID,
		RiskLevel:          in.RiskResult.Tier.Project(),
		RiskLevelDetailed:  in.RiskResult.Tier,
		BlastRadiusScore:   in.RiskResult.Score,
		RiskAction:         action,
		ApprovalRequired:   approval,
		AffectedCount:      in.Blast.AffectedCount,
		DeletionCount:      deletionCount,
		AffectedComponents: nonNil(append([]string(nil), in.Blast.AffectedComponents...)),
		RiskAttributes: RiskAttributes{
			BlastRadius:             in.Blast.AffectedCount,
			SharedDependencies:      nonNil(sharedAddresses),
			CriticalInfrastructure:  nonNil(criticalAddresses),
			SensitiveDeletions:      nonNil(deletions),
			SecurityExposures:       nonNilExposures(exposures),
			CostAlerts:              nonNilAlerts(costAlerts),
			ActionTypes:             nonNil(actionTypes),
			RiskBreakdown: RiskBreakdown{
				PrimaryDimension:      string(in.RiskResult.Breakdown.PrimaryDimension),
				Dimensions:            dims,
				InteractionMultiplier: in.RiskResult.Breakdown.InteractionMultiplier,
				BlastContribution:     in.RiskResult.Breakdown.BlastContribution,
			},
		},
		Recommendations: nonNil(append([]string(nil), in.Recommendations...)),
	}
}
