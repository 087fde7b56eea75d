// Package risk implements the risk scoring formula: per-dimension
// stacking decay, interaction multipliers, the blast term, and tiering.
package risk

import (
	"math"
	"sort"

	"github.com/akileshthuniki/preapply/lib/cost"
	"github.com/akileshthuniki/preapply/lib/graph"
	"github.com/akileshthuniki/preapply/lib/normalize"
	"github.com/akileshthuniki/preapply/lib/security"
	"github.com/akileshthuniki/preapply/lib/shared"
	"github.com/akileshthuniki/preapply/lib/statedestructive"
)

// Dimension is the closed dimension variant reported in DimensionScores.
type Dimension string

// Dimension values, in tie-break order.
const (
	DimensionData           Dimension = "data"
	DimensionSecurity       Dimension = "security"
	DimensionInfrastructure Dimension = "infrastructure"
	DimensionCost           Dimension = "cost"
)

var tieBreakOrder = []Dimension{DimensionData, DimensionSecurity, DimensionInfrastructure, DimensionCost}

// Tier is the closed 6-tier variant.
type Tier string

// Tier values, most to least severe.
const (
	TierCriticalCatastrophic Tier = "CRITICAL-CATASTROPHIC"
	TierCritical             Tier = "CRITICAL"
	TierHighSevere           Tier = "HIGH-SEVERE"
	TierHigh                 Tier = "HIGH"
	TierMedium               Tier = "MEDIUM"
	TierLow                  Tier = "LOW"
)

// tierOrdinal gives the tier's ordinal for monotonicity checks: larger
// is more severe.
var tierOrdinal = map[Tier]int{
	TierLow:                  0,
	TierMedium:               1,
	TierHigh:                 2,
	TierHighSevere:           3,
	TierCritical:             4,
	TierCriticalCatastrophic: 5,
}

// Ordinal returns t's severity rank (higher is worse).
func (t Tier) Ordinal() int { return tierOrdinal[t] }

// PolicyTier is the closed 4-tier projection of the numeric score.
type PolicyTier string

// PolicyTier values.
const (
	PolicyCritical PolicyTier = "CRITICAL"
	PolicyHigh     PolicyTier = "HIGH"
	PolicyMedium   PolicyTier = "MEDIUM"
	PolicyLow      PolicyTier = "LOW"
)

// Project maps a 6-tier value to its 4-tier policy-compatible value.
func (t Tier) Project() PolicyTier {
	switch t {
	case TierCriticalCatastrophic, TierCritical:
		return PolicyCritical
	case TierHighSevere, TierHigh:
		return PolicyHigh
	case TierMedium:
		return PolicyMedium
	default:
		return PolicyLow
	}
}

// Action and ApprovalLevel make up the (action, approval) pair the 6-tier
// maps to.
type Action string
type ApprovalLevel string

// Action values.
const (
	ActionHardBlock         Action = "HARD_BLOCK"
	ActionSoftBlock         Action = "SOFT_BLOCK"
	ActionRequireApproval   Action = "REQUIRE_APPROVAL"
	ActionRequirePeerReview Action = "REQUIRE_PEER_REVIEW"
	ActionAutoApprove       Action = "AUTO_APPROVE"
)

// ApprovalLevel values.
const (
	ApprovalVPIncident      ApprovalLevel = "VP+INCIDENT"
	ApprovalVPOrDirector    ApprovalLevel = "VP-or-DIRECTOR"
	ApprovalSeniorArchitect ApprovalLevel = "SENIOR+ARCHITECT"
	ApprovalSeniorOrLead    ApprovalLevel = "SENIOR-or-LEAD"
	ApprovalAny             ApprovalLevel = "ANY"
	ApprovalNone            ApprovalLevel = "NONE"
)

// ActionFor returns the (action, approval) pair for a tier.
func (t Tier) ActionFor() (Action, ApprovalLevel) {
	switch t {
	case TierCriticalCatastrophic:
		return ActionHardBlock, ApprovalVPIncident
	case TierCritical:
		return ActionSoftBlock, ApprovalVPOrDirector
	case TierHighSevere:
		return ActionRequireApproval, ApprovalSeniorArchitect
	case TierHigh:
		return ActionRequireApproval, ApprovalSeniorOrLead
	case TierMedium:
		return ActionRequirePeerReview, ApprovalAny
	default:
		return ActionAutoApprove, ApprovalNone
	}
}

// Breakdown is the full risk_breakdown record.
type Breakdown struct {
	PrimaryDimension     Dimension
	Dimensions           map[Dimension]float64
	InteractionMultiplier float64
	BlastContribution    float64
}

// Result is the complete scoring outcome.
type Result struct {
	Score     float64
	Tier      Tier
	Breakdown Breakdown
}

type weightedItem struct {
	address string
	weight  float64
}

// stackingDecay sums w_i * δ^i over items ordered by descending weight, ties
// broken by ascending address.
func stackingDecay(items []weightedItem, decay float64) float64 {
	sort.Slice(items, func(i, j int) bool {
		if items[i].weight != items[j].weight {
			return items[i].weight > items[j].weight
		}
		return items[i].address < items[j].address
	})

	total := 0.0
	factor := 1.0
	for _, it := range items {
		total += it.weight * factor
		factor *= decay
	}
	return total
}

func isSensitivePort(port *int, sensitivePorts map[int]struct{}) bool {
	if port == nil {
		return false
	}
	_, ok := sensitivePorts[*port]
	return ok
}

func dataDimension(plan *normalize.NormalizedPlan, stateUpdates []statedestructive.Update, cfg Config) float64 {
	var items []weightedItem
	for _, r := range plan.Resources {
		if r.Action == normalize.ActionDelete {
			items = append(items, weightedItem{r.Address, cfg.DataBaseWeight * 1.0})
		}
	}
	for _, u := range stateUpdates {
		items = append(items, weightedItem{u.ResourceAddress, cfg.DataBaseWeight * cfg.DataStateDestructiveMultiplier})
	}
	return stackingDecay(items, cfg.DataDecayFactor)
}

func securityDimension(exposures []security.Exposure, cfg Config, sensitivePorts map[int]struct{}) float64 {
	var items []weightedItem
	for _, e := range exposures {
		weight := cfg.SecurityBaseWeight
		if isSensitivePort(e.Port, sensitivePorts) {
			weight += cfg.SensitivePortPenalty
		}
		items = append(items, weightedItem{e.ResourceAddress, weight})
	}
	return stackingDecay(items, cfg.SecurityDecayFactor)
}

func actionMultiplier(action normalize.ResourceAction) float64 {
	switch action {
	case normalize.ActionDelete:
		return 2.0
	case normalize.ActionUpdate:
		return 1.5
	default:
		return 1.0
	}
}

func infrastructureDimension(
	plan *normalize.NormalizedPlan,
	g *graph.Graph,
	sharedResources []shared.SharedResource,
	cfg Config,
) float64 {
	byAddress := make(map[string]normalize.NormalizedResource, len(plan.Resources))
	for _, r := range plan.Resources {
		byAddress[r.Address] = r
	}

	total := 0.0
	for _, sr := range sharedResources {
		r, ok := byAddress[sr.Address]
		if !ok {
			continue
		}

		selfChanged := r.Action.Changed()
		downstreamChanged := false
		for _, succ := range g.Predecessors(sr.Address) {
			if dr, ok := byAddress[succ]; ok && dr.Action.Changed() {
				downstreamChanged = true
				break
			}
		}
		if !selfChanged && !downstreamChanged {
			continue
		}

		criticalityMult := 1.0
		if sr.IsCritical {
			criticalityMult = cfg.InfrastructureCriticalMultiplier
		}
		total += cfg.InfrastructureSharedBase * criticalityMult * actionMultiplier(r.Action)
	}
	return total
}

func costDimension(alerts []cost.Alert, cfg Config) float64 {
	var items []weightedItem
	for _, a := range alerts {
		weight := cfg.CostCreationWeight
		if a.Kind == cost.KindInstanceScaleUp {
			weight = cfg.CostScalingWeight
		}
		items = append(items, weightedItem{a.ResourceAddress, weight})
	}
	return stackingDecay(items, cfg.CostDecayFactor)
}

func interactionMultiplier(dims map[Dimension]float64, cfg Config) float64 {
	mu := 0.0
	if dims[DimensionData] >= 40 && dims[DimensionSecurity] >= 40 {
		mu += cfg.InteractionDataSecurityBonus
	}
	if dims[DimensionInfrastructure] >= 60 && dims[DimensionSecurity] >= 40 {
		mu += cfg.InteractionInfrastructureSecurityBonus
	}
	if dims[DimensionData] >= 40 && dims[DimensionInfrastructure] >= 60 {
		mu += cfg.InteractionDataInfrastructureBonus
	}
	if dims[DimensionCost] >= 30 && dims[DimensionInfrastructure] >= 60 {
		mu += cfg.InteractionCostInfrastructureBonus
	}

	count := 0
	for _, d := range tieBreakOrder {
		if dims[d] >= 35 {
			count++
		}
	}
	switch {
	case count >= cfg.PerfectStormThreshold:
		mu += cfg.PerfectStormBonus
	case count == 2:
		mu += cfg.TwoDimBonus
	}

	return mu
}

func primaryDimension(dims map[Dimension]float64) Dimension {
	primary := tieBreakOrder[0]
	best := dims[primary]
	for _, d := range tieBreakOrder[1:] {
		if dims[d] > best {
			best = dims[d]
			primary = d
		}
	}
	return primary
}

func blastWeight(d Dimension, cfg Config) float64 {
	switch d {
	case DimensionData:
		return cfg.BlastWeightData
	case DimensionSecurity:
		return cfg.BlastWeightSecurity
	case DimensionInfrastructure:
		return cfg.BlastWeightInfrastructure
	case DimensionCost:
		return cfg.BlastWeightCost
	default:
		return 0
	}
}

// Tier6 maps a score to its 6-tier classification.
func Tier6(score float64, cfg Config) Tier {
	switch {
	case score >= cfg.ThresholdCriticalCatastrophic:
		return TierCriticalCatastrophic
	case score >= cfg.ThresholdCritical:
		return TierCritical
	case score >= cfg.ThresholdHighSevere:
		return TierHighSevere
	case score >= cfg.ThresholdHigh:
		return TierHigh
	case score >= cfg.ThresholdMedium:
		return TierMedium
	default:
		return TierLow
	}
}

// Inputs bundles every argument Score needs, keeping the call site readable.
type Inputs struct {
	Plan            *normalize.NormalizedPlan
	Graph           *graph.Graph
	Exposures       []security.Exposure
	StateUpdates    []statedestructive.Update
	CostAlerts      []cost.Alert
	SharedResources []shared.SharedResource
	AffectedCount   int
	SensitivePorts  map[int]struct{}
	Config          Config
}

// Score runs the full formula and returns the score, tier, and
// the risk_breakdown record.
func Score(in Inputs) Result {
	dims := map[Dimension]float64{
		DimensionData:           dataDimension(in.Plan, in.StateUpdates, in.Config),
		DimensionSecurity:       securityDimension(in.Exposures, in.Config, in.SensitivePorts),
		DimensionInfrastructure: infrastructureDimension(in.Plan, in.Graph, in.SharedResources, in.Config),
		DimensionCost:           costDimension(in.CostAlerts, in.Config),
	}

	mu := interactionMultiplier(dims, in.Config)
	primary := primaryDimension(dims)

	maxDim := dims[primary]
	blastTerm := 10 * math.Log2(float64(in.AffectedCount)+1)
	omega := blastWeight(primary, in.Config)
	blastContribution := blastTerm * omega

	score := maxDim*(1+mu) + blastContribution
	tier := Tier6(score, in.Config)

	return Result{
		Score: score,
		Tier:  tier,
		Breakdown: Breakdown{
			PrimaryDimension:      primary,
			Dimensions:            dims,
			InteractionMultiplier: mu,
			BlastContribution:     blastContribution,
		},
	}
}
