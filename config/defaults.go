package config

import "github.com/akileshthuniki/preapply/lib/risk"

// riskConfigFrom converts the YAML-decoded RiskScoringConfig into a
// risk.Config, falling back to the scoring formula's numeric defaults for any
// field left at its YAML zero value. The default values themselves are the
// single named table returned by risk.Defaults().
func riskConfigFrom(in RiskScoringConfig) risk.Config {
	d := risk.Defaults()

	cfg := d
	if in.DataLoss.BaseWeight != 0 {
		cfg.DataBaseWeight = in.DataLoss.BaseWeight
	}
	if in.DataLoss.DecayFactor != 0 {
		cfg.DataDecayFactor = in.DataLoss.DecayFactor
	}
	if in.DataLoss.StateDestructiveMultiplier != 0 {
		cfg.DataStateDestructiveMultiplier = in.DataLoss.StateDestructiveMultiplier
	}

	if in.Security.BaseWeight != 0 {
		cfg.SecurityBaseWeight = in.Security.BaseWeight
	}
	if in.Security.DecayFactor != 0 {
		cfg.SecurityDecayFactor = in.Security.DecayFactor
	}
	if in.Security.SensitivePortPenalty != 0 {
		cfg.SensitivePortPenalty = in.Security.SensitivePortPenalty
	}

	if in.Infrastructure.SharedResourceBase != 0 {
		cfg.InfrastructureSharedBase = in.Infrastructure.SharedResourceBase
	}
	if in.Infrastructure.CriticalMultiplier != 0 {
		cfg.InfrastructureCriticalMultiplier = in.Infrastructure.CriticalMultiplier
	}

	if in.Cost.CreationWeight != 0 {
		cfg.CostCreationWeight = in.Cost.CreationWeight
	}
	if in.Cost.ScalingWeight != 0 {
		cfg.CostScalingWeight = in.Cost.ScalingWeight
	}
	if in.Cost.DecayFactor != 0 {
		cfg.CostDecayFactor = in.Cost.DecayFactor
	}

	if in.Interactions.DataSecurityBonus != 0 {
		cfg.InteractionDataSecurityBonus = in.Interactions.DataSecurityBonus
	}
	if in.Interactions.InfrastructureSecurityBonus != 0 {
		cfg.InteractionInfrastructureSecurityBonus = in.Interactions.InfrastructureSecurityBonus
	}
	if in.Interactions.DataInfrastructureBonus != 0 {
		cfg.InteractionDataInfrastructureBonus = in.Interactions.DataInfrastructureBonus
	}
	if in.Interactions.CostInfrastructureBonus != 0 {
		cfg.InteractionCostInfrastructureBonus = in.Interactions.CostInfrastructureBonus
	}
	if in.Interactions.PerfectStormThreshold != 0 {
		cfg.PerfectStormThreshold = in.Interactions.PerfectStormThreshold
	}
	if in.Interactions.PerfectStormBonus != 0 {
		cfg.PerfectStormBonus = in.Interactions.PerfectStormBonus
	}
	if in.Interactions.TwoDimBonus != 0 {
		cfg.TwoDimBonus = in.Interactions.TwoDimBonus
	}

	if in.BlastRadius.Weights.Data != 0 {
		cfg.BlastWeightData = in.BlastRadius.Weights.Data
	}
	if in.BlastRadius.Weights.Security != 0 {
		cfg.BlastWeightSecurity = in.BlastRadius.Weights.Security
	}
	if in.BlastRadius.Weights.Infrastructure != 0 {
		cfg.BlastWeightInfrastructure = in.BlastRadius.Weights.Infrastructure
	}
	if in.BlastRadius.Weights.Cost != 0 {
		cfg.BlastWeightCost = in.BlastRadius.Weights.Cost
	}

	if in.Thresholds.CriticalCatastrophic != 0 {
		cfg.ThresholdCriticalCatastrophic = in.Thresholds.CriticalCatastrophic
	}
	if in.Thresholds.Critical != 0 {
		cfg.ThresholdCritical = in.Thresholds.Critical
	}
	if in.Thresholds.HighSevere != 0 {
		cfg.ThresholdHighSevere = in.Thresholds.HighSevere
	}
	if in.Thresholds.High != 0 {
		cfg.ThresholdHigh = in.Thresholds.High
	}
	if in.Thresholds.Medium != 0 {
		cfg.ThresholdMedium = in.Thresholds.Medium
	}

	return cfg
}
