package config

import "github.com/spf13/viper"

// applyMigrationAndDefaults performs the one-shot legacy migration: if
// risk_scoring is absent from the document but the legacy blast_radius /
// shared_resources keys are present, risk_scoring is populated from the
// scoring formula's defaults so downstream stages never observe a
// zero-value scoring config silently. v is nil when no config file was
// read at all (default path), in which case only defaults apply.
func applyMigrationAndDefaults(cfg *Config, v *viper.Viper) {
	legacyPresent := v != nil && !v.IsSet("risk_scoring") && (v.IsSet("blast_radius") || v.IsSet("shared_resources"))

	if v == nil || legacyPresent || isZeroRiskScoring(cfg.RiskScoring) {
		cfg.RiskScoring = mergeWithDefaults(cfg.RiskScoring)
	}
}

func isZeroRiskScoring(r RiskScoringConfig) bool {
	return r.DataLoss == DataLossConfig{} &&
		r.Security.BaseWeight == 0 &&
		r.Infrastructure.SharedResourceBase == 0 &&
		r.Cost.CreationWeight == 0 &&
		r.Thresholds.Medium == 0
}

// mergeWithDefaults is riskConfigFrom's defaulting behavior expressed back
// onto the YAML-shaped RiskScoringConfig, so a legacy/absent document ends
// up with the same effective numbers as a fully-specified one.
func mergeWithDefaults(in RiskScoringConfig) RiskScoringConfig {
	d := riskConfigFrom(in)
	return RiskScoringConfig{
		DataLoss: DataLossConfig{
			BaseWeight:                 d.DataBaseWeight,
			DecayFactor:                d.DataDecayFactor,
			StateDestructiveMultiplier: d.DataStateDestructiveMultiplier,
		},
		Security: SecurityScoringConfig{
			BaseWeight:           d.SecurityBaseWeight,
			DecayFactor:          d.SecurityDecayFactor,
			SensitivePortPenalty: d.SensitivePortPenalty,
			SensitivePorts:       in.Security.SensitivePorts,
		},
		Infrastructure: InfrastructureScoringConfig{
			SharedResourceBase: d.InfrastructureSharedBase,
			CriticalMultiplier: d.InfrastructureCriticalMultiplier,
		},
		Cost: CostScoringConfig{
			CreationWeight: d.CostCreationWeight,
			ScalingWeight:  d.CostScalingWeight,
			DecayFactor:    d.CostDecayFactor,
		},
		Interactions: InteractionsConfig{
			DataSecurityBonus:           d.InteractionDataSecurityBonus,
			InfrastructureSecurityBonus: d.InteractionInfrastructureSecurityBonus,
			DataInfrastructureBonus:     d.InteractionDataInfrastructureBonus,
			CostInfrastructureBonus:     d.InteractionCostInfrastructureBonus,
			PerfectStormThreshold:       d.PerfectStormThreshold,
			PerfectStormBonus:           d.PerfectStormBonus,
			TwoDimBonus:                 d.TwoDimBonus,
		},
		BlastRadius: BlastRadiusConfig{Weights: BlastRadiusWeightsConfig{
			Data:           d.BlastWeightData,
			Security:       d.BlastWeightSecurity,
			Infrastructure: d.BlastWeightInfrastructure,
			Cost:           d.BlastWeightCost,
		}},
		Thresholds: ThresholdsConfig{
			CriticalCatastrophic: d.ThresholdCriticalCatastrophic,
			Critical:             d.ThresholdCritical,
			HighSevere:           d.ThresholdHighSevere,
			High:                 d.ThresholdHigh,
			Medium:               d.ThresholdMedium,
		},
	}
}
