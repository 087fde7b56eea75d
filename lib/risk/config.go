package risk

import "github.com/akileshthuniki/preapply/lib/cost"

// Config is the immutable risk_scoring subtree, passed by value
// into Score so no stage depends on a hidden global.
type Config struct {
	DataBaseWeight               float64
	DataDecayFactor              float64
	DataStateDestructiveMultiplier float64

	SecurityBaseWeight  float64
	SecurityDecayFactor float64
	SensitivePortPenalty float64

	InfrastructureSharedBase        float64
	InfrastructureCriticalMultiplier float64

	CostCreationWeight float64
	CostScalingWeight  float64
	CostDecayFactor    float64

	InteractionDataSecurityBonus           float64
	InteractionInfrastructureSecurityBonus float64
	InteractionDataInfrastructureBonus     float64
	InteractionCostInfrastructureBonus     float64
	PerfectStormThreshold                  int
	PerfectStormBonus                      float64
	TwoDimBonus                            float64

	BlastWeightData           float64
	BlastWeightSecurity       float64
	BlastWeightInfrastructure float64
	BlastWeightCost           float64

	ThresholdCriticalCatastrophic float64
	ThresholdCritical             float64
	ThresholdHighSevere           float64
	ThresholdHigh                 float64
	ThresholdMedium               float64
}

// Defaults returns the numeric defaults for the scoring formula.
func Defaults() Config {
	return Config{
		DataBaseWeight:                 50,
		DataDecayFactor:                0.85,
		DataStateDestructiveMultiplier: 0.6,

		SecurityBaseWeight:   40,
		SecurityDecayFactor:  0.90,
		SensitivePortPenalty: 20,

		InfrastructureSharedBase:          30,
		InfrastructureCriticalMultiplier:  1.3,

		CostCreationWeight: 15,
		CostScalingWeight:  10,
		CostDecayFactor:    0.90,

		InteractionDataSecurityBonus:           0.35,
		InteractionInfrastructureSecurityBonus: 0.30,
		InteractionDataInfrastructureBonus:     0.25,
		InteractionCostInfrastructureBonus:     0.20,
		PerfectStormThreshold:                  3,
		PerfectStormBonus:                      0.40,
		TwoDimBonus:                            0.15,

		BlastWeightData:           0.2,
		BlastWeightSecurity:       0.4,
		BlastWeightInfrastructure: 1.0,
		BlastWeightCost:           0.5,

		ThresholdCriticalCatastrophic: 200,
		ThresholdCritical:             150,
		ThresholdHighSevere:           100,
		ThresholdHigh:                 70,
		ThresholdMedium:               40,
	}
}

// CostTiers is kept separate from Config since cost.Tier values are parsed
// from an ordered YAML list rather than fixed fields.
type CostTiers = []cost.Tier
