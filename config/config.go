// Package config loads and validates the PreApply configuration document.
package config

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/akileshthuniki/preapply/lib/analysis"
	"github.com/akileshthuniki/preapply/lib/cost"
	pperrors "github.com/akileshthuniki/preapply/lib/errors"
)

// DataLossConfig is risk_scoring.data_loss.
type DataLossConfig struct {
	BaseWeight                 float64 `mapstructure:"base_weight"`
	DecayFactor                float64 `mapstructure:"decay_factor"`
	StateDestructiveMultiplier float64 `mapstructure:"state_destructive_multiplier"`
}

// SecurityScoringConfig is risk_scoring.security.
type SecurityScoringConfig struct {
	BaseWeight          float64  `mapstructure:"base_weight"`
	DecayFactor         float64  `mapstructure:"decay_factor"`
	SensitivePortPenalty float64 `mapstructure:"sensitive_port_penalty"`
	SensitivePorts      []int    `mapstructure:"sensitive_ports"`
}

// InfrastructureScoringConfig is risk_scoring.infrastructure.
type InfrastructureScoringConfig struct {
	SharedResourceBase  float64 `mapstructure:"shared_resource_base"`
	CriticalMultiplier  float64 `mapstructure:"critical_multiplier"`
}

// CostScoringConfig is risk_scoring.cost.
type CostScoringConfig struct {
	CreationWeight float64 `mapstructure:"creation_weight"`
	ScalingWeight  float64 `mapstructure:"scaling_weight"`
	DecayFactor    float64 `mapstructure:"decay_factor"`
}

// InteractionsConfig is risk_scoring.interactions.
type InteractionsConfig struct {
	DataSecurityBonus           float64 `mapstructure:"data_security_bonus"`
	InfrastructureSecurityBonus float64 `mapstructure:"infrastructure_security_bonus"`
	DataInfrastructureBonus     float64 `mapstructure:"data_infrastructure_bonus"`
	CostInfrastructureBonus     float64 `mapstructure:"cost_infrastructure_bonus"`
	PerfectStormThreshold       int     `mapstructure:"perfect_storm_threshold"`
	PerfectStormBonus           float64 `mapstructure:"perfect_storm_bonus"`
	TwoDimBonus                 float64 `mapstructure:"two_dim_bonus"`
}

// BlastRadiusWeightsConfig is risk_scoring.blast_radius.weights.
type BlastRadiusWeightsConfig struct {
	Data           float64 `mapstructure:"data"`
	Security       float64 `mapstructure:"security"`
	Infrastructure float64 `mapstructure:"infrastructure"`
	Cost           float64 `mapstructure:"cost"`
}

// BlastRadiusConfig is risk_scoring.blast_radius.
type BlastRadiusConfig struct {
	Weights BlastRadiusWeightsConfig `mapstructure:"weights"`
}

// ThresholdsConfig is risk_scoring.thresholds.
type ThresholdsConfig struct {
	CriticalCatastrophic float64 `mapstructure:"critical_catastrophic"`
	Critical             float64 `mapstructure:"critical"`
	HighSevere           float64 `mapstructure:"high_severe"`
	High                 float64 `mapstructure:"high"`
	Medium               float64 `mapstructure:"medium"`
}

// RiskScoringConfig is the top-level risk_scoring key.
type RiskScoringConfig struct {
	DataLoss       DataLossConfig              `mapstructure:"data_loss"`
	Security       SecurityScoringConfig       `mapstructure:"security"`
	Infrastructure InfrastructureScoringConfig `mapstructure:"infrastructure"`
	Cost           CostScoringConfig           `mapstructure:"cost"`
	Interactions   InteractionsConfig          `mapstructure:"interactions"`
	BlastRadius    BlastRadiusConfig           `mapstructure:"blast_radius"`
	Thresholds     ThresholdsConfig            `mapstructure:"thresholds"`
}

// SharedResourcesConfig is the shared_resources key.
type SharedResourcesConfig struct {
	CriticalTypes        []string `mapstructure:"critical_types"`
	SensitiveDeleteTypes []string `mapstructure:"sensitive_delete_types"`
}

// InstanceCostTierConfig is one entry of cost_alerts.instance_cost_tiers.
type InstanceCostTierConfig struct {
	Prefix string `mapstructure:"prefix"`
	Index  int    `mapstructure:"index"`
}

// CostAlertsConfig is the cost_alerts key.
type CostAlertsConfig struct {
	HighCostTypes         []string                 `mapstructure:"high_cost_types"`
	HighCostInstanceTypes []string                 `mapstructure:"high_cost_instance_types"`
	InstanceCostTiers     []InstanceCostTierConfig `mapstructure:"instance_cost_tiers"`
}

// Config is the fully-decoded configuration document.
type Config struct {
	RiskScoring     RiskScoringConfig     `mapstructure:"risk_scoring"`
	SharedResources SharedResourcesConfig `mapstructure:"shared_resources"`
	CostAlerts      CostAlertsConfig      `mapstructure:"cost_alerts"`

	// BlastRadius is the legacy key read only to detect the migration path
	// of a legacy document with blast_radius but no risk_scoring.
	BlastRadius map[string]any `mapstructure:"blast_radius"`
}

// DefaultPath returns the default configuration file path: PREAPPLY_CONFIG
// if set, else $HOME/.preapply.yaml.
func DefaultPath() string {
	if p := os.Getenv("PREAPPLY_CONFIG"); p != "" {
		return p
	}
	home, err := homedir.Dir()
	if err != nil {
		return ".preapply.yaml"
	}
	return home + string(os.PathSeparator) + ".preapply.yaml"
}

// Load reads the configuration file at path (or DefaultPath() if path is
// empty), applying the legacy-key migration when risk_scoring is
// absent. A missing file at the default path is not an error: defaults
// apply. An explicitly-requested path that cannot be read or parsed is a
// ConfigLoadError.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultedConfig(), nil
		}
		return nil, pperrors.NewConfigLoadError(path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, pperrors.NewConfigLoadError(path, err)
	}

	applyMigrationAndDefaults(&cfg, v)
	return &cfg, nil
}

func defaultedConfig() *Config {
	cfg := &Config{}
	applyMigrationAndDefaults(cfg, nil)
	return cfg
}

// ToAnalysisConfig converts the decoded YAML document into the immutable
// analysis.Config every pipeline stage reads.
func (c *Config) ToAnalysisConfig() analysis.Config {
	sensitivePorts := make(map[int]struct{}, len(c.RiskScoring.Security.SensitivePorts))
	if len(c.RiskScoring.Security.SensitivePorts) == 0 {
		sensitivePorts = analysis.DefaultSensitivePorts()
	} else {
		for _, p := range c.RiskScoring.Security.SensitivePorts {
			sensitivePorts[p] = struct{}{}
		}
	}

	tiers := make([]cost.Tier, 0, len(c.CostAlerts.InstanceCostTiers))
	for _, t := range c.CostAlerts.InstanceCostTiers {
		tiers = append(tiers, cost.Tier{Prefix: t.Prefix, Index: t.Index})
	}

	return analysis.Config{
		Risk: riskConfigFrom(c.RiskScoring),

		CriticalTypes:        c.SharedResources.CriticalTypes,
		SensitiveDeleteTypes: c.SharedResources.SensitiveDeleteTypes,

		HighCostTypes:         c.CostAlerts.HighCostTypes,
		HighCostInstanceTypes: c.CostAlerts.HighCostInstanceTypes,
		InstanceCostTiers:     tiers,

		SensitivePorts: sensitivePorts,
	}
}
