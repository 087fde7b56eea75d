package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDefaultPathAppliesDefaults(t *testing.T) {
	t.Setenv("PREAPPLY_CONFIG", filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50.0, cfg.RiskScoring.DataLoss.BaseWeight)
	assert.Equal(t, 0.85, cfg.RiskScoring.DataLoss.DecayFactor)
	assert.Equal(t, 200.0, cfg.RiskScoring.Thresholds.CriticalCatastrophic)
}

func TestLoad_ExplicitMissingPathIsFatal(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_FullDocumentOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preapply.yaml")
	doc := `
risk_scoring:
  data_loss:
    base_weight: 99
    decay_factor: 0.5
    state_destructive_multiplier: 0.75
  thresholds:
    medium: 41
shared_resources:
  critical_types:
    - aws_rds_*
cost_alerts:
  high_cost_types:
    - aws_nat_gateway
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 99.0, cfg.RiskScoring.DataLoss.BaseWeight)
	assert.Equal(t, 0.5, cfg.RiskScoring.DataLoss.DecayFactor)
	assert.Equal(t, 41.0, cfg.RiskScoring.Thresholds.Medium)
	assert.Equal(t, []string{"aws_rds_*"}, cfg.SharedResources.CriticalTypes)

	analysisCfg := cfg.ToAnalysisConfig()
	assert.Equal(t, 99.0, analysisCfg.Risk.DataBaseWeight)
	assert.Equal(t, []string{"aws_nat_gateway"}, analysisCfg.HighCostTypes)
}

func TestToAnalysisConfig_EmptySensitivePortsFallsBackToDefaults(t *testing.T) {
	cfg := defaultedConfig()
	analysisCfg := cfg.ToAnalysisConfig()

	assert.Contains(t, analysisCfg.SensitivePorts, 22)
	assert.Contains(t, analysisCfg.SensitivePorts, 3389)
}

func TestDefaultPath_PrefersEnvVar(t *testing.T) {
	t.Setenv("PREAPPLY_CONFIG", "/tmp/custom-preapply.yaml")
	assert.Equal(t, "/tmp/custom-preapply.yaml", DefaultPath())
}
