package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_LegacyBlastRadiusKeyTriggersMigration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.yaml")
	doc := `
blast_radius:
  some_legacy_knob: true
shared_resources:
  critical_types:
    - aws_rds_cluster
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// risk_scoring was absent; migration must populate it from defaults
	// rather than leave it at its YAML zero value.
	assert.Equal(t, 50.0, cfg.RiskScoring.DataLoss.BaseWeight)
	assert.Equal(t, 40.0, cfg.RiskScoring.Security.BaseWeight)
	assert.Equal(t, []string{"aws_rds_cluster"}, cfg.SharedResources.CriticalTypes)
}

func TestIsZeroRiskScoring(t *testing.T) {
	assert.True(t, isZeroRiskScoring(RiskScoringConfig{}))
	assert.False(t, isZeroRiskScoring(RiskScoringConfig{Security: SecurityScoringConfig{BaseWeight: 1}}))
}

func TestMergeWithDefaults_PreservesExplicitSensitivePorts(t *testing.T) {
	in := RiskScoringConfig{Security: SecurityScoringConfig{SensitivePorts: []int{22, 443}}}
	merged := mergeWithDefaults(in)
	assert.Equal(t, []int{22, 443}, merged.Security.SensitivePorts)
	assert.NotZero(t, merged.Security.BaseWeight)
}
