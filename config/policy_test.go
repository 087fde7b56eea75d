package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akileshthuniki/preapply/lib/policyeval"
	"github.com/akileshthuniki/preapply/lib/risk"
)

func TestLoadPolicy_OrderedRulesAndConditions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	doc := `
rules:
  - id: block-high-security
    description: block high/critical plans with an open security exposure
    match:
      risk_level: [HIGH, CRITICAL]
      has_security_exposures: true
    action: fail
  - id: warn-deletions
    description: warn on any sensitive deletion
    match:
      has_sensitive_deletions: true
    action: warn
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	document, err := LoadPolicy(path)
	require.NoError(t, err)
	require.Len(t, document.Rules, 2)

	first := document.Rules[0]
	assert.Equal(t, "block-high-security", first.ID)
	assert.Equal(t, policyeval.ActionFail, first.Action)
	assert.Equal(t, []risk.PolicyTier{risk.PolicyHigh, risk.PolicyCritical}, first.Match.RiskLevel)
	require.NotNil(t, first.Match.HasSecurityExposures)
	assert.True(t, *first.Match.HasSecurityExposures)

	second := document.Rules[1]
	assert.Equal(t, policyeval.ActionWarn, second.Action)
	require.NotNil(t, second.Match.HasSensitiveDeletions)
	assert.True(t, *second.Match.HasSensitiveDeletions)
}

func TestLoadPolicy_MissingFileIsPolicyLoadError(t *testing.T) {
	_, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadPolicy_MalformedYAMLIsPolicyLoadError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [this is not valid"), 0644))

	_, err := LoadPolicy(path)
	require.Error(t, err)
}
