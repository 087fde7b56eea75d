package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSummary_TableOutputS1(t *testing.T) {
	originalJSON := summaryJSON
	defer func() { summaryJSON = originalJSON }()
	summaryJSON = false

	planFile := writePlanFixture(t)

	var buf bytes.Buffer
	summaryCmd.SetOut(&buf)
	defer summaryCmd.SetOut(nil)

	err := runSummary(summaryCmd, []string{planFile})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "LOW")
	assert.Contains(t, buf.String(), "affected=1")
}

func TestRunSummary_JSONOutputHighRisk(t *testing.T) {
	originalJSON := summaryJSON
	defer func() { summaryJSON = originalJSON }()
	summaryJSON = true

	planFile := writeHighRiskPlanFixture(t)

	var buf bytes.Buffer
	summaryCmd.SetOut(&buf)
	defer summaryCmd.SetOut(nil)

	err := runSummary(summaryCmd, []string{planFile})
	require.NoError(t, err)

	assert.True(t, strings.Contains(buf.String(), `"risk_level_detailed": "HIGH"`))
}
