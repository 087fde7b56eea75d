package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExplain_ListResources(t *testing.T) {
	originalJSON, originalList := explainJSON, explainListResources
	defer func() { explainJSON, explainListResources = originalJSON, originalList }()

	explainJSON = true
	explainListResources = true

	planFile := writePlanFixture(t)

	var buf bytes.Buffer
	explainCmd.SetOut(&buf)
	defer explainCmd.SetOut(nil)

	err := runExplain(explainCmd, []string{planFile})
	require.NoError(t, err)

	var addresses []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &addresses))
	assert.Equal(t, []string{"aws_s3_bucket.logs"}, addresses)
}

func TestRunExplain_ResourceDetail(t *testing.T) {
	originalJSON, originalList := explainJSON, explainListResources
	defer func() { explainJSON, explainListResources = originalJSON, originalList }()

	explainJSON = true
	explainListResources = false

	planFile := writeHighRiskPlanFixture(t)

	var buf bytes.Buffer
	explainCmd.SetOut(&buf)
	defer explainCmd.SetOut(nil)

	err := runExplain(explainCmd, []string{planFile, "aws_db_instance.production"})
	require.NoError(t, err)

	var decoded resourceExplanation
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "DELETE", decoded.Action)
	assert.Equal(t, "aws_db_instance", decoded.Type)
}

// TestRunExplain_NoResourceIDRunsFullPipeline verifies that omitting
// RESOURCE_ID (with --list-resources unset) runs the full analysis and
// emits CoreOutput, rather than erroring.
func TestRunExplain_NoResourceIDRunsFullPipeline(t *testing.T) {
	originalJSON, originalList := explainJSON, explainListResources
	defer func() { explainJSON, explainListResources = originalJSON, originalList }()

	explainJSON = true
	explainListResources = false

	planFile := writeHighRiskPlanFixture(t)

	var buf bytes.Buffer
	explainCmd.SetOut(&buf)
	defer explainCmd.SetOut(nil)

	err := runExplain(explainCmd, []string{planFile})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(1), decoded["affected_count"])
	assert.NotEmpty(t, decoded["risk_level"])
}

func TestRunExplain_UnknownResourceIsError(t *testing.T) {
	originalJSON, originalList := explainJSON, explainListResources
	defer func() { explainJSON, explainListResources = originalJSON, originalList }()

	explainJSON = false
	explainListResources = false

	planFile := writePlanFixture(t)
	err := runExplain(explainCmd, []string{planFile, "aws_s3_bucket.does_not_exist"})
	assert.Error(t, err)
}
