package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAnalyze_JSONOutputS1(t *testing.T) {
	originalJSON, originalOutput, originalQuiet := analyzeJSON, analyzeOutput, analyzeQuiet
	defer func() { analyzeJSON, analyzeOutput, analyzeQuiet = originalJSON, originalOutput, originalQuiet }()

	analyzeJSON = true
	analyzeOutput = ""
	analyzeQuiet = false

	planFile := writePlanFixture(t)

	var buf bytes.Buffer
	analyzeCmd.SetOut(&buf)
	defer analyzeCmd.SetOut(nil)

	err := runAnalyze(analyzeCmd, []string{planFile})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "LOW", decoded["risk_level_detailed"])
	assert.Equal(t, float64(1), decoded["affected_count"])
}

// TestRunAnalyze_DotOutputRendersGraphviz verifies that --output with a
// ".dot" extension writes the dependency graph via report.Graphviz rather
// than the CoreOutput JSON.
func TestRunAnalyze_DotOutputRendersGraphviz(t *testing.T) {
	originalJSON, originalOutput, originalFormat, originalQuiet := analyzeJSON, analyzeOutput, analyzeOutputFormat, analyzeQuiet
	defer func() {
		analyzeJSON, analyzeOutput, analyzeOutputFormat, analyzeQuiet = originalJSON, originalOutput, originalFormat, originalQuiet
	}()

	planFile := writeHighRiskPlanFixture(t)
	dotFile := filepath.Join(t.TempDir(), "graph.dot")

	analyzeJSON = false
	analyzeOutput = dotFile
	analyzeOutputFormat = ""
	analyzeQuiet = true

	var buf bytes.Buffer
	analyzeCmd.SetOut(&buf)
	defer analyzeCmd.SetOut(nil)

	err := runAnalyze(analyzeCmd, []string{planFile})
	require.NoError(t, err)

	data, err := os.ReadFile(dotFile)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "aws_db_instance.production")
	assert.Contains(t, content, "aws_security_group.sg")
}

// TestRunAnalyze_TableFileOutputIsNotJSON verifies that --output without
// --json (or an --output-format override) writes an actual rendered table
// to the file, not CoreOutput's JSON encoding.
func TestRunAnalyze_TableFileOutputIsNotJSON(t *testing.T) {
	originalJSON, originalOutput, originalFormat, originalQuiet := analyzeJSON, analyzeOutput, analyzeOutputFormat, analyzeQuiet
	defer func() {
		analyzeJSON, analyzeOutput, analyzeOutputFormat, analyzeQuiet = originalJSON, originalOutput, originalFormat, originalQuiet
	}()

	planFile := writePlanFixture(t)
	reportFile := filepath.Join(t.TempDir(), "report.txt")

	analyzeJSON = false
	analyzeOutput = reportFile
	analyzeOutputFormat = ""
	analyzeQuiet = true

	var buf bytes.Buffer
	analyzeCmd.SetOut(&buf)
	defer analyzeCmd.SetOut(nil)

	err := runAnalyze(analyzeCmd, []string{planFile})
	require.NoError(t, err)

	data, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.False(t, json.Valid(data), "table output must not be valid JSON")
}

func TestRunAnalyze_MissingFileIsError(t *testing.T) {
	originalJSON := analyzeJSON
	defer func() { analyzeJSON = originalJSON }()
	analyzeJSON = true

	err := runAnalyze(analyzeCmd, []string{"/nonexistent/plan.json"})
	assert.Error(t, err)
}
