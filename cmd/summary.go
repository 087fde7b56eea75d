/*
Copyright © 2025 Arjen Schwarz <developer@arjen.eu>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pperrors "github.com/akileshthuniki/preapply/lib/errors"
	"github.com/akileshthuniki/preapply/lib/ingest"
)

var summaryJSON bool

// summaryOutput is the condensed view the summary command projects CoreOutput down to
// for a quick terminal glance: just enough to triage a plan at a stand-up,
// without the full risk_attributes subtree.
type summaryOutput struct {
	ExplanationID     string   `json:"explanation_id"`
	RiskLevel         string   `json:"risk_level"`
	RiskLevelDetailed string   `json:"risk_level_detailed"`
	Score             float64  `json:"blast_radius_score"`
	AffectedCount     int      `json:"affected_count"`
	DeletionCount     int      `json:"deletion_count"`
	ActionTypes       []string `json:"action_types"`
}

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary PLAN",
	Short: "Print a condensed risk summary of a Terraform plan",
	Long: `Summary runs the same pipeline as analyze but prints a condensed view:
risk level, score, and affected/deletion counts, suitable for a quick
terminal glance or a CI log line.

Examples:
  # Condensed table summary
  preapply summary terraform.tfplan.json

  # Condensed JSON summary
  preapply summary --json terraform.tfplan.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "emit the summary as JSON")
}

func runSummary(cmd *cobra.Command, args []string) error {
	planFile := args[0]

	raw, err := ingest.Load(planFile)
	if err != nil {
		return err
	}

	planBytes, err := os.ReadFile(planFile)
	if err != nil {
		return pperrors.NewPlanLoadError(planFile, err)
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	out, err := runPipeline(planBytes, raw, cfg)
	if err != nil {
		return err
	}

	summary := summaryOutput{
		ExplanationID:     out.ExplanationID,
		RiskLevel:         string(out.RiskLevel),
		RiskLevelDetailed: string(out.RiskLevelDetailed),
		Score:             out.BlastRadiusScore,
		AffectedCount:     out.AffectedCount,
		DeletionCount:     out.DeletionCount,
		ActionTypes:       out.RiskAttributes.ActionTypes,
	}

	if summaryJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s (%s)  score=%.2f  affected=%d  deletions=%d\n",
		summary.ExplanationID, summary.RiskLevel, summary.RiskLevelDetailed, summary.Score,
		summary.AffectedCount, summary.DeletionCount)
	return nil
}
