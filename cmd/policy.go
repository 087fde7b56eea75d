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

	"github.com/akileshthuniki/preapply/config"
	pperrors "github.com/akileshthuniki/preapply/lib/errors"
	"github.com/akileshthuniki/preapply/lib/ingest"
	"github.com/akileshthuniki/preapply/lib/policyeval"
)

// policyCmd is the parent of the policy subcommand group.
var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Evaluate risk assessments against a policy document",
}

var (
	policyFile      string
	environmentFile string
	enforcementMode string
	policyJSON      bool
)

// policyCheckCmd represents the policy check command
var policyCheckCmd = &cobra.Command{
	Use:   "check PLAN",
	Short: "Evaluate a Terraform plan's risk assessment against a policy file",
	Long: `Policy check runs the full analysis pipeline over PLAN and evaluates the
resulting CoreOutput against an ordered rules list. Every rule
always runs to populate pass/warn/fail counts; the first matching "fail"
rule governs the process exit code.

Exit codes: 0 on pass; 2 if any rule fails and --enforcement-mode is "auto";
3 if any rule fails and --enforcement-mode is "manual".

Examples:
  # Evaluate a plan against a policy file in auto-enforcement mode
  preapply policy check terraform.tfplan.json --policy-file policy.yaml

  # Same, requiring manual approval instead of a hard block
  preapply policy check terraform.tfplan.json --policy-file policy.yaml --enforcement-mode manual`,
	Args: cobra.ExactArgs(1),
	RunE: runPolicyCheck,
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyCheckCmd)

	policyCheckCmd.Flags().StringVar(&policyFile, "policy-file", "", "policy YAML file; a missing or unreadable file is a PolicyLoadError")
	policyCheckCmd.Flags().StringVar(&environmentFile, "environment", "", "environment-specific overlay file (reserved; not yet consumed by the evaluator)")
	policyCheckCmd.Flags().StringVar(&enforcementMode, "enforcement-mode", "auto", "enforcement mode on policy failure: auto|manual")
	policyCheckCmd.Flags().BoolVar(&policyJSON, "json", false, "emit the evaluation result as JSON")
}

// policyCheckResult is the evaluation record printed by policy check,
// bundling the policyeval.Result with the exit-code decision.
type policyCheckResult struct {
	Passed       bool             `json:"passed"`
	FailureCount int              `json:"failure_count"`
	WarningCount int              `json:"warning_count"`
	Hits         []policyeval.Hit `json:"hits"`
	ExitCode     int              `json:"exit_code"`
}

func runPolicyCheck(cmd *cobra.Command, args []string) error {
	planFile := args[0]

	if enforcementMode != "auto" && enforcementMode != "manual" {
		return pperrors.NewPlanStructureError(fmt.Sprintf("invalid --enforcement-mode %q: must be auto or manual", enforcementMode))
	}

	doc, err := config.LoadPolicy(policyFile)
	if err != nil {
		return err
	}

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

	evalResult := policyeval.Evaluate(*doc, out)
	exitCode := policyExitCode(evalResult.Passed, enforcementMode)

	result := policyCheckResult{
		Passed:       evalResult.Passed,
		FailureCount: evalResult.FailureCount,
		WarningCount: evalResult.WarningCount,
		Hits:         evalResult.Hits,
		ExitCode:     exitCode,
	}

	if policyJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal policy evaluation result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "passed=%t failures=%d warnings=%d\n", result.Passed, result.FailureCount, result.WarningCount)
		for _, h := range result.Hits {
			if h.Matched {
				fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s matched\n", h.Action, h.RuleID)
			}
		}
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// policyExitCode maps an evaluation outcome to the process exit code:
// 0 on pass, 2 on a failed rule under auto enforcement, 3 under manual
// enforcement.
func policyExitCode(passed bool, mode string) int {
	if passed {
		return 0
	}
	if mode == "manual" {
		return 3
	}
	return 2
}
