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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akileshthuniki/preapply/config"
	"github.com/akileshthuniki/preapply/lib/blast"
	pperrors "github.com/akileshthuniki/preapply/lib/errors"
	"github.com/akileshthuniki/preapply/lib/graph"
	"github.com/akileshthuniki/preapply/lib/ingest"
	"github.com/akileshthuniki/preapply/lib/normalize"
	"github.com/akileshthuniki/preapply/lib/report"
)

var (
	analyzeJSON         bool
	analyzeOutput       string
	analyzeOutputFormat string
	analyzeQuiet        bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze PLAN",
	Short: "Compute a risk assessment for a Terraform plan",
	Long: `Analyze loads a Terraform plan, runs the full risk-scoring pipeline, and
emits the resulting CoreOutput record as a table or as JSON.

Examples:
  # Analyze a plan and print a table
  preapply analyze terraform.tfplan.json

  # Analyze a plan and print JSON
  preapply analyze --json terraform.tfplan.json

  # Write the JSON report to a file
  preapply analyze --json --output report.json terraform.tfplan.json

  # Write the dependency graph, affected resources in red, as Graphviz DOT
  preapply analyze --output graph.dot terraform.tfplan.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit CoreOutput as JSON")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "write the report to FILE instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeOutputFormat, "output-format", "", "format for --output: table|json|dot (default: inferred from the file extension, falling back to --json)")
	analyzeCmd.Flags().BoolVar(&analyzeQuiet, "quiet", false, "print nothing to stdout, neither table nor JSON (only --output FILE is written)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	return emitAnalysis(cmd, out, raw, analyzeJSON, analyzeOutput, analyzeOutputFormat, analyzeQuiet)
}

// emitAnalysis writes out as JSON and/or a table per the --json/--output/
// --quiet flags. raw is only consulted when the resolved output format is
// "dot", since rendering the dependency graph needs the graph and blast
// radius that CoreOutput itself doesn't carry.
func emitAnalysis(cmd *cobra.Command, out report.CoreOutput, raw *ingest.RawPlan, asJSON bool, outputFile, outputFormat string, quiet bool) error {
	if outputFile != "" {
		format := resolveOutputFormat(outputFormat, outputFile, asJSON)
		if err := writeOutputFile(out, raw, outputFile, format); err != nil {
			return err
		}
	}

	if quiet {
		return nil
	}

	if asJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal CoreOutput: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	return report.Render(out)
}

// resolveOutputFormat picks the file output format: an explicit
// --output-format wins, then the file extension, then --json, defaulting to
// "table".
func resolveOutputFormat(explicit, path string, asJSON bool) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".dot", ".gv":
		return "dot"
	}
	if asJSON {
		return "json"
	}
	return "table"
}

func writeOutputFile(out report.CoreOutput, raw *ingest.RawPlan, path, format string) error {
	validator := config.NewFileValidator(nil)
	if err := validator.ValidateFileOutput(&config.FileOutputSettings{OutputFile: path, OutputFileFormat: format}); err != nil {
		return err
	}

	switch format {
	case "dot":
		plan, err := normalize.Normalize(raw)
		if err != nil {
			return err
		}
		g := graph.Build(plan)
		affected := blast.Compute(g, plan).Affected
		return os.WriteFile(path, []byte(report.Graphviz(g, affected)), 0644)
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal CoreOutput: %w", err)
		}
		return os.WriteFile(path, data, 0644)
	default:
		return report.RenderToFile(out, path, format)
	}
}
