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
	"sort"

	"github.com/spf13/cobra"

	pperrors "github.com/akileshthuniki/preapply/lib/errors"
	"github.com/akileshthuniki/preapply/lib/graph"
	"github.com/akileshthuniki/preapply/lib/ingest"
	"github.com/akileshthuniki/preapply/lib/normalize"
)

var (
	explainJSON          bool
	explainListResources bool
)

// explainCmd represents the explain command
var explainCmd = &cobra.Command{
	Use:   "explain INPUT [RESOURCE_ID]",
	Short: "Explain a plan's risk assessment or a single resource's graph position",
	Long: `Explain loads a Terraform plan and either lists every resource address it
contains (--list-resources), reports the dependency-graph position of one
resource (RESOURCE_ID) within that plan (action, depends_on, downstream,
upstream, in-degree; no per-resource risk score), or, when
RESOURCE_ID is omitted, runs the full analysis and prints the same report
"analyze" would.

Examples:
  # Run the full analysis, same as "analyze"
  preapply explain terraform.tfplan.json

  # List every resource address in the plan
  preapply explain terraform.tfplan.json --list-resources

  # Explain a single resource's dependency position
  preapply explain terraform.tfplan.json aws_db_instance.production

  # Same, as JSON
  preapply explain terraform.tfplan.json aws_db_instance.production --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)

	explainCmd.Flags().BoolVar(&explainJSON, "json", false, "emit the explanation as JSON")
	explainCmd.Flags().BoolVar(&explainListResources, "list-resources", false, "list every resource address in the plan and exit")
}

// resourceExplanation is the per-resource detail emitted by explain
// (there is no fixed schema for this; it is assembled from the same
// normalized model and graph the rest of the pipeline shares).
type resourceExplanation struct {
	Address    string   `json:"address"`
	Type       string   `json:"type"`
	Module     string   `json:"module,omitempty"`
	Action     string   `json:"action"`
	DependsOn  []string `json:"depends_on"`
	Downstream []string `json:"downstream"`
	Upstream   []string `json:"upstream"`
	InDegree   int      `json:"in_degree"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	planFile := args[0]

	raw, err := ingest.Load(planFile)
	if err != nil {
		return err
	}

	plan, err := normalize.Normalize(raw)
	if err != nil {
		return err
	}

	if explainListResources {
		return emitResourceList(cmd, plan)
	}

	if len(args) < 2 {
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
		return emitAnalysis(cmd, out, raw, explainJSON, "", "", false)
	}
	resourceID := args[1]

	resource, ok := plan.ByAddress(resourceID)
	if !ok {
		return pperrors.NewPlanStructureError(fmt.Sprintf("resource %q not found in plan", resourceID))
	}

	g := graph.Build(plan)
	explanation := resourceExplanation{
		Address:    resource.Address,
		Type:       resource.Type,
		Module:     resource.Module,
		Action:     string(resource.Action),
		DependsOn:  resource.SortedDependsOn(),
		Downstream: sortedSet(g.Downstream(resourceID)),
		Upstream:   sortedSet(g.Upstream(resourceID)),
		InDegree:   g.InDegree(resourceID),
	}

	if explainJSON {
		data, err := json.MarshalIndent(explanation, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal resource explanation: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", explanation.Address, explanation.Type)
	fmt.Fprintf(cmd.OutOrStdout(), "  action:      %s\n", explanation.Action)
	fmt.Fprintf(cmd.OutOrStdout(), "  depends_on:  %v\n", explanation.DependsOn)
	fmt.Fprintf(cmd.OutOrStdout(), "  downstream:  %v\n", explanation.Downstream)
	fmt.Fprintf(cmd.OutOrStdout(), "  upstream:    %v\n", explanation.Upstream)
	fmt.Fprintf(cmd.OutOrStdout(), "  in_degree:   %d\n", explanation.InDegree)
	return nil
}

func emitResourceList(cmd *cobra.Command, plan *normalize.NormalizedPlan) error {
	addresses := sortedSet(plan.Addresses())

	if explainJSON {
		data, err := json.MarshalIndent(addresses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal resource list: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, a := range addresses {
		fmt.Fprintln(cmd.OutOrStdout(), a)
	}
	return nil
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
