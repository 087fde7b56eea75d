package cmd

import (
	"github.com/akileshthuniki/preapply/config"
	"github.com/akileshthuniki/preapply/lib/analysis"
	"github.com/akileshthuniki/preapply/lib/ingest"
	"github.com/akileshthuniki/preapply/lib/report"
)

// runPipeline converts the decoded configuration into analysis.Config and
// runs the full analysis pipeline over an already-loaded plan.
func runPipeline(planBytes []byte, raw *ingest.RawPlan, cfg *config.Config) (report.CoreOutput, error) {
	return analysis.Run(planBytes, raw, cfg.ToAnalysisConfig())
}
