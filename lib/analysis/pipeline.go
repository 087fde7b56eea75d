package analysis

import (
	"sync"

	"github.com/akileshthuniki/preapply/lib/blast"
	"github.com/akileshthuniki/preapply/lib/cost"
	"github.com/akileshthuniki/preapply/lib/graph"
	"github.com/akileshthuniki/preapply/lib/ingest"
	"github.com/akileshthuniki/preapply/lib/normalize"
	"github.com/akileshthuniki/preapply/lib/recommend"
	"github.com/akileshthuniki/preapply/lib/report"
	"github.com/akileshthuniki/preapply/lib/risk"
	"github.com/akileshthuniki/preapply/lib/security"
	"github.com/akileshthuniki/preapply/lib/shared"
	"github.com/akileshthuniki/preapply/lib/statedestructive"
)

// checksResult holds the independent, read-only output of the five
// analysis checks, joined by Run via a fixed, deterministic
// merge order regardless of which goroutine finished first.
type checksResult struct {
	blastResult     blast.Result
	sharedResources []shared.SharedResource
	exposures       []security.Exposure
	stateUpdates    []statedestructive.Update
	costAlerts      []cost.Alert
}

// runChecks executes the five analysis checks. Each check reads only the
// (immutable) plan, graph, and config, with no shared mutable state, so
// they may run concurrently; the result is assembled into a fixed-field
// struct so the merge order never depends on goroutine completion order.
func runChecks(g *graph.Graph, plan *normalize.NormalizedPlan, configIndex map[string]ingest.RawConfigResource, cfg Config) checksResult {
	var (
		wg              sync.WaitGroup
		blastResult     blast.Result
		sharedResources []shared.SharedResource
		exposures       []security.Exposure
		stateUpdates    []statedestructive.Update
		costAlerts      []cost.Alert
	)

	wg.Add(5)
	go func() { defer wg.Done(); blastResult = blast.Compute(g, plan) }()
	go func() { defer wg.Done(); sharedResources = shared.Detect(g, plan, cfg.CriticalTypes) }()
	go func() { defer wg.Done(); exposures = security.Scan(plan) }()
	go func() { defer wg.Done(); stateUpdates = statedestructive.Detect(plan, configIndex) }()
	go func() {
		defer wg.Done()
		costAlerts = cost.Scan(plan, cfg.HighCostTypes, cfg.HighCostInstanceTypes, cfg.InstanceCostTiers)
	}()
	wg.Wait()

	return checksResult{
		blastResult:     blastResult,
		sharedResources: sharedResources,
		exposures:       exposures,
		stateUpdates:    stateUpdates,
		costAlerts:      costAlerts,
	}
}

// Run executes the full pipeline over already-loaded plan bytes: normalize,
// build the graph, run the five analysis checks, score, recommend, and
// assemble CoreOutput.
func Run(planBytes []byte, raw *ingest.RawPlan, cfg Config) (report.CoreOutput, error) {
	plan, err := normalize.Normalize(raw)
	if err != nil {
		return report.CoreOutput{}, err
	}

	g := graph.Build(plan)

	var configIndex map[string]ingest.RawConfigResource
	if raw.Configuration != nil {
		configIndex = raw.Configuration.ResourceByAddress()
	}

	checks := runChecks(g, plan, configIndex, cfg)

	riskResult := risk.Score(risk.Inputs{
		Plan:            plan,
		Graph:           g,
		Exposures:       checks.exposures,
		StateUpdates:    checks.stateUpdates,
		CostAlerts:      checks.costAlerts,
		SharedResources: checks.sharedResources,
		AffectedCount:   checks.blastResult.AffectedCount,
		SensitivePorts:  cfg.SensitivePorts,
		Config:          cfg.Risk,
	})

	recommendations := recommend.Generate(recommend.Inputs{
		Plan:                 plan,
		Exposures:            checks.exposures,
		SharedResources:      checks.sharedResources,
		Blast:                checks.blastResult,
		SensitiveDeleteTypes: cfg.SensitiveDeleteTypes,
	})

	out := report.Assemble(report.Inputs{
		ExplanationID:        report.ExplanationID(planBytes),
		Plan:                 plan,
		Blast:                checks.blastResult,
		RiskResult:           riskResult,
		SharedResources:      checks.sharedResources,
		Exposures:            checks.exposures,
		StateUpdates:         checks.stateUpdates,
		CostAlerts:           checks.costAlerts,
		Recommendations:      recommendations,
		SensitiveDeleteTypes: cfg.SensitiveDeleteTypes,
	})

	return out, nil
}
