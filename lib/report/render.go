package report

import (
	"context"
	"fmt"

	output "github.com/ArjenSchwarz/go-output/v2"
)

// buildDocument assembles the go-output/v2 document shared by every render
// target (stdout or file): the same document, rendered through a different
// format and writer.
func buildDocument(out CoreOutput) (*output.Document, error) {
	builder := output.New()

	summaryData := []map[string]any{
		{
			"Explanation ID": out.ExplanationID,
			"Risk Level":     string(out.RiskLevel),
			"Detailed Tier":  string(out.RiskLevelDetailed),
			"Score":          fmt.Sprintf("%.2f", out.BlastRadiusScore),
			"Action":         string(out.RiskAction),
			"Approval":       string(out.ApprovalRequired),
		},
	}
	summaryTable, err := output.NewTableContent("Risk Summary", summaryData,
		output.WithKeys("Explanation ID", "Risk Level", "Detailed Tier", "Score", "Action", "Approval"))
	if err != nil {
		return nil, fmt.Errorf("failed to build risk summary table: %w", err)
	}
	builder = builder.AddContent(summaryTable)

	blastData := []map[string]any{
		{
			"Affected Count":      out.AffectedCount,
			"Deletion Count":      out.DeletionCount,
			"Affected Components": joinStrings(out.AffectedComponents),
		},
	}
	blastTable, err := output.NewTableContent("Blast Radius", blastData,
		output.WithKeys("Affected Count", "Deletion Count", "Affected Components"))
	if err != nil {
		return nil, fmt.Errorf("failed to build blast radius table: %w", err)
	}
	builder = builder.AddContent(blastTable)

	if len(out.RiskAttributes.SecurityExposures) > 0 {
		var exposureData []map[string]any
		for _, e := range out.RiskAttributes.SecurityExposures {
			exposureData = append(exposureData, map[string]any{
				"Resource": e.ResourceAddress,
				"Kind":     string(e.Kind),
				"CIDR":     e.CIDR,
				"Severity": string(e.Severity),
			})
		}
		exposureTable, err := output.NewTableContent("Security Exposures", exposureData,
			output.WithKeys("Resource", "Kind", "CIDR", "Severity"))
		if err != nil {
			return nil, fmt.Errorf("failed to build security exposures table: %w", err)
		}
		builder = builder.AddContent(exposureTable)
	}

	if len(out.Recommendations) > 0 {
		var recData []map[string]any
		for _, r := range out.Recommendations {
			recData = append(recData, map[string]any{"Recommendation": r})
		}
		recTable, err := output.NewTableContent("Recommendations", recData, output.WithKeys("Recommendation"))
		if err != nil {
			return nil, fmt.Errorf("failed to build recommendations table: %w", err)
		}
		builder = builder.AddContent(recTable)
	}

	doc := builder.Build()
	return doc, nil
}

// Render writes out as a human-readable table to stdout (the non-JSON CLI
// output), using go-output/v2's New().AddContent().Build() document builder.
func Render(out CoreOutput) error {
	doc, err := buildDocument(out)
	if err != nil {
		return err
	}

	renderer := output.NewOutput(
		output.WithFormat(output.Table),
		output.WithWriter(output.NewStdoutWriter()),
	)
	if err := renderer.Render(context.Background(), doc); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// RenderToFile writes out to path in the requested format ("table" or
// "json"), following the same document-then-writer pattern as Render but
// targeting a file writer instead of stdout.
func RenderToFile(out CoreOutput, path, format string) error {
	doc, err := buildDocument(out)
	if err != nil {
		return err
	}

	fileWriter, err := output.NewFileWriterWithOptions(".", path, output.WithAbsolutePaths())
	if err != nil {
		return fmt.Errorf("failed to create file writer: %w", err)
	}

	fileFormat := output.Table
	if format == "json" {
		fileFormat = output.JSON
	}

	renderer := output.NewOutput(
		output.WithFormat(fileFormat),
		output.WithWriter(fileWriter),
	)
	if err := renderer.Render(context.Background(), doc); err != nil {
		return fmt.Errorf("failed to render report to file: %w", err)
	}
	return nil
}

func joinStrings(s []string) string {
	out := ""
	for i, v := range s {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}
