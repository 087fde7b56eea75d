package ingest

import (
	"encoding/json"
	"os"

	pperrors "github.com/akileshthuniki/preapply/lib/errors"
)

// Load reads and validates the plan document at path, returning the
// decoded RawPlan unchanged. It never mutates or rewrites the
// input file.
func Load(path string) (*RawPlan, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, pperrors.NewPlanLoadError(path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pperrors.NewPlanLoadError(path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, pperrors.NewPlanLoadError(path, err)
	}

	if err := validateShape(raw); err != nil {
		return nil, err
	}

	var plan RawPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, pperrors.NewPlanLoadError(path, err)
	}

	return &plan, nil
}

// validateShape enforces the minimal required-key checks
// before the typed decode, so a JSON document that merely has the wrong
// shape surfaces PlanStructureError rather than a generic decode failure.
func validateShape(raw map[string]any) error {
	if _, ok := raw["format_version"]; !ok {
		return pperrors.NewPlanStructureError("format_version is missing")
	}

	changes, ok := raw["resource_changes"]
	if !ok {
		return pperrors.NewPlanStructureError("resource_changes is missing")
	}

	if _, ok := changes.([]any); !ok {
		return pperrors.NewPlanStructureError("resource_changes is not a sequence")
	}

	return nil
}
