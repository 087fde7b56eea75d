package errors

import "fmt"

// NewPlanLoadError reports a failure to read or decode a plan document.
func NewPlanLoadError(path string, cause error) *PreApplyError {
	return &PreApplyError{
		Code:       CodePlanLoad,
		Message:    fmt.Sprintf("failed to load plan file: %s", path),
		Underlying: cause,
		Context:    map[string]any{"path": path},
		Suggestions: []string{
			"verify the plan file exists and is readable",
			"verify the plan file contains valid JSON",
		},
	}
}

// NewPlanStructureError reports a plan document missing required keys.
func NewPlanStructureError(reason string) *PreApplyError {
	return &PreApplyError{
		Code:    CodePlanStructure,
		Message: fmt.Sprintf("invalid plan structure: %s", reason),
		Suggestions: []string{
			"regenerate the plan with `terraform show -json`",
			"confirm format_version and resource_changes are present",
		},
	}
}

// NewConfigLoadError reports a missing or malformed configuration file.
func NewConfigLoadError(path string, cause error) *PreApplyError {
	return &PreApplyError{
		Code:       CodeConfigLoad,
		Message:    fmt.Sprintf("failed to load configuration: %s", path),
		Underlying: cause,
		Context:    map[string]any{"path": path},
		Suggestions: []string{
			"verify the configuration file is valid YAML",
			"check risk_scoring, shared_resources, and cost_alerts sections",
		},
	}
}

// NewPolicyLoadError reports a missing or malformed policy document.
func NewPolicyLoadError(path string, cause error) *PreApplyError {
	return &PreApplyError{
		Code:       CodePolicyLoad,
		Message:    fmt.Sprintf("failed to load policy file: %s", path),
		Underlying: cause,
		Context:    map[string]any{"path": path},
		Suggestions: []string{
			"verify --policy-file points to a readable YAML file",
			"confirm each rule has a match block and an action of fail or warn",
		},
	}
}

// NewInternalInvariantError reports a violation of an internal graph or plan invariant.
func NewInternalInvariantError(invariant string, detail string) *PreApplyError {
	return &PreApplyError{
		Code:    CodeInternalInvariant,
		Message: fmt.Sprintf("internal invariant %s violated: %s", invariant, detail),
		Context: map[string]any{"invariant": invariant},
	}
}
