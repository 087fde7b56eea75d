// Package ingest loads and validates the raw Terraform plan document.
package ingest

import (
	tfjson "github.com/hashicorp/terraform-json"
)

// RawPlan is the validated input mapping.
type RawPlan struct {
	FormatVersion   string             `json:"format_version"`
	ResourceChanges []RawResourceChange `json:"resource_changes"`
	Configuration   *RawConfiguration  `json:"configuration,omitempty"`
}

// RawResourceChange is one entry of the plan's resource_changes sequence.
type RawResourceChange struct {
	Address       string     `json:"address"`
	Type          string     `json:"type"`
	ModuleAddress string     `json:"module_address,omitempty"`
	Change        RawChange  `json:"change"`
}

// RawChange is the change block of a resource_changes entry.
type RawChange struct {
	Actions   tfjson.Actions `json:"actions"`
	Before    map[string]any `json:"before"`
	After     map[string]any `json:"after"`
	DependsOn []string       `json:"depends_on,omitempty"`
}

// RawConfiguration is the configuration.root_module subtree used for reference extraction.
type RawConfiguration struct {
	RootModule *RawRootModule `json:"root_module,omitempty"`
}

// RawRootModule holds the per-resource configuration expressions, keyed by
// address once indexed (see RawConfiguration.ResourceByAddress).
type RawRootModule struct {
	Resources []RawConfigResource `json:"resources,omitempty"`
}

// RawConfigResource carries the expressions subtree for a single configured resource.
type RawConfigResource struct {
	Address     string         `json:"address"`
	Expressions map[string]any `json:"expressions,omitempty"`
}

// ResourceByAddress indexes root-module configuration resources by address,
// matching the "configuration.root_module.resources[<address>]" lookup
// against the Terraform JSON schema's actual array-of-resources shape.
func (c *RawConfiguration) ResourceByAddress() map[string]RawConfigResource {
	index := make(map[string]RawConfigResource)
	if c == nil || c.RootModule == nil {
		return index
	}
	for _, r := range c.RootModule.Resources {
		index[r.Address] = r
	}
	return index
}
