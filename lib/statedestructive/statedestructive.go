// Package statedestructive implements the protection-weakening detector of
// state-destructive risk signals.
package statedestructive

import (
	"github.com/akileshthuniki/preapply/lib/ingest"
	"github.com/akileshthuniki/preapply/lib/normalize"
)

// Attribute is the closed set of protection attributes this detector watches.
type Attribute string

// Attribute values.
const (
	AttrForceDestroy       Attribute = "force_destroy"
	AttrPreventDestroy     Attribute = "prevent_destroy"
	AttrDeletionProtection Attribute = "deletion_protection"
	AttrBackupRetention    Attribute = "backup_retention_period"
)

// Update is one detected weakening transition.
type Update struct {
	ResourceAddress string
	Attribute       Attribute
	Before          any
	After           any
}

// databaseTypes is the set of provider types for which
// deletion_protection / backup_retention_period are meaningful.
var databaseTypes = map[string]struct{}{
	"aws_db_instance":              {},
	"aws_rds_cluster":              {},
	"aws_rds_cluster_instance":     {},
	"aws_dynamodb_table":           {},
	"google_sql_database_instance": {},
	"azurerm_mssql_database":       {},
}

func isDatabaseType(t string) bool {
	_, ok := databaseTypes[t]
	return ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// preventDestroyValue reads the prevent_destroy lifecycle meta-argument
// from configuration, which is not part of before/after since it is not a
// resource attribute. Absent metadata means no check fires.
func preventDestroyValue(cfg ingest.RawConfigResource) (bool, bool) {
	lifecycle, ok := cfg.Expressions["lifecycle"].(map[string]any)
	if !ok {
		return false, false
	}
	pd, ok := lifecycle["prevent_destroy"].(map[string]any)
	if !ok {
		return false, false
	}
	v, ok := pd["constant_value"]
	if !ok {
		return false, false
	}
	return asBool(v)
}

// Detect scans every UPDATE and DELETE for the before/after transitions of
// state-destructive checks. configIndex is the configuration.root_module resources keyed
// by address (used only for the prevent_destroy meta-argument).
func Detect(plan *normalize.NormalizedPlan, configIndex map[string]ingest.RawConfigResource) []Update {
	var out []Update

	for _, r := range plan.Resources {
		if r.Action != normalize.ActionUpdate && r.Action != normalize.ActionDelete {
			continue
		}

		if before, ok := asBool(r.Before["force_destroy"]); ok {
			if after, ok := asBool(r.After["force_destroy"]); ok {
				if !before && after {
					out = append(out, Update{r.Address, AttrForceDestroy, before, after})
				}
			}
		}

		if cfg, ok := configIndex[r.Address]; ok {
			if before, ok := preventDestroyValue(cfg); ok && before {
				// prevent_destroy configured true in the plan's own
				// configuration is itself the "before" state; a plan that
				// still shows the resource as UPDATE/DELETE despite it
				// means the meta-argument was weakened to false to allow
				// this change.
				out = append(out, Update{r.Address, AttrPreventDestroy, true, false})
			}
		}

		if !isDatabaseType(r.Type) {
			continue
		}

		if before, ok := asBool(r.Before["deletion_protection"]); ok {
			if after, ok := asBool(r.After["deletion_protection"]); ok {
				if before && !after {
					out = append(out, Update{r.Address, AttrDeletionProtection, before, after})
				}
			}
		}

		if before, ok := asNumber(r.Before["backup_retention_period"]); ok {
			if after, ok := asNumber(r.After["backup_retention_period"]); ok {
				if before > 0 && after == 0 {
					out = append(out, Update{r.Address, AttrBackupRetention, before, after})
				}
			}
		}
	}

	return out
}
