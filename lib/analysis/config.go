// Package analysis implements the fixed 5-stage analysis pipeline:
// ingest → normalize → graph → analyze → contract.
package analysis

import (
	"github.com/akileshthuniki/preapply/lib/cost"
	"github.com/akileshthuniki/preapply/lib/risk"
)

// Config is the immutable, fully-resolved configuration every stage reads:
// it is read once at startup and passed as an immutable argument to every
// stage. It is assembled by the config package from the decoded YAML
// configuration document.
type Config struct {
	Risk risk.Config

	CriticalTypes        []string
	SensitiveDeleteTypes []string

	HighCostTypes         []string
	HighCostInstanceTypes []string
	InstanceCostTiers     []cost.Tier

	SensitivePorts map[int]struct{}
}

// DefaultSensitivePorts is the fixed sensitive-port set used by the scoring formula.
func DefaultSensitivePorts() map[int]struct{} {
	return map[int]struct{}{
		22: {}, 3389: {}, 1433: {}, 3306: {}, 5432: {}, 5439: {}, 27017: {},
	}
}

// DefaultConfig returns a Config populated with every numeric/structural
// default, for callers that have no configuration
// file (loader defaults).
func DefaultConfig() Config {
	return Config{
		Risk:           risk.Defaults(),
		SensitivePorts: DefaultSensitivePorts(),
	}
}
