package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/akileshthuniki/preapply/lib/ingest"
	pperrors "github.com/akileshthuniki/preapply/lib/errors"
)

func sortStrings(s []string) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}

// addressPattern matches a (possibly module-qualified) provider-resource
// address: one or more "module.<name>." prefixes followed by "<type>.<id>",
// where <id> may carry a trailing [index] or ["key"] instance suffix.
var addressPattern = regexp.MustCompile(`(?:module\.[A-Za-z0-9_\-]+\.)*[A-Za-z_][A-Za-z0-9_]*\.[A-Za-z0-9_\-]+(?:\[[^\]]*\])?`)

var anchoredAddressPattern = regexp.MustCompile(`^` + addressPattern.String())

var interpolationPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// splitUnquotedDots splits a Terraform address on '.' characters that are not
// nested inside a "[...]" instance-key suffix, so an index like ["a.b"] is
// kept intact.
func splitUnquotedDots(address string) []string {
	var parts []string
	depth := 0
	var cur strings.Builder
	for _, r := range address {
		switch r {
		case '[':
			depth++
			cur.WriteRune(r)
		case ']':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case '.':
			if depth == 0 {
				parts = append(parts, cur.String())
				cur.Reset()
				continue
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

// stripInstanceKey removes a trailing [index] or ["key"] suffix from a module
// name component.
func stripInstanceKey(part string) string {
	if i := strings.IndexByte(part, '['); i >= 0 {
		return part[:i]
	}
	return part
}

// splitAddress decomposes a fully-qualified resource address into its module
// path, resource type, and instance id. The address string
// itself is returned unchanged as the graph identity key.
func splitAddress(address string) (module, resourceType, id string) {
	parts := splitUnquotedDots(address)

	var moduleParts []string
	i := 0
	for i+1 < len(parts) && parts[i] == "module" {
		moduleParts = append(moduleParts, stripInstanceKey(parts[i+1]))
		i += 2
	}
	module = strings.Join(moduleParts, ".")

	tail := parts[i:]
	switch len(tail) {
	case 0:
		return module, "", ""
	case 1:
		return module, tail[0], ""
	default:
		return module, tail[0], strings.Join(tail[1:], ".")
	}
}

// resolveReference extracts the leading address-shaped substring of a
// reference expression (stripping one var./local./each./data. token first)
// and returns it only if it names a known resource address
// (source 2: configuration expression references).
func resolveReference(ref string, addresses map[string]struct{}) (string, bool) {
	ref = strings.TrimSpace(ref)
	for _, prefix := range []string{"var.", "local.", "each.", "data."} {
		if strings.HasPrefix(ref, prefix) {
			ref = strings.TrimPrefix(ref, prefix)
			break
		}
	}

	candidate := anchoredAddressPattern.FindString(ref)
	if candidate == "" {
		return "", false
	}
	if _, ok := addresses[candidate]; ok {
		return candidate, true
	}
	return "", false
}

// walkExpressions recursively collects every string under a "references"
// key anywhere in a configuration expressions subtree (source 2).
func walkExpressions(node any, out *[]string) {
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			if key == "references" {
				if refs, ok := val.([]any); ok {
					for _, r := range refs {
						if s, ok := r.(string); ok {
							*out = append(*out, s)
						}
					}
					continue
				}
			}
			walkExpressions(val, out)
		}
	case []any:
		for _, item := range v {
			walkExpressions(item, out)
		}
	}
}

// scanValueStrings recursively collects every string leaf within a
// before/after value tree (source 3: fallback literal scan).
func scanValueStrings(node any, out *[]string) {
	switch v := node.(type) {
	case map[string]any:
		for _, val := range v {
			scanValueStrings(val, out)
		}
	case []any:
		for _, item := range v {
			scanValueStrings(item, out)
		}
	case string:
		*out = append(*out, v)
	}
}

// dependsOnFromLiterals extracts address-shaped references embedded in
// ${...} interpolations or bare literal strings within before/after values
// (source 3), for plans lacking explicit depends_on or
// configuration metadata.
func dependsOnFromLiterals(values map[string]any, self string, addresses map[string]struct{}) map[string]struct{} {
	found := make(map[string]struct{})
	var strs []string
	scanValueStrings(values, &strs)

	for _, s := range strs {
		for _, m := range interpolationPattern.FindAllStringSubmatch(s, -1) {
			if addr, ok := resolveReference(m[1], addresses); ok && addr != self {
				found[addr] = struct{}{}
			}
		}
		for _, m := range addressPattern.FindAllString(s, -1) {
			if _, ok := addresses[m]; ok && m != self {
				found[m] = struct{}{}
			}
		}
	}
	return found
}

// Normalize converts a validated RawPlan into a NormalizedPlan, applying the
// action mapping and the three-source
// depends_on union.
func Normalize(raw *ingest.RawPlan) (*NormalizedPlan, error) {
	addresses := make(map[string]struct{}, len(raw.ResourceChanges))
	for _, rc := range raw.ResourceChanges {
		if _, dup := addresses[rc.Address]; dup {
			return nil, pperrors.NewInternalInvariantError("unique-address", "duplicate resource address: "+rc.Address)
		}
		addresses[rc.Address] = struct{}{}
	}

	var configIndex map[string]ingest.RawConfigResource
	if raw.Configuration != nil {
		configIndex = raw.Configuration.ResourceByAddress()
	}

	plan := &NormalizedPlan{
		Resources: make([]NormalizedResource, 0, len(raw.ResourceChanges)),
		index:     make(map[string]int, len(raw.ResourceChanges)),
	}

	for _, rc := range raw.ResourceChanges {
		module, resourceType, id := splitAddress(rc.Address)
		if resourceType == "" {
			resourceType = rc.Type
		}

		dependsOn := make(map[string]struct{})

		// Source 1: explicit change.depends_on.
		for _, d := range rc.Change.DependsOn {
			if addr, ok := resolveReference(d, addresses); ok && addr != rc.Address {
				dependsOn[addr] = struct{}{}
			} else if _, ok := addresses[d]; ok && d != rc.Address {
				dependsOn[d] = struct{}{}
			}
		}

		// Source 2: configuration expression references.
		if cfg, ok := configIndex[rc.Address]; ok {
			var refs []string
			walkExpressions(cfg.Expressions, &refs)
			for _, r := range refs {
				if addr, ok := resolveReference(r, addresses); ok && addr != rc.Address {
					dependsOn[addr] = struct{}{}
				}
			}
		}

		// Source 3: fallback literal scan of before/after values.
		for addr := range dependsOnFromLiterals(rc.Change.Before, rc.Address, addresses) {
			dependsOn[addr] = struct{}{}
		}
		for addr := range dependsOnFromLiterals(rc.Change.After, rc.Address, addresses) {
			dependsOn[addr] = struct{}{}
		}

		res := NormalizedResource{
			ID:        id,
			Module:    module,
			Type:      resourceType,
			Address:   rc.Address,
			Action:    FromActions(rc.Change.Actions),
			DependsOn: dependsOn,
			Before:    rc.Change.Before,
			After:     rc.Change.After,
		}

		plan.index[rc.Address] = len(plan.Resources)
		plan.Resources = append(plan.Resources, res)
	}

	return plan, nil
}
