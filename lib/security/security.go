// Package security implements the three security-exposure rule families.
package security

import (
	"sort"

	"github.com/akileshthuniki/preapply/lib/normalize"
)

// Severity is the closed severity variant.
type Severity string

// Severity values.
const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Kind is the closed exposure-kind variant.
type Kind string

// Kind values.
const (
	KindIngressCIDR      Kind = "ingress_cidr"
	KindEgressCIDR       Kind = "egress_cidr"
	KindS3PublicACL      Kind = "s3_public_acl"
	KindS3PublicBlockOff Kind = "s3_public_block_disabled"
)

// Exposure is one emitted SecurityExposure.
type Exposure struct {
	ResourceAddress string
	Kind            Kind
	Port            *int
	CIDR            string
	Severity        Severity
}

var sensitivePorts = map[int]struct{}{
	22: {}, 3389: {}, 1433: {}, 3306: {}, 5432: {}, 5439: {}, 27017: {},
}

func portRangeSensitive(from, to int) bool {
	for p := range sensitivePorts {
		if p >= from && p <= to {
			return true
		}
	}
	return false
}

func portRange(rule map[string]any) (from, to int, ok bool) {
	f, okF := asInt(rule["from_port"])
	t, okT := asInt(rule["to_port"])
	if !okF || !okT {
		return 0, 0, false
	}
	return f, t, true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func scanRules(address string, after map[string]any, key string) []Exposure {
	var out []Exposure
	rules, ok := after[key].([]any)
	if !ok {
		return nil
	}
	for _, raw := range rules {
		rule, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		from, to, hasRange := portRange(rule)

		var cidrs []string
		for _, c := range stringSlice(rule["cidr_blocks"]) {
			if c == "0.0.0.0/0" {
				cidrs = append(cidrs, c)
			}
		}
		for _, c := range stringSlice(rule["ipv6_cidr_blocks"]) {
			if c == "::/0" {
				cidrs = append(cidrs, c)
			}
		}

		kind := KindIngressCIDR
		if key == "egress" {
			kind = KindEgressCIDR
		}

		for _, cidr := range cidrs {
			severity := SeverityMedium
			if hasRange && portRangeSensitive(from, to) {
				severity = SeverityHigh
			}
			exp := Exposure{ResourceAddress: address, Kind: kind, CIDR: cidr, Severity: severity}
			if hasRange {
				p := from
				exp.Port = &p
			}
			out = append(out, exp)
		}
	}
	return out
}

// ScanSecurityGroups implements the SG ingress/egress rule family.
func ScanSecurityGroups(plan *normalize.NormalizedPlan) []Exposure {
	var out []Exposure
	for _, r := range plan.Resources {
		if r.Type != "aws_security_group" && r.Type != "aws_security_group_rule" {
			continue
		}
		if r.After == nil {
			continue
		}
		out = append(out, scanRules(r.Address, r.After, "ingress")...)
		out = append(out, scanRules(r.Address, r.After, "egress")...)
	}
	return out
}

// ScanS3PublicAccessBlock implements the S3 public-access-block rule family.
func ScanS3PublicAccessBlock(plan *normalize.NormalizedPlan) []Exposure {
	var out []Exposure
	for _, r := range plan.Resources {
		if r.Type != "aws_s3_bucket_public_access_block" || r.After == nil {
			continue
		}
		flags := []string{"block_public_acls", "block_public_policy", "ignore_public_acls", "restrict_public_buckets"}
		for _, f := range flags {
			if v, ok := r.After[f].(bool); ok && !v {
				out = append(out, Exposure{ResourceAddress: r.Address, Kind: KindS3PublicBlockOff, Severity: SeverityHigh})
				break
			}
		}
	}
	return out
}

// ScanS3ACL implements the S3 ACL rule family.
func ScanS3ACL(plan *normalize.NormalizedPlan) []Exposure {
	var out []Exposure
	for _, r := range plan.Resources {
		if r.Type != "aws_s3_bucket" && r.Type != "aws_s3_bucket_acl" {
			continue
		}
		if r.After == nil {
			continue
		}
		acl, _ := r.After["acl"].(string)
		switch acl {
		case "public-read-write":
			out = append(out, Exposure{ResourceAddress: r.Address, Kind: KindS3PublicACL, Severity: SeverityHigh})
		case "public-read":
			out = append(out, Exposure{ResourceAddress: r.Address, Kind: KindS3PublicACL, Severity: SeverityMedium})
		}
	}
	return out
}

// Scan runs all three rule families and returns the combined, sorted result.
func Scan(plan *normalize.NormalizedPlan) []Exposure {
	var out []Exposure
	out = append(out, ScanSecurityGroups(plan)...)
	out = append(out, ScanS3PublicAccessBlock(plan)...)
	out = append(out, ScanS3ACL(plan)...)

	sort.SliceStable(out, func(i, j int) bool { return out[i].ResourceAddress < out[j].ResourceAddress })
	return out
}
