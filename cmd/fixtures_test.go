package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

// writePlanFixture writes a minimal valid Terraform plan JSON document to a
// temp file and returns its path: one CREATE, no references.
func writePlanFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	doc := `{
  "format_version": "1.2",
  "resource_changes": [
    {
      "address": "aws_s3_bucket.logs",
      "type": "aws_s3_bucket",
      "change": {
        "actions": ["create"],
        "before": null,
        "after": {"acl": "private"}
      }
    }
  ]
}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write plan fixture: %v", err)
	}
	return path
}

// writeHighRiskPlanFixture builds a DB delete plus a wide-open
// security-group ingress rule.
func writeHighRiskPlanFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	doc := `{
  "format_version": "1.2",
  "resource_changes": [
    {
      "address": "aws_db_instance.production",
      "type": "aws_db_instance",
      "change": {
        "actions": ["delete"],
        "before": {},
        "after": null
      }
    },
    {
      "address": "aws_security_group.sg",
      "type": "aws_security_group",
      "change": {
        "actions": ["create"],
        "before": null,
        "after": {
          "ingress": [
            {"from_port": 22, "to_port": 22, "cidr_blocks": ["0.0.0.0/0"]}
          ]
        }
      }
    }
  ]
}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write plan fixture: %v", err)
	}
	return path
}
