package errors

// ExitCode maps a fatal error's code to its process exit code.
// All PreApplyError values are runtime errors and exit 1; the policy-specific
// exit codes (2/3) are produced at the CLI boundary from a PolicyEvaluationResult,
// not from this taxonomy.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
